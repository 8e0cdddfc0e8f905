package codec

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack encodes an instant with the msgpack timestamp extension (type -1).
// The zero value is ready to use. Decoded values are in UTC.
type Msgpack struct{}

var _ Instant = Msgpack{}

func (Msgpack) Encode(t time.Time) ([]byte, error) {
	return msgpack.Marshal(t)
}
func (Msgpack) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	var t *time.Time
	if err := msgpack.Unmarshal(b, &t); err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, ErrNull
	}
	return t.UTC(), nil
}
