package codec

import (
	"encoding/json"
	"time"
)

// JSON encodes an instant as a JSON string in RFC3339Nano.
type JSON struct{}

var _ Instant = JSON{}

func (JSON) Encode(t time.Time) ([]byte, error) { return json.Marshal(t) }
func (JSON) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	// time.Time ignores null; decoding through a pointer lets us see it
	var t *time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, ErrNull
	}
	return *t, nil
}
