package codec

import (
	"fmt"
	"time"
)

// Limit wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect against oversized inputs coming from an untrusted peer.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Instant
	// MaxDecode is the maximum permitted payload length in bytes.
	MaxDecode int
}

func (c Limit) Encode(t time.Time) ([]byte, error) { return c.Inner.Encode(t) }
func (c Limit) Decode(b []byte) (time.Time, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return time.Time{}, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
