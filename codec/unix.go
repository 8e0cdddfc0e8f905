package codec

import (
	"encoding/binary"
	"fmt"
	"time"
)

const unixLen = 8 + 4

// Unix is a fixed 12-byte form: seconds since the epoch (i64 be) | nanoseconds (u32 be).
// Decoded values are in UTC. The zero value is ready to use.
type Unix struct{}

var _ Instant = Unix{}

func (Unix) Encode(t time.Time) ([]byte, error) {
	b := make([]byte, unixLen)
	binary.BigEndian.PutUint64(b[:8], uint64(t.Unix()))
	binary.BigEndian.PutUint32(b[8:], uint32(t.Nanosecond()))
	return b, nil
}

func (Unix) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	if len(b) != unixLen {
		return time.Time{}, fmt.Errorf("codec: unix payload is %d bytes, want %d", len(b), unixLen)
	}
	sec := int64(binary.BigEndian.Uint64(b[:8]))
	nsec := binary.BigEndian.Uint32(b[8:])
	if nsec >= 1e9 {
		return time.Time{}, fmt.Errorf("codec: unix nanoseconds out of range: %d", nsec)
	}
	return time.Unix(sec, int64(nsec)).UTC(), nil
}
