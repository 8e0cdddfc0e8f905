package codec

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	dayShift   = 0
	monthShift = 8
	yearShift  = 16

	oneByteMask = 0xFF
	twoByteMask = 0xFFFF
)

// PackedDate keeps only the calendar date: year<<16 | month<<8 | day as a
// big-endian int32. Time of day and zone are dropped; decoded values are UTC midnight.
// Location selects the zone whose calendar date is taken on Encode; nil => UTC.
type PackedDate struct {
	Location *time.Location
}

var _ Instant = PackedDate{}

func (p PackedDate) Encode(t time.Time) ([]byte, error) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := t.In(loc).Date()
	if year < 1 || year > twoByteMask {
		return nil, fmt.Errorf("codec: year %d cannot be packed", year)
	}
	v := uint32(year)<<yearShift | uint32(month)<<monthShift | uint32(day)<<dayShift
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b, nil
}

func (PackedDate) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	if len(b) != 4 {
		return time.Time{}, fmt.Errorf("codec: packed date is %d bytes, want 4", len(b))
	}
	v := binary.BigEndian.Uint32(b)
	day := int((v >> dayShift) & oneByteMask)
	month := time.Month((v >> monthShift) & oneByteMask)
	year := int((v >> yearShift) & twoByteMask)

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 2009-02-30 into March; such payloads are corrupt
	if y, m, d := t.Date(); y != year || m != month || d != day || year == 0 {
		return time.Time{}, fmt.Errorf("codec: invalid packed date %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}
