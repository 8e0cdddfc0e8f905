// Package wire frames memo entries stored in a provider.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version      byte = 1
	kindInstant  byte = 1
	kindRejected byte = 2

	hdrLen = 4 + 1 + 1
)

var (
	ErrCorrupt = errors.New("datecodec: corrupt memo entry")
	magic4     = [...]byte{'D', 'T', 'C', 'M'}
)

// Entry is a decoded memo entry: either an instant or the reason an input was rejected.
type Entry struct {
	Time     time.Time // valid when Rejected == ""
	Rejected string
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

func header(kind byte, n int) *bytes.Buffer {
	var buf bytes.Buffer
	buf.Grow(hdrLen + n)
	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kind)
	return &buf
}

// Instant: magic(4) | ver(1) | kind(1=instant) | sec(i64 be) | nsec(u32 be)
func EncodeInstant(t time.Time) []byte {
	buf := header(kindInstant, 8+4)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(t.Unix()))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(t.Nanosecond()))
	buf.Write(u4[:])
	return buf.Bytes()
}

// Rejected: magic(4) | ver(1) | kind(2=rejected) | rlen(u16 be) | reason(rlen)
func EncodeRejected(reason string) ([]byte, error) {
	if l := len(reason); l == 0 || l > 0xFFFF {
		return nil, errors.New("datecodec: invalid reason length in memo entry")
	}
	buf := header(kindRejected, 2+len(reason))

	var u2 [2]byte
	binary.BigEndian.PutUint16(u2[:], uint16(len(reason)))
	buf.Write(u2[:])
	buf.WriteString(reason)
	return buf.Bytes(), nil
}

// Decode validates and decodes an entry. Instants are returned in UTC.
// Trailing bytes are treated as corruption.
func Decode(b []byte) (Entry, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}
	off := hdrLen

	switch b[5] {
	case kindInstant:
		if len(b) != off+8+4 {
			return Entry{}, ErrCorrupt
		}
		sec := int64(binary.BigEndian.Uint64(b[off : off+8]))
		off += 8
		nsec := binary.BigEndian.Uint32(b[off : off+4])
		if nsec >= 1e9 {
			return Entry{}, ErrCorrupt
		}
		return Entry{Time: time.Unix(sec, int64(nsec)).UTC()}, nil

	case kindRejected:
		if off+2 > len(b) {
			return Entry{}, ErrCorrupt
		}
		rlen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if rlen == 0 || rlen != len(b)-off {
			return Entry{}, ErrCorrupt
		}
		return Entry{Rejected: string(b[off:])}, nil
	}
	return Entry{}, ErrCorrupt
}
