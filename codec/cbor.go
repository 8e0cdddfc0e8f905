package codec

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// CBORTime selects how CBOR carries an instant.
type CBORTime int

const (
	// CBORText is tag 0: an RFC3339Nano string.
	CBORText CBORTime = iota
	// CBOREpoch is tag 1: epoch seconds, float when sub-second precision is present.
	CBOREpoch
)

// CBOR is a Codec that serializes instants using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when you need byte-for-byte stable outputs.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Instant = CBOR{}

// NewCBOR constructs a CBOR codec. Instants are always tagged, so decoders
// on the other side read them back as times rather than strings or numbers.
func NewCBOR(mode CBORTime, deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.TimeTag = cbor.EncTagRequired
	switch mode {
	case CBOREpoch:
		eo.Time = cbor.TimeUnixDynamic
	default:
		eo.Time = cbor.TimeRFC3339Nano
	}

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{TimeTag: cbor.DecTagOptional}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR(mode CBORTime, deterministic bool) CBOR {
	c, err := NewCBOR(mode, deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode encodes t as CBOR using the configured EncMode.
func (c CBOR) Encode(t time.Time) ([]byte, error) {
	return c.enc.Marshal(t)
}

// Decode decodes b into an instant using the configured DecMode.
// Untagged text (RFC3339) and numbers (epoch seconds) are accepted too.
// null and undefined are ErrNull.
func (c CBOR) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	var t *time.Time
	if err := c.dec.Unmarshal(b, &t); err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, ErrNull
	}
	return *t, nil
}
