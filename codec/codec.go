// Package codec holds binary forms of an instant. Every codec here is a
// Codec[time.Time]; the text form lives in the datecodec package itself.
package codec

import (
	"errors"
	"time"
)

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// ErrEmpty is returned by decoders given a zero-length payload.
var ErrEmpty = errors.New("codec: empty payload")

// ErrNull is returned by decoders given an encoded null, which carries no instant.
var ErrNull = errors.New("codec: null payload")

// Instant is the Codec shape every codec in this package satisfies.
type Instant = Codec[time.Time]
