// Package datecodec converts dates (time.Time) to text and back.
// Serialize always yields text; Deserialize accepts loosely typed input
// (text, numbers, time values) and reports anything it cannot read as a
// *DecodeError rather than guessing a date.
//
// Components:
//   - DateCodec: the Serialize/Deserialize pair. Default is RFC3339Nano in UTC.
//   - codec: binary forms of an instant (JSON, msgpack, CBOR, protobuf Timestamp,
//     unix, packed date) behind Codec[time.Time].
//   - memo: memoizes text decoding in a provider.Provider (ristretto, bigcache, redis).
//   - config: builds Options from DATECODEC_* environment variables.
//
// Round trip:
//
//	s := datecodec.Serialize(t)         // "2009-01-19T00:00:00Z"
//	u, err := datecodec.Deserialize(s)  // u.Equal(t)
//
// Failure:
//
//	_, err := datecodec.Deserialize(true)
//	errors.Is(err, datecodec.ErrUnsupportedType) // true
package datecodec
