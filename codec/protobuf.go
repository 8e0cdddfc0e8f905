package codec

import (
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp encodes an instant as a google.protobuf.Timestamp message.
// Instants outside what Timestamp can carry (years 0001..9999) fail to encode.
type Timestamp struct{}

var _ Instant = Timestamp{}

func (Timestamp) Encode(t time.Time) ([]byte, error) {
	ts := timestamppb.New(t)
	if err := ts.CheckValid(); err != nil {
		return nil, err
	}
	return proto.Marshal(ts)
}

func (Timestamp) Decode(b []byte) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, ErrEmpty
	}
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(b, &ts); err != nil {
		return time.Time{}, err
	}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}
