package datecodec

import "time"

// Serialize formats t in the codec's Location, truncated to Precision, using Layout.
// The result is never empty.
func (dc *DateCodec) Serialize(t time.Time) string {
	return dc.normalize(t).Format(dc.layout)
}

func (dc *DateCodec) normalize(t time.Time) time.Time {
	t = t.In(dc.loc)
	if dc.precision > 0 {
		t = t.Truncate(dc.precision)
	}
	return t
}
