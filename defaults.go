package datecodec

import "time"

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

const defaultMaxInput = 256

// DefaultLayouts are tried, in order, after Options.Layout fails.
// They cover what ActiveResource-style and HTTP peers commonly send.
var DefaultLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.RFC822Z,
}

// Years a four-digit layout can carry, as read in the codec's Location.
const (
	minYear = 1
	maxYear = 9999
)
