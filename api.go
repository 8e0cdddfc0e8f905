package datecodec

import (
	"fmt"
	"slices"
	"strings"
	"time"

	c "github.com/unkn0wn-root/datecodec/codec"
)

// Options tune a DateCodec. The zero value is valid and yields the Default codec:
// RFC3339Nano text in UTC, lenient decoding, epoch seconds accepted.
type Options struct {
	Layout   string         // primary layout for Serialize and the first parse attempt; "" => time.RFC3339Nano
	Layouts  []string       // extra parse layouts; nil => DefaultLayouts, empty non-nil slice => none
	Location *time.Location // nil => UTC

	// Precision truncates instants on both Serialize and Deserialize; 0 => keep full precision.
	Precision time.Duration

	Strict       bool          // only time values and text in Layout are accepted
	DisableEpoch bool          // reject numeric inputs
	EpochUnit    time.Duration // time.Second (default), Millisecond, Microsecond or Nanosecond
	MaxInput     int           // max text length in bytes; 0 => 256, <0 => unlimited

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// DateCodec converts between time.Time and text. It is immutable after New
// and safe for concurrent use.
type DateCodec struct {
	layout    string
	layouts   []string
	loc       *time.Location
	precision time.Duration
	strict    bool
	epoch     bool
	unit      time.Duration
	maxInput  int
	log       Logger
	hooks     Hooks
}

var _ c.Codec[time.Time] = (*DateCodec)(nil)

// Default backs the package-level Serialize and Deserialize.
var Default = MustNew(Options{})

func New(opts Options) (*DateCodec, error) {
	dc := &DateCodec{
		layout:    coalesce(opts.Layout, time.RFC3339Nano),
		loc:       opts.Location,
		precision: opts.Precision,
		strict:    opts.Strict,
		epoch:     !opts.DisableEpoch && !opts.Strict,
		unit:      coalesce(opts.EpochUnit, time.Second),
		log:       coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:     coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	if dc.loc == nil {
		dc.loc = time.UTC
	}
	if dc.precision < 0 {
		return nil, fmt.Errorf("datecodec: negative precision %s", dc.precision)
	}
	switch dc.unit {
	case time.Second, time.Millisecond, time.Microsecond, time.Nanosecond:
	default:
		return nil, fmt.Errorf("datecodec: unsupported epoch unit %s", dc.unit)
	}

	switch {
	case opts.MaxInput == 0:
		dc.maxInput = defaultMaxInput
	case opts.MaxInput > 0:
		dc.maxInput = opts.MaxInput
	}

	if opts.Layouts == nil {
		dc.layouts = slices.Clone(DefaultLayouts)
	} else {
		dc.layouts = make([]string, 0, len(opts.Layouts))
		for _, l := range opts.Layouts {
			if l != "" && l != dc.layout {
				dc.layouts = append(dc.layouts, l)
			}
		}
	}

	// the primary layout must produce non-empty text it can read back
	sample := time.Date(2009, time.January, 19, 13, 14, 15, 123456789, time.UTC).In(dc.loc)
	out := sample.Format(dc.layout)
	if strings.TrimSpace(out) == "" {
		return nil, fmt.Errorf("datecodec: layout %q formats to empty text", dc.layout)
	}
	back, err := time.ParseInLocation(dc.layout, out, dc.loc)
	if err != nil {
		return nil, fmt.Errorf("datecodec: layout %q cannot parse its own output: %w", dc.layout, err)
	}
	if y, m, d := back.In(dc.loc).Date(); y != sample.Year() || m != sample.Month() || d != sample.Day() {
		return nil, fmt.Errorf("datecodec: layout %q does not carry a calendar date", dc.layout)
	}
	return dc, nil
}

// MustNew is like New but panics on error.
func MustNew(opts Options) *DateCodec {
	dc, err := New(opts)
	if err != nil {
		panic(err)
	}
	return dc
}

// Layout returns the primary layout.
func (dc *DateCodec) Layout() string { return dc.layout }

// Location returns the zone results are expressed in.
func (dc *DateCodec) Location() *time.Location { return dc.loc }

// Encode returns the Serialize text as bytes.
func (dc *DateCodec) Encode(t time.Time) ([]byte, error) {
	return []byte(dc.Serialize(t)), nil
}

// Decode reads b as text input to Deserialize.
func (dc *DateCodec) Decode(b []byte) (time.Time, error) {
	return dc.Deserialize(b)
}

// Serialize formats t with the Default codec.
func Serialize(t time.Time) string { return Default.Serialize(t) }

// Deserialize decodes v with the Default codec.
func Deserialize(v any) (time.Time, error) { return Default.Deserialize(v) }
