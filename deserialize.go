package datecodec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Unix second bounds of years 0001..9999.
const (
	minUnix = -62135596800
	maxUnix = 253402300799
)

// Deserialize turns v into an instant. Accepted inputs:
//   - time.Time, *time.Time, *timestamppb.Timestamp
//   - text (string, []byte, json.Number, fmt.Stringer) in Layout or, unless Strict,
//     one of the extra layouts or an epoch number
//   - integers and floats as epoch numbers in EpochUnit, unless Strict or DisableEpoch
//
// Every other input, and every input that cannot be read, yields a *DecodeError and
// the zero time. Results are expressed in Location and truncated to Precision.
func (dc *DateCodec) Deserialize(v any) (time.Time, error) {
	t, de := dc.deserialize(v)
	if de != nil {
		dc.hooks.DecodeRejected(de.Type, de.Reason)
		dc.log.Debug("deserialize rejected", Fields{"type": de.Type, "reason": string(de.Reason)})
		return time.Time{}, de
	}
	return t, nil
}

func (dc *DateCodec) deserialize(v any) (time.Time, *DecodeError) {
	if v == nil {
		return time.Time{}, reject("nil", "", ReasonNil)
	}
	typ := fmt.Sprintf("%T", v)
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return time.Time{}, reject(typ, "", ReasonNil)
	}

	switch x := v.(type) {
	case time.Time:
		return dc.accept(x, typ, "")
	case *time.Time:
		return dc.accept(*x, typ, "")
	case *timestamppb.Timestamp:
		if err := x.CheckValid(); err != nil {
			return time.Time{}, reject(typ, "", ReasonOutOfRange, err)
		}
		return dc.accept(x.AsTime(), typ, "")
	case string:
		return dc.text(x, typ)
	case []byte:
		return dc.text(string(x), typ)
	case json.Number:
		return dc.text(string(x), typ)
	case int:
		return dc.epochInt(int64(x), typ)
	case int8:
		return dc.epochInt(int64(x), typ)
	case int16:
		return dc.epochInt(int64(x), typ)
	case int32:
		return dc.epochInt(int64(x), typ)
	case int64:
		return dc.epochInt(x, typ)
	case uint:
		return dc.epochUint(uint64(x), typ)
	case uint8:
		return dc.epochUint(uint64(x), typ)
	case uint16:
		return dc.epochUint(uint64(x), typ)
	case uint32:
		return dc.epochUint(uint64(x), typ)
	case uint64:
		return dc.epochUint(x, typ)
	case float32:
		return dc.epochFloat(float64(x), typ)
	case float64:
		return dc.epochFloat(x, typ)
	case fmt.Stringer:
		return dc.text(x.String(), typ)
	}
	return time.Time{}, reject(typ, "", ReasonUnsupported)
}

// accept bounds the year as it reads in Location, since that is what Serialize writes.
func (dc *DateCodec) accept(t time.Time, typ, input string) (time.Time, *DecodeError) {
	t = dc.normalize(t)
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, reject(typ, input, ReasonOutOfRange)
	}
	return t, nil
}

func (dc *DateCodec) text(s, typ string) (time.Time, *DecodeError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, reject(typ, "", ReasonEmpty)
	}
	if dc.maxInput > 0 && len(s) > dc.maxInput {
		return time.Time{}, reject(typ, s, ReasonTooLarge)
	}

	t, err := dc.parse(dc.layout, s)
	if err == nil {
		return dc.accept(t, typ, s)
	}
	if dc.strict {
		return time.Time{}, reject(typ, s, ReasonMalformed, err)
	}

	errs := []error{err}
	for _, l := range dc.layouts {
		t, err := dc.parse(l, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dc.hooks.LayoutFallback(l)
		dc.log.Debug("deserialize matched fallback layout", Fields{"layout": l})
		return dc.accept(t, typ, s)
	}

	if dc.epoch && isNumeric(s) {
		if strings.Contains(s, ".") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return time.Time{}, reject(typ, s, ReasonOutOfRange, err)
			}
			return dc.epochFloat(f, typ)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, reject(typ, s, ReasonOutOfRange, err)
		}
		return dc.epochInt(n, typ)
	}
	return time.Time{}, reject(typ, s, ReasonMalformed, errs...)
}

// parse reads s with layout in Location. time.Parse turns an abbreviation it
// cannot resolve into a zero-offset zone of that name; such input is refused
// rather than read as UTC.
func (dc *DateCodec) parse(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, dc.loc)
	if err != nil {
		return time.Time{}, err
	}
	if loc := t.Location(); loc != dc.loc && loc != time.UTC {
		if name, off := t.Zone(); off == 0 && name != "" && name != "GMT" {
			return time.Time{}, fmt.Errorf("parsing time %q: unknown zone abbreviation %q", s, name)
		}
	}
	return t, nil
}

// isNumeric reports whether s is a signed decimal, optionally fractional.
func isNumeric(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func (dc *DateCodec) perSecond() int64 { return int64(time.Second / dc.unit) }

func (dc *DateCodec) epochInt(n int64, typ string) (time.Time, *DecodeError) {
	if !dc.epoch {
		return time.Time{}, reject(typ, "", ReasonUnsupported)
	}
	var t time.Time
	switch dc.unit {
	case time.Nanosecond:
		// every int64 nanosecond count lies inside years 1677..2262
		t = time.Unix(0, n)
	default:
		per := dc.perSecond()
		if n < minUnix*per || n > (maxUnix+1)*per-1 {
			return time.Time{}, reject(typ, strconv.FormatInt(n, 10), ReasonOutOfRange)
		}
		t = time.Unix(n/per, (n%per)*int64(dc.unit))
	}
	dc.hooks.EpochCoerced(typ)
	return dc.accept(t, typ, "")
}

func (dc *DateCodec) epochUint(n uint64, typ string) (time.Time, *DecodeError) {
	if n > math.MaxInt64 {
		if !dc.epoch {
			return time.Time{}, reject(typ, "", ReasonUnsupported)
		}
		return time.Time{}, reject(typ, strconv.FormatUint(n, 10), ReasonOutOfRange)
	}
	return dc.epochInt(int64(n), typ)
}

func (dc *DateCodec) epochFloat(f float64, typ string) (time.Time, *DecodeError) {
	if !dc.epoch {
		return time.Time{}, reject(typ, "", ReasonUnsupported)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, reject(typ, "", ReasonOutOfRange)
	}
	secs := f / float64(dc.perSecond())
	if secs < minUnix || secs >= maxUnix+1 {
		return time.Time{}, reject(typ, strconv.FormatFloat(f, 'f', -1, 64), ReasonOutOfRange)
	}
	whole := math.Floor(secs)
	nsec := math.Round((secs - whole) * 1e9)
	dc.hooks.EpochCoerced(typ)
	return dc.accept(time.Unix(int64(whole), int64(nsec)), typ, "")
}
