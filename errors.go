package datecodec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilInput        = errors.New("datecodec: nil input")
	ErrEmptyInput      = errors.New("datecodec: empty input")
	ErrInputTooLarge   = errors.New("datecodec: input too large")
	ErrUnsupportedType = errors.New("datecodec: unsupported input type")
	ErrMalformed       = errors.New("datecodec: malformed date")
	ErrOutOfRange      = errors.New("datecodec: date out of range")
)

// Reason classifies why Deserialize rejected an input.
type Reason string

const (
	ReasonNil         Reason = "nil"
	ReasonEmpty       Reason = "empty"
	ReasonTooLarge    Reason = "too_large"
	ReasonUnsupported Reason = "unsupported_type"
	ReasonMalformed   Reason = "malformed"
	ReasonOutOfRange  Reason = "out_of_range"
)

// Err returns the sentinel error for r. Unknown reasons map to ErrMalformed.
func (r Reason) Err() error {
	switch r {
	case ReasonNil:
		return ErrNilInput
	case ReasonEmpty:
		return ErrEmptyInput
	case ReasonTooLarge:
		return ErrInputTooLarge
	case ReasonUnsupported:
		return ErrUnsupportedType
	case ReasonOutOfRange:
		return ErrOutOfRange
	default:
		return ErrMalformed
	}
}

const maxErrInput = 64

// DecodeError is returned by Deserialize for every rejected input.
type DecodeError struct {
	Type   string // Go type of the input, e.g. "string", "bool"
	Input  string // textual input, empty for non-text values
	Reason Reason
	Errs   []error // per-layout parse errors, if any
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "datecodec: cannot decode %s", e.Type)
	if e.Input != "" {
		in := e.Input
		if len(in) > maxErrInput {
			in = in[:maxErrInput] + "..."
		}
		fmt.Fprintf(&b, " %q", in)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if len(e.Errs) > 0 {
		fmt.Fprintf(&b, " (tried %d layouts)", len(e.Errs))
	}
	return b.String()
}

func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 1+len(e.Errs))
	errs = append(errs, e.Reason.Err())
	errs = append(errs, e.Errs...)
	return errs
}

func reject(typ, input string, r Reason, errs ...error) *DecodeError {
	return &DecodeError{Type: typ, Input: input, Reason: r, Errs: errs}
}
