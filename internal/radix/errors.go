package radix

import (
	"errors"
	"strconv"
)

var (
	// ErrUnknownPrefix is returned for a leading "0" followed by a character
	// that is neither a decimal digit nor a base marker.
	ErrUnknownPrefix = errors.New("unknown base prefix")

	// ErrInvalidDigit is returned for a character that is not a digit of the
	// numeral's base.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrOverflow is returned when a magnitude does not fit the converter width.
	ErrOverflow = errors.New("value out of range")

	ErrWidth = errors.New("unsupported width")
	ErrBase  = errors.New("unknown base")
)

const (
	fnParse     = "parse"
	fnInterpret = "interpret"
	fnNegate    = "negate"
	fnFormat    = "format"
)

// NumError records a failed conversion.
//
// Err is one of the package sentinels and is reachable through errors.Is.
type NumError struct {
	Func    string // the operation that failed
	Numeral string // the input as given
	Err     error
	Detail  string // optional human-readable position or range info
}

func (e *NumError) Error() string {
	msg := e.Func + " " + strconv.Quote(e.Numeral) + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *NumError) Unwrap() error { return e.Err }

// Kind names the failure class of err for metric labels and log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownPrefix):
		return "unknown_prefix"
	case errors.Is(err, ErrInvalidDigit):
		return "invalid_digit"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	default:
		return "other"
	}
}
