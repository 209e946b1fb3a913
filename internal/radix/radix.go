// Package radix converts integers between binary, octal, decimal and
// hexadecimal numerals.
//
// A Converter holds one fixed bit width. Parsing checks every step of the
// accumulation against that width and fails with ErrOverflow instead of
// wrapping. Nothing in this package prints, logs or exits; failures are
// returned as *NumError values wrapping one of the package sentinels.
package radix

import (
	"fmt"
	"math"
)

// Width is the bit width of the values handled by a Converter.
type Width uint

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64

	DefaultWidth = W32
)

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	}
	return false
}

// Converter parses and formats numerals at a fixed bit width.
// It is immutable and safe for concurrent use.
type Converter struct {
	width Width
	max   uint64
}

// New creates a Converter for the given width.
func New(width Width) (*Converter, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: %d (want 8, 16, 32 or 64)", ErrWidth, width)
	}
	return &Converter{width: width, max: lowMask(uint(width))}, nil
}

// Width returns the converter's bit width.
func (c *Converter) Width() Width { return c.width }

// Max returns the largest value representable at the converter's width.
func (c *Converter) Max() uint64 { return c.max }

// Parse decodes a numeral. The base comes from its prefix ("0b", "0o",
// "0x"); unprefixed numerals are decimal. A prefix with no digits, and the
// empty string, decode to 0.
func (c *Converter) Parse(numeral string) (uint64, error) {
	return c.parse(fnParse, numeral, 0)
}

// parse decodes numeral[start:], reporting failures against the whole numeral.
func (c *Converter) parse(fn, numeral string, start int) (uint64, error) {
	return c.parseLimit(fn, numeral, start, c.max)
}

// parseLimit is parse with an explicit upper bound on the decoded value.
func (c *Converter) parseLimit(fn, numeral string, start int, limit uint64) (uint64, error) {
	base, body, err := splitPrefix(numeral[start:])
	if err != nil {
		return 0, &NumError{Func: fn, Numeral: numeral, Err: err,
			Detail: fmt.Sprintf("%q is not one of 0b, 0o, 0x", numeral[start:start+2])}
	}

	// Validate every digit before accumulating so that a bad character is
	// reported even when the magnitude also overflows.
	offset := len(numeral) - len(body)
	digits := make([]uint64, 0, len(body))
	for i, r := range body {
		d, ok := digitValue(r)
		if !ok || d >= uint64(base) {
			return 0, &NumError{Func: fn, Numeral: numeral, Err: ErrInvalidDigit,
				Detail: fmt.Sprintf("%q at index %d is not a %s digit", r, offset+i, base)}
		}
		digits = append(digits, d)
	}

	var result uint64
	place, placeOK := uint64(1), true
	for i := len(digits) - 1; i >= 0; i-- {
		if d := digits[i]; d != 0 {
			if !placeOK || d > limit/place {
				return 0, c.overflow(fn, numeral)
			}
			term := d * place
			if result > limit-term {
				return 0, c.overflow(fn, numeral)
			}
			result += term
		}
		if placeOK {
			if place > limit/uint64(base) {
				placeOK = false
			} else {
				place *= uint64(base)
			}
		}
	}
	return result, nil
}

func (c *Converter) overflow(fn, numeral string) error {
	return &NumError{Func: fn, Numeral: numeral, Err: ErrOverflow,
		Detail: fmt.Sprintf("exceeds %d-bit width", c.width)}
}

// Format renders v in base b without a prefix. Zero renders as "0".
// Hex digits are lower case. Format panics if b is not a supported base.
func Format(v uint64, b Base) string {
	if !b.Valid() {
		panic("radix: Format called with unsupported " + b.String())
	}
	if v == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	base := uint64(b)
	for v > 0 {
		i--
		buf[i] = digitChars[v%base]
		v /= base
	}
	return string(buf[i:])
}

// FormatPrefixed renders v in base b with the canonical prefix.
func FormatPrefixed(v uint64, b Base) string {
	return b.Prefix() + Format(v, b)
}

// lowMask returns a mask of the n lowest bits.
func lowMask(n uint) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<n - 1
}
