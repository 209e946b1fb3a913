package radix

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// Signed is a two's-complement quantity split into magnitude and sign.
// Zero is never negative.
type Signed struct {
	Magnitude uint64
	Negative  bool
}

// String renders s in decimal with a leading "-" when negative.
func (s Signed) String() string {
	if s.Negative && s.Magnitude != 0 {
		return "-" + Format(s.Magnitude, Decimal)
	}
	return Format(s.Magnitude, Decimal)
}

// signLimit is 2^(w-1), the magnitude of the most negative value.
func (c *Converter) signLimit() uint64 {
	return uint64(1) << (c.width - 1)
}

// Negate applies two's-complement negation.
//
// With negative unset, v is a magnitude and the result is the minimal bit
// pattern of -v: exactly one leading 1 remains after the redundant sign
// bits are trimmed, so Negate(5, false) is 0b1011. v must not exceed
// 2^(w-1).
//
// With negative set, v is such a minimal pattern whose highest set bit is
// the sign. It is sign-extended to the full width and negated, yielding the
// magnitude: Negate(0b1011, true) is 5.
func (c *Converter) Negate(v uint64, negative bool) (uint64, error) {
	if v > c.max {
		return 0, c.negateOverflow(v)
	}
	if v == 0 {
		return 0, nil
	}
	if negative {
		// 2^n - v, where n is the pattern length.
		return lowMask(uint(bits.Len64(v))) - v + 1, nil
	}
	if v > c.signLimit() {
		return 0, c.negateOverflow(v)
	}
	// The complement of -v is v-1; one extra bit carries the sign.
	n := bits.Len64(v-1) + 1
	return -v & lowMask(uint(n)), nil
}

func (c *Converter) negateOverflow(v uint64) error {
	return &NumError{Func: fnNegate, Numeral: Format(v, Decimal), Err: ErrOverflow,
		Detail: fmt.Sprintf("not representable as a %d-bit signed value", c.width)}
}

// ProbeNegative reports whether a numeral reads as negative without
// decoding it. Prefixed numerals are negative when the top bit of their
// leading digit is set (binary 1, octal 4-7, hex 8-f). Decimal numerals
// are negative only when written with a leading "-".
//
// The probe ignores the converter width; Interpret is authoritative for
// numerals wider than the width.
func ProbeNegative(numeral string) bool {
	if strings.HasPrefix(numeral, "-") {
		return true
	}
	base, body, err := splitPrefix(numeral)
	if err != nil || base == Decimal || body == "" {
		return false
	}
	d, ok := digitValue(rune(body[0]))
	if !ok || d >= uint64(base) {
		return false
	}
	// Octal 4 is 0b100, so it counts as negative like every other digit
	// with its top bit set.
	return d >= uint64(base)/2
}

// Interpret decodes a numeral as a signed quantity.
//
// A prefixed numeral is read as a two's-complement pattern as wide as its
// digits. Patterns wider than the converter width must be a sign
// extension of a width-bit value, so "0x0ff" at 8 bits is an overflow
// while "0xfff" is -1. A decimal numeral carries its sign explicitly as a
// leading "-" and must fit the signed range.
func (c *Converter) Interpret(numeral string) (Signed, error) {
	if strings.HasPrefix(numeral, "-") {
		if base, _, err := splitPrefix(numeral[1:]); err == nil && base != Decimal {
			return Signed{}, &NumError{Func: fnInterpret, Numeral: numeral, Err: ErrInvalidDigit,
				Detail: "'-' may only sign a decimal numeral"}
		}
		v, err := c.parse(fnInterpret, numeral, 1)
		if err != nil {
			return Signed{}, err
		}
		if v > c.signLimit() {
			return Signed{}, c.signedOverflow(numeral)
		}
		return Signed{Magnitude: v, Negative: v != 0}, nil
	}

	// Prefixed patterns may be sign-extended past the width, so decode
	// against the full 64 bits and check the extension below.
	v, err := c.parseLimit(fnInterpret, numeral, 0, math.MaxUint64)
	if err != nil {
		return Signed{}, err
	}
	base, body, _ := splitPrefix(numeral)
	if base == Decimal {
		if v >= c.signLimit() {
			return Signed{}, c.signedOverflow(numeral)
		}
		return Signed{Magnitude: v}, nil
	}

	w, per := int(c.width), base.bitsPerDigit()
	n := len(body) * per
	if n == 0 {
		return Signed{}, nil
	}
	if n <= w {
		if v>>(n-1)&1 == 0 {
			return Signed{Magnitude: v}, nil
		}
		mag, err := c.Negate(v, true)
		if err != nil {
			return Signed{}, err
		}
		return Signed{Magnitude: mag, Negative: true}, nil
	}

	// Wider than the width: every digit bit from w-1 up is a copy of the
	// sign. A leading digit that only straddles the width (octal at any
	// supported width) carries the sign in bit w-1 alone.
	top := v >> (w - 1)
	switch {
	case top == 0:
		return Signed{Magnitude: v}, nil
	case n <= 64 && top == lowMask(uint(n-w+1)):
	case n-w < per && top == 1:
	default:
		return Signed{}, c.signedOverflow(numeral)
	}
	return Signed{Magnitude: (^v + 1) & c.max, Negative: true}, nil
}

func (c *Converter) signedOverflow(numeral string) error {
	return &NumError{Func: fnInterpret, Numeral: numeral, Err: ErrOverflow,
		Detail: fmt.Sprintf("outside the %d-bit signed range", c.width)}
}

// FormatSigned renders s in base b. Decimal output carries a "-" for
// negative values. Binary, octal and hex output is the minimal
// two's-complement pattern padded to whole digits, never signed: positive
// values keep a leading 0 sign bit and negative values are sign-extended
// with 1s up to the converter width. The result reads back through
// Interpret once the canonical prefix is added.
func (c *Converter) FormatSigned(s Signed, b Base) (string, error) {
	if !b.Valid() {
		return "", fmt.Errorf("%w: %s", ErrBase, b)
	}
	neg := s.Negative && s.Magnitude != 0
	if (neg && s.Magnitude > c.signLimit()) || (!neg && s.Magnitude >= c.signLimit()) {
		return "", &NumError{Func: fnFormat, Numeral: s.String(), Err: ErrOverflow,
			Detail: fmt.Sprintf("outside the %d-bit signed range", c.width)}
	}
	if b == Decimal {
		return s.String(), nil
	}
	if s.Magnitude == 0 {
		return "0", nil
	}

	per := b.bitsPerDigit()
	if !neg {
		out := Format(s.Magnitude, b)
		digits := (bits.Len64(s.Magnitude) + 1 + per - 1) / per
		return strings.Repeat("0", digits-len(out)) + out, nil
	}

	p, err := c.Negate(s.Magnitude, false)
	if err != nil {
		return "", err
	}
	n := bits.Len64(p)
	ext := min((n+per-1)/per*per, int(c.width))
	p |= lowMask(uint(ext)) &^ lowMask(uint(n))
	return Format(p, b), nil
}
