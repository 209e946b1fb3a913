package radix

import (
	"fmt"
	"strings"
)

// Base is one of the four supported numeral bases.
type Base uint8

const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

// Bases lists every supported base in display order.
func Bases() []Base {
	return []Base{Binary, Octal, Decimal, Hex}
}

// Valid reports whether b is one of the supported bases.
func (b Base) Valid() bool {
	switch b {
	case Binary, Octal, Decimal, Hex:
		return true
	}
	return false
}

// Prefix returns the canonical numeral prefix. Decimal has none.
func (b Base) Prefix() string {
	switch b {
	case Binary:
		return "0b"
	case Octal:
		return "0o"
	case Hex:
		return "0x"
	}
	return ""
}

func (b Base) String() string {
	switch b {
	case Binary:
		return "bin"
	case Octal:
		return "oct"
	case Decimal:
		return "dec"
	case Hex:
		return "hex"
	}
	return fmt.Sprintf("base(%d)", uint8(b))
}

// bitsPerDigit is 0 for decimal, whose digits do not map to whole bits.
func (b Base) bitsPerDigit() int {
	switch b {
	case Binary:
		return 1
	case Octal:
		return 3
	case Hex:
		return 4
	}
	return 0
}

// ParseBase resolves a base from its name, short flag letter or radix.
func ParseBase(name string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bin", "binary", "b", "2":
		return Binary, nil
	case "oct", "octal", "o", "8":
		return Octal, nil
	case "dec", "decimal", "d", "10":
		return Decimal, nil
	case "hex", "hexadecimal", "x", "16":
		return Hex, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBase, name)
}

// SourceBase reports the base announced by a numeral's prefix, ignoring a
// leading "-". It does not validate the digits.
func SourceBase(numeral string) (Base, error) {
	b, _, err := splitPrefix(strings.TrimPrefix(numeral, "-"))
	return b, err
}

// splitPrefix returns the base announced by numeral and the digits that
// follow the prefix. Unprefixed numerals are decimal.
func splitPrefix(numeral string) (Base, string, error) {
	if len(numeral) < 2 || numeral[0] != '0' {
		return Decimal, numeral, nil
	}
	switch numeral[1] {
	case 'b', 'B':
		return Binary, numeral[2:], nil
	case 'o', 'O':
		return Octal, numeral[2:], nil
	case 'x', 'X':
		return Hex, numeral[2:], nil
	}
	if numeral[1] >= '0' && numeral[1] <= '9' {
		return Decimal, numeral, nil
	}
	return 0, "", ErrUnknownPrefix
}

const digitChars = "0123456789abcdef"

// digitValue maps 0-9 and a-f (either case) to 0..15.
func digitValue(r rune) (uint64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint64(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint64(r-'A') + 10, true
	}
	return 0, false
}
