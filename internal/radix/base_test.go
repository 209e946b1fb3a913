package radix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBase(t *testing.T) {
	tests := map[string]Base{
		"bin": Binary, "BINARY": Binary, "b": Binary, "2": Binary,
		"oct": Octal, "o": Octal, "8": Octal,
		"dec": Decimal, " decimal ": Decimal, "10": Decimal,
		"hex": Hex, "x": Hex, "16": Hex, "Hexadecimal": Hex,
	}
	for name, want := range tests {
		got, err := ParseBase(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseBase("base36")
	assert.ErrorIs(t, err, ErrBase)
}

func TestBase_Metadata(t *testing.T) {
	assert.Equal(t, []Base{Binary, Octal, Decimal, Hex}, Bases())

	prefixes := []string{"0b", "0o", "", "0x"}
	names := []string{"bin", "oct", "dec", "hex"}
	for i, b := range Bases() {
		assert.True(t, b.Valid())
		assert.Equal(t, prefixes[i], b.Prefix())
		assert.Equal(t, names[i], b.String())
	}
	assert.False(t, Base(3).Valid())
	assert.Equal(t, "base(3)", Base(3).String())
}

func TestSourceBase(t *testing.T) {
	cases := map[string]Base{
		"0b1": Binary, "0O7": Octal, "0x": Hex, "42": Decimal, "-5": Decimal, "": Decimal, "0": Decimal,
	}
	for numeral, want := range cases {
		got, err := SourceBase(numeral)
		require.NoError(t, err, numeral)
		assert.Equal(t, want, got, numeral)
	}

	_, err := SourceBase("0h1")
	assert.ErrorIs(t, err, ErrUnknownPrefix)
}
