// Package panel models the programmer-calculator display: a digit-entry
// buffer typed in one mode (bin, oct, dec or hex) and four read-only fields
// that show the entry in every base.
//
// Key filtering lives here, not in the radix core: a key is accepted only
// when it is a digit of the current mode and the grown entry still fits
// the converter width.
package panel

import (
	"fmt"
	"strings"
	"unicode"

	"dcon/internal/metrics"
	"dcon/internal/radix"
	"dcon/internal/ringbuf"
)

const keyDigits = "0123456789abcdef"

// Fields are the four display fields.
type Fields struct {
	Bin string
	Oct string
	Dec string
	Hex string
}

// Option configures a Panel.
type Option func(*Panel)

// WithTapeSize sets how many committed values the tape keeps.
func WithTapeSize(n int) Option {
	return func(p *Panel) { p.tape = ringbuf.New[uint64](n) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Panel) { p.metrics = m }
}

// Panel is the calculator state. It is not safe for concurrent use.
type Panel struct {
	conv    *radix.Converter
	mode    radix.Base
	entry   string // digits of the current mode, no prefix, no leading zeros
	tape    *ringbuf.Ring[uint64]
	metrics *metrics.Metrics
}

// New creates an empty panel in the given mode. An invalid mode falls
// back to decimal.
func New(conv *radix.Converter, mode radix.Base, opts ...Option) *Panel {
	if !mode.Valid() {
		mode = radix.Decimal
	}
	p := &Panel{
		conv: conv,
		mode: mode,
		tape: ringbuf.New[uint64](16),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the current entry mode.
func (p *Panel) Mode() radix.Base { return p.mode }

// Entry returns the digits typed so far.
func (p *Panel) Entry() string { return p.entry }

// Press appends key to the entry. It returns false, leaving the entry
// unchanged, when key is not a digit of the current mode or the new entry
// would overflow.
func (p *Panel) Press(key rune) bool {
	ok := p.press(unicode.ToLower(key))
	if p.metrics != nil {
		result := "accepted"
		if !ok {
			result = "rejected"
		}
		p.metrics.KeysTotal.WithLabelValues(result).Inc()
	}
	return ok
}

func (p *Panel) press(key rune) bool {
	d := strings.IndexRune(keyDigits, key)
	if d < 0 || d >= int(p.mode) {
		return false
	}
	next := p.entry + string(key)
	if p.entry == "0" {
		next = string(key)
	}
	if _, err := p.conv.Parse(p.mode.Prefix() + next); err != nil {
		return false
	}
	p.entry = next
	return true
}

// Backspace removes the last digit. It returns false on an empty entry.
func (p *Panel) Backspace() bool {
	if p.entry == "" {
		return false
	}
	p.entry = p.entry[:len(p.entry)-1]
	return true
}

// Clear empties the entry.
func (p *Panel) Clear() { p.entry = "" }

// SetMode switches the entry mode, re-rendering the current value in the
// new base so the value shown does not change.
func (p *Panel) SetMode(mode radix.Base) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %s", radix.ErrBase, mode)
	}
	v, err := p.Value()
	if err != nil {
		return err
	}
	p.mode = mode
	if p.entry != "" {
		p.entry = radix.Format(v, mode)
	}
	return nil
}

// Value decodes the entry. An empty entry is 0.
func (p *Panel) Value() (uint64, error) {
	return p.conv.Parse(p.mode.Prefix() + p.entry)
}

// Fields decodes the entry once and renders it in all four bases.
func (p *Panel) Fields() (Fields, error) {
	v, err := p.Value()
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Bin: radix.Format(v, radix.Binary),
		Oct: radix.Format(v, radix.Octal),
		Dec: radix.Format(v, radix.Decimal),
		Hex: radix.Format(v, radix.Hex),
	}, nil
}

// Commit pushes the current value onto the tape, evicting the oldest entry
// when the tape is full, and clears the entry.
func (p *Panel) Commit() (uint64, error) {
	v, err := p.Value()
	if err != nil {
		return 0, err
	}
	if _, evicted := p.tape.Push(v); evicted && p.metrics != nil {
		p.metrics.TapeEvictions.Inc()
	}
	p.entry = ""
	return v, nil
}

// Tape returns committed values, oldest first.
func (p *Panel) Tape() []uint64 {
	return p.tape.Items()
}
