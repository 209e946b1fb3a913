// Package conversion connects the front-ends to the radix core. It resolves
// the requested target bases, renders the numeral in each of them and
// records metrics and debug logs for every attempt.
package conversion

import (
	"fmt"
	"log/slog"

	"github.com/remeh/sizedwaitgroup"

	"dcon/internal/logger"
	"dcon/internal/metrics"
	"dcon/internal/radix"
)

// Request asks for one numeral to be rendered in one or more bases.
type Request struct {
	Numeral string
	Targets []radix.Base // empty means decimal
	Signed  bool         // use the two's-complement signed reading
}

// Output is one rendering of a converted numeral.
type Output struct {
	Base radix.Base
	Text string
}

// Result is a successful conversion. In unsigned mode Value.Negative is
// always false and Value.Magnitude is the decoded value.
type Result struct {
	Numeral string
	Source  radix.Base
	Value   radix.Signed
	Outputs []Output
}

// Lines renders the result for display: the bare text for a single
// output, "name: text" per output otherwise.
func (r Result) Lines() []string {
	if len(r.Outputs) == 1 {
		return []string{r.Outputs[0].Text}
	}
	lines := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		lines[i] = o.Base.String() + ": " + o.Text
	}
	return lines
}

// Option configures a Service.
type Option func(*Service)

// WithPrefix controls whether binary, octal and hex renderings carry their
// canonical prefix.
func WithPrefix(on bool) Option {
	return func(s *Service) { s.prefix = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithWorkers sets how many numerals ConvertAll converts at once.
// Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = max(n, 1) }
}

// Service renders numerals through a radix.Converter. It is safe for
// concurrent use.
type Service struct {
	conv    *radix.Converter
	prefix  bool
	workers int
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Service. Without options it adds prefixes, logs nothing
// and records no metrics.
func New(conv *radix.Converter, opts ...Option) *Service {
	s := &Service{
		conv:    conv,
		prefix:  true,
		workers: 1,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert decodes req.Numeral and renders it in every target base.
// Duplicate targets are rendered once, in bin, oct, dec, hex order.
// Decoding failures are returned as the core's *radix.NumError.
func (s *Service) Convert(req Request) (Result, error) {
	targets, err := normalizeTargets(req.Targets)
	if err != nil {
		s.fail(req, err)
		return Result{}, err
	}

	var value radix.Signed
	if req.Signed {
		value, err = s.conv.Interpret(req.Numeral)
	} else {
		value.Magnitude, err = s.conv.Parse(req.Numeral)
	}
	if err != nil {
		s.fail(req, err)
		return Result{}, err
	}

	source, _ := radix.SourceBase(req.Numeral)
	res := Result{
		Numeral: req.Numeral,
		Source:  source,
		Value:   value,
		Outputs: make([]Output, 0, len(targets)),
	}
	for _, b := range targets {
		text, err := s.render(value, b, req.Signed)
		if err != nil {
			s.fail(req, err)
			return Result{}, err
		}
		res.Outputs = append(res.Outputs, Output{Base: b, Text: text})
		if s.metrics != nil {
			s.metrics.ConversionsTotal.WithLabelValues(source.String(), b.String()).Inc()
		}
	}

	if s.metrics != nil {
		s.metrics.NumeralLength.Observe(float64(len(req.Numeral)))
		if req.Signed {
			s.metrics.SignedTotal.Inc()
		}
	}
	s.log.Debug("converted",
		"numeral", req.Numeral,
		"from", source.String(),
		"value", value.String(),
		"signed", req.Signed,
		"targets", len(targets),
	)
	return res, nil
}

func (s *Service) render(v radix.Signed, b radix.Base, signed bool) (string, error) {
	var text string
	if signed {
		t, err := s.conv.FormatSigned(v, b)
		if err != nil {
			return "", err
		}
		text = t
	} else {
		text = radix.Format(v.Magnitude, b)
	}
	if s.prefix {
		text = b.Prefix() + text
	}
	return text, nil
}

func (s *Service) fail(req Request, err error) {
	kind := radix.Kind(err)
	if s.metrics != nil {
		s.metrics.ErrorsTotal.WithLabelValues(kind).Inc()
	}
	s.log.Debug("conversion failed",
		"numeral", req.Numeral,
		"signed", req.Signed,
		"kind", kind,
		"error", err,
	)
}

// Item is one entry of a batch conversion.
type Item struct {
	Numeral string
	Result  Result
	Err     error
}

// ConvertAll converts each numeral with the same targets and mode. A
// failing numeral does not stop the rest; its Item carries the error.
// Items are returned in input order whatever the worker count.
func (s *Service) ConvertAll(numerals []string, targets []radix.Base, signed bool) []Item {
	items := make([]Item, len(numerals))
	convert := func(i int) {
		res, err := s.Convert(Request{Numeral: numerals[i], Targets: targets, Signed: signed})
		items[i] = Item{Numeral: numerals[i], Result: res, Err: err}
	}
	if s.workers <= 1 || len(numerals) < 2 {
		for i := range numerals {
			convert(i)
		}
		return items
	}

	swg := sizedwaitgroup.New(s.workers)
	for i := range numerals {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			convert(i)
		}(i)
	}
	swg.Wait()
	return items
}

// normalizeTargets dedupes targets into display order; empty means decimal.
func normalizeTargets(targets []radix.Base) ([]radix.Base, error) {
	if len(targets) == 0 {
		return []radix.Base{radix.Decimal}, nil
	}
	want := make(map[radix.Base]bool, len(targets))
	for _, b := range targets {
		if !b.Valid() {
			return nil, fmt.Errorf("%w: %s", radix.ErrBase, b)
		}
		want[b] = true
	}
	out := make([]radix.Base, 0, len(want))
	for _, b := range radix.Bases() {
		if want[b] {
			out = append(out, b)
		}
	}
	return out, nil
}
