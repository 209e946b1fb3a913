package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for conversions.
type Metrics struct {
	ConversionsTotal *prometheus.CounterVec // labels: from, to
	ErrorsTotal      *prometheus.CounterVec // labels: kind
	SignedTotal      prometheus.Counter
	NumeralLength    prometheus.Histogram

	// Calculator keypad
	KeysTotal     *prometheus.CounterVec // labels: result=accepted|rejected
	TapeEvictions prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// registers with the Prometheus default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dcon_conversions_total",
			Help: "Numerals rendered, by source and target base",
		}, []string{"from", "to"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dcon_conversion_errors_total",
			Help: "Failed conversions, by error kind",
		}, []string{"kind"}),
		SignedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcon_signed_conversions_total",
			Help: "Conversions using the two's-complement signed reading",
		}),
		NumeralLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dcon_numeral_length_chars",
			Help:    "Length of input numerals in characters",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		KeysTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dcalc_keys_total",
			Help: "Calculator keypresses, by outcome",
		}, []string{"result"}),
		TapeEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dcalc_tape_evictions_total",
			Help: "Committed values dropped from the full calculator tape",
		}),
	}

	reg.MustRegister(
		m.ConversionsTotal,
		m.ErrorsTotal,
		m.SignedTotal,
		m.NumeralLength,
		m.KeysTotal,
		m.TapeEvictions,
	)

	return m
}

// WriteTextfile writes every metric in g to path in the Prometheus text
// format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
