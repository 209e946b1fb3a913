package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ConversionsTotal.WithLabelValues("hex", "dec").Inc()
	m.ErrorsTotal.WithLabelValues("overflow").Add(2)
	m.SignedTotal.Inc()
	m.NumeralLength.Observe(4)
	m.KeysTotal.WithLabelValues("accepted").Inc()
	m.TapeEvictions.Inc()

	if got := testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("hex", "dec")); got != 1 {
		t.Errorf("conversions: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("overflow")); got != 2 {
		t.Errorf("errors: got %v, want 2", got)
	}

	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 series, got %d", n)
	}
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	NewMetrics(reg)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SignedTotal.Add(3)

	path := filepath.Join(t.TempDir(), "dcon.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "dcon_signed_conversions_total 3") {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	if err := WriteTextfile(filepath.Join(t.TempDir(), "no", "such", "dir", "x.prom"), reg); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
