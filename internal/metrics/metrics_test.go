package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOutcomeIncrementsCounters(t *testing.T) {
	m := New()
	m.ObserveOutcome("reg1", "domain-info", true, 0.05)
	m.ObserveOutcome("reg1", "domain-info", false, 0.2)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("reg1", "domain-info", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("reg1", "domain-info", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}

func TestGaugesAreIndependentPerRegistry(t *testing.T) {
	m := New()
	m.SessionState.WithLabelValues("reg1").Set(4)
	m.SessionState.WithLabelValues("reg2").Set(1)

	if got := testutil.ToFloat64(m.SessionState.WithLabelValues("reg1")); got != 4 {
		t.Fatalf("reg1 state = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.SessionState.WithLabelValues("reg2")); got != 1 {
		t.Fatalf("reg2 state = %v, want 1", got)
	}
}
