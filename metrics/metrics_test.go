package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistryIsSingleton(t *testing.T) {
	a := Registry()
	b := Registry()
	if a != b {
		t.Fatal("Registry() should return the same instance across calls")
	}
}

func TestObservePolicyIssuedIncrementsCounter(t *testing.T) {
	m := Registry()
	before := testutil.ToFloat64(m.policiesIssued.WithLabelValues("RM1"))
	m.ObservePolicyIssued("RM1")
	after := testutil.ToFloat64(m.policiesIssued.WithLabelValues("RM1"))
	if after != before+1 {
		t.Fatalf("expected counter to increment by 1, got %v -> %v", before, after)
	}
}

func TestSetPoolSnapshotUpdatesGauges(t *testing.T) {
	m := Registry()
	m.SetPoolSnapshot("P1", 900, 9100, 10000)
	if got := testutil.ToFloat64(m.mcrLocked.WithLabelValues("P1")); got != 900 {
		t.Fatalf("mcr gauge: got %v want 900", got)
	}
	if got := testutil.ToFloat64(m.poolOcean.WithLabelValues("P1")); got != 9100 {
		t.Fatalf("ocean gauge: got %v want 9100", got)
	}
}

func TestNilRegistryMethodsAreNoOps(t *testing.T) {
	var m *Protocol
	m.ObservePolicyIssued("x")
	m.ObservePolicyRejected("x")
	m.SetPoolSnapshot("x", 1, 2, 3)
	m.IncIndexRealized("x")
}
