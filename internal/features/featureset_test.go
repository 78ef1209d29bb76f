package features

import (
	"testing"

	"github.com/as207960/eppproxy/internal/config"
)

func TestProbeFeeVersions(t *testing.T) {
	fs := Probe([]string{
		"urn:ietf:params:xml:ns:fee-1.0",
		"urn:ietf:params:xml:ns:fee-0.9",
	}, nil)
	if !fs.Has(CapFee10) || !fs.Has(CapFee09) {
		t.Fatalf("expected fee-1.0 and fee-0.9 to be set")
	}
	if fs.Has(CapFee08) {
		t.Fatalf("fee-0.8 should not be set")
	}
	v, ok := fs.HighestFee()
	if !ok || v != "1.0" {
		t.Fatalf("HighestFee() = %q, %v, want 1.0, true", v, ok)
	}
}

func TestProbeErratumUnion(t *testing.T) {
	p := &config.RegistryProfile{Errata: []string{string(config.ErratumVerisignCom)}}
	fs := Probe(nil, p)
	if !fs.Has(CapNameStore) {
		t.Fatalf("expected verisign-com erratum to set namestore capability")
	}
}

func TestFeatureSetMonotonic(t *testing.T) {
	fs := Probe(nil, nil)
	if fs.Has(CapLaunch) {
		t.Fatalf("launch should not be set initially")
	}
	fs.Merge(CapLaunch)
	if !fs.Has(CapLaunch) {
		t.Fatalf("expected launch to be set after Merge")
	}
	// Re-probing is never performed mid-session; Merge only adds.
	fs.Merge(CapLaunch)
	if !fs.Has(CapLaunch) {
		t.Fatalf("launch capability should remain true")
	}
}
