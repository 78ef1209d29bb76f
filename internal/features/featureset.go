// Package features computes the capability map a session negotiates
// once, from the greeting, before login (spec.md §4.3).
package features

import (
	"sort"
	"strings"

	"github.com/as207960/eppproxy/internal/config"
)

// Capability names the fixed set of extension/behavior flags the router
// gates on. These are stable identifiers, not namespace URIs — the
// URI<->capability mapping lives in internal/features/namespaces.go.
type Capability string

const (
	CapFee05                   Capability = "fee-0.5"
	CapFee07                   Capability = "fee-0.7"
	CapFee08                   Capability = "fee-0.8"
	CapFee09                   Capability = "fee-0.9"
	CapFee10                   Capability = "fee-1.0"
	CapSecDNS11                Capability = "secdns-1.1"
	CapLaunch                  Capability = "launch"
	CapRGP                     Capability = "rgp"
	CapNameStore               Capability = "namestore"
	CapMaintenance03           Capability = "maintenance-0.3"
	CapMaintenance02           Capability = "maintenance-0.2"
	CapEURidFinance            Capability = "eurid-finance"
	CapEURidHitPoints          Capability = "eurid-hitpoints"
	CapEURidDNSQuality         Capability = "eurid-dns-quality"
	CapEURidDNSSECEligibility  Capability = "eurid-dnssec-eligibility"
	CapNominetTag              Capability = "nominet-tag"
	CapNominetHandshake        Capability = "nominet-handshake"
	CapNominetDataQuality      Capability = "nominet-data-quality"
	CapUnitedTLDBalance        Capability = "unitedtld-balance"
	CapISNIC                   Capability = "isnic"
	CapTraficom                Capability = "traficom"
	CapCentralNic              Capability = "centralnic"
	CapCoreNIC                 Capability = "corenic"
	CapKeysys                   Capability = "keysys"
	CapPersonalRegistration    Capability = "personal-registration"
	CapQualifiedLawyer         Capability = "qualified-lawyer"
	CapVerisignSync            Capability = "verisign-sync"
	CapVerisignWhois           Capability = "verisign-whois"
	CapVerisignLowBalance      Capability = "verisign-low-balance"
	CapLoginSecurity           Capability = "login-security"
	CapEmailForward            Capability = "email-forward"
	CapTrex                    Capability = "trex"
)

// erratumCapabilities maps a declared erratum directly onto capabilities
// that cannot be discovered from the greeting (spec.md §3: "errata from
// the profile are unioned in").
var erratumCapabilities = map[config.Erratum][]Capability{
	config.ErratumVerisignCom:          {CapNameStore},
	config.ErratumVerisignNet:          {CapNameStore},
	config.ErratumVerisignName:         {CapNameStore},
	config.ErratumVerisignCC:           {CapNameStore},
	config.ErratumVerisignTV:           {CapNameStore},
	config.ErratumEURid:                {CapEURidFinance, CapEURidHitPoints, CapEURidDNSQuality, CapEURidDNSSECEligibility},
	config.ErratumNominet:              {CapNominetTag, CapNominetHandshake, CapNominetDataQuality},
	config.ErratumUnitedTLD:            {CapUnitedTLDBalance},
	config.ErratumISNIC:                {CapISNIC},
	config.ErratumTraficom:             {CapTraficom},
	config.ErratumCentralNic:           {CapCentralNic},
	config.ErratumCoreNIC:              {CapCoreNIC},
	config.ErratumKeysys:               {CapKeysys},
	config.ErratumPersonalRegistration: {CapPersonalRegistration},
	config.ErratumQualifiedLawyer:      {CapQualifiedLawyer},
}

// FeatureSet is the computed capability map for one session. Once built
// it only grows: Probe never re-computes it for the life of the
// session, and Merge only adds capabilities (monotonic per spec.md §4.3).
type FeatureSet struct {
	caps map[Capability]bool
}

// Has reports whether a capability is present.
func (f *FeatureSet) Has(c Capability) bool {
	if f == nil {
		return false
	}
	return f.caps[c]
}

// Sorted returns the set capability names in deterministic order, used
// only for logging/debugging.
func (f *FeatureSet) Sorted() []string {
	out := make([]string, 0, len(f.caps))
	for c, ok := range f.caps {
		if ok {
			out = append(out, string(c))
		}
	}
	sort.Strings(out)
	return out
}

// Probe computes a FeatureSet from the namespace list advertised in a
// greeting's <svcMenu> plus the profile's declared errata. It is
// invoked exactly once, after the greeting and before login.
func Probe(greetingNamespaces []string, profile *config.RegistryProfile) *FeatureSet {
	fs := &FeatureSet{caps: make(map[Capability]bool)}
	seen := make(map[string]bool, len(greetingNamespaces))
	for _, ns := range greetingNamespaces {
		seen[strings.TrimSpace(ns)] = true
	}
	for cap, uri := range capabilityNamespace {
		if seen[uri] {
			fs.caps[cap] = true
		}
	}
	if profile != nil {
		for _, e := range profile.Errata {
			for _, c := range erratumCapabilities[config.Erratum(e)] {
				fs.caps[c] = true
			}
		}
	}
	return fs
}

// Merge unions additional capabilities into the set (used for the rare
// case where a later handshake step, e.g. login-security ack, reveals a
// capability the greeting alone did not). It never removes anything:
// monotonic once true, stays true.
func (f *FeatureSet) Merge(caps ...Capability) {
	for _, c := range caps {
		f.caps[c] = true
	}
}

// ExtensionNamespaces returns the namespace URIs for every extension
// capability currently set, sorted, for declaring at login (spec.md
// §4.4: "declared extension URIs from FeatureSet").
func (f *FeatureSet) ExtensionNamespaces() []string {
	ns := CapabilityNamespaces()
	out := make([]string, 0, len(f.caps))
	for c, ok := range f.caps {
		if ok {
			if uri, found := ns[c]; found {
				out = append(out, uri)
			}
		}
	}
	sort.Strings(out)
	return out
}

// HighestFee returns the highest mutually-supported fee extension
// version, per the tie-break rule in spec.md §4.6 (never mix versions
// within one command). ok is false if none are supported.
func (f *FeatureSet) HighestFee() (version string, ok bool) {
	for _, c := range []Capability{CapFee10, CapFee09, CapFee08, CapFee07, CapFee05} {
		if f.Has(c) {
			return feeVersionString(c), true
		}
	}
	return "", false
}

func feeVersionString(c Capability) string {
	switch c {
	case CapFee10:
		return "1.0"
	case CapFee09:
		return "0.9"
	case CapFee08:
		return "0.8"
	case CapFee07:
		return "0.7"
	case CapFee05:
		return "0.5"
	default:
		return ""
	}
}
