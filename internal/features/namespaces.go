package features

// capabilityNamespace maps each capability the feature probe can set to
// the exact greeting namespace URI that advertises it. Per DESIGN
// NOTES §9 this is the table for the URI<->capability mapping that
// Probe and ExtensionNamespaces use. The EPP-XML codec and the router
// do not read it: they keep their own namespace constants for the
// elements they build and decode.
var capabilityNamespace = map[Capability]string{
	CapFee05:                  "urn:ietf:params:xml:ns:fee-0.5",
	CapFee07:                  "urn:ietf:params:xml:ns:fee-0.7",
	CapFee08:                  "urn:ietf:params:xml:ns:fee-0.8",
	CapFee09:                  "urn:ietf:params:xml:ns:fee-0.9",
	CapFee10:                  "urn:ietf:params:xml:ns:fee-1.0",
	CapSecDNS11:               "urn:ietf:params:xml:ns:secDNS-1.1",
	CapLaunch:                 "urn:ietf:params:xml:ns:launch-1.0",
	CapRGP:                    "urn:ietf:params:xml:ns:rgp-1.0",
	CapNameStore:              "http://www.verisign.com/epp/namestoreExt-1.1",
	CapMaintenance03:          "urn:ietf:params:xml:ns:epp:maintenance-0.3",
	CapMaintenance02:          "urn:ietf:params:xml:ns:epp:maintenance-0.2",
	CapEURidFinance:           "http://www.eurid.eu/xml/epp/finance-1.0",
	CapEURidHitPoints:         "http://www.eurid.eu/xml/epp/hitPoints-1.0",
	CapEURidDNSQuality:        "http://www.eurid.eu/xml/epp/dnsQuality-1.0",
	CapEURidDNSSECEligibility: "http://www.eurid.eu/xml/epp/dnssecEligibility-1.0",
	CapNominetTag:             "http://www.nominet.org.uk/epp/xml/std-tag-1.1",
	CapNominetHandshake:       "http://www.nominet.org.uk/epp/xml/std-handshake-1.0",
	CapNominetDataQuality:     "http://www.nominet.org.uk/epp/xml/data-quality-1.1",
	CapUnitedTLDBalance:       "http://www.unitedtld.com/epp/finance-1.0",
	CapISNIC:                  "https://isnic.is/epp/isnic-1.0",
	CapTraficom:               "urn:ietf:params:xml:ns:traficom-1.0",
	CapCentralNic:             "http://www.centralnic.com/epp/mapping-1.1",
	CapCoreNIC:                "http://corenic.org/epp/mark-ext-1.0",
	CapKeysys:                 "http://www.key-systems.net/epp/keysys-1.0",
	CapPersonalRegistration:   "http://www.nominet.org.uk/epp/xml/personal-1.0",
	CapQualifiedLawyer:        "urn:ietf:params:xml:ns:qlawyer-1.0",
	CapVerisignSync:           "http://www.verisign.com/epp/sync-1.0",
	CapVerisignWhois:          "http://www.verisign.com/epp/whoisInf-1.0",
	CapVerisignLowBalance:     "http://www.verisign.com/epp/lowbalance-poll-1.0",
	CapLoginSecurity:          "urn:ietf:params:xml:ns:epp:loginSec-1.0",
	CapEmailForward:           "http://www.nominet.org.uk/epp/xml/email-forward-1.0",
	CapTrex:                   "urn:ietf:params:xml:ns:trex-1.0",
}

// CapabilityNamespaces exposes the table; ExtensionNamespaces, and
// through it the session's login builder, reads it.
func CapabilityNamespaces() map[Capability]string {
	return capabilityNamespace
}

// NamespaceCapability is the reverse lookup, built once.
var namespaceCapability = func() map[string]Capability {
	m := make(map[string]Capability, len(capabilityNamespace))
	for c, ns := range capabilityNamespace {
		m[ns] = c
	}
	return m
}()

// CapabilityForNamespace returns the capability a namespace URI
// advertises, if any.
func CapabilityForNamespace(ns string) (Capability, bool) {
	c, ok := namespaceCapability[ns]
	return c, ok
}
