package config

import "fmt"

// Erratum is an opaque profile label selecting a registry-specific
// workaround that the greeting alone cannot reveal. §9 of the design
// flags the set of valid labels as an open question left to the
// implementer; this file is the one place that answers it.
type Erratum string

const (
	ErratumVerisignCom           Erratum = "verisign-com"
	ErratumVerisignNet           Erratum = "verisign-net"
	ErratumVerisignName          Erratum = "verisign-name"
	ErratumVerisignCC            Erratum = "verisign-cc"
	ErratumVerisignTV            Erratum = "verisign-tv"
	ErratumEURid                 Erratum = "eurid"
	ErratumNominet               Erratum = "nominet"
	ErratumUnitedTLD             Erratum = "unitedtld"
	ErratumISNIC                 Erratum = "isnic"
	ErratumTraficom              Erratum = "traficom"
	ErratumCentralNic            Erratum = "centralnic"
	ErratumCoreNIC               Erratum = "corenic"
	ErratumRRPProxy              Erratum = "rrpproxy"
	ErratumKeysys                Erratum = "keysys"
	ErratumPersonalRegistration  Erratum = "personal-registration"
	ErratumQualifiedLawyer       Erratum = "qualified-lawyer"
)

// knownErrata is the closed set of labels a profile may declare. Loading
// rejects anything outside it at startup rather than silently ignoring
// a typo'd erratum.
var knownErrata = map[Erratum]bool{
	ErratumVerisignCom:          true,
	ErratumVerisignNet:          true,
	ErratumVerisignName:         true,
	ErratumVerisignCC:           true,
	ErratumVerisignTV:           true,
	ErratumEURid:                true,
	ErratumNominet:              true,
	ErratumUnitedTLD:            true,
	ErratumISNIC:                true,
	ErratumTraficom:             true,
	ErratumCentralNic:           true,
	ErratumCoreNIC:              true,
	ErratumRRPProxy:             true,
	ErratumKeysys:               true,
	ErratumPersonalRegistration: true,
	ErratumQualifiedLawyer:      true,
}

// ValidateErrata returns an error naming the first unrecognized label.
func ValidateErrata(labels []string) error {
	for _, l := range labels {
		if !knownErrata[Erratum(l)] {
			return fmt.Errorf("unknown erratum %q", l)
		}
	}
	return nil
}
