package router

import (
	"fmt"

	"github.com/as207960/eppproxy/internal/features"
)

// buildTraficomCancelDeleteExt emits the Traficom extension that turns
// a domain delete command into a cancellation of the domain's pending
// delete, when the feature set carries the traficom capability and the
// caller asked for it (spec.md §3, §6).
func buildTraficomCancelDeleteExt(feats *features.FeatureSet, cancel bool) []byte {
	if !cancel || !feats.Has(features.CapTraficom) {
		return nil
	}
	return []byte(`<traficom:delete xmlns:traficom="urn:ietf:params:xml:ns:traficom-1.0"><traficom:cancel/></traficom:delete>`)
}

const qualifiedLawyerNamespace = "urn:ietf:params:xml:ns:qlawyer-1.0"

// buildQualifiedLawyerExt emits the qualified-lawyer contact extension
// some ccTLDs (and CentralNic-managed registries) require for
// professional registrant types.
func buildQualifiedLawyerExt(feats *features.FeatureSet, barNumber, jurisdiction string) []byte {
	if !feats.Has(features.CapQualifiedLawyer) || barNumber == "" {
		return nil
	}
	return []byte(fmt.Sprintf(`<qlawyer:create xmlns:qlawyer="%s"><qlawyer:barNumber>%s</qlawyer:barNumber><qlawyer:jurisdiction>%s</qlawyer:jurisdiction></qlawyer:create>`,
		qualifiedLawyerNamespace, xmlEscape(barNumber), xmlEscape(jurisdiction)))
}

const personalRegNamespace = "http://www.nominet.org.uk/epp/xml/personal-1.0"

// buildPersonalRegistrationExt emits Nominet's personal-registration
// contact extension, used when the registrant is an individual rather
// than an organization.
func buildPersonalRegistrationExt(feats *features.FeatureSet, isPersonal bool) []byte {
	if !feats.Has(features.CapPersonalRegistration) || !isPersonal {
		return nil
	}
	return []byte(fmt.Sprintf(`<personal:contact xmlns:personal="%s"><personal:type>PERSON</personal:type></personal:contact>`, personalRegNamespace))
}
