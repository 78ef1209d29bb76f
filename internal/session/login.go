package session

import (
	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/codec/tmchxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/correlator"
	"github.com/as207960/eppproxy/internal/features"
)

// objectURIsFor lists the RFC 5731-5733 object namespaces this dialect
// declares at login.
func objectURIsFor() []string {
	return []string{
		"urn:ietf:params:xml:ns:domain-1.0",
		"urn:ietf:params:xml:ns:host-1.0",
		"urn:ietf:params:xml:ns:contact-1.0",
	}
}

// buildLogin assembles the login command, declaring every extension
// namespace the feature set carries so the registry's own grammar
// checks (and, for some registries, its login-security gate) see a
// complete declaration rather than a minimal one (spec.md §4.4, §4.6).
func buildLogin(p *config.RegistryProfile, feats *features.FeatureSet, tmch bool) ([]byte, error) {
	clTRID := correlator.NewClientTRID()

	if tmch {
		return tmchxml.EncodeLogin(p.ID, p.Password, clTRID, feats.Has(features.CapTrex))
	}

	loginSec := feats.Has(features.CapLoginSecurity)
	var ua *eppxml.UserAgent
	if loginSec && (p.UserAgentProduct != "" || p.UserAgentVersion != "" || p.UserAgentOS != "") {
		ua = &eppxml.UserAgent{
			ClientProduct: p.UserAgentProduct,
			ClientVersion: p.UserAgentVersion,
			OS:            p.UserAgentOS,
		}
	}

	return eppxml.EncodeLogin(eppxml.LoginParams{
		ClientID:      p.ID,
		Password:      p.Password,
		NewPassword:   p.NewPassword,
		ClTRID:        clTRID,
		ObjectURIs:    objectURIsFor(),
		ExtensionURIs: feats.ExtensionNamespaces(),
		UserAgent:     ua,
		LoginSecurity: loginSec,
	})
}
