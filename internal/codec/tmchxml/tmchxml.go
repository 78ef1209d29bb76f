// Package tmchxml implements C2's TMCH-XML dialect: a specialized
// subset of EPP for the Trademark Clearinghouse (spec.md §4.2). It
// reuses eppxml's envelope and response decoding (same framing, same
// <epp>/<response>/<trID> shape) but declares its own top-level
// namespace and a small mark/trex command set, grounded on
// original_source's tmch_client router and trex modules.
package tmchxml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
)

// Namespace is the TMCH service namespace declared at login instead of
// (or alongside) the ordinary object namespaces.
const Namespace = "urn:ietf:params:xml:ns:mark-1.0"

// TrexNamespace is the Trex (TM Registration Expansion) extension
// namespace, sourced from original_source/src/proto/tmch/trex.rs.
const TrexNamespace = "urn:ietf:params:xml:ns:trex-1.0"

// Decode is identical to eppxml.Decode: TMCH reuses the same envelope
// and result/trID shape, only the command bodies and resData schemas
// differ, and those are interpreted by the router, not this codec.
func Decode(payload []byte) (*eppxml.Document, error) {
	return eppxml.Decode(payload)
}

// EncodeLogin builds a TMCH login command declaring the mark-1.0
// object namespace (and, for Trex-capable registries, the Trex
// extension namespace) instead of the ordinary domain/host/contact set.
func EncodeLogin(clientID, password, clTRID string, trex bool) ([]byte, error) {
	p := eppxml.LoginParams{
		ClientID:   clientID,
		Password:   password,
		ClTRID:     clTRID,
		ObjectURIs: []string{Namespace},
	}
	if trex {
		p.ExtensionURIs = []string{TrexNamespace}
	}
	return eppxml.EncodeLogin(p)
}

// BuildMarkCheckBody builds the <mark:check> command body for one or
// more SMD identifiers, without the surrounding envelope, so the router
// can attach it through the same Build path as every other object.
func BuildMarkCheckBody(smdIDs []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<check xmlns="%s">`, Namespace)
	for _, id := range smdIDs {
		buf.WriteString("<id>")
		xml.EscapeText(&buf, []byte(id))
		buf.WriteString("</id>")
	}
	buf.WriteString("</check>")
	return buf.Bytes()
}

// BuildMarkInfoBody builds the <mark:info> command body for one SMD id.
func BuildMarkInfoBody(smdID string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<info xmlns="%s"><id>`, Namespace)
	xml.EscapeText(&buf, []byte(smdID))
	buf.WriteString("</id></info>")
	return buf.Bytes()
}

// BuildTrexActivateExt builds the <trex:activate> extension fragment
// that rides alongside an ordinary domain create, per
// original_source's trex.rs: Trex operations are never a standalone
// command, only an extension on a domain command.
func BuildTrexActivateExt(smdID string) []byte {
	var ext bytes.Buffer
	fmt.Fprintf(&ext, `<trex:activate xmlns:trex="%s"><trex:id>`, TrexNamespace)
	xml.EscapeText(&ext, []byte(smdID))
	ext.WriteString("</trex:id></trex:activate>")
	return ext.Bytes()
}

// BuildTrexRenewExt builds the <trex:renew> extension fragment that
// rides alongside a domain renew.
func BuildTrexRenewExt(smdID string) []byte {
	var ext bytes.Buffer
	fmt.Fprintf(&ext, `<trex:renew xmlns:trex="%s"><trex:id>`, TrexNamespace)
	xml.EscapeText(&ext, []byte(smdID))
	ext.WriteString("</trex:id></trex:renew>")
	return ext.Bytes()
}

// EncodeMarkCheck builds a full <mark:check> command, envelope
// included — used directly by callers that bypass the router (kept for
// the TMCH dialect's standalone tooling and tests).
func EncodeMarkCheck(smdIDs []string, clTRID string) ([]byte, error) {
	return eppxml.EncodeCommand(BuildMarkCheckBody(smdIDs), nil, clTRID)
}

// EncodeMarkInfo builds a full <mark:info> command, envelope included.
func EncodeMarkInfo(smdID, clTRID string) ([]byte, error) {
	return eppxml.EncodeCommand(BuildMarkInfoBody(smdID), nil, clTRID)
}

// EncodeTrexActivate builds a full Trex-activate command wrapping a
// domain create body, envelope included.
func EncodeTrexActivate(domainBody []byte, smdID, clTRID string) ([]byte, error) {
	return eppxml.EncodeCommand(domainBody, [][]byte{BuildTrexActivateExt(smdID)}, clTRID)
}

// EncodeTrexRenew builds a full Trex-renew command wrapping a domain
// renew body, envelope included.
func EncodeTrexRenew(domainBody []byte, smdID, clTRID string) ([]byte, error) {
	return eppxml.EncodeCommand(domainBody, [][]byte{BuildTrexRenewExt(smdID)}, clTRID)
}
