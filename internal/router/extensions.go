package router

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

// feeExtensionNS maps a fee extension version string to its namespace.
var feeExtensionNS = map[string]string{
	"1.0": "urn:ietf:params:xml:ns:fee-1.0",
	"0.9": "urn:ietf:params:xml:ns:fee-0.9",
	"0.8": "urn:ietf:params:xml:ns:fee-0.8",
	"0.7": "urn:ietf:params:xml:ns:fee-0.7",
	"0.5": "urn:ietf:params:xml:ns:fee-0.5",
}

// buildFeeCheckExt emits the highest mutually-supported fee extension
// for a check command, never mixing versions within one command
// (spec.md §4.6's monotonic fee-version tie-break).
func buildFeeCheckExt(feats *features.FeatureSet, fc *request.FeeCheck) []byte {
	if fc == nil {
		return nil
	}
	version, ok := feats.HighestFee()
	if !ok {
		return nil
	}
	ns := feeExtensionNS[version]
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<fee:check xmlns:fee="%s">`, ns)
	buf.WriteString("<fee:command")
	if fc.Command != "" {
		fmt.Fprintf(&buf, ` name="%s"`, fc.Command)
	}
	buf.WriteString(">")
	if fc.Currency != "" {
		fmt.Fprintf(&buf, "<fee:currency>%s</fee:currency>", fc.Currency)
	}
	buf.WriteString("</fee:command></fee:check>")
	return buf.Bytes()
}

// buildFeeAgreementExt emits a fee extension carrying the agreed price
// for a create/renew/transfer/update command.
func buildFeeAgreementExt(feats *features.FeatureSet, fa *request.FeeAgreement) []byte {
	if fa == nil {
		return nil
	}
	version, ok := feats.HighestFee()
	if !ok {
		return nil
	}
	ns := feeExtensionNS[version]
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<fee:create xmlns:fee="%s">`, ns)
	if fa.Currency != "" {
		fmt.Fprintf(&buf, "<fee:currency>%s</fee:currency>", fa.Currency)
	}
	fmt.Fprintf(&buf, "<fee:fee>%s</fee:fee>", fa.Amount)
	buf.WriteString("</fee:create>")
	return buf.Bytes()
}

const secDNSNamespace = "urn:ietf:params:xml:ns:secDNS-1.1"

// buildSecDNSCreateExt emits the secDNS create extension when the
// session supports it and the caller supplied DS or key data.
func buildSecDNSCreateExt(feats *features.FeatureSet, d *request.SecDNSData) []byte {
	if d == nil || !feats.Has(features.CapSecDNS11) {
		return nil
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<secDNS:create xmlns:secDNS="%s">`, secDNSNamespace)
	if d.MaxSigLife > 0 {
		fmt.Fprintf(&buf, "<secDNS:maxSigLife>%d</secDNS:maxSigLife>", d.MaxSigLife)
	}
	for _, ds := range d.DSData {
		fmt.Fprintf(&buf, "<secDNS:dsData><secDNS:keyTag>%d</secDNS:keyTag><secDNS:alg>%d</secDNS:alg><secDNS:digestType>%d</secDNS:digestType><secDNS:digest>%s</secDNS:digest></secDNS:dsData>",
			ds.KeyTag, ds.Algorithm, ds.DigestType, ds.Digest)
	}
	for _, k := range d.KeyData {
		fmt.Fprintf(&buf, "<secDNS:keyData><secDNS:flags>%d</secDNS:flags><secDNS:protocol>%d</secDNS:protocol><secDNS:alg>%d</secDNS:alg><secDNS:pubKey>%s</secDNS:pubKey></secDNS:keyData>",
			k.Flags, k.Protocol, k.Algorithm, k.PublicKey)
	}
	buf.WriteString("</secDNS:create>")
	return buf.Bytes()
}

// buildSecDNSUpdateExt emits the secDNS update extension.
func buildSecDNSUpdateExt(feats *features.FeatureSet, u *request.SecDNSUpdate) []byte {
	if u == nil || !feats.Has(features.CapSecDNS11) {
		return nil
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<secDNS:update xmlns:secDNS="%s">`, secDNSNamespace)
	if u.RemoveAll {
		buf.WriteString(`<secDNS:rem><secDNS:all>true</secDNS:all></secDNS:rem>`)
	} else if len(u.RemoveDS) > 0 || len(u.RemoveKey) > 0 {
		buf.WriteString("<secDNS:rem>")
		for _, ds := range u.RemoveDS {
			fmt.Fprintf(&buf, "<secDNS:dsData><secDNS:keyTag>%d</secDNS:keyTag></secDNS:dsData>", ds.KeyTag)
		}
		buf.WriteString("</secDNS:rem>")
	}
	if len(u.AddDS) > 0 || len(u.AddKey) > 0 {
		buf.WriteString("<secDNS:add>")
		for _, ds := range u.AddDS {
			fmt.Fprintf(&buf, "<secDNS:dsData><secDNS:keyTag>%d</secDNS:keyTag><secDNS:alg>%d</secDNS:alg><secDNS:digestType>%d</secDNS:digestType><secDNS:digest>%s</secDNS:digest></secDNS:dsData>",
				ds.KeyTag, ds.Algorithm, ds.DigestType, ds.Digest)
		}
		buf.WriteString("</secDNS:add>")
	}
	buf.WriteString("</secDNS:update>")
	return buf.Bytes()
}

const launchNamespace = "urn:ietf:params:xml:ns:launch-1.0"

// buildLaunchCreateExt emits the launch-phase extension for a create
// command (sunrise/landrush applications, signed marks, notices).
func buildLaunchCreateExt(feats *features.FeatureSet, l *request.LaunchCreate) []byte {
	if l == nil || !feats.Has(features.CapLaunch) {
		return nil
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<launch:create xmlns:launch="%s">`, launchNamespace)
	buf.WriteString("<launch:phase")
	if l.SubPhase != "" {
		fmt.Fprintf(&buf, ` name="%s"`, l.SubPhase)
	}
	fmt.Fprintf(&buf, ">%s</launch:phase>", l.Phase)
	for _, smd := range l.SignedMarks {
		fmt.Fprintf(&buf, "<launch:signedMark>%s</launch:signedMark>", smd)
	}
	for _, code := range l.Codes {
		fmt.Fprintf(&buf, "<launch:codeMark><launch:code>%s</launch:code></launch:codeMark>", xmlEscape(code))
	}
	for _, n := range l.Notices {
		fmt.Fprintf(&buf, `<launch:notice><launch:noticeID validatorID="%s">%s</launch:noticeID><launch:notAfter>%s</launch:notAfter><launch:acceptedDate>%s</launch:acceptedDate></launch:notice>`,
			n.ValidatorID, n.NoticeID, formatEPPDate(n.NotAfter), formatEPPDate(n.AcceptedAt))
	}
	buf.WriteString("</launch:create>")
	return buf.Bytes()
}

const rgpNamespace = "urn:ietf:params:xml:ns:rgp-1.0"

// buildRGPRestoreExt emits the redemption-grace-period restore request
// extension on a domain update (spec.md's restore-request operation).
func buildRGPRestoreExt(feats *features.FeatureSet, restore bool) []byte {
	if !restore || !feats.Has(features.CapRGP) {
		return nil
	}
	return []byte(fmt.Sprintf(`<rgp:update xmlns:rgp="%s"><rgp:restore op="request"/></rgp:update>`, rgpNamespace))
}

// rgpReportParams is the wire-ready form of a restore report: dates
// already formatted as EPP date strings so this file never needs to
// import time itself.
type rgpReportParams struct {
	PreData       string
	PostData      string
	DeleteTime    string
	RestoreTime   string
	RestoreReason string
	Statements    []string
	Other         string
}

// buildRGPReportExt emits the restore-report extension carrying the
// pre/post-delete registration data RFC 3915 requires.
func buildRGPReportExt(feats *features.FeatureSet, p *rgpReportParams) []byte {
	if p == nil {
		return nil
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<rgp:update xmlns:rgp="%s"><rgp:restore op="report">`, rgpNamespace)
	buf.WriteString("<rgp:report>")
	fmt.Fprintf(&buf, "<rgp:preData>%s</rgp:preData>", xmlEscape(p.PreData))
	fmt.Fprintf(&buf, "<rgp:postData>%s</rgp:postData>", xmlEscape(p.PostData))
	fmt.Fprintf(&buf, "<rgp:delTime>%s</rgp:delTime>", p.DeleteTime)
	fmt.Fprintf(&buf, "<rgp:resTime>%s</rgp:resTime>", p.RestoreTime)
	fmt.Fprintf(&buf, "<rgp:resReason>%s</rgp:resReason>", xmlEscape(p.RestoreReason))
	for _, s := range p.Statements {
		fmt.Fprintf(&buf, "<rgp:statement>%s</rgp:statement>", xmlEscape(s))
	}
	if p.Other != "" {
		fmt.Fprintf(&buf, "<rgp:other>%s</rgp:other>", xmlEscape(p.Other))
	}
	buf.WriteString("</rgp:report></rgp:restore></rgp:update>")
	return buf.Bytes()
}

const nameStoreNamespace = "http://www.verisign.com/epp/namestoreExt-1.1"

// subProductForErratum maps a Verisign TLD erratum to the namestoreExt
// subProduct value it requires (spec.md §8 scenario 2).
var subProductForErratum = map[config.Erratum]string{
	config.ErratumVerisignCom:  "dotCOM",
	config.ErratumVerisignNet:  "dotNET",
	config.ErratumVerisignName: "dotNAME",
	config.ErratumVerisignCC:   "dotCC",
	config.ErratumVerisignTV:   "dotTV",
}

// buildNameStoreExt emits the namestoreExt block identifying which
// Verisign TLD product this command targets, if the profile carries a
// matching erratum.
func buildNameStoreExt(feats *features.FeatureSet, profile *config.RegistryProfile) []byte {
	if !feats.Has(features.CapNameStore) {
		return nil
	}
	for _, e := range profile.Errata {
		if sub, ok := subProductForErratum[config.Erratum(e)]; ok {
			return []byte(fmt.Sprintf(`<namestoreExt:namestoreExt xmlns:namestoreExt="%s"><namestoreExt:subProduct>%s</namestoreExt:subProduct></namestoreExt:namestoreExt>`, nameStoreNamespace, sub))
		}
	}
	return nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// requireName enforces the protocol's "name non-empty" rule (spec.md
// §4.6) for a single domain/host/contact identifier.
func requireName(field, name string) error {
	if name == "" {
		return epperr.Input("%s must not be empty", field)
	}
	return nil
}

// requireNames applies requireName to every entry in names, returning
// the first violation.
func requireNames(field string, names []string) error {
	for _, n := range names {
		if err := requireName(field, n); err != nil {
			return err
		}
	}
	return nil
}

// findExtension returns the first extension fragment whose root element
// is in the given namespace, or nil if none matches.
func findExtension(extensions []xml.RawMessage, namespace string) (xml.RawMessage, bool) {
	for _, ext := range extensions {
		var probe struct {
			XMLName xml.Name
		}
		if err := xml.Unmarshal(ext, &probe); err != nil {
			continue
		}
		if probe.XMLName.Space == namespace {
			return ext, true
		}
	}
	return nil, false
}

type wireSecDNSInfData struct {
	MaxSigLife int `xml:"maxSigLife"`
	DSData     []struct {
		KeyTag     int    `xml:"keyTag"`
		Alg        int    `xml:"alg"`
		DigestType int    `xml:"digestType"`
		Digest     string `xml:"digest"`
	} `xml:"dsData"`
	KeyData []struct {
		Flags    int    `xml:"flags"`
		Protocol int    `xml:"protocol"`
		Alg      int    `xml:"alg"`
		PubKey   string `xml:"pubKey"`
	} `xml:"keyData"`
}

// decodeSecDNSFromExtensions pulls the secDNS info extension out of a
// domain:info response, when the registry included one.
func decodeSecDNSFromExtensions(extensions []xml.RawMessage) *request.SecDNSData {
	ext, ok := findExtension(extensions, secDNSNamespace)
	if !ok {
		return nil
	}
	var data wireSecDNSInfData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil
	}
	out := &request.SecDNSData{MaxSigLife: data.MaxSigLife}
	for _, ds := range data.DSData {
		out.DSData = append(out.DSData, request.DSDatum{KeyTag: ds.KeyTag, Algorithm: ds.Alg, DigestType: ds.DigestType, Digest: ds.Digest})
	}
	for _, k := range data.KeyData {
		out.KeyData = append(out.KeyData, request.KeyDatum{Flags: k.Flags, Protocol: k.Protocol, Algorithm: k.Alg, PublicKey: k.PubKey})
	}
	return out
}

type wireRGPInfData struct {
	RgpStatus []struct {
		S string `xml:"s,attr"`
	} `xml:"rgpStatus"`
}

// decodeRGPFromExtensions pulls the RGP status list out of a domain:info
// response extension, when present.
func decodeRGPFromExtensions(extensions []xml.RawMessage) *request.RGPState {
	ext, ok := findExtension(extensions, rgpNamespace)
	if !ok {
		return nil
	}
	var data wireRGPInfData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil
	}
	out := &request.RGPState{}
	for _, s := range data.RgpStatus {
		out.Status = append(out.Status, s.S)
	}
	return out
}

type wireLaunchInfData struct {
	Phase struct {
		Name  string `xml:"name,attr"`
		Value string `xml:",chardata"`
	} `xml:"phase"`
	ApplicationID string `xml:"applicationID"`
	Status        struct {
		S string `xml:"s,attr"`
	} `xml:"status"`
}

// decodeLaunchFromExtensions pulls the launch-phase application status
// out of a domain:info response extension, when present.
func decodeLaunchFromExtensions(extensions []xml.RawMessage) *request.LaunchInfo {
	ext, ok := findExtension(extensions, launchNamespace)
	if !ok {
		return nil
	}
	var data wireLaunchInfData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil
	}
	phase := data.Phase.Value
	if phase == "" {
		phase = data.Phase.Name
	}
	return &request.LaunchInfo{Phase: phase, Status: data.Status.S, ApplicationID: data.ApplicationID}
}
