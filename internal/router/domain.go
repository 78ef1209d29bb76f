package router

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

const domainNamespace = "urn:ietf:params:xml:ns:domain-1.0"

func init() {
	register(request.KindDomainCheck, buildDomainCheck, decodeDomainCheck)
	register(request.KindDomainInfo, buildDomainInfo, decodeDomainInfo)
	register(request.KindDomainCreate, buildDomainCreate, decodeDomainCreate)
	register(request.KindDomainUpdate, buildDomainUpdate, nil)
	register(request.KindDomainDelete, buildDomainDelete, nil)
	register(request.KindDomainRenew, buildDomainRenew, decodeDomainRenew)
	register(request.KindDomainTransferQuery, buildDomainTransferOp("query"), decodeDomainTransfer)
	register(request.KindDomainTransferRequest, buildDomainTransferRequest, decodeDomainTransfer)
	register(request.KindDomainTransferApprove, buildDomainTransferOp("approve"), decodeDomainTransfer)
	register(request.KindDomainTransferReject, buildDomainTransferOp("reject"), decodeDomainTransfer)
	register(request.KindDomainTransferCancel, buildDomainTransferOp("cancel"), decodeDomainTransfer)
	register(request.KindDomainRestoreRequest, buildDomainRestoreRequest, nil)
	register(request.KindDomainRestoreReport, buildDomainRestoreReport, nil)
}

func buildDomainCheck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainCheckParams)
	if !ok {
		return nil, nil, epperr.Input("domain check requires DomainCheckParams")
	}
	if err := requireNames("domain name", p.Names); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<check xmlns="%s">`, domainNamespace)
	for _, name := range p.Names {
		fmt.Fprintf(&buf, "<name>%s</name>", xmlEscape(name))
	}
	buf.WriteString("</check>")

	var exts [][]byte
	if ext := buildFeeCheckExt(feats, p.Fee); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildNameStoreExt(feats, profile); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

type wireDomainCheckData struct {
	CD []struct {
		Name struct {
			Avail bool   `xml:"avail,attr"`
			Value string `xml:",chardata"`
		} `xml:"name"`
		Reason string `xml:"reason"`
	} `xml:"cd"`
}

func decodeDomainCheck(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainCheckData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding domain:chkData: %w", err)
	}
	out := &request.DomainCheckResult{}
	for _, cd := range data.CD {
		out.Domains = append(out.Domains, request.DomainAvailability{
			Name:      cd.Name.Value,
			Available: cd.Name.Avail,
			Reason:    cd.Reason,
		})
	}
	return out, nil
}

func buildDomainInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainInfoParams)
	if !ok {
		return nil, nil, epperr.Input("domain info requires DomainInfoParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	hostsForm := p.HostsForm
	if hostsForm == "" {
		hostsForm = "all"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<info xmlns="%s"><name hosts="%s">%s</name>`, domainNamespace, hostsForm, xmlEscape(p.Name))
	if p.AuthInfo != "" {
		fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
	}
	buf.WriteString("</info>")

	var exts [][]byte
	if ext := buildNameStoreExt(feats, profile); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

type wireDomainInfoData struct {
	Name       string   `xml:"name"`
	ROID       string   `xml:"roid"`
	Status     []string `xml:"status>s"`
	Registrant string   `xml:"registrant"`
	Contact    []struct {
		Type string `xml:"type,attr"`
		ID   string `xml:",chardata"`
	} `xml:"contact"`
	Ns struct {
		HostObj []string `xml:"hostObj"`
	} `xml:"ns"`
	Host     []string `xml:"host"`
	ClID     string   `xml:"clID"`
	CrID     string   `xml:"crID"`
	CrDate   string   `xml:"crDate"`
	UpID     string   `xml:"upID"`
	UpDate   string   `xml:"upDate"`
	ExDate   string   `xml:"exDate"`
	TrDate   string   `xml:"trDate"`
	AuthInfo struct {
		Pw string `xml:"pw"`
	} `xml:"authInfo"`
}

func decodeDomainInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding domain:infData: %w", err)
	}
	out := &request.DomainInfoResult{
		Name:        data.Name,
		ROID:        data.ROID,
		Status:      data.Status,
		Registrant:  data.Registrant,
		Nameservers: data.Ns.HostObj,
		Hosts:       data.Host,
		ClID:        data.ClID,
		CrID:        data.CrID,
		UpID:        data.UpID,
		CrDate:      parseEPPDate(data.CrDate),
		UpDate:      parseEPPDate(data.UpDate),
		ExDate:      parseEPPDate(data.ExDate),
		TrDate:      parseEPPDate(data.TrDate),
		AuthInfo:    data.AuthInfo.Pw,
	}
	for _, c := range data.Contact {
		out.Contacts = append(out.Contacts, request.DomainContact{Type: c.Type, ID: c.ID})
	}
	if feats.Has(features.CapSecDNS11) {
		out.SecDNS = decodeSecDNSFromExtensions(resp.Extension)
	}
	if feats.Has(features.CapRGP) {
		out.RGP = decodeRGPFromExtensions(resp.Extension)
	}
	if feats.Has(features.CapLaunch) {
		out.Launch = decodeLaunchFromExtensions(resp.Extension)
	}
	return out, nil
}

func buildDomainCreate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainCreateParams)
	if !ok {
		return nil, nil, epperr.Input("domain create requires DomainCreateParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<create xmlns="%s"><name>%s</name>`, domainNamespace, xmlEscape(p.Name))
	if p.Period > 0 {
		fmt.Fprintf(&buf, `<period unit="y">%d</period>`, p.Period)
	}
	if len(p.Nameservers) > 0 {
		buf.WriteString("<ns>")
		for _, ns := range p.Nameservers {
			fmt.Fprintf(&buf, "<hostObj>%s</hostObj>", xmlEscape(ns))
		}
		buf.WriteString("</ns>")
	}
	if p.Registrant != "" {
		fmt.Fprintf(&buf, "<registrant>%s</registrant>", xmlEscape(p.Registrant))
	}
	for _, c := range p.Contacts {
		fmt.Fprintf(&buf, `<contact type="%s">%s</contact>`, c.Type, xmlEscape(c.ID))
	}
	fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
	buf.WriteString("</create>")

	var exts [][]byte
	if ext := buildSecDNSCreateExt(feats, p.SecDNS); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildLaunchCreateExt(feats, p.Launch); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildFeeAgreementExt(feats, p.Fee); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildNameStoreExt(feats, profile); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

type wireDomainCreateData struct {
	Name   string `xml:"name"`
	CrDate string `xml:"crDate"`
	ExDate string `xml:"exDate"`
}

func decodeDomainCreate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding domain:creData: %w", err)
	}
	return &request.DomainCreateResult{
		Name:   data.Name,
		CrDate: parseEPPDate(data.CrDate),
		ExDate: parseEPPDate(data.ExDate),
	}, nil
}

func buildDomainUpdate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainUpdateParams)
	if !ok {
		return nil, nil, epperr.Input("domain update requires DomainUpdateParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	if !p.HasChanges() {
		return nil, nil, epperr.Input("domain update must change at least one field")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<update xmlns="%s"><name>%s</name>`, domainNamespace, xmlEscape(p.Name))
	writeDomainUpdateSet(&buf, "add", p.Add)
	writeDomainUpdateSet(&buf, "rem", p.Remove)
	if p.Change != nil && (p.Change.Registrant != "" || p.Change.AuthInfo != "") {
		buf.WriteString("<chg>")
		if p.Change.Registrant != "" {
			fmt.Fprintf(&buf, "<registrant>%s</registrant>", xmlEscape(p.Change.Registrant))
		}
		if p.Change.AuthInfo != "" {
			fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.Change.AuthInfo))
		}
		buf.WriteString("</chg>")
	}
	buf.WriteString("</update>")

	var exts [][]byte
	if ext := buildSecDNSUpdateExt(feats, p.SecDNS); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildRGPRestoreExt(feats, p.RGPRestore); ext != nil {
		exts = append(exts, ext)
	}
	if ext := buildFeeAgreementExt(feats, p.Fee); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

func writeDomainUpdateSet(buf *bytes.Buffer, tag string, set *request.DomainUpdateSet) {
	if set == nil || (len(set.Nameservers) == 0 && len(set.Contacts) == 0 && len(set.Status) == 0) {
		return
	}
	fmt.Fprintf(buf, "<%s>", tag)
	if len(set.Nameservers) > 0 {
		buf.WriteString("<ns>")
		for _, ns := range set.Nameservers {
			fmt.Fprintf(buf, "<hostObj>%s</hostObj>", xmlEscape(ns))
		}
		buf.WriteString("</ns>")
	}
	for _, c := range set.Contacts {
		fmt.Fprintf(buf, `<contact type="%s">%s</contact>`, c.Type, xmlEscape(c.ID))
	}
	for _, s := range set.Status {
		fmt.Fprintf(buf, `<status s="%s"/>`, s)
	}
	fmt.Fprintf(buf, "</%s>", tag)
}

func buildDomainDelete(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainDeleteParams)
	if !ok {
		return nil, nil, epperr.Input("domain delete requires DomainDeleteParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	body := []byte(fmt.Sprintf(`<delete xmlns="%s"><name>%s</name></delete>`, domainNamespace, xmlEscape(p.Name)))
	var exts [][]byte
	if ext := buildTraficomCancelDeleteExt(feats, p.CancelTraficom); ext != nil {
		exts = append(exts, ext)
	}
	return body, exts, nil
}

func buildDomainRenew(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainRenewParams)
	if !ok {
		return nil, nil, epperr.Input("domain renew requires DomainRenewParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<renew xmlns="%s"><name>%s</name><curExpDate>%s</curExpDate>`,
		domainNamespace, xmlEscape(p.Name), formatEPPDate(p.CurrentExpiry))
	if p.Period > 0 {
		fmt.Fprintf(&buf, `<period unit="y">%d</period>`, p.Period)
	}
	buf.WriteString("</renew>")

	var exts [][]byte
	if ext := buildFeeAgreementExt(feats, p.Fee); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

type wireDomainRenewData struct {
	Name   string `xml:"name"`
	ExDate string `xml:"exDate"`
}

func decodeDomainRenew(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainRenewData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding domain:renData: %w", err)
	}
	return &request.DomainRenewResult{ExDate: parseEPPDate(data.ExDate)}, nil
}

func buildDomainTransferRequest(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainTransferParams)
	if !ok {
		return nil, nil, epperr.Input("domain transfer requires DomainTransferParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<transfer xmlns="%s" op="request"><name>%s</name>`, domainNamespace, xmlEscape(p.Name))
	if p.Period > 0 {
		fmt.Fprintf(&buf, `<period unit="y">%d</period>`, p.Period)
	}
	fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo></transfer>", xmlEscape(p.AuthInfo))

	var exts [][]byte
	if ext := buildFeeAgreementExt(feats, p.Fee); ext != nil {
		exts = append(exts, ext)
	}
	return buf.Bytes(), exts, nil
}

func buildDomainTransferOp(op string) builder {
	return func(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
		p, ok := params.(*request.DomainTransferParams)
		if !ok {
			return nil, nil, epperr.Input("domain transfer requires DomainTransferParams")
		}
		if err := requireName("domain name", p.Name); err != nil {
			return nil, nil, err
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, `<transfer xmlns="%s" op="%s"><name>%s</name>`, domainNamespace, op, xmlEscape(p.Name))
		if p.AuthInfo != "" {
			fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
		}
		buf.WriteString("</transfer>")
		return buf.Bytes(), nil, nil
	}
}

type wireDomainTransferData struct {
	TrStatus string `xml:"trStatus"`
	ReID     string `xml:"reID"`
	ReDate   string `xml:"reDate"`
	AcID     string `xml:"acID"`
	AcDate   string `xml:"acDate"`
	ExDate   string `xml:"exDate"`
}

func decodeDomainTransfer(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainTransferData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding domain:trnData: %w", err)
	}
	return &request.DomainTransferResult{
		Status:      data.TrStatus,
		RequestedBy: data.ReID,
		RequestedAt: parseEPPDate(data.ReDate),
		ActionBy:    data.AcID,
		ActionAt:    parseEPPDate(data.AcDate),
		ExDate:      parseEPPDate(data.ExDate),
	}, nil
}

func buildDomainRestoreRequest(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainRestoreRequestParams)
	if !ok {
		return nil, nil, epperr.Input("domain restore request requires DomainRestoreRequestParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	body := []byte(fmt.Sprintf(`<update xmlns="%s"><name>%s</name></update>`, domainNamespace, xmlEscape(p.Name)))
	ext := buildRGPRestoreExt(feats, true)
	if ext == nil {
		return nil, nil, epperr.Unsupported("registry does not advertise the RGP extension")
	}
	return body, [][]byte{ext}, nil
}

func buildDomainRestoreReport(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.DomainRestoreReportParams)
	if !ok {
		return nil, nil, epperr.Input("domain restore report requires DomainRestoreReportParams")
	}
	if err := requireName("domain name", p.Name); err != nil {
		return nil, nil, err
	}
	body := []byte(fmt.Sprintf(`<update xmlns="%s"><name>%s</name></update>`, domainNamespace, xmlEscape(p.Name)))
	ext := buildRGPReportExt(feats, &rgpReportParams{
		PreData:       p.PreData,
		PostData:      p.PostData,
		DeleteTime:    formatEPPDate(p.DeleteTime),
		RestoreTime:   formatEPPDate(p.RestoreTime),
		RestoreReason: p.RestoreReason,
		Statements:    p.Statements,
		Other:         p.Other,
	})
	return body, [][]byte{ext}, nil
}
