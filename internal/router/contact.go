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

const contactNamespace = "urn:ietf:params:xml:ns:contact-1.0"

func init() {
	register(request.KindContactCheck, buildContactCheck, decodeContactCheck)
	register(request.KindContactInfo, buildContactInfo, decodeContactInfo)
	register(request.KindContactCreate, buildContactCreate, decodeContactCreate)
	register(request.KindContactUpdate, buildContactUpdate, nil)
	register(request.KindContactDelete, buildContactDelete, nil)
	register(request.KindContactTransferQuery, buildContactTransferOp("query"), decodeContactTransfer)
	register(request.KindContactTransferRequest, buildContactTransferOp("request"), decodeContactTransfer)
	register(request.KindContactTransferApprove, buildContactTransferOp("approve"), decodeContactTransfer)
	register(request.KindContactTransferReject, buildContactTransferOp("reject"), decodeContactTransfer)
	register(request.KindContactTransferCancel, buildContactTransferOp("cancel"), decodeContactTransfer)
}

func buildContactCheck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.ContactCheckParams)
	if !ok {
		return nil, nil, epperr.Input("contact check requires ContactCheckParams")
	}
	if err := requireNames("contact id", p.IDs); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<check xmlns="%s">`, contactNamespace)
	for _, id := range p.IDs {
		fmt.Fprintf(&buf, "<id>%s</id>", xmlEscape(id))
	}
	buf.WriteString("</check>")
	return buf.Bytes(), nil, nil
}

type wireContactCheckData struct {
	CD []struct {
		ID struct {
			Avail bool   `xml:"avail,attr"`
			Value string `xml:",chardata"`
		} `xml:"id"`
		Reason string `xml:"reason"`
	} `xml:"cd"`
}

func decodeContactCheck(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireContactCheckData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding contact:chkData: %w", err)
	}
	out := &request.ContactCheckResult{}
	for _, cd := range data.CD {
		out.Contacts = append(out.Contacts, request.ContactAvailability{ID: cd.ID.Value, Available: cd.ID.Avail, Reason: cd.Reason})
	}
	return out, nil
}

func buildContactInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.ContactInfoParams)
	if !ok {
		return nil, nil, epperr.Input("contact info requires ContactInfoParams")
	}
	if err := requireName("contact id", p.ID); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<info xmlns="%s"><id>%s</id>`, contactNamespace, xmlEscape(p.ID))
	if p.AuthInfo != "" {
		fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
	}
	buf.WriteString("</info>")
	return buf.Bytes(), nil, nil
}

type wirePostalInfo struct {
	Type string `xml:"type,attr"`
	Name string `xml:"name"`
	Org  string `xml:"org"`
	Addr struct {
		Street      []string `xml:"street"`
		City        string   `xml:"city"`
		Province    string   `xml:"sp"`
		PostalCode  string   `xml:"pc"`
		CountryCode string   `xml:"cc"`
	} `xml:"addr"`
}

func (w wirePostalInfo) toNeutral() request.PostalInfo {
	return request.PostalInfo{
		Type:        w.Type,
		Name:        w.Name,
		Org:         w.Org,
		Street:      w.Addr.Street,
		City:        w.Addr.City,
		Province:    w.Addr.Province,
		PostalCode:  w.Addr.PostalCode,
		CountryCode: w.Addr.CountryCode,
	}
}

func writePostalInfo(buf *bytes.Buffer, p request.PostalInfo) {
	fmt.Fprintf(buf, `<postalInfo type="%s"><name>%s</name>`, p.Type, xmlEscape(p.Name))
	if p.Org != "" {
		fmt.Fprintf(buf, "<org>%s</org>", xmlEscape(p.Org))
	}
	buf.WriteString("<addr>")
	for _, s := range p.Street {
		fmt.Fprintf(buf, "<street>%s</street>", xmlEscape(s))
	}
	fmt.Fprintf(buf, "<city>%s</city>", xmlEscape(p.City))
	if p.Province != "" {
		fmt.Fprintf(buf, "<sp>%s</sp>", xmlEscape(p.Province))
	}
	if p.PostalCode != "" {
		fmt.Fprintf(buf, "<pc>%s</pc>", xmlEscape(p.PostalCode))
	}
	fmt.Fprintf(buf, "<cc>%s</cc>", p.CountryCode)
	buf.WriteString("</addr></postalInfo>")
}

func writeDiscloseSet(buf *bytes.Buffer, disclose map[string]bool) {
	if len(disclose) == 0 {
		return
	}
	flag := "1"
	for _, v := range disclose {
		if !v {
			flag = "0"
		}
		break // the flag is uniform across the set; one entry decides it
	}
	fmt.Fprintf(buf, `<disclose flag="%s">`, flag)
	for name := range disclose {
		fmt.Fprintf(buf, "<%s/>", name)
	}
	buf.WriteString("</disclose>")
}

type wireContactInfoData struct {
	ID     string           `xml:"id"`
	ROID   string           `xml:"roid"`
	Status []string         `xml:"status>s"`
	Postal []wirePostalInfo `xml:"postalInfo"`
	Voice  string           `xml:"voice"`
	Fax    string           `xml:"fax"`
	Email  string           `xml:"email"`
	ClID   string           `xml:"clID"`
	CrID   string           `xml:"crID"`
	CrDate string           `xml:"crDate"`
	UpID   string           `xml:"upID"`
	UpDate string           `xml:"upDate"`
	TrDate string           `xml:"trDate"`
	AuthInfo struct {
		Pw string `xml:"pw"`
	} `xml:"authInfo"`
}

func decodeContactInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireContactInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding contact:infData: %w", err)
	}
	out := &request.ContactInfoResult{
		ID:       data.ID,
		ROID:     data.ROID,
		Status:   data.Status,
		Voice:    data.Voice,
		Fax:      data.Fax,
		Email:    data.Email,
		ClID:     data.ClID,
		CrID:     data.CrID,
		CrDate:   parseEPPDate(data.CrDate),
		UpID:     data.UpID,
		UpDate:   parseEPPDate(data.UpDate),
		TrDate:   parseEPPDate(data.TrDate),
		AuthInfo: data.AuthInfo.Pw,
	}
	for _, p := range data.Postal {
		out.Postal = append(out.Postal, p.toNeutral())
	}
	if feats.Has(features.CapQualifiedLawyer) {
		out.QualifiedLawyer = decodeQualifiedLawyerFromExtensions(resp.Extension)
	}
	return out, nil
}

type wireQualifiedLawyerData struct {
	BarNumber    string `xml:"barNumber"`
	Jurisdiction string `xml:"jurisdiction"`
}

func decodeQualifiedLawyerFromExtensions(extensions []xml.RawMessage) *request.QualifiedLawyerInfo {
	ext, ok := findExtension(extensions, qualifiedLawyerNamespace)
	if !ok {
		return nil
	}
	var data wireQualifiedLawyerData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil
	}
	return &request.QualifiedLawyerInfo{BarNumber: data.BarNumber, Jurisdiction: data.Jurisdiction}
}

func buildContactCreate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.ContactCreateParams)
	if !ok {
		return nil, nil, epperr.Input("contact create requires ContactCreateParams")
	}
	if err := requireName("contact id", p.ID); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<create xmlns="%s"><id>%s</id>`, contactNamespace, xmlEscape(p.ID))
	for _, postal := range p.Postal {
		writePostalInfo(&buf, postal)
	}
	if p.Voice != "" {
		fmt.Fprintf(&buf, "<voice>%s</voice>", xmlEscape(p.Voice))
	}
	if p.Fax != "" {
		fmt.Fprintf(&buf, "<fax>%s</fax>", xmlEscape(p.Fax))
	}
	fmt.Fprintf(&buf, "<email>%s</email>", xmlEscape(p.Email))
	fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
	writeDiscloseSet(&buf, p.Disclose)
	buf.WriteString("</create>")

	var exts [][]byte
	if ext := buildPersonalRegistrationExt(feats, p.Personal); ext != nil {
		exts = append(exts, ext)
	}
	if p.QualifiedLawyer != nil {
		if ext := buildQualifiedLawyerExt(feats, p.QualifiedLawyer.BarNumber, p.QualifiedLawyer.Jurisdiction); ext != nil {
			exts = append(exts, ext)
		}
	}
	return buf.Bytes(), exts, nil
}

type wireContactCreateData struct {
	ID     string `xml:"id"`
	CrDate string `xml:"crDate"`
}

func decodeContactCreate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireContactCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding contact:creData: %w", err)
	}
	return &request.ContactCreateResult{ID: data.ID, CrDate: parseEPPDate(data.CrDate)}, nil
}

func buildContactUpdate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.ContactUpdateParams)
	if !ok {
		return nil, nil, epperr.Input("contact update requires ContactUpdateParams")
	}
	if err := requireName("contact id", p.ID); err != nil {
		return nil, nil, err
	}
	if !p.HasChanges() {
		return nil, nil, epperr.Input("contact update must change at least one field")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<update xmlns="%s"><id>%s</id>`, contactNamespace, xmlEscape(p.ID))
	if len(p.Add) > 0 {
		buf.WriteString("<add>")
		for _, s := range p.Add {
			fmt.Fprintf(&buf, `<status s="%s"/>`, s)
		}
		buf.WriteString("</add>")
	}
	if len(p.Remove) > 0 {
		buf.WriteString("<rem>")
		for _, s := range p.Remove {
			fmt.Fprintf(&buf, `<status s="%s"/>`, s)
		}
		buf.WriteString("</rem>")
	}
	if p.Change != nil {
		buf.WriteString("<chg>")
		for _, postal := range p.Change.Postal {
			writePostalInfo(&buf, postal)
		}
		if p.Change.Voice != "" {
			fmt.Fprintf(&buf, "<voice>%s</voice>", xmlEscape(p.Change.Voice))
		}
		if p.Change.Fax != "" {
			fmt.Fprintf(&buf, "<fax>%s</fax>", xmlEscape(p.Change.Fax))
		}
		if p.Change.Email != "" {
			fmt.Fprintf(&buf, "<email>%s</email>", xmlEscape(p.Change.Email))
		}
		if p.Change.AuthInfo != "" {
			fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.Change.AuthInfo))
		}
		writeDiscloseSet(&buf, p.Change.Disclose)
		buf.WriteString("</chg>")
	}
	buf.WriteString("</update>")
	return buf.Bytes(), nil, nil
}

func buildContactDelete(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.ContactDeleteParams)
	if !ok {
		return nil, nil, epperr.Input("contact delete requires ContactDeleteParams")
	}
	if err := requireName("contact id", p.ID); err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<delete xmlns="%s"><id>%s</id></delete>`, contactNamespace, xmlEscape(p.ID))), nil, nil
}

func buildContactTransferOp(op string) builder {
	return func(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
		p, ok := params.(*request.ContactTransferParams)
		if !ok {
			return nil, nil, epperr.Input("contact transfer requires ContactTransferParams")
		}
		if err := requireName("contact id", p.ID); err != nil {
			return nil, nil, err
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, `<transfer xmlns="%s" op="%s"><id>%s</id>`, contactNamespace, op, xmlEscape(p.ID))
		if p.AuthInfo != "" {
			fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
		}
		buf.WriteString("</transfer>")
		return buf.Bytes(), nil, nil
	}
}

type wireContactTransferData struct {
	TrStatus string `xml:"trStatus"`
	ReID     string `xml:"reID"`
	ReDate   string `xml:"reDate"`
	AcID     string `xml:"acID"`
	AcDate   string `xml:"acDate"`
}

func decodeContactTransfer(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireContactTransferData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding contact:trnData: %w", err)
	}
	return &request.ContactTransferResult{
		Status:      data.TrStatus,
		RequestedBy: data.ReID,
		RequestedAt: parseEPPDate(data.ReDate),
		ActionBy:    data.AcID,
		ActionAt:    parseEPPDate(data.AcDate),
	}, nil
}
