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

const emailForwardNamespace = "http://www.nominet.org.uk/epp/xml/email-forward-1.0"

func init() {
	register(request.KindEmailForwardCheck, buildEmailForwardCheck, decodeEmailForwardCheck)
	register(request.KindEmailForwardInfo, buildEmailForwardInfo, decodeEmailForwardInfo)
	register(request.KindEmailForwardCreate, buildEmailForwardCreate, decodeEmailForwardCreate)
	register(request.KindEmailForwardUpdate, buildEmailForwardUpdate, nil)
	register(request.KindEmailForwardDelete, buildEmailForwardDelete, nil)
	register(request.KindEmailForwardRenew, buildEmailForwardRenew, decodeEmailForwardRenew)
}

func requireEmailForward(feats *features.FeatureSet) error {
	if !feats.Has(features.CapEmailForward) {
		return epperr.Unsupported("registry does not advertise the email-forward extension")
	}
	return nil
}

func buildEmailForwardCheck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardCheckParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward check requires EmailForwardCheckParams")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<check xmlns="%s">`, emailForwardNamespace)
	for _, name := range p.Names {
		fmt.Fprintf(&buf, "<name>%s</name>", xmlEscape(name))
	}
	buf.WriteString("</check>")
	return buf.Bytes(), nil, nil
}

type wireEmailForwardCheckData struct {
	CD []struct {
		Name struct {
			Avail bool   `xml:"avail,attr"`
			Value string `xml:",chardata"`
		} `xml:"name"`
		Reason string `xml:"reason"`
	} `xml:"cd"`
}

func decodeEmailForwardCheck(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireEmailForwardCheckData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding email-forward check data: %w", err)
	}
	out := &request.EmailForwardCheckResult{}
	for _, cd := range data.CD {
		out.Forwards = append(out.Forwards, request.EmailForwardAvailability{Name: cd.Name.Value, Available: cd.Name.Avail, Reason: cd.Reason})
	}
	return out, nil
}

func buildEmailForwardInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardInfoParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward info requires EmailForwardInfoParams")
	}
	return []byte(fmt.Sprintf(`<info xmlns="%s"><name>%s</name></info>`, emailForwardNamespace, xmlEscape(p.Name))), nil, nil
}

type wireEmailForwardInfoData struct {
	Name       string `xml:"name"`
	ROID       string `xml:"roid"`
	Status     []string `xml:"status>s"`
	Registrant string `xml:"registrant"`
	Contact    []struct {
		Type string `xml:"type,attr"`
		ID   string `xml:",chardata"`
	} `xml:"contact"`
	ForwardTo string `xml:"forwardTo"`
	ClID      string `xml:"clID"`
	CrID      string `xml:"crID"`
	CrDate    string `xml:"crDate"`
	ExDate    string `xml:"exDate"`
	AuthInfo  struct {
		Pw string `xml:"pw"`
	} `xml:"authInfo"`
}

func decodeEmailForwardInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireEmailForwardInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding email-forward info data: %w", err)
	}
	out := &request.EmailForwardInfoResult{
		Name:       data.Name,
		ROID:       data.ROID,
		Status:     data.Status,
		Registrant: data.Registrant,
		ForwardTo:  data.ForwardTo,
		ClID:       data.ClID,
		CrID:       data.CrID,
		CrDate:     parseEPPDate(data.CrDate),
		ExDate:     parseEPPDate(data.ExDate),
		AuthInfo:   data.AuthInfo.Pw,
	}
	for _, c := range data.Contact {
		out.Contacts = append(out.Contacts, request.DomainContact{Type: c.Type, ID: c.ID})
	}
	return out, nil
}

func buildEmailForwardCreate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardCreateParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward create requires EmailForwardCreateParams")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<create xmlns="%s"><name>%s</name>`, emailForwardNamespace, xmlEscape(p.Name))
	if p.Period > 0 {
		fmt.Fprintf(&buf, `<period unit="y">%d</period>`, p.Period)
	}
	fmt.Fprintf(&buf, "<forwardTo>%s</forwardTo>", xmlEscape(p.ForwardTo))
	if p.Registrant != "" {
		fmt.Fprintf(&buf, "<registrant>%s</registrant>", xmlEscape(p.Registrant))
	}
	for _, c := range p.Contacts {
		fmt.Fprintf(&buf, `<contact type="%s">%s</contact>`, c.Type, xmlEscape(c.ID))
	}
	fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.AuthInfo))
	buf.WriteString("</create>")
	return buf.Bytes(), nil, nil
}

type wireEmailForwardCreateData struct {
	Name   string `xml:"name"`
	CrDate string `xml:"crDate"`
	ExDate string `xml:"exDate"`
}

func decodeEmailForwardCreate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireEmailForwardCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding email-forward create data: %w", err)
	}
	return &request.EmailForwardCreateResult{Name: data.Name, CrDate: parseEPPDate(data.CrDate), ExDate: parseEPPDate(data.ExDate)}, nil
}

func buildEmailForwardUpdate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardUpdateParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward update requires EmailForwardUpdateParams")
	}
	if !p.HasChanges() {
		return nil, nil, epperr.Input("email-forward update must change at least one field")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<update xmlns="%s"><name>%s</name>`, emailForwardNamespace, xmlEscape(p.Name))
	writeDomainUpdateSet(&buf, "add", p.Add)
	writeDomainUpdateSet(&buf, "rem", p.Remove)
	hasChg := p.ForwardTo != "" || (p.Change != nil && (p.Change.Registrant != "" || p.Change.AuthInfo != ""))
	if hasChg {
		buf.WriteString("<chg>")
		if p.ForwardTo != "" {
			fmt.Fprintf(&buf, "<forwardTo>%s</forwardTo>", xmlEscape(p.ForwardTo))
		}
		if p.Change != nil {
			if p.Change.Registrant != "" {
				fmt.Fprintf(&buf, "<registrant>%s</registrant>", xmlEscape(p.Change.Registrant))
			}
			if p.Change.AuthInfo != "" {
				fmt.Fprintf(&buf, "<authInfo><pw>%s</pw></authInfo>", xmlEscape(p.Change.AuthInfo))
			}
		}
		buf.WriteString("</chg>")
	}
	buf.WriteString("</update>")
	return buf.Bytes(), nil, nil
}

func buildEmailForwardDelete(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardDeleteParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward delete requires EmailForwardDeleteParams")
	}
	return []byte(fmt.Sprintf(`<delete xmlns="%s"><name>%s</name></delete>`, emailForwardNamespace, xmlEscape(p.Name))), nil, nil
}

func buildEmailForwardRenew(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireEmailForward(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.EmailForwardRenewParams)
	if !ok {
		return nil, nil, epperr.Input("email-forward renew requires EmailForwardRenewParams")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<renew xmlns="%s"><name>%s</name><curExpDate>%s</curExpDate>`,
		emailForwardNamespace, xmlEscape(p.Name), formatEPPDate(p.CurrentExpiry))
	if p.Period > 0 {
		fmt.Fprintf(&buf, `<period unit="y">%d</period>`, p.Period)
	}
	buf.WriteString("</renew>")
	return buf.Bytes(), nil, nil
}

type wireEmailForwardRenewData struct {
	ExDate string `xml:"exDate"`
}

func decodeEmailForwardRenew(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireEmailForwardRenewData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding email-forward renew data: %w", err)
	}
	return &request.EmailForwardRenewResult{ExDate: parseEPPDate(data.ExDate)}, nil
}
