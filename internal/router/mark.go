package router

import (
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/codec/tmchxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

func init() {
	register(request.KindMarkCheck, buildMarkCheck, decodeMarkCheck)
	register(request.KindMarkInfo, buildMarkInfo, decodeMarkInfo)
	register(request.KindMarkCreate, buildMarkCreate, decodeMarkCreate)
	register(request.KindMarkRenew, buildMarkRenew, decodeMarkRenew)
	register(request.KindMarkUpdate, buildMarkUpdate, nil)
	register(request.KindMarkTransfer, buildMarkTransfer, decodeMarkTransfer)
	register(request.KindTrexActivate, buildTrexActivate, decodeTrexActivate)
	register(request.KindTrexRenew, buildTrexRenew, decodeTrexRenew)
}

func buildMarkCheck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkCheckParams)
	if !ok {
		return nil, nil, epperr.Input("mark check requires MarkCheckParams")
	}
	return tmchxml.BuildMarkCheckBody(p.SMDIDs), nil, nil
}

type wireMarkCheckData struct {
	CD []struct {
		ID struct {
			Avail bool   `xml:"avail,attr"`
			Value string `xml:",chardata"`
		} `xml:"id"`
		Reason string `xml:"reason"`
	} `xml:"cd"`
}

func decodeMarkCheck(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMarkCheckData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding mark:chkData: %w", err)
	}
	out := &request.MarkCheckResult{}
	for _, cd := range data.CD {
		out.Marks = append(out.Marks, request.MarkAvailability{SMDID: cd.ID.Value, Available: cd.ID.Avail, Reason: cd.Reason})
	}
	return out, nil
}

func buildMarkInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkInfoParams)
	if !ok {
		return nil, nil, epperr.Input("mark info requires MarkInfoParams")
	}
	return tmchxml.BuildMarkInfoBody(p.SMDID), nil, nil
}

type wireMarkInfoData struct {
	ID     string   `xml:"id"`
	Status []string `xml:"status>s"`
	Name   string   `xml:"markName"`
	Label  []string `xml:"label"`
	CrDate string   `xml:"crDate"`
	ExDate string   `xml:"exDate"`
}

func decodeMarkInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMarkInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding mark:infData: %w", err)
	}
	return &request.MarkInfoResult{
		SMDID:    data.ID,
		Status:   data.Status,
		MarkName: data.Name,
		Labels:   data.Label,
		CrDate:   parseEPPDate(data.CrDate),
		ExDate:   parseEPPDate(data.ExDate),
	}, nil
}

func buildMarkCreate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkCreateParams)
	if !ok {
		return nil, nil, epperr.Input("mark create requires MarkCreateParams")
	}
	var buf []byte
	buf = append(buf, fmt.Sprintf(`<create xmlns="%s"><id>%s</id><markName>%s</markName>`,
		tmchxml.Namespace, xmlEscape(p.SMDID), xmlEscape(p.MarkName))...)
	for _, label := range p.Labels {
		buf = append(buf, fmt.Sprintf("<label>%s</label>", xmlEscape(label))...)
	}
	if p.Period > 0 {
		buf = append(buf, fmt.Sprintf(`<period unit="y">%d</period>`, p.Period)...)
	}
	buf = append(buf, "</create>"...)
	return buf, nil, nil
}

type wireMarkCreateData struct {
	ID     string `xml:"id"`
	CrDate string `xml:"crDate"`
	ExDate string `xml:"exDate"`
}

func decodeMarkCreate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMarkCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding mark:creData: %w", err)
	}
	return &request.MarkCreateResult{SMDID: data.ID, CrDate: parseEPPDate(data.CrDate), ExDate: parseEPPDate(data.ExDate)}, nil
}

func buildMarkRenew(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkRenewParams)
	if !ok {
		return nil, nil, epperr.Input("mark renew requires MarkRenewParams")
	}
	body := fmt.Sprintf(`<renew xmlns="%s"><id>%s</id>`, tmchxml.Namespace, xmlEscape(p.SMDID))
	if p.Period > 0 {
		body += fmt.Sprintf(`<period unit="y">%d</period>`, p.Period)
	}
	body += "</renew>"
	return []byte(body), nil, nil
}

type wireMarkRenewData struct {
	ExDate string `xml:"exDate"`
}

func decodeMarkRenew(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMarkRenewData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding mark:renData: %w", err)
	}
	return &request.MarkRenewResult{ExDate: parseEPPDate(data.ExDate)}, nil
}

func buildMarkUpdate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkUpdateParams)
	if !ok {
		return nil, nil, epperr.Input("mark update requires MarkUpdateParams")
	}
	if !p.HasChanges() {
		return nil, nil, epperr.Input("mark update must change at least one field")
	}
	body := fmt.Sprintf(`<update xmlns="%s"><id>%s</id><chg>`, tmchxml.Namespace, xmlEscape(p.SMDID))
	for _, label := range p.Labels {
		body += fmt.Sprintf("<label>%s</label>", xmlEscape(label))
	}
	body += "</chg></update>"
	return []byte(body), nil, nil
}

func buildMarkTransfer(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MarkTransferParams)
	if !ok {
		return nil, nil, epperr.Input("mark transfer requires MarkTransferParams")
	}
	return []byte(fmt.Sprintf(`<transfer xmlns="%s" op="request"><id>%s</id></transfer>`, tmchxml.Namespace, xmlEscape(p.SMDID))), nil, nil
}

type wireMarkTransferData struct {
	TrStatus string `xml:"trStatus"`
}

func decodeMarkTransfer(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMarkTransferData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding mark:trnData: %w", err)
	}
	return &request.MarkTransferResult{Status: data.TrStatus}, nil
}

// buildTrexActivate wraps a minimal domain create naming only the
// TLD-qualified placeholder name, since the Trex grant itself
// determines which domain the registrant is entitled to register; the
// caller supplies the concrete name via a later domain-create call
// against the granted TLD (original_source's trex.rs).
func buildTrexActivate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.TrexActivateParams)
	if !ok {
		return nil, nil, epperr.Input("trex activate requires TrexActivateParams")
	}
	if !feats.Has(features.CapTrex) {
		return nil, nil, epperr.Unsupported("registry does not advertise the Trex extension")
	}
	domainBody := []byte(fmt.Sprintf(`<create xmlns="%s"><name>placeholder.%s</name></create>`, domainNamespace, xmlEscape(p.TLD)))
	return domainBody, [][]byte{tmchxml.BuildTrexActivateExt(p.SMDID)}, nil
}

func decodeTrexActivate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding trex activate response: %w", err)
	}
	return &request.TrexActivateResult{ExDate: parseEPPDate(data.ExDate)}, nil
}

func buildTrexRenew(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.TrexRenewParams)
	if !ok {
		return nil, nil, epperr.Input("trex renew requires TrexRenewParams")
	}
	if !feats.Has(features.CapTrex) {
		return nil, nil, epperr.Unsupported("registry does not advertise the Trex extension")
	}
	domainBody := []byte(fmt.Sprintf(`<renew xmlns="%s"><name>placeholder.%s</name></renew>`, domainNamespace, xmlEscape(p.TLD)))
	return domainBody, [][]byte{tmchxml.BuildTrexRenewExt(p.SMDID)}, nil
}

func decodeTrexRenew(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireDomainRenewData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding trex renew response: %w", err)
	}
	return &request.TrexRenewResult{ExDate: parseEPPDate(data.ExDate)}, nil
}
