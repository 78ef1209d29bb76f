package router

import (
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

const nominetTagNamespace = "http://www.nominet.org.uk/epp/xml/std-tag-1.1"

func init() {
	register(request.KindNominetTagList, buildNominetTagList, decodeNominetTagList)
	register(request.KindNominetTagAccept, buildNominetTagAccept, nil)
	register(request.KindNominetTagReject, buildNominetTagReject, nil)
	register(request.KindNominetTagRelease, buildNominetTagRelease, nil)
}

func requireNominetTag(feats *features.FeatureSet) error {
	if !feats.Has(features.CapNominetTag) {
		return epperr.Unsupported("registry does not advertise the Nominet tag extension")
	}
	return nil
}

func buildNominetTagList(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireNominetTag(feats); err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<list xmlns="%s"/>`, nominetTagNamespace)), nil, nil
}

type wireNominetTagListData struct {
	Tag []string `xml:"tag"`
}

func decodeNominetTagList(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireNominetTagListData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding Nominet tag list data: %w", err)
	}
	return &request.NominetTagListResult{Tags: data.Tag}, nil
}

func buildNominetTagAccept(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireNominetTag(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.NominetTagAcceptParams)
	if !ok {
		return nil, nil, epperr.Input("Nominet tag accept requires NominetTagAcceptParams")
	}
	return []byte(fmt.Sprintf(`<update xmlns="%s"><case id="%s"><action op="accept"/></case></update>`,
		nominetTagNamespace, xmlEscape(p.CaseID))), nil, nil
}

func buildNominetTagReject(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireNominetTag(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.NominetTagRejectParams)
	if !ok {
		return nil, nil, epperr.Input("Nominet tag reject requires NominetTagRejectParams")
	}
	return []byte(fmt.Sprintf(`<update xmlns="%s"><case id="%s"><action op="reject"><reason>%s</reason></action></case></update>`,
		nominetTagNamespace, xmlEscape(p.CaseID), xmlEscape(p.Reason))), nil, nil
}

func buildNominetTagRelease(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if err := requireNominetTag(feats); err != nil {
		return nil, nil, err
	}
	p, ok := params.(*request.NominetTagReleaseParams)
	if !ok {
		return nil, nil, epperr.Input("Nominet tag release requires NominetTagReleaseParams")
	}
	return []byte(fmt.Sprintf(`<update xmlns="%s"><domainName>%s</domainName><tag>%s</tag></update>`,
		nominetTagNamespace, xmlEscape(p.Domain), xmlEscape(p.Tag))), nil, nil
}
