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

const isnicNamespace = "https://isnic.is/epp/isnic-1.0"

func init() {
	register(request.KindISNICBulkVerify, buildISNICBulkVerify, decodeISNICBulkVerify)
}

func buildISNICBulkVerify(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	if !feats.Has(features.CapISNIC) {
		return nil, nil, epperr.Unsupported("registry does not advertise the ISNIC extension")
	}
	p, ok := params.(*request.ISNICBulkVerifyParams)
	if !ok {
		return nil, nil, epperr.Input("ISNIC bulk verify requires ISNICBulkVerifyParams")
	}
	var buf []byte
	buf = append(buf, fmt.Sprintf(`<verify xmlns="%s">`, isnicNamespace)...)
	for _, id := range p.ContactIDs {
		buf = append(buf, fmt.Sprintf("<id>%s</id>", xmlEscape(id))...)
	}
	buf = append(buf, "</verify>"...)
	return buf, nil, nil
}

type wireISNICVerifyData struct {
	Result []struct {
		ID       string `xml:"id,attr"`
		Verified bool   `xml:"verified,attr"`
	} `xml:"result"`
}

func decodeISNICBulkVerify(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireISNICVerifyData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding ISNIC verify data: %w", err)
	}
	out := &request.ISNICBulkVerifyResult{Verified: make(map[string]bool, len(data.Result))}
	for _, r := range data.Result {
		out.Verified[r.ID] = r.Verified
	}
	return out, nil
}
