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

func init() {
	register(request.KindMaintenanceList, buildMaintenanceList, decodeMaintenanceList)
	register(request.KindMaintenanceInfo, buildMaintenanceInfo, decodeMaintenanceInfo)
}

func maintenanceNamespace(feats *features.FeatureSet) (string, error) {
	if feats.Has(features.CapMaintenance03) {
		return maintenanceNS03, nil
	}
	if feats.Has(features.CapMaintenance02) {
		return "urn:ietf:params:xml:ns:epp:maintenance-0.2", nil
	}
	return "", epperr.Unsupported("registry does not advertise a maintenance-notifications extension")
}

func buildMaintenanceList(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	ns, err := maintenanceNamespace(feats)
	if err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<list xmlns="%s"/>`, ns)), nil, nil
}

type wireMaintenanceListData struct {
	Item []struct {
		ID    string `xml:"id"`
		Start string `xml:"start"`
		End   string `xml:"end"`
	} `xml:"maintenance"`
}

func decodeMaintenanceList(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMaintenanceListData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding maintenance list data: %w", err)
	}
	out := &request.MaintenanceListResult{}
	for _, item := range data.Item {
		out.Items = append(out.Items, request.MaintenanceSummary{ID: item.ID, Start: parseEPPDate(item.Start), End: parseEPPDate(item.End)})
	}
	return out, nil
}

func buildMaintenanceInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.MaintenanceInfoParams)
	if !ok {
		return nil, nil, epperr.Input("maintenance info requires MaintenanceInfoParams")
	}
	ns, err := maintenanceNamespace(feats)
	if err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<info xmlns="%s"><id>%s</id></info>`, ns, xmlEscape(p.ID))), nil, nil
}

type wireMaintenanceInfoData struct {
	ID          string   `xml:"id"`
	Environment string   `xml:"environment"`
	Start       string   `xml:"start"`
	End         string   `xml:"end"`
	System      []string `xml:"system"`
	Detail      string   `xml:"description"`
}

func decodeMaintenanceInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireMaintenanceInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding maintenance info data: %w", err)
	}
	return &request.MaintenanceInfoResult{
		ID:          data.ID,
		Environment: data.Environment,
		Start:       parseEPPDate(data.Start),
		End:         parseEPPDate(data.End),
		Systems:     data.System,
		Detail:      data.Detail,
	}, nil
}
