package router

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

const hostNamespace = "urn:ietf:params:xml:ns:host-1.0"

func init() {
	register(request.KindHostCheck, buildHostCheck, decodeHostCheck)
	register(request.KindHostInfo, buildHostInfo, decodeHostInfo)
	register(request.KindHostCreate, buildHostCreate, decodeHostCreate)
	register(request.KindHostUpdate, buildHostUpdate, nil)
	register(request.KindHostDelete, buildHostDelete, nil)
}

func hostAddrVersion(addr string) string {
	if strings.Contains(addr, ":") {
		return "v6"
	}
	return "v4"
}

func buildHostCheck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.HostCheckParams)
	if !ok {
		return nil, nil, epperr.Input("host check requires HostCheckParams")
	}
	if err := requireNames("host name", p.Names); err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<check xmlns="%s">`, hostNamespace)
	for _, name := range p.Names {
		fmt.Fprintf(&buf, "<name>%s</name>", xmlEscape(name))
	}
	buf.WriteString("</check>")
	return buf.Bytes(), nil, nil
}

type wireHostCheckData struct {
	CD []struct {
		Name struct {
			Avail bool   `xml:"avail,attr"`
			Value string `xml:",chardata"`
		} `xml:"name"`
		Reason string `xml:"reason"`
	} `xml:"cd"`
}

func decodeHostCheck(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireHostCheckData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding host:chkData: %w", err)
	}
	out := &request.HostCheckResult{}
	for _, cd := range data.CD {
		out.Hosts = append(out.Hosts, request.HostAvailability{Name: cd.Name.Value, Available: cd.Name.Avail, Reason: cd.Reason})
	}
	return out, nil
}

func buildHostInfo(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.HostInfoParams)
	if !ok {
		return nil, nil, epperr.Input("host info requires HostInfoParams")
	}
	if err := requireName("host name", p.Name); err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<info xmlns="%s"><name>%s</name></info>`, hostNamespace, xmlEscape(p.Name))), nil, nil
}

type wireHostInfoData struct {
	Name   string   `xml:"name"`
	ROID   string   `xml:"roid"`
	Status []string `xml:"status>s"`
	Addr   []string `xml:"addr"`
	ClID   string   `xml:"clID"`
	CrID   string   `xml:"crID"`
	CrDate string   `xml:"crDate"`
	UpID   string   `xml:"upID"`
	UpDate string   `xml:"upDate"`
	TrDate string   `xml:"trDate"`
}

func decodeHostInfo(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireHostInfoData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding host:infData: %w", err)
	}
	return &request.HostInfoResult{
		Name:      data.Name,
		ROID:      data.ROID,
		Status:    data.Status,
		Addresses: data.Addr,
		ClID:      data.ClID,
		CrID:      data.CrID,
		CrDate:    parseEPPDate(data.CrDate),
		UpID:      data.UpID,
		UpDate:    parseEPPDate(data.UpDate),
		TrDate:    parseEPPDate(data.TrDate),
	}, nil
}

func buildHostCreate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.HostCreateParams)
	if !ok {
		return nil, nil, epperr.Input("host create requires HostCreateParams")
	}
	if err := requireName("host name", p.Name); err != nil {
		return nil, nil, err
	}
	for _, a := range p.Addresses {
		if len(a) < request.MinHostAddrLen || len(a) > request.MaxHostAddrLen {
			return nil, nil, epperr.Input("host address %q outside [%d,%d]", a, request.MinHostAddrLen, request.MaxHostAddrLen)
		}
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<create xmlns="%s"><name>%s</name>`, hostNamespace, xmlEscape(p.Name))
	for _, a := range p.Addresses {
		fmt.Fprintf(&buf, `<addr ip="%s">%s</addr>`, hostAddrVersion(a), xmlEscape(a))
	}
	buf.WriteString("</create>")
	return buf.Bytes(), nil, nil
}

type wireHostCreateData struct {
	Name   string `xml:"name"`
	CrDate string `xml:"crDate"`
}

func decodeHostCreate(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	var data wireHostCreateData
	if err := xml.Unmarshal(resp.ResData, &data); err != nil {
		return nil, fmt.Errorf("router: decoding host:creData: %w", err)
	}
	return &request.HostCreateResult{Name: data.Name, CrDate: parseEPPDate(data.CrDate)}, nil
}

// sortHostUpdateEntries stably orders address-entries before
// status-entries, mirroring request.HostUpdateEntry's unexported
// discriminator so repeated calls with the same logical entries produce
// byte-identical XML (spec.md §4.6).
func sortHostUpdateEntries(entries []request.HostUpdateEntry) []request.HostUpdateEntry {
	out := make([]request.HostUpdateEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return entryRank(out[i]) < entryRank(out[j])
	})
	return out
}

func entryRank(e request.HostUpdateEntry) int {
	if len(e.Addresses) > 0 {
		return 0
	}
	return 1
}

func buildHostUpdate(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.HostUpdateParams)
	if !ok {
		return nil, nil, epperr.Input("host update requires HostUpdateParams")
	}
	if err := requireName("host name", p.Name); err != nil {
		return nil, nil, err
	}
	if !p.HasChanges() {
		return nil, nil, epperr.Input("host update must change at least one field")
	}
	for _, e := range append(append([]request.HostUpdateEntry{}, p.Add...), p.Remove...) {
		if !e.Valid() {
			return nil, nil, epperr.Input("host update entry must set exactly one of addresses/status")
		}
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<update xmlns="%s"><name>%s</name>`, hostNamespace, xmlEscape(p.Name))
	writeHostUpdateSet(&buf, "add", sortHostUpdateEntries(p.Add))
	writeHostUpdateSet(&buf, "rem", sortHostUpdateEntries(p.Remove))
	if p.Change != nil && p.Change.Name != "" {
		fmt.Fprintf(&buf, "<chg><name>%s</name></chg>", xmlEscape(p.Change.Name))
	}
	buf.WriteString("</update>")
	return buf.Bytes(), nil, nil
}

func writeHostUpdateSet(buf *bytes.Buffer, tag string, entries []request.HostUpdateEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(buf, "<%s>", tag)
	for _, e := range entries {
		for _, a := range e.Addresses {
			fmt.Fprintf(buf, `<addr ip="%s">%s</addr>`, hostAddrVersion(a), xmlEscape(a))
		}
		if e.Status != "" {
			fmt.Fprintf(buf, `<status s="%s"/>`, e.Status)
		}
	}
	fmt.Fprintf(buf, "</%s>", tag)
}

func buildHostDelete(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.HostDeleteParams)
	if !ok {
		return nil, nil, epperr.Input("host delete requires HostDeleteParams")
	}
	if err := requireName("host name", p.Name); err != nil {
		return nil, nil, err
	}
	return []byte(fmt.Sprintf(`<delete xmlns="%s"><name>%s</name></delete>`, hostNamespace, xmlEscape(p.Name))), nil, nil
}
