package router

import (
	"strings"
	"testing"

	"github.com/as207960/eppproxy/internal/codec/csvline"
	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

func plainProfile() *config.RegistryProfile {
	return &config.RegistryProfile{ID: "test", Host: "registry.example", Dialect: config.DialectEPP}
}

func TestBuildDomainCheckEnvelope(t *testing.T) {
	feats := features.Probe(nil, plainProfile())
	out, err := Build(request.KindDomainCheck, &request.DomainCheckParams{Names: []string{"example.com", "example.net"}}, feats, plainProfile(), "clt-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	for _, want := range []string{"<name>example.com</name>", "<name>example.net</name>", "<clTRID>clt-1</clTRID>"} {
		if !strings.Contains(s, want) {
			t.Errorf("envelope missing %q:\n%s", want, s)
		}
	}
}

func TestBuildWrongParamsType(t *testing.T) {
	feats := features.Probe(nil, plainProfile())
	_, err := Build(request.KindDomainCheck, &request.DomainInfoParams{Name: "example.com"}, feats, plainProfile(), "clt-1")
	if err == nil {
		t.Fatal("expected an error for mismatched params type")
	}
	if !epperr.Is(err, epperr.KindInput) {
		t.Errorf("expected KindInput, got %v", err)
	}
}

func TestDecodeDomainCheckRoundTrip(t *testing.T) {
	doc, err := eppxml.Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <domain:chkData xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
        <domain:cd>
          <domain:name avail="1">example.com</domain:name>
        </domain:cd>
        <domain:cd>
          <domain:name avail="0">example.net</domain:name>
          <domain:reason>In use</domain:reason>
        </domain:cd>
      </domain:chkData>
    </resData>
    <trID><clTRID>clt-1</clTRID><svTRID>srv-1</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("eppxml.Decode: %v", err)
	}

	feats := features.Probe(nil, plainProfile())
	resp, err := Decode(request.KindDomainCheck, doc.Response, feats)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	result, ok := resp.Result.(*request.DomainCheckResult)
	if !ok {
		t.Fatalf("Result type = %T, want *request.DomainCheckResult", resp.Result)
	}
	if len(result.Domains) != 2 {
		t.Fatalf("Domains = %+v", result.Domains)
	}
	if !result.Domains[0].Available || result.Domains[0].Name != "example.com" {
		t.Errorf("Domains[0] = %+v", result.Domains[0])
	}
	if result.Domains[1].Available || result.Domains[1].Reason != "In use" {
		t.Errorf("Domains[1] = %+v", result.Domains[1])
	}
	if resp.ServerTRID != "srv-1" {
		t.Errorf("ServerTRID = %q", resp.ServerTRID)
	}
}

func TestDecodeErrorMapsToRegistryKind(t *testing.T) {
	doc, err := eppxml.Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="2303"><msg>Object does not exist</msg></result>
    <trID><clTRID>clt-2</clTRID><svTRID>srv-2</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("eppxml.Decode: %v", err)
	}

	feats := features.Probe(nil, plainProfile())
	_, decodeErr := Decode(request.KindDomainCheck, doc.Response, feats)
	if decodeErr == nil {
		t.Fatal("expected a non-success response to produce an error")
	}
	eppErr := ToEppErr(decodeErr, doc.Response.ClientTRID)
	if eppErr.Kind() != epperr.KindRegistry {
		t.Errorf("mapped kind = %v, want %v", eppErr.Kind(), epperr.KindRegistry)
	}
}

func TestDecodeServerErrorMapsToServerInternal(t *testing.T) {
	doc, err := eppxml.Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="2500"><msg>Command failed</msg></result>
    <trID><clTRID>clt-3</clTRID><svTRID>srv-3</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("eppxml.Decode: %v", err)
	}

	feats := features.Probe(nil, plainProfile())
	_, decodeErr := Decode(request.KindDomainCheck, doc.Response, feats)
	eppErr := ToEppErr(decodeErr, doc.Response.ClientTRID)
	if eppErr.Kind() != epperr.KindServerInternal {
		t.Errorf("mapped kind = %v, want %v", eppErr.Kind(), epperr.KindServerInternal)
	}
}

func TestDACQueryRoundTrip(t *testing.T) {
	line, err := BuildDACQuery(request.KindDACDomainQuery, &request.DACDomainQueryParams{Domain: "example.co.uk"})
	if err != nil {
		t.Fatalf("BuildDACQuery: %v", err)
	}
	if line != "example.co.uk" {
		t.Fatalf("BuildDACQuery = %q, want bare domain name", line)
	}

	decoded, err := csvline.Decode("example.co.uk,Y,N,2015-01-02,2026-01-02,EXAMPLE-TAG")
	if err != nil {
		t.Fatalf("csvline.Decode: %v", err)
	}
	resp, err := DecodeDAC(request.KindDACDomainQuery, decoded)
	if err != nil {
		t.Fatalf("DecodeDAC: %v", err)
	}
	result, ok := resp.Result.(*request.DACDomainQueryResult)
	if !ok {
		t.Fatalf("Result type = %T", resp.Result)
	}
	if result.State != request.DACRegistered {
		t.Errorf("State = %v, want DACRegistered", result.State)
	}
	if result.Tag != "EXAMPLE-TAG" {
		t.Errorf("Tag = %q", result.Tag)
	}
}

func TestDACInvalidQueryIsRegistryError(t *testing.T) {
	decoded, err := csvline.Decode("example.co.uk,I")
	if err != nil {
		t.Fatalf("csvline.Decode: %v", err)
	}
	_, decodeErr := DecodeDAC(request.KindDACDomainQuery, decoded)
	if !epperr.Is(decodeErr, epperr.KindRegistry) {
		t.Errorf("expected KindRegistry for invalid DAC syntax, got %v", decodeErr)
	}
}

func TestBuildRejectsEmptyIdentifiers(t *testing.T) {
	feats := features.Probe(nil, plainProfile())
	cases := []struct {
		name   string
		kind   request.Kind
		params interface{}
	}{
		{"domain check", request.KindDomainCheck, &request.DomainCheckParams{Names: []string{"example.com", ""}}},
		{"domain info", request.KindDomainInfo, &request.DomainInfoParams{Name: ""}},
		{"domain create", request.KindDomainCreate, &request.DomainCreateParams{Name: ""}},
		{"host check", request.KindHostCheck, &request.HostCheckParams{Names: []string{""}}},
		{"host info", request.KindHostInfo, &request.HostInfoParams{Name: ""}},
		{"contact check", request.KindContactCheck, &request.ContactCheckParams{IDs: []string{""}}},
		{"contact info", request.KindContactInfo, &request.ContactInfoParams{ID: ""}},
	}
	for _, c := range cases {
		_, err := Build(c.kind, c.params, feats, plainProfile(), "clt-1")
		if !epperr.Is(err, epperr.KindInput) {
			t.Errorf("%s: Build with empty identifier = %v, want KindInput", c.name, err)
		}
	}
}

func TestBuildDACQueryUnsupportedKind(t *testing.T) {
	_, err := BuildDACQuery(request.KindDomainCheck, &request.DomainCheckParams{})
	if !epperr.Is(err, epperr.KindUnsupported) {
		t.Errorf("expected KindUnsupported, got %v", err)
	}
}
