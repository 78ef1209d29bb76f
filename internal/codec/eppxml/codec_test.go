package eppxml

import (
	"strings"
	"testing"
)

func TestDecodeGreeting(t *testing.T) {
	doc, err := Decode([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <greeting>
    <svID>Example EPP server</svID>
    <svDate>2026-07-31T00:00:00Z</svDate>
    <svcMenu>
      <objURI>urn:ietf:params:xml:ns:domain-1.0</objURI>
      <objURI>urn:ietf:params:xml:ns:contact-1.0</objURI>
      <svcExtension>
        <extURI>urn:ietf:params:xml:ns:fee-1.0</extURI>
        <extURI>urn:ietf:params:xml:ns:fee-0.9</extURI>
      </svcExtension>
    </svcMenu>
  </greeting>
</epp>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Kind != DocGreeting {
		t.Fatalf("Kind = %v, want DocGreeting", doc.Kind)
	}
	if len(doc.Greeting.ServiceURIs) != 2 {
		t.Errorf("ServiceURIs = %v", doc.Greeting.ServiceURIs)
	}
	if len(doc.Greeting.ExtensionURIs) != 2 || doc.Greeting.ExtensionURIs[0] != "urn:ietf:params:xml:ns:fee-1.0" {
		t.Errorf("ExtensionURIs = %v", doc.Greeting.ExtensionURIs)
	}
}

func TestDecodeResponseSuccess(t *testing.T) {
	doc, err := Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <trID><clTRID>abc-123</clTRID><svTRID>srv-456</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Kind != DocResponse {
		t.Fatalf("Kind = %v, want DocResponse", doc.Kind)
	}
	if !doc.Response.Success() {
		t.Error("expected Success() true for code 1000")
	}
	if doc.Response.ClientTRID != "abc-123" || doc.Response.ServerTRID != "srv-456" {
		t.Errorf("trID = %+v", doc.Response)
	}
}

func TestDecodeResponsePending(t *testing.T) {
	doc, err := Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1001"><msg>Command completed successfully; action pending</msg></result>
    <trID><clTRID>t1</clTRID><svTRID>s1</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !doc.Response.Pending() {
		t.Error("expected Pending() true for code 1001")
	}
}

func TestDecodeErrorResult(t *testing.T) {
	doc, err := Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="2303">
      <msg>Object does not exist</msg>
      <extValue><value>domain name</value></extValue>
    </result>
    <trID><clTRID>t2</clTRID><svTRID>s2</svTRID></trID>
  </response>
</epp>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Response.Success() {
		t.Error("code 2303 should not be success")
	}
	if len(doc.Response.Results[0].Values) != 1 || doc.Response.Results[0].Values[0] != "domain name" {
		t.Errorf("extValue = %v", doc.Response.Results[0].Values)
	}
}

func TestEncodeLoginIncludesCredentialsAndURIs(t *testing.T) {
	out, err := EncodeLogin(LoginParams{
		ClientID:      "myclid",
		Password:      "s3cr3t",
		ClTRID:        "abc-1",
		ObjectURIs:    []string{"urn:ietf:params:xml:ns:domain-1.0"},
		ExtensionURIs: []string{"urn:ietf:params:xml:ns:fee-1.0"},
	})
	if err != nil {
		t.Fatalf("EncodeLogin: %v", err)
	}
	s := string(out)
	for _, want := range []string{"<clID>myclid</clID>", "<pw>s3cr3t</pw>", "<clTRID>abc-1</clTRID>", "domain-1.0", "fee-1.0"} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded login missing %q in:\n%s", want, s)
		}
	}
}

func TestEncodeLogout(t *testing.T) {
	out, err := EncodeLogout("trid-9")
	if err != nil {
		t.Fatalf("EncodeLogout: %v", err)
	}
	s := string(out)
	for _, want := range []string{"<logout/>", "<clTRID>trid-9</clTRID>"} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded logout missing %q in:\n%s", want, s)
		}
	}
}

func TestEncodeLoginWithLoginSecurity(t *testing.T) {
	out, err := EncodeLogin(LoginParams{
		ClientID:      "myclid",
		Password:      "s3cr3t",
		NewPassword:   "newpw",
		ClTRID:        "abc-2",
		ObjectURIs:    []string{"urn:ietf:params:xml:ns:domain-1.0"},
		LoginSecurity: true,
		UserAgent: &UserAgent{
			ClientProduct: "eppproxy",
			ClientVersion: "1.0",
			OS:            "linux",
		},
	})
	if err != nil {
		t.Fatalf("EncodeLogin: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`<loginSec:loginSec xmlns:loginSec="urn:ietf:params:xml:ns:epp:loginSec-1.0">`,
		"<loginSec:app>eppproxy</loginSec:app>",
		"<loginSec:tech>1.0</loginSec:tech>",
		"<loginSec:os>linux</loginSec:os>",
		"<loginSec:pw>s3cr3t</loginSec:pw>",
		"<loginSec:newPW>newpw</loginSec:newPW>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded login missing %q in:\n%s", want, s)
		}
	}
}

func TestEncodeLoginWithoutLoginSecurityOmitsExtension(t *testing.T) {
	out, err := EncodeLogin(LoginParams{
		ClientID:   "myclid",
		Password:   "s3cr3t",
		ClTRID:     "abc-3",
		ObjectURIs: []string{"urn:ietf:params:xml:ns:domain-1.0"},
	})
	if err != nil {
		t.Fatalf("EncodeLogin: %v", err)
	}
	if strings.Contains(string(out), "loginSec") {
		t.Errorf("encoded login should omit loginSec extension when not advertised:\n%s", out)
	}
}

func TestEncodeCommandWithExtension(t *testing.T) {
	body := []byte(`<check xmlns="urn:ietf:params:xml:ns:domain-1.0"><name>example.com</name></check>`)
	ext := []byte(`<fee:check xmlns:fee="urn:ietf:params:xml:ns:fee-1.0"><fee:currency>USD</fee:currency></fee:check>`)
	out, err := EncodeCommand(body, [][]byte{ext}, "trid-1")
	if err != nil {
		t.Fatalf("EncodeCommand: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<extension>") || !strings.Contains(s, "fee:check") {
		t.Errorf("missing extension block:\n%s", s)
	}
	if !strings.Contains(s, "<clTRID>trid-1</clTRID>") {
		t.Errorf("missing clTRID:\n%s", s)
	}
}

func TestDecodeRejectsUnrecognizedDocument(t *testing.T) {
	_, err := Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><unknownThing/></epp>`))
	if err == nil {
		t.Fatal("expected error for unrecognized document")
	}
}
