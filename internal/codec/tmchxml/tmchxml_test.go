package tmchxml

import (
	"strings"
	"testing"
)

func TestEncodeLoginDeclaresMarkNamespace(t *testing.T) {
	out, err := EncodeLogin("clid", "pw", "t1", false)
	if err != nil {
		t.Fatalf("EncodeLogin: %v", err)
	}
	if !strings.Contains(string(out), Namespace) {
		t.Errorf("login missing mark namespace:\n%s", out)
	}
}

func TestEncodeLoginWithTrex(t *testing.T) {
	out, err := EncodeLogin("clid", "pw", "t1", true)
	if err != nil {
		t.Fatalf("EncodeLogin: %v", err)
	}
	if !strings.Contains(string(out), TrexNamespace) {
		t.Errorf("login missing trex namespace:\n%s", out)
	}
}

func TestEncodeMarkCheck(t *testing.T) {
	out, err := EncodeMarkCheck([]string{"smd-1", "smd-2"}, "t2")
	if err != nil {
		t.Fatalf("EncodeMarkCheck: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<id>smd-1</id>") || !strings.Contains(s, "<id>smd-2</id>") {
		t.Errorf("missing ids:\n%s", s)
	}
}

func TestDecodeDelegatesToEppxml(t *testing.T) {
	doc, err := Decode([]byte(`<epp xmlns="urn:ietf:params:xml:ns:epp-1.0"><response><result code="1000"><msg>ok</msg></result><trID><clTRID>t</clTRID><svTRID>s</svTRID></trID></response></epp>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !doc.Response.Success() {
		t.Error("expected success")
	}
}
