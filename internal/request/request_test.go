package request

import (
	"testing"

	"github.com/as207960/eppproxy/internal/epperr"
)

func TestRequestSendDeliversExactlyOnce(t *testing.T) {
	r := NewRequest(KindDomainInfo, &DomainInfoParams{Name: "example.com"})
	r.ClientTRID = "abc-123"
	r.Send(Response{Result: &DomainInfoResult{Name: "example.com"}})

	resp := <-r.Reply
	if resp.ClientTRID != "abc-123" {
		t.Errorf("ClientTRID = %q, want abc-123", resp.ClientTRID)
	}
	res, ok := resp.Result.(*DomainInfoResult)
	if !ok || res.Name != "example.com" {
		t.Errorf("unexpected result: %#v", resp.Result)
	}
}

func TestRequestFailDeliversError(t *testing.T) {
	r := NewRequest(KindDomainCreate, &DomainCreateParams{})
	r.Fail(epperr.NotReady("GreetingAwait"))

	resp := <-r.Reply
	if resp.Err == nil || resp.Err.Kind() != epperr.KindNotReady {
		t.Fatalf("expected NotReady error, got %#v", resp.Err)
	}
}

func TestHostUpdateEntryValid(t *testing.T) {
	cases := []struct {
		entry HostUpdateEntry
		want  bool
	}{
		{HostUpdateEntry{Addresses: []string{"192.0.2.1"}}, true},
		{HostUpdateEntry{Status: "ok"}, true},
		{HostUpdateEntry{}, false},
		{HostUpdateEntry{Addresses: []string{"192.0.2.1"}, Status: "ok"}, false},
	}
	for _, c := range cases {
		if got := c.entry.Valid(); got != c.want {
			t.Errorf("Valid(%+v) = %v, want %v", c.entry, got, c.want)
		}
	}
}

func TestDomainUpdateParamsHasChanges(t *testing.T) {
	var p DomainUpdateParams
	if p.HasChanges() {
		t.Fatal("empty update should report no changes")
	}
	p.Add = &DomainUpdateSet{Status: []string{"clientHold"}}
	if !p.HasChanges() {
		t.Fatal("update with Add set should report changes")
	}
}
