package correlator

import (
	"testing"
	"time"

	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/request"
)

func TestInsertMatch(t *testing.T) {
	tbl := NewTable()
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{Name: "example.com"})
	if err := tbl.Insert(Key("t1"), req); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tbl.Len())
	}
	got, ok := tbl.Match(Key("t1"))
	if !ok || got != req {
		t.Fatalf("Match returned (%v, %v)", got, ok)
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len after match = %d, want 0", tbl.Len())
	}
}

func TestMatchUnknownKeyIsUnsolicited(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Match(Key("nope"))
	if ok {
		t.Fatal("expected no match for unknown key")
	}
}

func TestInsertDuplicateKeyRejected(t *testing.T) {
	tbl := NewTable()
	req1 := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{})
	req2 := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{})
	if err := tbl.Insert(Key("dup"), req1); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := tbl.Insert(Key("dup"), req2); err != ErrDuplicateKey {
		t.Fatalf("second Insert error = %v, want ErrDuplicateKey", err)
	}
}

func TestDrainTimedOutFailsWithTimeout(t *testing.T) {
	tbl := NewTable()
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{})
	tbl.Insert(Key("t1"), req)
	time.Sleep(5 * time.Millisecond)

	n := tbl.DrainTimedOut(time.Millisecond)
	if n != 1 {
		t.Fatalf("drained %d, want 1", n)
	}
	resp := <-req.Reply
	if resp.Err == nil || resp.Err.Kind() != epperr.KindTimeout {
		t.Fatalf("expected Timeout error, got %#v", resp.Err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len after drain = %d, want 0", tbl.Len())
	}
}

func TestDrainAllFailsWithNotReady(t *testing.T) {
	tbl := NewTable()
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{})
	tbl.Insert(Key("t1"), req)

	n := tbl.DrainAll("Closing")
	if n != 1 {
		t.Fatalf("drained %d, want 1", n)
	}
	resp := <-req.Reply
	if resp.Err == nil || resp.Err.Kind() != epperr.KindNotReady {
		t.Fatalf("expected NotReady error, got %#v", resp.Err)
	}
}

func TestDACKeyDistinguishesEnvironment(t *testing.T) {
	a := DACKey("realtime", "example.com")
	b := DACKey("timedelay", "example.com")
	if a == b {
		t.Fatal("keys for different environments must differ")
	}
}
