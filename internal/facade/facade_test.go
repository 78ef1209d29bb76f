package facade

import (
	"io"
	"testing"
	"time"

	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
)

type fakeRegistry struct {
	submitted []*request.Request
}

func (f *fakeRegistry) Submit(req *request.Request) {
	f.submitted = append(f.submitted, req)
	req.Send(request.Response{Result: &request.DomainInfoResult{}})
}

func testLogger() *log.KVLogger {
	return log.New(io.Discard, "eppproxy-test").With()
}

func newTestFacade(t *testing.T, dialect config.Dialect) (*Facade, *fakeRegistry) {
	t.Helper()
	f := New(testLogger())
	reg := &fakeRegistry{}
	f.AddRegistry(&config.RegistryProfile{ID: "reg1", Dialect: dialect}, reg)
	go f.Run()
	t.Cleanup(f.Close)
	return f, reg
}

func TestSubmitRoutesToRegistry(t *testing.T) {
	f, reg := newTestFacade(t, config.DialectEPP)
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{Name: "example.com"})
	f.Submit("reg1", req)

	select {
	case resp := <-req.Reply:
		if resp.Err != nil {
			t.Fatalf("unexpected error: %v", resp.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for reply")
	}
	if len(reg.submitted) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(reg.submitted))
	}
}

func TestSubmitUnknownRegistry(t *testing.T) {
	f, _ := newTestFacade(t, config.DialectEPP)
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{Name: "example.com"})
	f.Submit("does-not-exist", req)

	resp := <-req.Reply
	if resp.Err == nil || resp.Err.Kind() != epperr.KindUnsupported {
		t.Fatalf("expected unsupported error, got %v", resp.Err)
	}
}

func TestSubmitRejectsKindForDialectWithoutSession(t *testing.T) {
	f, reg := newTestFacade(t, config.DialectDAC)
	req := request.NewRequest(request.KindDomainInfo, &request.DomainInfoParams{Name: "example.com"})
	f.Submit("reg1", req)

	resp := <-req.Reply
	if resp.Err == nil || resp.Err.Kind() != epperr.KindUnsupported {
		t.Fatalf("expected unsupported error, got %v", resp.Err)
	}
	if len(reg.submitted) != 0 {
		t.Fatal("request should never have reached the registry")
	}
}

func TestSubmitAllowsDACKindOnDACDialect(t *testing.T) {
	f, reg := newTestFacade(t, config.DialectDAC)
	req := request.NewRequest(request.KindDACDomainQuery, &request.DACDomainQueryParams{})
	f.Submit("reg1", req)

	<-req.Reply
	if len(reg.submitted) != 1 {
		t.Fatalf("expected request to reach the registry, got %d submissions", len(reg.submitted))
	}
}
