package rpcapi

import (
	"context"
	"testing"

	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

type fakeDispatcher struct {
	respond func(req *request.Request)
}

func (f *fakeDispatcher) Submit(registryID string, req *request.Request) {
	f.respond(req)
}

func testLogger() *log.KVLogger {
	return log.New(discard{}, "rpcapi-test").With()
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestDomainCheckSuccess(t *testing.T) {
	disp := &fakeDispatcher{respond: func(req *request.Request) {
		req.Send(request.Response{Result: &request.DomainCheckResult{
			Domains: []request.DomainAvailability{{Name: "example.com", Available: true}},
		}})
	}}
	srv := New(disp, nil, testLogger())

	resp, err := srv.DomainCheck(context.Background(), &pb.DomainCheckRequest{RegistryID: "reg1", Names: []string{"example.com"}})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected application error: %+v", resp.Error)
	}
	if len(resp.Domains) != 1 || resp.Domains[0].Name != "example.com" || !resp.Domains[0].Available {
		t.Fatalf("unexpected domains: %+v", resp.Domains)
	}
}

func TestDomainCheckApplicationError(t *testing.T) {
	disp := &fakeDispatcher{respond: func(req *request.Request) {
		req.Fail(epperr.NotReady("disconnected"))
	}}
	srv := New(disp, nil, testLogger())

	resp, err := srv.DomainCheck(context.Background(), &pb.DomainCheckRequest{RegistryID: "reg1", Names: []string{"example.com"}})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Error == nil || resp.Error.Kind != "not_ready" {
		t.Fatalf("expected not_ready error, got %+v", resp.Error)
	}
}

func TestExecuteUnknownKind(t *testing.T) {
	disp := &fakeDispatcher{respond: func(req *request.Request) {
		t.Fatalf("should not reach the dispatcher for an unrecognized kind")
	}}
	srv := New(disp, nil, testLogger())

	resp, err := srv.Execute(context.Background(), &pb.ExecuteRequest{RegistryID: "reg1", Kind: "not-a-real-kind"})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Error == nil || resp.Error.Kind != "input" {
		t.Fatalf("expected input error, got %+v", resp.Error)
	}
}

func TestExecuteRoutesByKindName(t *testing.T) {
	var gotKind request.Kind
	disp := &fakeDispatcher{respond: func(req *request.Request) {
		gotKind = req.Kind
		req.Send(request.Response{Result: &request.BalanceResult{}})
	}}
	srv := New(disp, nil, testLogger())

	_, err := srv.Execute(context.Background(), &pb.ExecuteRequest{RegistryID: "reg1", Kind: "balance"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKind != request.KindBalance {
		t.Fatalf("expected KindBalance, got %v", gotKind)
	}
}
