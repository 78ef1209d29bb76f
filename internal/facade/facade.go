// Package facade implements C7: the single fan-in entry point external
// callers use to reach any configured registry session. One bounded
// channel (capacity 16, spec.md §4.7) receives envelopes carrying a
// registry id and a *request.Request; a dispatch goroutine routes each
// to the matching session's own Submit, or answers "unsupported"
// immediately when the request's kind has no business on that
// registry's dialect, without waiting for the session to reach Ready.
package facade

import (
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
)

// capacity is the facade's single request channel depth (spec.md §4.7:
// "channel capacity is bounded (reference: 16); senders wait when
// full").
const capacity = 16

// Registry is anything the facade can route a request to. *session.Session
// satisfies this; tests substitute a fake.
type Registry interface {
	Submit(req *request.Request)
}

// envelope pairs an inbound request with the registry id the caller
// selected.
type envelope struct {
	registryID string
	req        *request.Request
}

// Facade owns the single request channel and the registry-id → session
// routing table. It holds no per-request state of its own: once an
// envelope is routed, the target session and the request's own reply
// channel own the rest of the lifecycle.
type Facade struct {
	log *log.KVLogger

	reqCh chan envelope
	dieCh chan struct{}

	registries map[string]Registry
	dialects   map[string]config.Dialect
}

// New constructs a Facade. Register each configured registry with
// AddRegistry before calling Run.
func New(logger *log.KVLogger) *Facade {
	return &Facade{
		log:        logger,
		reqCh:      make(chan envelope, capacity),
		dieCh:      make(chan struct{}),
		registries: make(map[string]Registry),
		dialects:   make(map[string]config.Dialect),
	}
}

// AddRegistry registers a session (or test fake) under its profile id,
// along with the dialect used for the unknown-operation/dialect
// rejection rule.
func (f *Facade) AddRegistry(profile *config.RegistryProfile, reg Registry) {
	f.registries[profile.ID] = reg
	f.dialects[profile.ID] = profile.Dialect
}

// Submit hands one request to the facade's bounded channel, blocking
// the caller if it is full (spec.md §4.7). req.Reply receives exactly
// one Response.
func (f *Facade) Submit(registryID string, req *request.Request) {
	select {
	case f.reqCh <- envelope{registryID: registryID, req: req}:
	case <-f.dieCh:
		req.Fail(epperr.NotReady("facade closed"))
	}
}

// Close stops the dispatch loop. In-flight envelopes already read off
// reqCh are delivered to their target session before Run returns.
func (f *Facade) Close() {
	close(f.dieCh)
}

// Run drains the request channel until Close is called. It should run
// in its own goroutine.
func (f *Facade) Run() {
	for {
		select {
		case env := <-f.reqCh:
			f.dispatch(env)
		case <-f.dieCh:
			return
		}
	}
}

func (f *Facade) dispatch(env envelope) {
	dialect, ok := f.dialects[env.registryID]
	if !ok {
		env.req.Fail(epperr.Unsupported("unknown registry %q", env.registryID))
		return
	}
	if !dialectAllows(dialect, env.req.Kind) {
		env.req.Fail(epperr.Unsupported("operation %q is not available on the %q dialect", env.req.Kind, dialect))
		return
	}
	reg := f.registries[env.registryID]
	reg.Submit(env.req)
}

// dialectAllows implements spec.md §4.7's immediate-unsupported rule:
// a request kind that makes no sense on the selected dialect is
// rejected without ever touching the session, so the session need not
// be Ready for that reply.
func dialectAllows(dialect config.Dialect, kind request.Kind) bool {
	switch dialect {
	case config.DialectDAC:
		switch kind {
		case request.KindDACDomainQuery, request.KindDACUsageQuery:
			return true
		default:
			return false
		}
	case config.DialectTMCH:
		switch kind {
		case request.KindMarkCheck, request.KindMarkInfo, request.KindMarkCreate,
			request.KindMarkRenew, request.KindMarkUpdate, request.KindMarkTransfer,
			request.KindTrexActivate, request.KindTrexRenew,
			request.KindPoll, request.KindPollAck:
			return true
		default:
			return false
		}
	case config.DialectEPP:
		switch kind {
		case request.KindDACDomainQuery, request.KindDACUsageQuery,
			request.KindMarkCheck, request.KindMarkInfo, request.KindMarkCreate,
			request.KindMarkRenew, request.KindMarkUpdate, request.KindMarkTransfer,
			request.KindTrexActivate, request.KindTrexRenew:
			return false
		default:
			return true
		}
	default:
		return false
	}
}
