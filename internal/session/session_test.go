package session

import (
	"testing"
	"time"

	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *log.KVLogger {
	return log.New(discardWriter{}, "session-test").With()
}

func testProfile() *config.RegistryProfile {
	return &config.RegistryProfile{
		ID:                  "test",
		Host:                "registry.example",
		Port:                700,
		Dialect:             config.DialectEPP,
		Password:            "secret",
		Keepalive:           time.Minute,
		ReconnectBackoff:    5 * time.Second,
		ReconnectBackoffMax: 5 * time.Minute,
		CommandTimeout:      30 * time.Second,
		GreetingTimeout:     30 * time.Second,
	}
}

func TestStateAcceptsRequests(t *testing.T) {
	cases := []struct {
		st   State
		want bool
	}{
		{Disconnected, false},
		{Connecting, false},
		{GreetingAwait, false},
		{LoggingIn, false},
		{Ready, true},
		{Draining, false},
		{Closing, false},
	}
	for _, c := range cases {
		if got := c.st.AcceptsRequests(); got != c.want {
			t.Errorf("%v.AcceptsRequests() = %v, want %v", c.st, got, c.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if got := Ready.String(); got != "Ready" {
		t.Errorf("Ready.String() = %q, want %q", got, "Ready")
	}
	if got := State(99).String(); got != "Unknown" {
		t.Errorf("State(99).String() = %q, want %q", got, "Unknown")
	}
}

func TestBackoff(t *testing.T) {
	max := 20 * time.Second
	d := backoff(0, max)
	if d != defaultRetryTime {
		t.Fatalf("backoff(0, ...) = %v, want %v", d, defaultRetryTime)
	}
	d = backoff(d, max)
	if d != 2*defaultRetryTime {
		t.Fatalf("backoff doubling: got %v, want %v", d, 2*defaultRetryTime)
	}
	// Keeps doubling past max and clamps.
	for i := 0; i < 10; i++ {
		d = backoff(d, max)
	}
	if d != max {
		t.Fatalf("backoff did not clamp to max: got %v, want %v", d, max)
	}
}

func TestSubmitRejectsWhenNotReady(t *testing.T) {
	s := New(testProfile(), testLogger(), nil)
	// Freshly constructed sessions start Disconnected.
	req := request.NewRequest(request.KindDomainCheck, request.DomainCheckParams{Names: []string{"example.com"}})
	s.Submit(req)

	select {
	case resp := <-req.Reply:
		if resp.Err == nil {
			t.Fatalf("expected a failure response, got %+v", resp)
		}
		if resp.Err.Kind() != epperr.KindNotReady {
			t.Errorf("error kind = %v, want %v", resp.Err.Kind(), epperr.KindNotReady)
		}
	default:
		t.Fatal("Submit did not deliver a synchronous reply")
	}
}

func TestSubmitEnqueuesWhenReady(t *testing.T) {
	s := New(testProfile(), testLogger(), nil)
	s.setState(Ready)

	req := request.NewRequest(request.KindDomainCheck, request.DomainCheckParams{Names: []string{"example.com"}})
	s.Submit(req)

	select {
	case got := <-s.reqCh:
		if got != req {
			t.Fatalf("reqCh delivered a different request")
		}
	default:
		t.Fatal("Submit did not enqueue the request onto reqCh")
	}
}

func TestSubmitFailsOnceClosing(t *testing.T) {
	s := New(testProfile(), testLogger(), nil)
	s.setState(Ready)

	// Saturate reqCh so the next Submit can't take that branch, then
	// close dieCh: Submit must fall through its select's other case
	// rather than block forever.
	for i := 0; i < cap(s.reqCh); i++ {
		s.reqCh <- request.NewRequest(request.KindPoll, request.PollParams{})
	}
	close(s.dieCh)

	req := request.NewRequest(request.KindPoll, request.PollParams{})
	s.Submit(req)

	select {
	case resp := <-req.Reply:
		if resp.Err == nil || resp.Err.Kind() != epperr.KindNotReady {
			t.Fatalf("expected NotReady failure, got %+v", resp)
		}
	default:
		t.Fatal("Submit did not fail the request once dieCh closed")
	}
}

func TestFeaturesNilBeforeLogin(t *testing.T) {
	s := New(testProfile(), testLogger(), nil)
	if f := s.Features(); f != nil {
		t.Fatalf("Features() = %+v, want nil before any successful login", f)
	}
}

func TestProfileAccessor(t *testing.T) {
	p := testProfile()
	s := New(p, testLogger(), nil)
	if s.Profile() != p {
		t.Fatal("Profile() did not return the constructing profile")
	}
}
