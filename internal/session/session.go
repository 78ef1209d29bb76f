// Package session implements C4: the per-registry session engine.
// Three cooperating goroutines per session — read loop, write loop, and
// an orchestration loop owning the state machine, correlator table, and
// keep-alive timer — mirror the teacher's IngestMuxer.connRoutine /
// writeRelayRoutine split, generalized from entry ingestion to EPP/DAC/
// TMCH request-response multiplexing (spec.md §5).
package session

import (
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/correlator"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
	"github.com/as207960/eppproxy/internal/transport"
)

const (
	defaultRetryTime = 5 * time.Second
	dialTimeout      = 15 * time.Second
)

// PollSink receives unsolicited/poll-path responses the correlator
// could not match to a pending request.
type PollSink interface {
	Deliver(resp request.Response)
}

// WireLogger receives every raw frame actually written to or read from
// the transport (C8, internal/logsink). Left nil, no raw-frame logging
// happens; this keeps the session engine usable in tests without
// standing up a log sink.
type WireLogger interface {
	Record(dir string, payload []byte)
}

// Session is one long-running connection to one registry back-end.
type Session struct {
	profile  *config.RegistryProfile
	log      *log.KVLogger
	pollSink PollSink
	wireLog  WireLogger

	reqCh  chan *request.Request
	dieCh  chan struct{}
	closed chan struct{}
	once   sync.Once

	mu     sync.Mutex
	state  State
	feats  *features.FeatureSet

	corr *correlator.Table

	frameOut chan frameWrite
	frameIn  chan frameRead
}

type frameWrite struct {
	payload []byte
	errCh   chan error
}

type frameRead struct {
	payload []byte
	err     error
}

// New constructs a session for one registry profile. Call Run to start
// the three-goroutine engine; it blocks until the session is closed.
func New(profile *config.RegistryProfile, logger *log.KVLogger, sink PollSink) *Session {
	return &Session{
		profile:  profile,
		log:      logger,
		pollSink: sink,
		reqCh:    make(chan *request.Request, 16),
		dieCh:    make(chan struct{}),
		closed:   make(chan struct{}),
		state:    Disconnected,
		corr:     correlator.NewTable(),
		frameOut: make(chan frameWrite),
		frameIn:  make(chan frameRead, 64),
	}
}

// Profile returns the registry profile this session was constructed
// from, for callers that need the registry id or dialect without
// threading it through separately (e.g. cmd/eppproxyd's metrics loop).
func (s *Session) Profile() *config.RegistryProfile {
	return s.profile
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	prev := s.state
	s.state = st
	s.mu.Unlock()
	if prev != st {
		s.log.Info("session state transition", log.KV("from", prev.String()), log.KV("to", st.String()))
	}
}

// SetWireLog attaches a raw-frame logger. Must be called before Run;
// the session never mutates it afterward so no lock is needed.
func (s *Session) SetWireLog(w WireLogger) {
	s.wireLog = w
}

// Features returns the probed capability set, or nil before the first
// successful login.
func (s *Session) Features() *features.FeatureSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feats
}

// Submit enqueues a request for processing. If the session is not
// Ready, the request is failed immediately with a retriable error
// rather than silently buffered across a reconnect (spec.md §4.4).
func (s *Session) Submit(req *request.Request) {
	if !s.State().AcceptsRequests() {
		req.Fail(epperr.NotReady(s.State().String()))
		return
	}
	select {
	case s.reqCh <- req:
	case <-s.dieCh:
		req.Fail(epperr.NotReady(Closing.String()))
	}
}

// Close begins graceful shutdown: Ready transitions to Draining once
// invoked, then to Closing when the in-flight set empties.
func (s *Session) Close() {
	s.once.Do(func() { close(s.dieCh) })
	<-s.closed
}

// Run drives the reconnect loop until Close is called. It should be
// invoked in its own goroutine by the caller (typically cmd/eppproxyd).
func (s *Session) Run() {
	defer close(s.closed)
	var retryDuration time.Duration

	for {
		select {
		case <-s.dieCh:
			return
		default:
		}

		s.setState(Connecting)
		conn, feats, err := s.connectAndLogin()
		if err != nil {
			s.log.Warn("connection attempt failed", log.KVErr(err))
			s.setState(Disconnected)
			if retryDuration == 0 && s.profile.ReconnectBackoff > 0 {
				retryDuration = s.profile.ReconnectBackoff
			} else {
				retryDuration = backoff(retryDuration, s.profile.ReconnectBackoffMax)
			}
			if s.quitableSleep(retryDuration) {
				return
			}
			continue
		}
		retryDuration = 0

		s.mu.Lock()
		s.feats = feats
		s.mu.Unlock()
		s.setState(Ready)

		s.serve(conn)

		s.corr.DrainAll(Disconnected.String())
		s.setState(Disconnected)

		select {
		case <-s.dieCh:
			return
		default:
		}
	}
}

// connectAndLogin dials, performs the dialect-appropriate handshake,
// and returns a ready-to-serve transport plus the probed feature set.
func (s *Session) connectAndLogin() (transport.FrameTransport, *features.FeatureSet, error) {
	tlsConn, err := transport.DialTLS(s.profile, dialTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("session: dial: %w", err)
	}

	switch s.profile.Dialect {
	case config.DialectDAC:
		return s.handshakeDAC(tlsConn)
	case config.DialectTMCH:
		return s.handshakeEPPLike(tlsConn, true)
	default:
		return s.handshakeEPPLike(tlsConn, false)
	}
}

func (s *Session) handshakeDAC(conn *tls.Conn) (transport.FrameTransport, *features.FeatureSet, error) {
	// The DAC dialect has no greeting/login exchange: the TLS handshake
	// itself is the authentication step (spec.md §4.2, §4.4).
	line := transport.NewLineConn(conn)
	return line, features.Probe(nil, s.profile), nil
}

func (s *Session) handshakeEPPLike(conn *tls.Conn, tmch bool) (transport.FrameTransport, *features.FeatureSet, error) {
	framed := transport.NewFramedConn(conn)
	s.setState(GreetingAwait)

	raw, err := framed.ReadFrame()
	if err != nil {
		framed.Close()
		return nil, nil, fmt.Errorf("session: awaiting greeting: %w", err)
	}
	doc, err := eppxml.Decode(raw)
	if err != nil || doc.Kind != eppxml.DocGreeting {
		framed.Close()
		return nil, nil, fmt.Errorf("session: expected greeting, got %v (err=%v)", doc, err)
	}
	feats := features.Probe(doc.Greeting.ExtensionURIs, s.profile)

	s.setState(LoggingIn)
	loginBody, err := buildLogin(s.profile, feats, tmch)
	if err != nil {
		framed.Close()
		return nil, nil, err
	}
	if err := framed.WriteFrame(loginBody); err != nil {
		framed.Close()
		return nil, nil, fmt.Errorf("session: sending login: %w", err)
	}
	raw, err = framed.ReadFrame()
	if err != nil {
		framed.Close()
		return nil, nil, fmt.Errorf("session: awaiting login response: %w", err)
	}
	doc, err = eppxml.Decode(raw)
	if err != nil || doc.Kind != eppxml.DocResponse {
		framed.Close()
		return nil, nil, fmt.Errorf("session: expected login response: %v (err=%v)", doc, err)
	}
	if !doc.Response.Success() {
		framed.Close()
		code := 0
		msg := ""
		if len(doc.Response.Results) > 0 {
			code = doc.Response.Results[0].Code
			msg = doc.Response.Results[0].Message
		}
		return nil, nil, fmt.Errorf("session: login rejected: %d %s", code, msg)
	}
	return framed, feats, nil
}

// serve runs the read/write loops and the orchestration select until
// the transport fails, a keep-alive is missed, or shutdown is
// requested. It owns the correlator table for the lifetime of one
// connected transport.
func (s *Session) serve(conn transport.FrameTransport) {
	defer conn.Close()

	readErrCh := make(chan error, 1)
	readDone := make(chan struct{})
	go s.readLoop(conn, readErrCh, readDone)

	writeDone := make(chan struct{})
	go s.writeLoop(conn, writeDone)

	keepalive := time.NewTicker(s.profile.Keepalive)
	defer keepalive.Stop()
	missedBeats := 0

	draining := false

	for {
		select {
		case <-s.dieCh:
			if !draining {
				draining = true
				s.setState(Draining)
			}
			if s.corr.Len() == 0 {
				s.setState(Closing)
				s.sendLogout()
				close(s.frameOut)
				<-writeDone
				return
			}

		case fr := <-s.frameIn:
			if fr.err != nil {
				s.log.Warn("transport read failed", log.KVErr(fr.err))
				close(s.frameOut)
				<-writeDone
				return
			}
			if !s.dispatchInbound(fr.payload) {
				close(s.frameOut)
				<-writeDone
				return
			}
			missedBeats = 0

		case req, ok := <-s.reqCh:
			if !ok {
				continue
			}
			if draining {
				req.Fail(epperr.NotReady(Draining.String()))
				continue
			}
			s.dispatchOutbound(req)

		case <-keepalive.C:
			missedBeats++
			if missedBeats > 2 {
				s.log.Warn("keep-alive missed twice, forcing disconnect")
				close(s.frameOut)
				<-writeDone
				return
			}
			hello, err := eppxml.EncodeHello()
			if err == nil {
				s.writeFrame(hello)
			}
		}

		if draining && s.corr.Len() == 0 {
			s.setState(Closing)
			s.sendLogout()
			close(s.frameOut)
			<-writeDone
			return
		}
	}
}

func (s *Session) readLoop(conn transport.FrameTransport, errCh chan<- error, done chan<- struct{}) {
	defer close(done)
	for {
		payload, err := conn.ReadFrame()
		if err == nil && s.wireLog != nil {
			s.wireLog.Record("recv", payload)
		}
		select {
		case s.frameIn <- frameRead{payload: payload, err: err}:
		case <-s.dieCh:
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) writeLoop(conn transport.FrameTransport, done chan<- struct{}) {
	defer close(done)
	for fw := range s.frameOut {
		err := conn.WriteFrame(fw.payload)
		if err == nil && s.wireLog != nil {
			s.wireLog.Record("send", fw.payload)
		}
		if fw.errCh != nil {
			fw.errCh <- err
		}
	}
}

// sendLogout writes a best-effort <logout/> before the transport is
// torn down (spec.md §4.4: "Closing → Disconnected after logout is
// sent (or its timeout elapses)"). It does not go through writeFrame
// because dieCh is already closed by the time this runs, which would
// make writeFrame's select race between delivering the frame and
// bailing out immediately.
func (s *Session) sendLogout() {
	payload, err := eppxml.EncodeLogout(correlator.NewClientTRID())
	if err != nil {
		s.log.Warn("building logout command", log.KVErr(err))
		return
	}
	errCh := make(chan error, 1)
	select {
	case s.frameOut <- frameWrite{payload: payload, errCh: errCh}:
		select {
		case <-errCh:
		case <-time.After(s.profile.CommandTimeout):
			s.log.Warn("logout write did not complete before timeout")
		}
	case <-time.After(s.profile.CommandTimeout):
		s.log.Warn("logout timed out waiting for write loop")
	}
}

func (s *Session) writeFrame(payload []byte) error {
	errCh := make(chan error, 1)
	select {
	case s.frameOut <- frameWrite{payload: payload, errCh: errCh}:
	case <-s.dieCh:
		return errors.New("session: closing")
	}
	return <-errCh
}

// quitableSleep blocks for dur unless the die channel fires first,
// mirroring the teacher's IngestMuxer.quitableSleep.
func (s *Session) quitableSleep(dur time.Duration) bool {
	select {
	case <-time.After(dur):
		return false
	case <-s.dieCh:
		return true
	}
}

// backoff doubles curr up to max, starting from the configured default
// when curr is zero, mirroring the teacher's muxer.go backoff().
func backoff(curr, max time.Duration) time.Duration {
	if curr <= 0 {
		return defaultRetryTime
	}
	if curr *= 2; curr > max {
		curr = max
	}
	return curr
}
