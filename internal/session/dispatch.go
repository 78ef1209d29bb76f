package session

import (
	"github.com/as207960/eppproxy/internal/codec/csvline"
	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/correlator"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/request"
	"github.com/as207960/eppproxy/internal/router"
)

// dispatchOutbound builds the wire command for req, inserts its
// correlator entry, and hands the frame to the write loop.
func (s *Session) dispatchOutbound(req *request.Request) {
	if s.profile.Dialect == config.DialectDAC {
		s.dispatchOutboundDAC(req)
		return
	}

	clTRID := correlator.NewClientTRID()
	body, err := router.Build(req.Kind, req.Params, s.Features(), s.profile, clTRID)
	if err != nil {
		req.Fail(router.ToEppErr(err, clTRID))
		return
	}
	if err := s.corr.Insert(correlator.Key(clTRID), req); err != nil {
		req.Fail(epperr.ServerInternal(clTRID, "correlator: %v", err))
		return
	}
	if err := s.writeFrame(body); err != nil {
		s.corr.Remove(correlator.Key(clTRID))
		req.Fail(epperr.NotReady(s.State().String()))
	}
}

func (s *Session) dispatchOutboundDAC(req *request.Request) {
	line, err := router.BuildDACQuery(req.Kind, req.Params)
	if err != nil {
		req.Fail(router.ToEppErr(err, ""))
		return
	}
	key := correlator.DACKey(s.profile.DACEnvironment, line)
	if err := s.corr.Insert(key, req); err != nil {
		req.Fail(epperr.ServerInternal("", "correlator: %v", err))
		return
	}
	if err := s.writeFrame([]byte(line)); err != nil {
		s.corr.Remove(key)
		req.Fail(epperr.NotReady(s.State().String()))
	}
}

// dispatchInbound decodes one inbound frame and either resolves a
// pending request or forwards an unsolicited message to the poll sink.
// It returns false when the dialect's protocol was violated and the
// caller must reset the connection (spec.md §4.5: CSV absence-of-match
// is always a protocol violation; EPP absence-of-match is not).
func (s *Session) dispatchInbound(payload []byte) bool {
	if s.profile.Dialect == config.DialectDAC {
		return s.dispatchInboundDAC(payload)
	}

	doc, err := eppxml.Decode(payload)
	if err != nil {
		s.log.Warn("discarding malformed inbound document", log.KVErr(err))
		return true
	}
	if doc.Kind == eppxml.DocGreeting {
		// A re-sent greeting answers our keep-alive hello; no correlator
		// entry to resolve.
		return true
	}
	if doc.Kind != eppxml.DocResponse {
		return true
	}

	key := correlator.Key(doc.Response.ClientTRID)
	req, ok := s.corr.Match(key)
	if !ok {
		// Unsolicited: either a bare poll-queue notification or a
		// response whose clTRID we never issued (spec.md §4.5).
		resp := router.DecodeUnsolicited(doc.Response, s.Features())
		if s.pollSink != nil {
			s.pollSink.Deliver(resp)
		}
		return true
	}

	resp, decodeErr := router.Decode(req.Kind, doc.Response, s.Features())
	if decodeErr != nil {
		req.Fail(router.ToEppErr(decodeErr, doc.Response.ClientTRID))
		return true
	}
	req.Send(resp)
	return true
}

func (s *Session) dispatchInboundDAC(payload []byte) bool {
	line, err := csvline.Decode(string(payload))
	if err != nil {
		s.log.Warn("DAC protocol violation, resetting connection", log.KVErr(err))
		return false
	}
	key := correlator.DACKey(s.profile.DACEnvironment, line.Query)
	req, ok := s.corr.Match(key)
	if !ok {
		s.log.Warn("DAC response matched no pending query, resetting connection")
		return false
	}
	resp, err := router.DecodeDAC(req.Kind, line)
	if err != nil {
		req.Fail(router.ToEppErr(err, ""))
		return true
	}
	req.Send(resp)
	return true
}
