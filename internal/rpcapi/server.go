// Package rpcapi implements A4: the gRPC boundary external callers use
// to reach internal/facade. It is the only package that ever
// constructs a request.Request from caller-supplied data, and the only
// package that ever reports request outcomes to internal/metrics
// (every other request into the facade, including eppproxyctl's, goes
// through here too, so metrics stay complete without the session or
// facade layers needing to know about Prometheus at all).
package rpcapi

import (
	"context"
	"time"

	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/log"
	"github.com/as207960/eppproxy/internal/metrics"
	"github.com/as207960/eppproxy/internal/request"
	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

// Dispatcher is what the facade exposes to this package: a registry id
// plus a *request.Request in, a single Response out on the request's
// own reply channel. *facade.Facade satisfies this.
type Dispatcher interface {
	Submit(registryID string, req *request.Request)
}

// Server adapts Dispatcher onto the EppProxyServer gRPC interface.
type Server struct {
	dispatch Dispatcher
	metrics  *metrics.Registry
	log      *log.KVLogger
}

// New constructs a Server. m may be nil to disable metrics recording
// (used by tests that only care about routing behavior).
func New(dispatch Dispatcher, m *metrics.Registry, logger *log.KVLogger) *Server {
	return &Server{dispatch: dispatch, metrics: m, log: logger}
}

// submit builds a Request of kind carrying params, hands it to the
// facade, and waits for either a reply or ctx's cancellation. It
// records the outcome to internal/metrics before returning.
func (s *Server) submit(ctx context.Context, registryID string, kind request.Kind, params interface{}) (request.Response, error) {
	start := time.Now()
	req := request.NewRequest(kind, params)

	s.dispatch.Submit(registryID, req)

	select {
	case resp := <-req.Reply:
		if s.metrics != nil {
			s.metrics.ObserveOutcome(registryID, kind.String(), resp.Err == nil, time.Since(start).Seconds())
		}
		return resp, nil
	case <-ctx.Done():
		if s.metrics != nil {
			s.metrics.ObserveOutcome(registryID, kind.String(), false, time.Since(start).Seconds())
		}
		return request.Response{}, ctx.Err()
	}
}

func (s *Server) DomainCheck(ctx context.Context, in *pb.DomainCheckRequest) (*pb.DomainCheckResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindDomainCheck, &request.DomainCheckParams{Names: in.Names})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.DomainCheckResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	result := resp.Result.(*request.DomainCheckResult)
	out := make([]pb.DomainAvailability, 0, len(result.Domains))
	for _, d := range result.Domains {
		out = append(out, pb.DomainAvailability{Name: d.Name, Available: d.Available, Reason: d.Reason})
	}
	return &pb.DomainCheckResponse{Domains: out}, nil
}

func (s *Server) DomainInfo(ctx context.Context, in *pb.DomainInfoRequest) (*pb.DomainInfoResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindDomainInfo, &request.DomainInfoParams{
		Name:      in.Name,
		AuthInfo:  in.AuthInfo,
		HostsForm: in.HostsForm,
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.DomainInfoResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.DomainInfoResult)
	contacts := make([]pb.DomainContact, 0, len(r.Contacts))
	for _, c := range r.Contacts {
		contacts = append(contacts, pb.DomainContact{Type: c.Type, ID: c.ID})
	}
	return &pb.DomainInfoResponse{
		Name:        r.Name,
		ROID:        r.ROID,
		Status:      r.Status,
		Registrant:  r.Registrant,
		Contacts:    contacts,
		Nameservers: r.Nameservers,
		Hosts:       r.Hosts,
		ClID:        r.ClID,
		CrID:        r.CrID,
		CrDate:      toPBTime(r.CrDate),
		UpID:        r.UpID,
		UpDate:      toPBTime(r.UpDate),
		ExDate:      toPBTime(r.ExDate),
		TrDate:      toPBTime(r.TrDate),
		AuthInfo:    r.AuthInfo,
	}, nil
}

func (s *Server) DomainCreate(ctx context.Context, in *pb.DomainCreateRequest) (*pb.DomainCreateResponse, error) {
	contacts := make([]request.DomainContact, 0, len(in.Contacts))
	for _, c := range in.Contacts {
		contacts = append(contacts, request.DomainContact{Type: c.Type, ID: c.ID})
	}
	resp, err := s.submit(ctx, in.RegistryID, request.KindDomainCreate, &request.DomainCreateParams{
		Name:        in.Name,
		Period:      int(in.Period),
		Nameservers: in.Nameservers,
		Registrant:  in.Registrant,
		Contacts:    contacts,
		AuthInfo:    in.AuthInfo,
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.DomainCreateResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.DomainCreateResult)
	return &pb.DomainCreateResponse{Name: r.Name, CrDate: toPBTime(r.CrDate), ExDate: toPBTime(r.ExDate)}, nil
}

func (s *Server) DomainRenew(ctx context.Context, in *pb.DomainRenewRequest) (*pb.DomainRenewResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindDomainRenew, &request.DomainRenewParams{
		Name:          in.Name,
		CurrentExpiry: toGoTime(in.CurrentExpiry),
		Period:        int(in.Period),
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.DomainRenewResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.DomainRenewResult)
	return &pb.DomainRenewResponse{ExDate: toPBTime(r.ExDate)}, nil
}

func (s *Server) DomainDelete(ctx context.Context, in *pb.DomainDeleteRequest) (*pb.DomainDeleteResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindDomainDelete, &request.DomainDeleteParams{Name: in.Name})
	if err != nil {
		return nil, err
	}
	return &pb.DomainDeleteResponse{Error: toErrorDetail(resp.Err)}, nil
}

func (s *Server) HostCheck(ctx context.Context, in *pb.HostCheckRequest) (*pb.HostCheckResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindHostCheck, &request.HostCheckParams{Names: in.Names})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.HostCheckResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	result := resp.Result.(*request.HostCheckResult)
	out := make([]pb.HostAvailability, 0, len(result.Hosts))
	for _, h := range result.Hosts {
		out = append(out, pb.HostAvailability{Name: h.Name, Available: h.Available, Reason: h.Reason})
	}
	return &pb.HostCheckResponse{Hosts: out}, nil
}

func (s *Server) HostInfo(ctx context.Context, in *pb.HostInfoRequest) (*pb.HostInfoResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindHostInfo, &request.HostInfoParams{Name: in.Name})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.HostInfoResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.HostInfoResult)
	return &pb.HostInfoResponse{
		Name:      r.Name,
		ROID:      r.ROID,
		Status:    r.Status,
		Addresses: r.Addresses,
		ClID:      r.ClID,
		CrID:      r.CrID,
		CrDate:    toPBTime(r.CrDate),
		UpID:      r.UpID,
		UpDate:    toPBTime(r.UpDate),
		TrDate:    toPBTime(r.TrDate),
	}, nil
}

func (s *Server) ContactCheck(ctx context.Context, in *pb.ContactCheckRequest) (*pb.ContactCheckResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindContactCheck, &request.ContactCheckParams{IDs: in.IDs})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.ContactCheckResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	result := resp.Result.(*request.ContactCheckResult)
	out := make([]pb.ContactAvailability, 0, len(result.Contacts))
	for _, c := range result.Contacts {
		out = append(out, pb.ContactAvailability{ID: c.ID, Available: c.Available, Reason: c.Reason})
	}
	return &pb.ContactCheckResponse{Contacts: out}, nil
}

func (s *Server) ContactInfo(ctx context.Context, in *pb.ContactInfoRequest) (*pb.ContactInfoResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindContactInfo, &request.ContactInfoParams{ID: in.ID, AuthInfo: in.AuthInfo})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.ContactInfoResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.ContactInfoResult)
	postal := make([]pb.PostalInfo, 0, len(r.Postal))
	for _, p := range r.Postal {
		postal = append(postal, pb.PostalInfo{
			Type: p.Type, Name: p.Name, Org: p.Org, Street: p.Street,
			City: p.City, Province: p.Province, PostalCode: p.PostalCode, CountryCode: p.CountryCode,
		})
	}
	return &pb.ContactInfoResponse{
		ID:       r.ID,
		ROID:     r.ROID,
		Status:   r.Status,
		Postal:   postal,
		Voice:    r.Voice,
		Fax:      r.Fax,
		Email:    r.Email,
		ClID:     r.ClID,
		CrID:     r.CrID,
		CrDate:   toPBTime(r.CrDate),
		UpID:     r.UpID,
		UpDate:   toPBTime(r.UpDate),
		TrDate:   toPBTime(r.TrDate),
		AuthInfo: r.AuthInfo,
	}, nil
}

func (s *Server) Poll(ctx context.Context, in *pb.PollRequest) (*pb.PollResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindPoll, &request.PollParams{})
	if err != nil {
		return nil, err
	}
	return pollResultToPB(resp), nil
}

func pollResultToPB(resp request.Response) *pb.PollResponse {
	if resp.Err != nil {
		return &pb.PollResponse{Error: toErrorDetail(resp.Err)}
	}
	r := resp.Result.(*request.PollResult)
	out := &pb.PollResponse{
		Empty:      r.Empty,
		MessageID:  r.MessageID,
		EnqueuedAt: toPBTime(r.EnqueuedAt),
		Message:    r.Message,
		QueueDepth: int32(r.QueueDepth),
	}
	switch {
	case r.Data.RGPStateChange != nil:
		out.Data = r.Data.RGPStateChange
	case r.Data.LowBalance != nil:
		out.Data = r.Data.LowBalance
	case r.Data.NominetChange != nil:
		out.Data = r.Data.NominetChange
	case r.Data.EURidEvent != nil:
		out.Data = r.Data.EURidEvent
	case r.Data.Maintenance != nil:
		out.Data = r.Data.Maintenance
	case r.Data.PersonalRegConsent != nil:
		out.Data = r.Data.PersonalRegConsent
	}
	return out
}

func (s *Server) PollAck(ctx context.Context, in *pb.PollAckRequest) (*pb.PollAckResponse, error) {
	resp, err := s.submit(ctx, in.RegistryID, request.KindPollAck, &request.PollAckParams{MessageID: in.MessageID})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return &pb.PollAckResponse{Error: toErrorDetail(resp.Err)}, nil
	}
	r := resp.Result.(*request.PollAckResult)
	return &pb.PollAckResponse{QueueDepth: int32(r.QueueDepth), NextID: r.NextID}, nil
}

// Events polls the registry in a loop on the caller's behalf, forwarding
// each non-empty message until the stream's context is canceled. There
// is no separate subscription mechanism (DESIGN NOTES §9's "no side
// channel" rule) — it is exactly the Poll path, driven repeatedly.
func (s *Server) Events(in *pb.EventsRequest, stream EppProxy_EventsServer) error {
	ctx := stream.Context()
	const idleDelay = 2 * time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		resp, err := s.submit(ctx, in.RegistryID, request.KindPoll, &request.PollParams{})
		if err != nil {
			return err
		}
		out := pollResultToPB(resp)
		if out.Error != nil {
			return toStatus(resp.Err)
		}
		if out.Empty {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idleDelay):
			}
			continue
		}
		if err := stream.Send(out); err != nil {
			return err
		}
		if _, err := s.submit(ctx, in.RegistryID, request.KindPollAck, &request.PollAckParams{MessageID: out.MessageID}); err != nil {
			return err
		}
	}
}

// Execute dispatches any request.Kind not given a dedicated method.
// Callers supply params already shaped as the matching *request.XParams
// struct, which the JSON codec passes through verbatim; recovering a
// concrete Params type from raw wire bytes without a kind → type
// registry is an accepted limitation of the hand-authored substitute
// for generated stubs (see DESIGN.md). cmd/eppproxyctl never calls
// Execute for this reason, sticking to the dedicated RPCs above.
func (s *Server) Execute(ctx context.Context, in *pb.ExecuteRequest) (*pb.ExecuteResponse, error) {
	kind, ok := kindByName[in.Kind]
	if !ok {
		return &pb.ExecuteResponse{Error: toErrorDetail(epperr.Input("unrecognized request kind %q", in.Kind))}, nil
	}
	resp, err := s.submit(ctx, in.RegistryID, kind, in.Params)
	if err != nil {
		return nil, err
	}
	return &pb.ExecuteResponse{
		Error:       toErrorDetail(resp.Err),
		Result:      resp.Result,
		Pending:     resp.Pending,
		ExtraValues: resp.ExtraValues,
	}, nil
}

var kindByName = func() map[string]request.Kind {
	m := make(map[string]request.Kind)
	for k := request.KindPoll; k <= request.KindISNICBulkVerify; k++ {
		m[k.String()] = k
	}
	return m
}()
