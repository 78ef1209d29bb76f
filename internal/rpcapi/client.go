package rpcapi

import (
	"context"

	"google.golang.org/grpc"

	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

// EppProxyClient is the client-side counterpart a protoc-gen-go-grpc run
// would emit alongside EppProxyServer; eppproxyctl is its only consumer.
type EppProxyClient interface {
	DomainCheck(ctx context.Context, in *pb.DomainCheckRequest, opts ...grpc.CallOption) (*pb.DomainCheckResponse, error)
	DomainInfo(ctx context.Context, in *pb.DomainInfoRequest, opts ...grpc.CallOption) (*pb.DomainInfoResponse, error)
	DomainCreate(ctx context.Context, in *pb.DomainCreateRequest, opts ...grpc.CallOption) (*pb.DomainCreateResponse, error)
	DomainRenew(ctx context.Context, in *pb.DomainRenewRequest, opts ...grpc.CallOption) (*pb.DomainRenewResponse, error)
	DomainDelete(ctx context.Context, in *pb.DomainDeleteRequest, opts ...grpc.CallOption) (*pb.DomainDeleteResponse, error)

	HostCheck(ctx context.Context, in *pb.HostCheckRequest, opts ...grpc.CallOption) (*pb.HostCheckResponse, error)
	HostInfo(ctx context.Context, in *pb.HostInfoRequest, opts ...grpc.CallOption) (*pb.HostInfoResponse, error)

	ContactCheck(ctx context.Context, in *pb.ContactCheckRequest, opts ...grpc.CallOption) (*pb.ContactCheckResponse, error)
	ContactInfo(ctx context.Context, in *pb.ContactInfoRequest, opts ...grpc.CallOption) (*pb.ContactInfoResponse, error)

	Poll(ctx context.Context, in *pb.PollRequest, opts ...grpc.CallOption) (*pb.PollResponse, error)
	PollAck(ctx context.Context, in *pb.PollAckRequest, opts ...grpc.CallOption) (*pb.PollAckResponse, error)
	Events(ctx context.Context, in *pb.EventsRequest, opts ...grpc.CallOption) (EppProxy_EventsClient, error)

	Execute(ctx context.Context, in *pb.ExecuteRequest, opts ...grpc.CallOption) (*pb.ExecuteResponse, error)
}

type eppProxyClient struct {
	cc grpc.ClientConnInterface
}

// NewEppProxyClient wraps a dialed connection for use against a running
// eppproxyd (A4).
func NewEppProxyClient(cc grpc.ClientConnInterface) EppProxyClient {
	return &eppProxyClient{cc: cc}
}

func (c *eppProxyClient) DomainCheck(ctx context.Context, in *pb.DomainCheckRequest, opts ...grpc.CallOption) (*pb.DomainCheckResponse, error) {
	out := new(pb.DomainCheckResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/DomainCheck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) DomainInfo(ctx context.Context, in *pb.DomainInfoRequest, opts ...grpc.CallOption) (*pb.DomainInfoResponse, error) {
	out := new(pb.DomainInfoResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/DomainInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) DomainCreate(ctx context.Context, in *pb.DomainCreateRequest, opts ...grpc.CallOption) (*pb.DomainCreateResponse, error) {
	out := new(pb.DomainCreateResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/DomainCreate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) DomainRenew(ctx context.Context, in *pb.DomainRenewRequest, opts ...grpc.CallOption) (*pb.DomainRenewResponse, error) {
	out := new(pb.DomainRenewResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/DomainRenew", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) DomainDelete(ctx context.Context, in *pb.DomainDeleteRequest, opts ...grpc.CallOption) (*pb.DomainDeleteResponse, error) {
	out := new(pb.DomainDeleteResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/DomainDelete", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) HostCheck(ctx context.Context, in *pb.HostCheckRequest, opts ...grpc.CallOption) (*pb.HostCheckResponse, error) {
	out := new(pb.HostCheckResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/HostCheck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) HostInfo(ctx context.Context, in *pb.HostInfoRequest, opts ...grpc.CallOption) (*pb.HostInfoResponse, error) {
	out := new(pb.HostInfoResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/HostInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) ContactCheck(ctx context.Context, in *pb.ContactCheckRequest, opts ...grpc.CallOption) (*pb.ContactCheckResponse, error) {
	out := new(pb.ContactCheckResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/ContactCheck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) ContactInfo(ctx context.Context, in *pb.ContactInfoRequest, opts ...grpc.CallOption) (*pb.ContactInfoResponse, error) {
	out := new(pb.ContactInfoResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/ContactInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) Poll(ctx context.Context, in *pb.PollRequest, opts ...grpc.CallOption) (*pb.PollResponse, error) {
	out := new(pb.PollResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/Poll", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) PollAck(ctx context.Context, in *pb.PollAckRequest, opts ...grpc.CallOption) (*pb.PollAckResponse, error) {
	out := new(pb.PollAckResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/PollAck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eppProxyClient) Execute(ctx context.Context, in *pb.ExecuteRequest, opts ...grpc.CallOption) (*pb.ExecuteResponse, error) {
	out := new(pb.ExecuteResponse)
	if err := c.cc.Invoke(ctx, "/eppproxy.v1.EppProxy/Execute", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EppProxy_EventsClient is the client-side stream handle for Events.
type EppProxy_EventsClient interface {
	Recv() (*pb.PollResponse, error)
	grpc.ClientStream
}

type eppProxyEventsClient struct {
	grpc.ClientStream
}

func (x *eppProxyEventsClient) Recv() (*pb.PollResponse, error) {
	m := new(pb.PollResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *eppProxyClient) Events(ctx context.Context, in *pb.EventsRequest, opts ...grpc.CallOption) (EppProxy_EventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &EppProxy_ServiceDesc.Streams[0], "/eppproxy.v1.EppProxy/Events", opts...)
	if err != nil {
		return nil, err
	}
	x := &eppProxyEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
