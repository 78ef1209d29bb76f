package rpcapi

import (
	"context"

	"google.golang.org/grpc"

	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

// EppProxyServer is the service interface api/eppproxy.proto describes.
// A protoc-gen-go-grpc run would generate this signature set (plus an
// unimplemented-server embed) directly from the .proto file; it is
// reproduced by hand here for the same reason pb/types.go is (see that
// file's package doc).
type EppProxyServer interface {
	DomainCheck(context.Context, *pb.DomainCheckRequest) (*pb.DomainCheckResponse, error)
	DomainInfo(context.Context, *pb.DomainInfoRequest) (*pb.DomainInfoResponse, error)
	DomainCreate(context.Context, *pb.DomainCreateRequest) (*pb.DomainCreateResponse, error)
	DomainRenew(context.Context, *pb.DomainRenewRequest) (*pb.DomainRenewResponse, error)
	DomainDelete(context.Context, *pb.DomainDeleteRequest) (*pb.DomainDeleteResponse, error)

	HostCheck(context.Context, *pb.HostCheckRequest) (*pb.HostCheckResponse, error)
	HostInfo(context.Context, *pb.HostInfoRequest) (*pb.HostInfoResponse, error)

	ContactCheck(context.Context, *pb.ContactCheckRequest) (*pb.ContactCheckResponse, error)
	ContactInfo(context.Context, *pb.ContactInfoRequest) (*pb.ContactInfoResponse, error)

	Poll(context.Context, *pb.PollRequest) (*pb.PollResponse, error)
	PollAck(context.Context, *pb.PollAckRequest) (*pb.PollAckResponse, error)
	Events(*pb.EventsRequest, EppProxy_EventsServer) error

	Execute(context.Context, *pb.ExecuteRequest) (*pb.ExecuteResponse, error)
}

// EppProxy_EventsServer is the server-side stream handle for Events, the
// same shape protoc-gen-go-grpc emits for a server-streaming RPC.
type EppProxy_EventsServer interface {
	Send(*pb.PollResponse) error
	grpc.ServerStream
}

type eppProxyEventsServer struct {
	grpc.ServerStream
}

func (s *eppProxyEventsServer) Send(m *pb.PollResponse) error {
	return s.ServerStream.SendMsg(m)
}

func _EppProxy_DomainCheck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.DomainCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.DomainCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/DomainCheck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.DomainCheck(ctx, req.(*pb.DomainCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_DomainInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.DomainInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.DomainInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/DomainInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.DomainInfo(ctx, req.(*pb.DomainInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_DomainCreate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.DomainCreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.DomainCreate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/DomainCreate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.DomainCreate(ctx, req.(*pb.DomainCreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_DomainRenew_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.DomainRenewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.DomainRenew(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/DomainRenew"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.DomainRenew(ctx, req.(*pb.DomainRenewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_DomainDelete_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.DomainDeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.DomainDelete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/DomainDelete"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.DomainDelete(ctx, req.(*pb.DomainDeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_HostCheck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.HostCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.HostCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/HostCheck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.HostCheck(ctx, req.(*pb.HostCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_HostInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.HostInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.HostInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/HostInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.HostInfo(ctx, req.(*pb.HostInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_ContactCheck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.ContactCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.ContactCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/ContactCheck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.ContactCheck(ctx, req.(*pb.ContactCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_ContactInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.ContactInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.ContactInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/ContactInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.ContactInfo(ctx, req.(*pb.ContactInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_Poll_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.PollRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.Poll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/Poll"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.Poll(ctx, req.(*pb.PollRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_PollAck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.PollAckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.PollAck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/PollAck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.PollAck(ctx, req.(*pb.PollAckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_Execute_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(pb.ExecuteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	s := srv.(EppProxyServer)
	if interceptor == nil {
		return s.Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/eppproxy.v1.EppProxy/Execute"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.Execute(ctx, req.(*pb.ExecuteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EppProxy_Events_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(pb.EventsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(EppProxyServer).Events(m, &eppProxyEventsServer{stream})
}

// EppProxy_ServiceDesc is the grpc.ServiceDesc a protoc-gen-go-grpc run
// would otherwise emit as EppProxy_ServiceDesc.
var EppProxy_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "eppproxy.v1.EppProxy",
	HandlerType: (*EppProxyServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DomainCheck", Handler: _EppProxy_DomainCheck_Handler},
		{MethodName: "DomainInfo", Handler: _EppProxy_DomainInfo_Handler},
		{MethodName: "DomainCreate", Handler: _EppProxy_DomainCreate_Handler},
		{MethodName: "DomainRenew", Handler: _EppProxy_DomainRenew_Handler},
		{MethodName: "DomainDelete", Handler: _EppProxy_DomainDelete_Handler},
		{MethodName: "HostCheck", Handler: _EppProxy_HostCheck_Handler},
		{MethodName: "HostInfo", Handler: _EppProxy_HostInfo_Handler},
		{MethodName: "ContactCheck", Handler: _EppProxy_ContactCheck_Handler},
		{MethodName: "ContactInfo", Handler: _EppProxy_ContactInfo_Handler},
		{MethodName: "Poll", Handler: _EppProxy_Poll_Handler},
		{MethodName: "PollAck", Handler: _EppProxy_PollAck_Handler},
		{MethodName: "Execute", Handler: _EppProxy_Execute_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Events",
			Handler:       _EppProxy_Events_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "eppproxy.proto",
}

// RegisterEppProxyServer registers srv against s, the same call a
// generated eppproxy_grpc.pb.go would expose.
func RegisterEppProxyServer(s grpc.ServiceRegistrar, srv EppProxyServer) {
	s.RegisterService(&EppProxy_ServiceDesc, srv)
}
