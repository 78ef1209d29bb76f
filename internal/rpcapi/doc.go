// Package rpcapi is generated-stub-free: api/eppproxy.proto is the
// canonical interface description, and a toolchain with protoc and the
// protoc-gen-go / protoc-gen-go-grpc plugins installed would normally
// regenerate pb/*.pb.go and an eppproxy_grpc.pb.go from it via the
// directive below. That toolchain is unavailable in this environment,
// so pb/types.go, service.go, client.go, and the jsonCodec in codec.go
// stand in by hand, grounded field-for-field in the .proto file, wired
// to a real grpc.Server/grpc.ClientConn via grpc.ServiceDesc rather
// than faked.
//
//go:generate protoc --go_out=. --go-grpc_out=. --proto_path=../../api eppproxy.proto
package rpcapi
