package rpcapi

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements encoding.Codec over plain Go structs (internal/
// rpcapi/pb) instead of proto.Message. Registering it under the name
// "proto" makes it grpc's default wire codec for this process, since no
// protoc-generated types exist to satisfy the standard protobuf codec
// (see pb.types.go's package doc for why). Every message on the wire is
// therefore a JSON object rather than a protobuf-encoded byte string;
// api/eppproxy.proto remains the canonical interface description for
// whichever client generates real protobuf stubs against it.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "proto"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
