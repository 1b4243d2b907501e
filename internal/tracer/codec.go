// Package tracer implements the optional runtime hint channel spec §6
// describes: "An optional tracer process running the target program may
// stream tuples (callee-textual, arg-textuals, return-textual) to the
// workspace over a stream (Unix socket or file)." It is a gRPC service
// with a hand-written grpc.ServiceDesc rather than protoc-generated
// stubs — grounded on the teacher's own lib/grpc builtins
// (internal/evaluator/builtins_grpc.go), which construct a *grpc.ServiceDesc
// by hand and register it with server.RegisterService rather than
// generating one from a .proto file. Messages are plain JSON rather than
// protobuf wire format, via a custom encoding.Codec — grpc's codec
// interface is a public extension point for exactly this.
package tracer

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
