package tracer

import (
	"io"

	"google.golang.org/grpc"
)

const (
	serviceName = "corerope.tracer.HintService"
	methodName  = "StreamHints"
	fullMethod  = "/" + serviceName + "/" + methodName
)

// Sink receives each decoded Hint as it arrives over the stream. It runs
// on the server's stream-handling goroutine; a Sink that blocks stalls
// that one tracer connection, not the whole server.
type Sink func(Hint)

type hintServer struct {
	sink Sink
}

// streamHints is the client-streaming RPC handler: the traced program
// sends one Hint per call site it observes, then closes the stream and
// gets back how many were received.
func (s *hintServer) streamHints(stream grpc.ServerStream) error {
	count := 0
	for {
		var w hintWire
		if err := stream.RecvMsg(&w); err != nil {
			if err == io.EOF {
				return stream.SendMsg(&ackWire{Received: count})
			}
			return err
		}
		s.sink(fromWire(&w))
		count++
	}
}

func serviceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*interface{})(nil),
		Methods:     []grpc.MethodDesc{},
		Streams: []grpc.StreamDesc{
			{
				StreamName: methodName,
				Handler: func(srv interface{}, stream grpc.ServerStream) error {
					return srv.(*hintServer).streamHints(stream)
				},
				ClientStreams: true,
			},
		},
		Metadata: "tracer.proto",
	}
}
