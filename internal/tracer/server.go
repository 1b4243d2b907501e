package tracer

import (
	"net"

	"google.golang.org/grpc"
)

// Server hosts the tracer hint-stream service. net.Listen's network
// argument picks "unix" or "tcp" (spec §6 "over a stream (Unix socket or
// file)") — the service itself is transport-agnostic.
type Server struct {
	grpcServer *grpc.Server
}

// NewServer creates a Server that calls sink for every Hint any connected
// tracer streams in.
func NewServer(sink Sink) *Server {
	impl := &hintServer{sink: sink}
	gs := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	gs.RegisterService(serviceDesc(), impl)
	return &Server{grpcServer: gs}
}

// Serve blocks, accepting tracer connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// ServeAsync starts Serve in a goroutine, returning the error channel it
// reports onto and a stop function that drains in-flight streams before
// returning.
func (s *Server) ServeAsync(lis net.Listener) (stop func(), errCh <-chan error) {
	ch := make(chan error, 1)
	go func() { ch <- s.grpcServer.Serve(lis) }()
	return s.grpcServer.GracefulStop, ch
}

// Stop forcibly closes the server and any open tracer connections.
func (s *Server) Stop() {
	s.grpcServer.Stop()
}
