package tracer

import (
	"context"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client streams Hints to a Server over one client-streaming RPC. It is
// the traced program's side of the channel; corerope itself only ever
// plays the Server role, but Client exists so this package is testable
// (and usable by anyone instrumenting a target program) without a
// protoc-generated stub.
type Client struct {
	conn   *grpc.ClientConn
	stream grpc.ClientStream
}

// Dial connects to a tracer Server at target, e.g.
// "unix:///tmp/corerope-tracer.sock" or "dns:///127.0.0.1:7357".
func Dial(ctx context.Context, target string) (*Client, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	stream, err := conn.NewStream(
		ctx,
		&grpc.StreamDesc{StreamName: methodName, ClientStreams: true},
		fullMethod,
		grpc.CallContentSubtype(codecName),
	)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, stream: stream}, nil
}

// Send streams one Hint.
func (c *Client) Send(h Hint) error {
	return c.stream.SendMsg(h.toWire())
}

// CloseAndRecv ends the stream and waits for the server's ack.
func (c *Client) CloseAndRecv() error {
	if err := c.stream.CloseSend(); err != nil {
		return err
	}
	var ack ackWire
	if err := c.stream.RecvMsg(&ack); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
