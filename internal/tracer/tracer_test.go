package tracer

import (
	"context"
	"net"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestServerClient_StreamsHintsInOrder(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	var mu sync.Mutex
	var got []Hint
	srv := NewServer(func(h Hint) {
		mu.Lock()
		got = append(got, h)
		mu.Unlock()
	})
	stop, errCh := srv.ServeAsync(lis)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := Dial(ctx, lis.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	want := []Hint{
		{ID: "1", Callee: `defined "/abs/mod.py" "mod.f"`, Args: []string{`builtin "int"`}, Return: `builtin "str"`},
		{ID: "2", Callee: `defined "/abs/mod.py" "mod.g"`, Args: nil, Return: `none`},
	}
	for _, h := range want {
		if err := client.Send(h); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	if err := client.CloseAndRecv(); err != nil {
		t.Fatalf("CloseAndRecv: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= len(want) {
			break
		}
		select {
		case err := <-errCh:
			t.Fatalf("server exited early: %v", err)
		case <-deadline:
			t.Fatalf("timed out waiting for hints, got %d of %d", n, len(want))
		case <-time.After(10 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
