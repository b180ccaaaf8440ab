package i2p_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/bft-labs/i2p/pkg/i2p"
)

const exampleDocument = `{
  "serverBound": [{"id": "0", "name": "Handshake"}, {"id": "1", "name": "Login"}],
  "clientBound": [{"id": "0", "name": "KeepAlive"}]
}`

func exampleServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(exampleDocument))
	}))
}

// ExampleNew demonstrates how to embed the lookup service in an application.
func ExampleNew() {
	srv := exampleServer()
	defer srv.Close()

	svc, err := i2p.New(i2p.Config{SourceURL: srv.URL})
	if err != nil {
		fmt.Printf("failed to create service: %v\n", err)
		return
	}

	// Start blocks until the packet table is loaded
	if err := svc.Start(context.Background()); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}
	defer func() { _ = svc.Stop() }()

	p, err := svc.Lookup("c2s", "1")
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	fmt.Println(p.Name, p.Bound)

	// Output: Login C2S
}

// ExampleService_Handle demonstrates chat-style commands.
func ExampleService_Handle() {
	srv := exampleServer()
	defer srv.Close()

	svc, _ := i2p.New(i2p.Config{SourceURL: srv.URL}, i2p.WithCommandPrefix("!"))
	if err := svc.Start(context.Background()); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	reply, _ := svc.Handle(context.Background(), "!i2p 0 s2c")
	fmt.Println(reply)

	// Output:
	// Packet ID:    0
	// Packet Name:  KeepAlive
	// Packet Bound: S2C
}
