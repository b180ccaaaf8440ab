// Package i2p provides an embeddable packet id lookup service.
//
// A [Service] fetches a packet document once, holds it in memory, and answers
// lookups by id and direction. The document is JSON with two arrays:
//
//	{"serverBound": [{"id": "0", "name": "Handshake"}],
//	 "clientBound": [{"id": "0", "name": "KeepAlive"}]}
//
// # Basic Usage
//
//	svc, err := i2p.New(i2p.Config{SourceURL: "https://example.com/packets.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Start(ctx); err != nil {
//	    log.Fatal(err) // the packet table is unavailable
//	}
//	defer svc.Stop()
//
//	p, err := svc.Lookup("c2s", "0")
//
// Start blocks until the document is loaded. Lookups made before that fail
// with [ErrNotReady].
//
// # Sources
//
// Plain http and https URLs are fetched with the HTTP client set by
// [WithHTTPClient]. Any other source string is handed to go-getter, so local
// paths, file:: and git:: sources work as well.
//
// # Serving
//
// [Service.Handle] runs a chat-style command such as "~i2p 0 c2s" and
// [Service.Handler] returns an http.Handler exposing the JSON API.
//
// # Lifecycle States
//
// A Service moves through [StateStopped], [StateLoading], [StateReady],
// [StateStopping] and back to [StateStopped]. A failed load ends in
// [StateCrashed]; a Service is loaded at most once.
package i2p
