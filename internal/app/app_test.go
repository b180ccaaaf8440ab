package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/i2p/internal/domain"
)

type stubFetcher struct {
	doc domain.SourceDocument
	err error
}

func (s stubFetcher) Fetch(context.Context) (domain.SourceDocument, error) {
	return s.doc, s.err
}

type stubObserver struct {
	mu      sync.Mutex
	loads   int
	failed  int
	entries map[domain.Direction]int
}

func (o *stubObserver) ObserveLoad(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads++
	if err != nil {
		o.failed++
	}
}

func (o *stubObserver) SetEntries(dir domain.Direction, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.entries == nil {
		o.entries = map[domain.Direction]int{}
	}
	o.entries[dir] = n
}

var fixtureDoc = domain.SourceDocument{
	ClientBound: []domain.Packet{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}},
	ServerBound: []domain.Packet{{ID: "3", Name: "C"}},
}

func TestApp_Start(t *testing.T) {
	obs := &stubObserver{}
	a := New(stubFetcher{doc: fixtureDoc}, WithLoadObserver(obs))

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if a.State() != StateReady {
		t.Errorf("state = %v, want Ready", a.State())
	}

	res, err := a.Querier().LookupPacket("c2s", "3")
	if err != nil || res.Name != "C" {
		t.Errorf("LookupPacket(c2s, 3) = %+v, %v", res, err)
	}
	if obs.loads != 1 || obs.failed != 0 {
		t.Errorf("observer loads=%d failed=%d", obs.loads, obs.failed)
	}
	if obs.entries[domain.ClientBound] != 2 || obs.entries[domain.ServerBound] != 1 {
		t.Errorf("observer entries = %v", obs.entries)
	}
}

func TestApp_StartFailureIsFatal(t *testing.T) {
	obs := &stubObserver{}
	cause := &domain.FetchError{URL: "http://x", StatusCode: 500}
	a := New(stubFetcher{err: cause}, WithLoadObserver(obs))

	err := a.Start(context.Background())
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("Start() error = %v, want ErrFetch", err)
	}
	if a.State() != StateCrashed {
		t.Errorf("state = %v, want Crashed", a.State())
	}
	if obs.failed != 1 {
		t.Errorf("observer failed = %d, want 1", obs.failed)
	}

	if _, err := a.Querier().LookupPacket("c2s", "3"); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("lookup after crash error = %v, want ErrNotReady", err)
	}
	if err := a.Start(context.Background()); err == nil {
		t.Error("restart after crash succeeded")
	}
}

func TestApp_QuerierGatesBeforeReady(t *testing.T) {
	a := New(stubFetcher{doc: fixtureDoc})
	q := a.Querier()

	if q.Ready() {
		t.Error("querier ready before Start")
	}
	if _, err := q.LookupPacket("s2c", "1"); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("LookupPacket before Start error = %v", err)
	}
	if _, err := q.Lookup(domain.ClientBound, "1"); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("Lookup before Start error = %v", err)
	}
	if l := q.ListAll(); len(l.ClientBound) != 0 || len(l.ServerBound) != 0 {
		t.Errorf("ListAll before Start = %+v", l)
	}

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if l := q.ListAll(); len(l.ClientBound) != 2 {
		t.Errorf("ListAll after Start = %+v", l)
	}
}

func TestApp_Stop(t *testing.T) {
	a := New(stubFetcher{doc: fixtureDoc})

	if err := a.Stop(); !errors.Is(err, domain.ErrNotRunning) {
		t.Errorf("Stop() before Start error = %v", err)
	}
	_ = a.Start(context.Background())
	if err := a.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if a.State() != StateStopped {
		t.Errorf("state = %v, want Stopped", a.State())
	}
}

func TestIsHTTPSource(t *testing.T) {
	tests := map[string]bool{
		"https://gist.githubusercontent.com/x/raw/data.json": true,
		"http://localhost:8080/packets":                     true,
		"HTTPS://EXAMPLE.COM/x":                             true,
		"file:///tmp/packets.json":                          false,
		"file::./packets.json":                              false,
		"git::https://example.com/repo.git//data.json":      false,
		"./packets.json":                                    false,
		"http://":                                           false,
	}
	for in, want := range tests {
		if got := IsHTTPSource(in); got != want {
			t.Errorf("IsHTTPSource(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewSourceFetcher(t *testing.T) {
	body := `{"serverBound":[{"id":"0","name":"Handshake"}],"clientBound":[]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "packets.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{srv.URL, path} {
		f := NewSourceFetcher(SourceConfig{URL: src, Timeout: time.Second, Attempts: 1}, nil)
		doc, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch(%s) error = %v", src, err)
		}
		if len(doc.ServerBound) != 1 || doc.ServerBound[0].Name != "Handshake" {
			t.Errorf("Fetch(%s) = %+v", src, doc)
		}
	}
}

func TestNewSourceFetcher_TimeoutOnGetterSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(4 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewSourceFetcher(SourceConfig{URL: "http::" + srv.URL + "/packets.json", Timeout: 200 * time.Millisecond, Attempts: 1}, nil)

	start := time.Now()
	_, err := f.Fetch(context.Background())
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("Fetch() error = %v, want ErrFetch", err)
	}
	if took := time.Since(start); took > 2*time.Second {
		t.Errorf("Fetch() took %v, want it bounded by the fetch timeout", took)
	}
}
