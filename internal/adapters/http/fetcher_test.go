package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/bft-labs/i2p/internal/adapters/http"
	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/source"
)

// newTestServer disables keep-alives so parallel tests do not share connections.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func TestFetcher_Success(t *testing.T) {
	t.Parallel()

	var userAgent, accept string
	srv := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"serverBound":[{"id":"3","name":"C"}],"clientBound":[{"id":"1","name":"A"},{"id":"2","name":"B"}]}`))
	}))
	defer srv.Close()

	f := httpAdapter.NewFetcher(httpAdapter.NewClient(5*time.Second), srv.URL, nil)
	doc, err := f.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Packet{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}, doc.ClientBound)
	assert.Equal(t, []domain.Packet{{ID: "3", Name: "C"}}, doc.ServerBound)
	assert.Equal(t, httpAdapter.UserAgent, userAgent)
	assert.Equal(t, "application/json", accept)
}

func TestFetcher_HTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"404 Not Found", http.StatusNotFound},
		{"500 Internal Server Error", http.StatusInternalServerError},
		{"401 Unauthorized", http.StatusUnauthorized},
		{"304 Not Modified", http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			_, err := httpAdapter.NewFetcher(httpAdapter.NewClient(0), srv.URL, nil).Fetch(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFetch)
			var fe *domain.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.statusCode, fe.StatusCode)
		})
	}
}

func TestFetcher_ParseError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"clientBound":[]}`))
	}))
	defer srv.Close()

	_, err := httpAdapter.NewFetcher(httpAdapter.NewClient(0), srv.URL, nil).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrParse)
	assert.NotErrorIs(t, err, domain.ErrFetch)
}

func TestFetcher_Oversized(t *testing.T) {
	t.Parallel()

	srv := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Streamed without Content-Length.
		chunk := strings.Repeat(" ", 1<<20)
		for i := 0; i <= source.MaxDocumentSize/len(chunk); i++ {
			if _, err := w.Write([]byte(chunk)); err != nil {
				return
			}
			w.(http.Flusher).Flush()
		}
	}))
	defer srv.Close()

	_, err := httpAdapter.NewFetcher(httpAdapter.NewClient(0), srv.URL, nil).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestFetcher_NetworkError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := httpAdapter.NewFetcher(httpAdapter.NewClient(time.Second), url, nil).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestFetcher_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := newTestServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := httpAdapter.NewFetcher(httpAdapter.NewClient(50*time.Millisecond), srv.URL, nil).Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, httpAdapter.DefaultTimeout, httpAdapter.NewClient(0).Timeout)
	assert.Equal(t, 3*time.Second, httpAdapter.NewClient(3*time.Second).Timeout)
}
