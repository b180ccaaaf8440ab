package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/ports"
	"github.com/bft-labs/i2p/internal/source"
	"github.com/bft-labs/i2p/pkg/log"
)

// UserAgent is sent with every source document request.
const UserAgent = "i2p/1.0"

// DefaultTimeout bounds a single source document request.
const DefaultTimeout = 15 * time.Second

// Fetcher implements ports.SourceFetcher over HTTP(S).
type Fetcher struct {
	client ports.HTTPClient
	url    string
	logger log.Logger
}

// NewClient returns an *http.Client with the given timeout, or DefaultTimeout if zero.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewFetcher creates a fetcher for url.
func NewFetcher(client ports.HTTPClient, url string, logger log.Logger) *Fetcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Fetcher{
		client: client,
		url:    url,
		logger: logger,
	}
}

// Fetch retrieves and parses the source document.
func (f *Fetcher) Fetch(ctx context.Context) (domain.SourceDocument, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.SourceDocument{}, &domain.FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	if resp.ContentLength > source.MaxDocumentSize {
		return domain.SourceDocument{}, &domain.FetchError{
			URL: f.url,
			Err: fmt.Errorf("document size %d exceeds limit of %d bytes", resp.ContentLength, source.MaxDocumentSize),
		}
	}

	// +1 detects bodies over the limit when Content-Length is absent.
	body, err := io.ReadAll(io.LimitReader(resp.Body, source.MaxDocumentSize+1))
	if err != nil {
		return domain.SourceDocument{}, &domain.FetchError{URL: f.url, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > source.MaxDocumentSize {
		return domain.SourceDocument{}, &domain.FetchError{
			URL: f.url,
			Err: fmt.Errorf("document exceeds limit of %d bytes", source.MaxDocumentSize),
		}
	}

	doc, err := source.Decode(body)
	if err != nil {
		return domain.SourceDocument{}, err
	}

	f.logger.Debug("fetched source document",
		log.String("url", f.url),
		log.Int("bytes", len(body)),
		log.Duration("took", time.Since(start)),
	)
	return doc, nil
}
