package app

import (
	"net/url"
	"strings"
	"time"

	getterAdapter "github.com/bft-labs/i2p/internal/adapters/getter"
	httpAdapter "github.com/bft-labs/i2p/internal/adapters/http"
	"github.com/bft-labs/i2p/internal/ports"
	"github.com/bft-labs/i2p/internal/source"
	"github.com/bft-labs/i2p/pkg/log"
)

// SourceConfig selects and tunes the source document fetcher.
type SourceConfig struct {
	URL      string
	Timeout  time.Duration
	Attempts int
	// HTTPClient overrides the default client for http(s) sources.
	HTTPClient ports.HTTPClient
}

// NewSourceFetcher returns a retrying fetcher for cfg.URL. Plain http(s)
// URLs use the HTTP adapter; anything else goes through go-getter.
// cfg.Timeout bounds every attempt on either path.
func NewSourceFetcher(cfg SourceConfig, logger log.Logger) ports.SourceFetcher {
	var inner ports.SourceFetcher
	if IsHTTPSource(cfg.URL) {
		client := cfg.HTTPClient
		if client == nil {
			client = httpAdapter.NewClient(cfg.Timeout)
		}
		inner = httpAdapter.NewFetcher(client, cfg.URL, logger)
	} else {
		inner = getterAdapter.NewFetcher(cfg.URL, cfg.Timeout, logger)
	}
	return source.NewLoader(inner,
		source.WithAttempts(cfg.Attempts),
		source.WithLogger(logger),
	)
}

// IsHTTPSource reports whether raw is a plain http or https URL.
func IsHTTPSource(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
