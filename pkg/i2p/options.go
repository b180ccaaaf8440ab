package i2p

import (
	"github.com/bft-labs/i2p/internal/ports"
	"github.com/bft-labs/i2p/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// Option configures optional behavior of a Service.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       log.Logger
	eventHandler EventHandler
	prefix       string
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithHTTPClient sets the client used for http(s) sources.
// If not provided, a client with the configured fetch timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for lifecycle events.
// Events are called synchronously from the goroutine that changes state.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithCommandPrefix sets the prefix recognised by Service.Handle.
// Defaults to "~".
func WithCommandPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
