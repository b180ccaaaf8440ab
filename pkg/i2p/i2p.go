package i2p

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bft-labs/i2p/internal/api"
	"github.com/bft-labs/i2p/internal/app"
	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/metrics"
)

// Errors returned by lookups. Match them with errors.Is.
var (
	ErrInvalidIDFormat  = domain.ErrInvalidIDFormat
	ErrUnknownDirection = domain.ErrUnknownDirection
	ErrPacketNotFound   = domain.ErrPacketNotFound
	ErrNotReady         = domain.ErrNotReady
	ErrFetch            = domain.ErrFetch
	ErrParse            = domain.ErrParse
)

// Config holds the configuration for a Service.
type Config struct {
	// SourceURL locates the packet document. Required.
	SourceURL string
	// FetchTimeout bounds each fetch attempt. Defaults to 15s.
	FetchTimeout time.Duration
	// FetchRetries is the number of fetch attempts. Defaults to 3.
	FetchRetries int
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.FetchRetries <= 0 {
		c.FetchRetries = 3
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return errors.New("i2p: source url is required")
	}
	return nil
}

// State is the lifecycle state of a Service.
type State int

// Lifecycle states.
const (
	StateStopped State = iota
	StateLoading
	StateReady
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventHandler receives lifecycle notifications.
type EventHandler interface {
	OnStateChange(previous, current State, reason string)
}

// Packet is a resolved lookup.
type Packet struct {
	ID    string
	Name  string
	Bound string // "C2S" or "S2C"
}

// Entry is one row of a listing.
type Entry struct {
	ID   string
	Name string
}

// Listing holds every packet in insertion order.
type Listing struct {
	ServerBound []Entry
	ClientBound []Entry
}

// Service is an embeddable packet lookup service.
// Use New() to create an instance, then Start() to load the packet table.
type Service struct {
	app        *app.App
	metrics    *metrics.Metrics
	dispatcher *command.Dispatcher
}

// New creates a Service in StateStopped.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Service, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := app.NewSourceFetcher(app.SourceConfig{
		URL:        cfg.SourceURL,
		Timeout:    cfg.FetchTimeout,
		Attempts:   cfg.FetchRetries,
		HTTPClient: o.httpClient,
	}, o.logger)

	m := metrics.New()
	appOpts := []app.Option{
		app.WithLogger(o.logger),
		app.WithLoadObserver(m),
		app.WithLookupRecorder(m),
	}
	if o.eventHandler != nil {
		appOpts = append(appOpts, app.WithEventEmitter(&eventEmitterWrapper{handler: o.eventHandler}))
	}
	a := app.New(fetcher, appOpts...)

	return &Service{
		app:        a,
		metrics:    m,
		dispatcher: command.NewDispatcher(a.Querier(), o.prefix, o.logger),
	}, nil
}

// Start fetches and loads the packet table. It blocks until the load
// completes. A failed load is final: the Service stays in StateCrashed.
func (s *Service) Start(ctx context.Context) error {
	return s.app.Start(ctx)
}

// Stop moves the Service to StateStopped.
func (s *Service) Stop() error {
	return s.app.Stop()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Service) Status() State {
	return convertAppState(s.app.State())
}

// Lookup resolves id in the direction named by bound ("c2s" or "s2c").
func (s *Service) Lookup(bound, id string) (Packet, error) {
	res, err := s.app.Querier().LookupPacket(bound, id)
	if err != nil {
		return Packet{}, err
	}
	return Packet{ID: res.ID, Name: res.Name, Bound: res.Direction.String()}, nil
}

// List returns every packet. It is empty before Start completes.
func (s *Service) List() Listing {
	l := s.app.Querier().ListAll()
	return Listing{
		ServerBound: toEntries(l.ServerBound),
		ClientBound: toEntries(l.ClientBound),
	}
}

// Handle runs a chat-style command and returns its reply. ok is false when
// msg is not a command.
func (s *Service) Handle(ctx context.Context, msg string) (reply string, ok bool) {
	r, ok := s.dispatcher.Handle(ctx, msg)
	return r.Text, ok
}

// Handler returns the HTTP API, including /metrics.
func (s *Service) Handler() http.Handler {
	return api.NewServer(s.app.Querier(),
		api.WithDispatcher(s.dispatcher),
		api.WithMetricsHandler(s.metrics.Handler()),
	)
}

func toEntries(in []domain.Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{ID: e.ID, Name: e.Name}
	}
	return out
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	e.handler.OnStateChange(convertAppState(previous), convertAppState(current), reason)
}

func convertAppState(s app.State) State {
	switch s {
	case app.StateLoading:
		return StateLoading
	case app.StateReady:
		return StateReady
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
