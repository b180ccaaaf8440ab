// Package app wires the source fetcher, the packet registry and the lookup
// service together and owns the startup sequence.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/lookup"
	"github.com/bft-labs/i2p/internal/ports"
	"github.com/bft-labs/i2p/internal/registry"
	"github.com/bft-labs/i2p/pkg/log"
)

// LoadObserver receives startup load metrics.
// *metrics.Metrics satisfies this interface.
type LoadObserver interface {
	ObserveLoad(took time.Duration, err error)
	SetEntries(dir domain.Direction, n int)
}

// App owns the process-wide registry and its lifecycle.
type App struct {
	fetcher   ports.SourceFetcher
	registry  *registry.Registry
	service   *lookup.Service
	lifecycle *Lifecycle
	logger    log.Logger
	observer  LoadObserver
}

// Option configures an App.
type Option func(*options)

type options struct {
	logger   log.Logger
	observer LoadObserver
	recorder ports.LookupRecorder
	emitter  EventEmitter
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLoadObserver reports load duration and registry size.
func WithLoadObserver(obs LoadObserver) Option {
	return func(o *options) { o.observer = obs }
}

// WithLookupRecorder reports lookup outcomes.
func WithLookupRecorder(rec ports.LookupRecorder) Option {
	return func(o *options) { o.recorder = rec }
}

// WithEventEmitter observes lifecycle transitions.
func WithEventEmitter(e EventEmitter) Option {
	return func(o *options) { o.emitter = e }
}

// New creates an App in StateStopped with an empty registry.
func New(fetcher ports.SourceFetcher, opts ...Option) *App {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	reg := registry.New()
	var svcOpts []lookup.Option
	if o.recorder != nil {
		svcOpts = append(svcOpts, lookup.WithRecorder(o.recorder))
	}

	return &App{
		fetcher:   fetcher,
		registry:  reg,
		service:   lookup.NewService(reg, svcOpts...),
		lifecycle: NewLifecycle(o.logger, o.emitter),
		logger:    o.logger,
		observer:  o.observer,
	}
}

// Start fetches the source document and loads the registry. It returns only
// after the load is complete; callers start serving queries afterwards.
// Any error leaves the app Crashed and must be treated as fatal.
func (a *App) Start(ctx context.Context) error {
	if err := a.lifecycle.TransitionTo(StateLoading, "start"); err != nil {
		return err
	}

	a.logger.Info("fetching packet data")
	start := time.Now()

	doc, err := a.fetcher.Fetch(ctx)
	if err == nil {
		err = a.registry.Load(doc)
	}
	took := time.Since(start)
	if a.observer != nil {
		a.observer.ObserveLoad(took, err)
	}
	if err != nil {
		_ = a.lifecycle.TransitionTo(StateCrashed, err.Error())
		return fmt.Errorf("load packet data: %w", err)
	}

	for _, dir := range domain.Directions {
		if a.observer != nil {
			a.observer.SetEntries(dir, a.registry.Len(dir))
		}
	}
	a.logger.Info("loaded packet data into memory",
		log.Int("server_bound", a.registry.Len(domain.ServerBound)),
		log.Int("client_bound", a.registry.Len(domain.ClientBound)),
		log.Duration("took", took),
	)

	return a.lifecycle.TransitionTo(StateReady, "registry loaded")
}

// Stop moves the app to StateStopped.
func (a *App) Stop() error {
	if err := a.lifecycle.TransitionTo(StateStopping, "stop"); err != nil {
		return err
	}
	return a.lifecycle.TransitionTo(StateStopped, "stopped")
}

// State returns the current lifecycle state.
func (a *App) State() State {
	return a.lifecycle.State()
}

// Ready reports whether queries may be served.
func (a *App) Ready() bool {
	return a.lifecycle.Ready()
}

// WaitSettled blocks until loading finished or ctx is done.
func (a *App) WaitSettled(ctx context.Context) (State, error) {
	return a.lifecycle.WaitSettled(ctx)
}

// Service returns the lookup service. It reads the registry directly and
// does not check readiness; use Querier for entry points that may run
// before Start returns.
func (a *App) Service() *lookup.Service {
	return a.service
}

// Querier returns a lookup surface that refuses queries until Ready.
func (a *App) Querier() *GatedQuerier {
	return &GatedQuerier{app: a}
}

// GatedQuerier wraps the lookup service with a readiness check.
type GatedQuerier struct {
	app *App
}

// LookupPacket fails with domain.ErrNotReady before the registry has loaded.
func (q *GatedQuerier) LookupPacket(token, rawID string) (domain.Result, error) {
	if !q.app.Ready() {
		return domain.Result{}, domain.ErrNotReady
	}
	return q.app.service.LookupPacket(token, rawID)
}

// Lookup is the typed variant of LookupPacket.
func (q *GatedQuerier) Lookup(dir domain.Direction, rawID string) (domain.Result, error) {
	if !q.app.Ready() {
		return domain.Result{}, domain.ErrNotReady
	}
	return q.app.service.Lookup(dir, rawID)
}

// ListAll returns an empty listing before the registry has loaded.
func (q *GatedQuerier) ListAll() domain.Listing {
	if !q.app.Ready() {
		return domain.Listing{ServerBound: []domain.Entry{}, ClientBound: []domain.Entry{}}
	}
	return q.app.service.ListAll()
}

// Ready reports whether queries may be served.
func (q *GatedQuerier) Ready() bool {
	return q.app.Ready()
}
