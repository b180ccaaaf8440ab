package source

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/ports"
	"github.com/bft-labs/i2p/pkg/log"
)

// Default retry configuration values.
const (
	DefaultAttempts       = 3
	DefaultBackoffInitial = 500 * time.Millisecond
	DefaultBackoffMax     = 5 * time.Second
)

// Loader retries transient fetch failures with exponential backoff.
// Parse errors are permanent and returned immediately.
type Loader struct {
	fetcher  ports.SourceFetcher
	logger   log.Logger
	attempts uint
	initial  time.Duration
	max      time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithAttempts sets the total number of fetch attempts. Values below 1 mean 1.
func WithAttempts(n int) LoaderOption {
	return func(l *Loader) {
		if n < 1 {
			n = 1
		}
		l.attempts = uint(n)
	}
}

// WithBackoff sets the initial and maximum delay between attempts.
func WithBackoff(initial, max time.Duration) LoaderOption {
	return func(l *Loader) {
		l.initial = initial
		l.max = max
	}
}

// WithLogger sets the logger used to report failed attempts.
func WithLogger(logger log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader wraps fetcher with retry.
func NewLoader(fetcher ports.SourceFetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:  fetcher,
		logger:   log.NewNoopLogger(),
		attempts: DefaultAttempts,
		initial:  DefaultBackoffInitial,
		max:      DefaultBackoffMax,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch implements ports.SourceFetcher.
func (l *Loader) Fetch(ctx context.Context) (domain.SourceDocument, error) {
	attempt := 0
	op := func() (domain.SourceDocument, error) {
		attempt++
		doc, err := l.fetcher.Fetch(ctx)
		if err == nil {
			return doc, nil
		}
		if errors.Is(err, domain.ErrParse) {
			return domain.SourceDocument{}, backoff.Permanent(err)
		}
		return domain.SourceDocument{}, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initial
	b.MaxInterval = l.max

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(l.attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.logger.Warn("fetch attempt failed, retrying",
				log.Int("attempt", attempt),
				log.Duration("next", next),
				log.Err(err),
			)
		}),
	)
}
