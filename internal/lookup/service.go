// Package lookup is the query surface over the packet registry.
package lookup

import (
	"fmt"

	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/internal/ports"
)

// Outcome labels passed to ports.LookupRecorder.
const (
	OutcomeFound            = "found"
	OutcomeNotFound         = "not_found"
	OutcomeInvalidID        = "invalid_id"
	OutcomeUnknownDirection = "unknown_direction"
)

// Service answers packet queries. It holds no state besides the store.
type Service struct {
	store    ports.PacketStore
	recorder ports.LookupRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports every lookup outcome to rec.
func WithRecorder(rec ports.LookupRecorder) Option {
	return func(s *Service) {
		s.recorder = rec
	}
}

// NewService creates a Service reading from store.
func NewService(store ports.PacketStore, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LookupPacket resolves rawID in the direction named by token.
// The id is validated before the direction, and both before the store is read.
func (s *Service) LookupPacket(token, rawID string) (domain.Result, error) {
	if !IsNumeric(rawID) {
		s.observe(0, OutcomeInvalidID)
		return domain.Result{}, fmt.Errorf("%w: %q", domain.ErrInvalidIDFormat, rawID)
	}
	dir, err := domain.ParseDirection(token)
	if err != nil {
		s.observe(0, OutcomeUnknownDirection)
		return domain.Result{}, err
	}
	return s.find(dir, rawID)
}

// Lookup resolves rawID in dir.
func (s *Service) Lookup(dir domain.Direction, rawID string) (domain.Result, error) {
	if !IsNumeric(rawID) {
		s.observe(dir, OutcomeInvalidID)
		return domain.Result{}, fmt.Errorf("%w: %q", domain.ErrInvalidIDFormat, rawID)
	}
	if !dir.Valid() {
		s.observe(0, OutcomeUnknownDirection)
		return domain.Result{}, fmt.Errorf("%w: %d", domain.ErrUnknownDirection, dir)
	}
	return s.find(dir, rawID)
}

func (s *Service) find(dir domain.Direction, id string) (domain.Result, error) {
	name, ok := s.store.Get(dir, id)
	if !ok {
		s.observe(dir, OutcomeNotFound)
		return domain.Result{}, fmt.Errorf("%w: %s %s", domain.ErrPacketNotFound, dir, id)
	}
	s.observe(dir, OutcomeFound)
	return domain.Result{ID: id, Name: name, Direction: dir}, nil
}

// ListAll returns both directions in registry insertion order.
func (s *Service) ListAll() domain.Listing {
	return domain.Listing{
		ServerBound: s.store.Entries(domain.ServerBound),
		ClientBound: s.store.Entries(domain.ClientBound),
	}
}

func (s *Service) observe(dir domain.Direction, outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveLookup(dir, outcome)
	}
}

// IsNumeric reports whether s is non-empty and made only of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
