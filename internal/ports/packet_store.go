package ports

import "github.com/bft-labs/i2p/internal/domain"

// PacketStore is the read side of the packet registry.
// *registry.Registry satisfies this interface.
type PacketStore interface {
	Get(dir domain.Direction, id string) (string, bool)
	Entries(dir domain.Direction) []domain.Entry
}

// LookupRecorder observes lookup outcomes.
type LookupRecorder interface {
	// ObserveLookup is called once per lookup. result is one of
	// "found", "not_found", "invalid_id", "unknown_direction".
	ObserveLookup(dir domain.Direction, result string)
}
