package ports

import (
	"context"

	"github.com/bft-labs/i2p/internal/domain"
)

// SourceFetcher retrieves the packet catalog from its origin.
type SourceFetcher interface {
	// Fetch returns the parsed document or an error matching
	// domain.ErrFetch (transport, status) or domain.ErrParse (structure).
	Fetch(ctx context.Context) (domain.SourceDocument, error)
}
