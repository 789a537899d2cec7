package port

import (
	"context"

	"github.com/nikolayk812/bagcheckout/internal/domain"
)

// BagStore keeps one bag per session.
type BagStore interface {
	// GetBag returns an empty bag for unknown sessions.
	GetBag(ctx context.Context, sessionID string) (domain.Bag, error)

	// UpdateBag runs fn on the current bag and stores its result. Concurrent updates
	// of the same session are serialized, fn may run more than once. Nothing is
	// stored when fn fails.
	UpdateBag(ctx context.Context, sessionID string, fn func(domain.Bag) (domain.Bag, error)) (domain.Bag, error)

	ClearBag(ctx context.Context, sessionID string) error
}
