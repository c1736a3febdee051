package ports

import (
	"context"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
)

// ActivityOracle reports owner presence. Implementations are read-only from
// the pruner's point of view.
type ActivityOracle interface {
	IsActive(ctx context.Context, owner domain.OwnerID) (bool, error)
	// LastActivity returns the zero time for owners never observed.
	LastActivity(ctx context.Context, owner domain.OwnerID) (time.Time, error)
	AllKnownOwners(ctx context.Context) ([]domain.Owner, error)
}
