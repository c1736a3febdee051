package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/rs/zerolog"
)

type InactiveOwnerFinder struct {
	oracle ports.ActivityOracle
	logger zerolog.Logger
}

func NewInactiveOwnerFinder(oracle ports.ActivityOracle, logger zerolog.Logger) *InactiveOwnerFinder {
	return &InactiveOwnerFinder{oracle: oracle, logger: logger}
}

// FindInactive returns the owners whose last observed activity is older than
// threshold relative to now. Owners currently active, and owners never
// observed, are excluded. Order follows the oracle's owner listing.
func (f *InactiveOwnerFinder) FindInactive(ctx context.Context, threshold time.Duration, now time.Time) ([]domain.InactiveOwner, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidThreshold, threshold)
	}

	owners, err := f.oracle.AllKnownOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list known owners: %w", err)
	}

	inactive := make([]domain.InactiveOwner, 0, len(owners))
	for _, owner := range owners {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		active, err := f.oracle.IsActive(ctx, owner.ID)
		if err != nil {
			return nil, fmt.Errorf("check activity of owner %s: %w", owner.ID, err)
		}
		if active {
			continue
		}

		lastActivity, err := f.oracle.LastActivity(ctx, owner.ID)
		if err != nil {
			return nil, fmt.Errorf("read last activity of owner %s: %w", owner.ID, err)
		}
		if !domain.InactiveSince(lastActivity, threshold, now) {
			continue
		}

		inactive = append(inactive, domain.InactiveOwner{Owner: owner, LastActivity: lastActivity})
	}

	f.logger.Info().
		Int("inactive_owners", len(inactive)).
		Int("known_owners", len(owners)).
		Dur("threshold", threshold).
		Msg("inactive owner scan finished")

	return inactive, nil
}
