package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/rs/zerolog"
)

type ClaimCollector struct {
	directory ports.ClaimDirectory
	logger    zerolog.Logger
}

func NewClaimCollector(directory ports.ClaimDirectory, logger zerolog.Logger) *ClaimCollector {
	return &ClaimCollector{directory: directory, logger: logger}
}

// Collect walks every namespace and returns the prefixed claims the owner
// holds, keyed by namespace. Namespaces without matches are omitted and
// unloaded namespaces are skipped.
func (c *ClaimCollector) Collect(ctx context.Context, owner domain.InactiveOwner) (map[domain.Namespace][]domain.ClaimDescriptor, error) {
	namespaces, err := c.directory.ListNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}

	collected := make(map[domain.Namespace][]domain.ClaimDescriptor)
	for _, namespace := range namespaces {
		matches, err := c.collectIn(ctx, namespace, owner.ID, owner.DisplayName(), owner.LastActivity)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			collected[namespace] = matches
		}
	}

	return collected, nil
}

func (c *ClaimCollector) collectIn(ctx context.Context, namespace domain.Namespace, ownerID domain.OwnerID, ownerName string, lastActivity time.Time) ([]domain.ClaimDescriptor, error) {
	claims, err := c.directory.ClaimsIn(ctx, namespace)
	if err != nil {
		if errors.Is(err, domain.ErrNamespaceNotLoaded) {
			c.logger.Debug().Str("namespace", string(namespace)).Msg("namespace not loaded, skipping")
			return nil, nil
		}
		return nil, fmt.Errorf("list claims in %s: %w", namespace, err)
	}

	var matches []domain.ClaimDescriptor
	for _, claim := range claims {
		if !claim.MatchesPrefix() || !claim.OwnedBy(ownerID) {
			continue
		}
		matches = append(matches, domain.ClaimDescriptor{
			ClaimID:      claim.ID,
			Namespace:    namespace,
			OwnerID:      ownerID,
			OwnerName:    ownerName,
			LastActivity: lastActivity,
		})
	}

	return matches, nil
}
