package ports

import (
	"context"

	"github.com/bnema/autounclaim/internal/domain"
)

type ClaimDirectory interface {
	ListNamespaces(ctx context.Context) ([]domain.Namespace, error)
	// ClaimsIn returns domain.ErrNamespaceNotLoaded when the namespace has no
	// backing claim table.
	ClaimsIn(ctx context.Context, namespace domain.Namespace) ([]domain.Claim, error)
	// Remove returns domain.ErrClaimNotFound when the claim is already gone
	// and domain.ErrNamespaceNotLoaded when the namespace is unavailable.
	Remove(ctx context.Context, namespace domain.Namespace, id domain.ClaimID) error
}
