package domain

import (
	"slices"
	"strings"
	"time"
)

// ClaimPrefix is the naming convention of claims managed by the pruner.
// Matching is case-insensitive.
const ClaimPrefix = "ps"

type ClaimID string

type Namespace string

type Claim struct {
	ID        ClaimID
	Namespace Namespace
	Owners    []OwnerID
}

func (c Claim) OwnedBy(owner OwnerID) bool {
	return slices.Contains(c.Owners, owner)
}

func (c Claim) MatchesPrefix() bool {
	return MatchesClaimPrefix(c.ID)
}

func MatchesClaimPrefix(id ClaimID) bool {
	if len(id) < len(ClaimPrefix) {
		return false
	}
	return strings.EqualFold(string(id[:len(ClaimPrefix)]), ClaimPrefix)
}

// ClaimDescriptor is a claim as discovered through one inactive owner.
type ClaimDescriptor struct {
	ClaimID      ClaimID
	Namespace    Namespace
	OwnerID      OwnerID
	OwnerName    string
	LastActivity time.Time
}

func (d ClaimDescriptor) Key() ClaimKey {
	return ClaimKey{Namespace: d.Namespace, ClaimID: d.ClaimID}
}

// ClaimKey identifies a physical claim regardless of the owner it was
// discovered through.
type ClaimKey struct {
	Namespace Namespace
	ClaimID   ClaimID
}
