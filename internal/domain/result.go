package domain

import (
	"maps"
	"slices"
	"sort"
	"time"
)

// RemovalFailure records a claim whose removal was attempted and failed.
type RemovalFailure struct {
	Claim  ClaimDescriptor
	Reason string
}

// PruneResult is the immutable outcome of one prune pass. Accessors return
// copies so callers cannot alter a result after construction.
type PruneResult struct {
	mode           ExecutionMode
	totalCount     int
	affectedOwners []string
	byNamespace    map[Namespace][]ClaimDescriptor
	failures       []RemovalFailure
	skipped        []Namespace
}

type PruneResultInput struct {
	Mode              ExecutionMode
	ByNamespace       map[Namespace][]ClaimDescriptor
	AffectedOwners    []string
	Failures          []RemovalFailure
	SkippedNamespaces []Namespace
}

// EmptyPruneResult is returned when no inactive owner was found.
func EmptyPruneResult(mode ExecutionMode) PruneResult {
	return PruneResult{mode: mode}
}

func NewPruneResult(in PruneResultInput) PruneResult {
	byNamespace := make(map[Namespace][]ClaimDescriptor, len(in.ByNamespace))
	total := 0
	for namespace, claims := range in.ByNamespace {
		if len(claims) == 0 {
			continue
		}
		byNamespace[namespace] = slices.Clone(claims)
		total += len(claims)
	}

	owners := make([]string, 0, len(in.AffectedOwners))
	seen := make(map[string]struct{}, len(in.AffectedOwners))
	for _, name := range in.AffectedOwners {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		owners = append(owners, name)
	}
	sort.Strings(owners)

	skipped := slices.Clone(in.SkippedNamespaces)
	slices.Sort(skipped)

	return PruneResult{
		mode:           in.Mode,
		totalCount:     total,
		affectedOwners: owners,
		byNamespace:    byNamespace,
		failures:       slices.Clone(in.Failures),
		skipped:        skipped,
	}
}

func (r PruneResult) Mode() ExecutionMode {
	return r.mode
}

// TotalCount is the number of claims removed, or that would be removed in
// preview mode.
func (r PruneResult) TotalCount() int {
	return r.totalCount
}

// AffectedOwners returns the sorted display names of owners that
// contributed at least one claim.
func (r PruneResult) AffectedOwners() []string {
	return slices.Clone(r.affectedOwners)
}

func (r PruneResult) HasAffectedOwner(name string) bool {
	_, found := slices.BinarySearch(r.affectedOwners, name)
	return found
}

func (r PruneResult) ByNamespace() map[Namespace][]ClaimDescriptor {
	out := make(map[Namespace][]ClaimDescriptor, len(r.byNamespace))
	for namespace, claims := range r.byNamespace {
		out[namespace] = slices.Clone(claims)
	}
	return out
}

func (r PruneResult) CountsByNamespace() map[Namespace]int {
	out := make(map[Namespace]int, len(r.byNamespace))
	for namespace, claims := range r.byNamespace {
		out[namespace] = len(claims)
	}
	return out
}

// Namespaces returns the namespaces with matched claims in sorted order.
func (r PruneResult) Namespaces() []Namespace {
	return slices.Sorted(maps.Keys(r.byNamespace))
}

func (r PruneResult) Failures() []RemovalFailure {
	return slices.Clone(r.failures)
}

// SkippedNamespaces lists namespaces whose removals were skipped because the
// namespace was not loaded at removal time.
func (r PruneResult) SkippedNamespaces() []Namespace {
	return slices.Clone(r.skipped)
}

func (r PruneResult) IsEmpty() bool {
	return r.totalCount == 0
}

type PruneSummary struct {
	Mode              string                    `json:"mode" yaml:"mode"`
	TotalCount        int                       `json:"total_count" yaml:"total_count"`
	AffectedOwners    []string                  `json:"affected_owners" yaml:"affected_owners"`
	ByNamespace       map[string][]ClaimSummary `json:"by_namespace" yaml:"by_namespace"`
	CountsByNamespace map[string]int            `json:"counts_by_namespace" yaml:"counts_by_namespace"`
	Failures          []FailureSummary          `json:"failures,omitempty" yaml:"failures,omitempty"`
	SkippedNamespaces []string                  `json:"skipped_namespaces,omitempty" yaml:"skipped_namespaces,omitempty"`
}

type ClaimSummary struct {
	ClaimID      string    `json:"claim_id" yaml:"claim_id"`
	OwnerID      string    `json:"owner_id" yaml:"owner_id"`
	OwnerName    string    `json:"owner_name" yaml:"owner_name"`
	LastActivity time.Time `json:"last_activity" yaml:"last_activity"`
}

type FailureSummary struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	ClaimID   string `json:"claim_id" yaml:"claim_id"`
	Reason    string `json:"reason" yaml:"reason"`
}

// Summary returns a serialisable view of the result.
func (r PruneResult) Summary() PruneSummary {
	summary := PruneSummary{
		Mode:              r.mode.String(),
		TotalCount:        r.totalCount,
		AffectedOwners:    r.AffectedOwners(),
		ByNamespace:       make(map[string][]ClaimSummary, len(r.byNamespace)),
		CountsByNamespace: make(map[string]int, len(r.byNamespace)),
	}

	for namespace, claims := range r.byNamespace {
		entries := make([]ClaimSummary, 0, len(claims))
		for _, claim := range claims {
			entries = append(entries, ClaimSummary{
				ClaimID:      string(claim.ClaimID),
				OwnerID:      string(claim.OwnerID),
				OwnerName:    claim.OwnerName,
				LastActivity: claim.LastActivity,
			})
		}
		summary.ByNamespace[string(namespace)] = entries
		summary.CountsByNamespace[string(namespace)] = len(claims)
	}

	for _, failure := range r.failures {
		summary.Failures = append(summary.Failures, FailureSummary{
			Namespace: string(failure.Claim.Namespace),
			ClaimID:   string(failure.Claim.ClaimID),
			Reason:    failure.Reason,
		})
	}
	for _, namespace := range r.skipped {
		summary.SkippedNamespaces = append(summary.SkippedNamespaces, string(namespace))
	}

	return summary
}
