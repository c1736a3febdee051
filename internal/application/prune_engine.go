package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/rs/zerolog"
)

// DuplicatePolicy decides how a claim co-owned by several inactive owners is
// reported.
type DuplicatePolicy int

const (
	// CountPerOwner reports the claim once per triggering owner. Removal
	// attempts after the first are no-ops.
	CountPerOwner DuplicatePolicy = iota
	// DedupeByClaim reports each physical claim once, attributed to the
	// first inactive owner that discovered it.
	DedupeByClaim
)

func (p DuplicatePolicy) String() string {
	switch p {
	case CountPerOwner:
		return "count-per-owner"
	case DedupeByClaim:
		return "dedupe-by-claim"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

type EngineConfig struct {
	Threshold  time.Duration
	Duplicates DuplicatePolicy
	Clock      ports.Clock
	Logger     zerolog.Logger
}

// Pruner is the contract shared by the engine and its guarded wrapper.
type Pruner interface {
	Prune(ctx context.Context, mode domain.ExecutionMode) (domain.PruneResult, error)
}

type PruneEngine struct {
	finder     *InactiveOwnerFinder
	collector  *ClaimCollector
	directory  ports.ClaimDirectory
	clock      ports.Clock
	logger     zerolog.Logger
	duplicates DuplicatePolicy
	threshold  atomic.Int64
}

var _ Pruner = (*PruneEngine)(nil)

func NewPruneEngine(oracle ports.ActivityOracle, directory ports.ClaimDirectory, cfg EngineConfig) (*PruneEngine, error) {
	if oracle == nil {
		return nil, errors.New("activity oracle is required")
	}
	if directory == nil {
		return nil, errors.New("claim directory is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	engine := &PruneEngine{
		finder:     NewInactiveOwnerFinder(oracle, cfg.Logger.With().Str("component", "finder").Logger()),
		collector:  NewClaimCollector(directory, cfg.Logger.With().Str("component", "collector").Logger()),
		directory:  directory,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		duplicates: cfg.Duplicates,
	}
	if err := engine.Configure(cfg.Threshold); err != nil {
		return nil, err
	}

	return engine, nil
}

// Configure sets the inactivity cutoff used by subsequent prune passes.
func (e *PruneEngine) Configure(threshold time.Duration) error {
	if threshold <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidThreshold, threshold)
	}
	e.threshold.Store(int64(threshold))
	return nil
}

func (e *PruneEngine) Threshold() time.Duration {
	return time.Duration(e.threshold.Load())
}

// Prune runs one discovery pass and, in commit mode, removes every
// discovered claim. Removal failures do not abort the pass; they are
// reported in the result.
func (e *PruneEngine) Prune(ctx context.Context, mode domain.ExecutionMode) (domain.PruneResult, error) {
	if !mode.Valid() {
		return domain.PruneResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownExecutionMode, mode)
	}

	threshold := e.Threshold()
	owners, err := e.finder.FindInactive(ctx, threshold, e.clock.Now())
	if err != nil {
		return domain.PruneResult{}, fmt.Errorf("find inactive owners: %w", err)
	}
	if len(owners) == 0 {
		e.logger.Info().Str("mode", mode.String()).Msg("no inactive owners found")
		return domain.EmptyPruneResult(mode), nil
	}

	byNamespace, affected, err := e.collectAll(ctx, owners)
	if err != nil {
		return domain.PruneResult{}, err
	}

	var (
		failures []domain.RemovalFailure
		skipped  []domain.Namespace
		runErr   error
	)
	if mode.ShouldDelete() {
		failures, skipped, runErr = e.removeAll(ctx, byNamespace)
	}

	result := domain.NewPruneResult(domain.PruneResultInput{
		Mode:              mode,
		ByNamespace:       byNamespace,
		AffectedOwners:    affected,
		Failures:          failures,
		SkippedNamespaces: skipped,
	})

	e.logger.Info().
		Str("mode", mode.String()).
		Int("claims", result.TotalCount()).
		Int("affected_owners", len(affected)).
		Int("failures", len(failures)).
		Msg("prune pass finished")

	return result, runErr
}

func (e *PruneEngine) collectAll(ctx context.Context, owners []domain.InactiveOwner) (map[domain.Namespace][]domain.ClaimDescriptor, []string, error) {
	byNamespace := make(map[domain.Namespace][]domain.ClaimDescriptor)
	seen := make(map[domain.ClaimKey]struct{})
	affected := make([]string, 0, len(owners))

	for _, owner := range owners {
		collected, err := e.collector.Collect(ctx, owner)
		if err != nil {
			return nil, nil, fmt.Errorf("collect claims of owner %s: %w", owner.ID, err)
		}
		if len(collected) == 0 {
			continue
		}
		affected = append(affected, owner.DisplayName())

		for _, namespace := range slices.Sorted(maps.Keys(collected)) {
			for _, claim := range collected[namespace] {
				if e.duplicates == DedupeByClaim {
					if _, dup := seen[claim.Key()]; dup {
						continue
					}
					seen[claim.Key()] = struct{}{}
				}
				byNamespace[namespace] = append(byNamespace[namespace], claim)
			}
		}
	}

	return byNamespace, affected, nil
}

func (e *PruneEngine) removeAll(ctx context.Context, byNamespace map[domain.Namespace][]domain.ClaimDescriptor) ([]domain.RemovalFailure, []domain.Namespace, error) {
	var (
		failures []domain.RemovalFailure
		skipped  []domain.Namespace
	)

	for _, namespace := range slices.Sorted(maps.Keys(byNamespace)) {
		claims := byNamespace[namespace]
		for i, claim := range claims {
			if err := ctx.Err(); err != nil {
				for _, pending := range claims[i:] {
					failures = append(failures, domain.RemovalFailure{Claim: pending, Reason: err.Error()})
				}
				failures = append(failures, pendingFailures(byNamespace, namespace, err)...)
				return failures, skipped, fmt.Errorf("remove claims: %w", err)
			}

			err := e.directory.Remove(ctx, namespace, claim.ClaimID)
			switch {
			case err == nil:
				e.logger.Info().
					Str("namespace", string(namespace)).
					Str("claim", string(claim.ClaimID)).
					Str("owner", claim.OwnerName).
					Msg("removed claim")
			case errors.Is(err, domain.ErrClaimNotFound):
				e.logger.Debug().
					Str("namespace", string(namespace)).
					Str("claim", string(claim.ClaimID)).
					Msg("claim already removed")
			case errors.Is(err, domain.ErrNamespaceNotLoaded):
				e.logger.Warn().
					Str("namespace", string(namespace)).
					Int("claims", len(claims)-i).
					Msg("namespace not loaded, skipping removals")
				skipped = append(skipped, namespace)
			default:
				e.logger.Warn().Err(err).
					Str("namespace", string(namespace)).
					Str("claim", string(claim.ClaimID)).
					Msg("claim removal failed")
				failures = append(failures, domain.RemovalFailure{Claim: claim, Reason: err.Error()})
			}
			if errors.Is(err, domain.ErrNamespaceNotLoaded) {
				break
			}
		}
	}

	return failures, skipped, nil
}

// pendingFailures lists the claims of every namespace sorted after current.
func pendingFailures(byNamespace map[domain.Namespace][]domain.ClaimDescriptor, current domain.Namespace, cause error) []domain.RemovalFailure {
	var failures []domain.RemovalFailure
	for _, namespace := range slices.Sorted(maps.Keys(byNamespace)) {
		if namespace <= current {
			continue
		}
		for _, claim := range byNamespace[namespace] {
			failures = append(failures, domain.RemovalFailure{Claim: claim, Reason: cause.Error()})
		}
	}
	return failures
}
