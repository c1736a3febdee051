package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

var ErrPruneInFlight = errors.New("prune already in progress")

// GuardPolicy controls what happens when a prune is requested while another
// one is running.
type GuardPolicy int

const (
	GuardReject GuardPolicy = iota
	GuardQueue
)

type Trigger string

const (
	TriggerOnDemand  Trigger = "on-demand"
	TriggerScheduled Trigger = "scheduled"
)

// PruneService serialises prune passes so at most one runs at a time.
type PruneService struct {
	pruner Pruner
	policy GuardPolicy
	sem    *semaphore.Weighted
	clock  ports.Clock
	logger zerolog.Logger
}

func NewPruneService(pruner Pruner, policy GuardPolicy, clock ports.Clock, logger zerolog.Logger) *PruneService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PruneService{
		pruner: pruner,
		policy: policy,
		sem:    semaphore.NewWeighted(1),
		clock:  clock,
		logger: logger,
	}
}

func (s *PruneService) Run(ctx context.Context, mode domain.ExecutionMode, trigger Trigger) (domain.PruneResult, error) {
	if err := s.acquire(ctx); err != nil {
		if errors.Is(err, ErrPruneInFlight) {
			s.logger.Warn().Str("trigger", string(trigger)).Str("mode", mode.String()).Msg("prune request rejected, another pass is running")
		}
		return domain.PruneResult{}, err
	}
	defer s.sem.Release(1)

	runID := uuid.NewString()
	logger := s.logger.With().Str("run_id", runID).Str("trigger", string(trigger)).Logger()
	started := s.clock.Now()
	logger.Info().Str("mode", mode.String()).Msg("starting inactive owner check")

	result, err := s.pruner.Prune(logger.WithContext(ctx), mode)
	if err != nil {
		logger.Error().Err(err).Msg("prune pass failed")
		return result, fmt.Errorf("prune %s: %w", mode, err)
	}

	logger.Info().
		Int("claims", result.TotalCount()).
		Int("affected_owners", len(result.AffectedOwners())).
		Dur("elapsed", s.clock.Now().Sub(started)).
		Msg("prune pass completed")

	return result, nil
}

// Prune runs an on-demand pass, so the service can stand in for the engine.
func (s *PruneService) Prune(ctx context.Context, mode domain.ExecutionMode) (domain.PruneResult, error) {
	return s.Run(ctx, mode, TriggerOnDemand)
}

func (s *PruneService) acquire(ctx context.Context) error {
	if s.policy == GuardQueue {
		return s.sem.Acquire(ctx, 1)
	}
	if !s.sem.TryAcquire(1) {
		return ErrPruneInFlight
	}
	return nil
}
