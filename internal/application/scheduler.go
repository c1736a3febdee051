package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/juju/clock"
	"github.com/rs/zerolog"
)

var (
	ErrSchedulerRunning = errors.New("scheduler already running")
	ErrInvalidInterval  = errors.New("scheduler interval must be positive")
)

type Runner interface {
	Run(ctx context.Context, mode domain.ExecutionMode, trigger Trigger) (domain.PruneResult, error)
}

type SchedulerConfig struct {
	Runner   Runner
	Interval time.Duration
	Mode     domain.ExecutionMode
	Clock    clock.Clock
	Logger   zerolog.Logger
	// OnResult, when set, receives every completed scheduled pass.
	OnResult func(domain.PruneResult)
}

func (c SchedulerConfig) Validate() error {
	if c.Runner == nil {
		return errors.New("scheduler runner is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.Interval)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownExecutionMode, c.Mode)
	}
	return nil
}

// Scheduler runs a prune pass every interval until stopped. The first pass
// happens one interval after Start.
type Scheduler struct {
	cfg SchedulerConfig

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	return &Scheduler{cfg: cfg}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return ErrSchedulerRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.done)

	s.cfg.Logger.Info().Dur("interval", s.cfg.Interval).Str("mode", s.cfg.Mode.String()).Msg("auto-run started")
	return nil
}

// Stop cancels the loop and waits for an in-flight pass to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	<-done

	s.cfg.Logger.Info().Msg("auto-run stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := s.cfg.Clock.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			s.runOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.cfg.Runner.Run(ctx, s.cfg.Mode, TriggerScheduled)
	switch {
	case errors.Is(err, ErrPruneInFlight):
		s.cfg.Logger.Info().Msg("skipping scheduled pass, another pass is running")
		return
	case err != nil:
		if ctx.Err() == nil {
			s.cfg.Logger.Error().Err(err).Msg("scheduled prune failed")
		}
		return
	}

	if result.TotalCount() > 0 {
		s.cfg.Logger.Info().
			Int("claims", result.TotalCount()).
			Int("affected_owners", len(result.AffectedOwners())).
			Msg("auto-run completed")
	}
	if s.cfg.OnResult != nil {
		s.cfg.OnResult(result)
	}
}
