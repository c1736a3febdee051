package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/autounclaim/internal/application"
	"github.com/bnema/autounclaim/internal/domain"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the periodic auto-run loop until interrupted",
		Long: "serve runs a prune every auto-run.interval-minutes while auto-run.enabled is true. " +
			"SIGHUP reloads the configuration; SIGINT or SIGTERM stops the loop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reload := make(chan os.Signal, 1)
			signal.Notify(reload, syscall.SIGHUP)
			defer signal.Stop(reload)

			mode := domain.ModeCommit
			if dryRun {
				mode = domain.ModePreview
			}

			return serve(ctx, cmd, opts, mode, reload)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Schedule preview passes instead of removals")

	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, opts *rootOptions, mode domain.ExecutionMode, reload <-chan os.Signal) error {
	current, err := wireApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	scheduler, err := startScheduler(ctx, current, mode)
	if err != nil {
		_ = current.Close()
		return err
	}

	for {
		select {
		case <-ctx.Done():
			shutdown(current, scheduler)
			return nil
		case <-reload:
			current.logger.Info().Msg("configuration reload requested")
			current, scheduler, err = reloadApp(ctx, cmd, opts, mode, current, scheduler)
			if err != nil {
				return err
			}
		}
	}
}

// reloadApp wires the new configuration before stopping the running
// scheduler. A configuration that fails to load leaves the previous app
// running.
func reloadApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions, mode domain.ExecutionMode, current *app, scheduler *application.Scheduler) (*app, *application.Scheduler, error) {
	next, err := wireApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		current.logger.Error().Err(err).Msg("configuration reload failed, keeping previous settings")
		return current, scheduler, nil
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	nextScheduler, err := startScheduler(ctx, next, mode)
	if err != nil {
		current.logger.Error().Err(err).Msg("configuration reload failed, keeping previous settings")
		_ = next.Close()

		scheduler, err = startScheduler(ctx, current, mode)
		if err != nil {
			_ = current.Close()
			return nil, nil, err
		}
		return current, scheduler, nil
	}

	if err := current.Close(); err != nil {
		current.logger.Warn().Err(err).Msg("close store")
	}
	next.logger.Info().Msg("configuration reloaded")

	return next, nextScheduler, nil
}

// startScheduler returns a nil scheduler when auto-run is disabled.
func startScheduler(ctx context.Context, app *app, mode domain.ExecutionMode) (*application.Scheduler, error) {
	logger := app.logger.With().Str("component", "auto-run").Logger()

	if !app.cfg.AutoRun.Enabled {
		logger.Info().Msg("auto-run disabled, waiting for reload or shutdown")
		return nil, nil
	}

	scheduler, err := application.NewScheduler(application.SchedulerConfig{
		Runner:   app.service,
		Interval: app.cfg.AutoRun.Interval,
		Mode:     mode,
		Logger:   logger.With().Str("period", app.cfg.InactivePeriod.Display()).Logger(),
	})
	if err != nil {
		return nil, err
	}

	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}

	return scheduler, nil
}

func shutdown(app *app, scheduler *application.Scheduler) {
	if scheduler != nil {
		scheduler.Stop()
	}
	if err := app.Close(); err != nil {
		app.logger.Warn().Err(err).Msg("close store")
	}
}
