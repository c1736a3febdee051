package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/autounclaim/internal/adapters/render/report"
	"github.com/bnema/autounclaim/internal/application"
	"github.com/bnema/autounclaim/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	var output string

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"start"},
		Short:   "Remove claims held by inactive owners",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := domain.ModeCommit
			if dryRun {
				mode = domain.ModePreview
			}
			return runPrune(cmd, opts, mode, output)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without removing anything")
	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format: text, json or yaml")

	return cmd
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show which claims a run would remove",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrune(cmd, opts, domain.ModePreview, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format: text, json or yaml")

	return cmd
}

func runPrune(cmd *cobra.Command, opts *rootOptions, mode domain.ExecutionMode, output string) error {
	format, err := report.ParseFormat(output)
	if err != nil {
		return err
	}

	app, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	prune := func(ctx context.Context) (domain.PruneResult, error) {
		return app.service.Run(ctx, mode, application.TriggerOnDemand)
	}

	var result domain.PruneResult
	if format == report.FormatText && isTerminal(cmd.OutOrStdout()) {
		result, err = runPruneSpinner(cmd.Context(), cmd.ErrOrStderr(), "Checking for inactive owners...", prune)
	} else {
		result, err = prune(cmd.Context())
	}
	if err != nil {
		return err
	}

	if owners := result.AffectedOwners(); len(owners) > 0 {
		app.logger.Info().Strs("owners", owners).Msg("affected owners")
	}

	if err := report.Write(cmd.OutOrStdout(), result, format, report.RenderOptions{
		Now:    app.now(),
		Period: app.cfg.InactivePeriod.Display(),
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
