package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "autounclaim",
		Short: "Remove claims held by long-inactive owners",
		Long: "autounclaim finds owners who have been inactive longer than the configured period " +
			"and removes (or previews) every ps* claim they hold across all loaded worlds.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			_ = godotenv.Load()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $HOME/.autounclaim/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(opts),
		newPreviewCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newImportCmd(opts),
	)

	return rootCmd
}
