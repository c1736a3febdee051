package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type effectiveConfig struct {
	File         string   `yaml:"file"`
	InactiveTime string   `yaml:"inactive-time"`
	AutoRun      bool     `yaml:"auto-run-enabled"`
	Interval     string   `yaml:"auto-run-interval"`
	DedupeClaims bool     `yaml:"dedupe-claims"`
	StoreDriver  string   `yaml:"store-driver"`
	StorePath    string   `yaml:"store-path"`
	LogLevel     string   `yaml:"log-level"`
	LogFormat    string   `yaml:"log-format"`
	Warnings     []string `yaml:"warnings,omitempty"`
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			file := s.cfg.File
			if file == "" {
				file = "(defaults)"
			}

			view := effectiveConfig{
				File:         file,
				InactiveTime: s.cfg.InactivePeriod.Display(),
				AutoRun:      s.cfg.AutoRun.Enabled,
				Interval:     s.cfg.AutoRun.Interval.String(),
				DedupeClaims: s.cfg.Prune.DedupeClaims,
				StoreDriver:  s.cfg.Store.Driver,
				StorePath:    s.cfg.Store.Path,
				LogLevel:     s.cfg.Log.Level,
				LogFormat:    s.cfg.Log.Format,
				Warnings:     s.warnings,
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(view); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return encoder.Close()
		},
	}
}
