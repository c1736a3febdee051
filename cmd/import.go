package cmd

import (
	"errors"
	"fmt"
	"os"

	sqliterepo "github.com/bnema/autounclaim/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/autounclaim/internal/adapters/repo/toml"
	"github.com/bnema/autounclaim/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed the sqlite store from a TOML snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			target := to
			if target == "" {
				if s.cfg.Store.Driver != config.DriverSQLite {
					return errors.New("store.driver is not sqlite; pass --to <db path>")
				}
				target = s.cfg.Store.Path
			}

			if _, err := os.Stat(from); err != nil {
				return fmt.Errorf("open toml snapshot: %w", err)
			}

			source := viper.New()
			source.Set("store.path", from)
			repo, err := tomlrepo.NewRepository(source)
			if err != nil {
				return fmt.Errorf("open toml snapshot: %w", err)
			}

			snapshot, err := repo.Snapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("read toml snapshot: %w", err)
			}

			store, err := sqliterepo.Open(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			defer store.Close()

			if err := store.Import(cmd.Context(), snapshot); err != nil {
				return fmt.Errorf("import snapshot: %w", err)
			}

			s.logger.Info().Str("from", repo.Path()).Str("to", store.Path()).Msg("snapshot imported")

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %s owner(s), %s world(s), %s claim(s) into %s\n",
				humanize.Comma(int64(len(snapshot.Owners))),
				humanize.Comma(int64(len(snapshot.Worlds))),
				humanize.Comma(int64(snapshot.ClaimCount())),
				store.Path(),
			)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "TOML snapshot to import")
	cmd.Flags().StringVar(&to, "to", "", "Target sqlite database (default: store.path when store.driver is sqlite)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
