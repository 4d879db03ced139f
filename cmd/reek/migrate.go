package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the page store schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.AutoMigrate = false

			s, err := openSite(cmd.Context(), cfg, stderrLogger(cfg))
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.Close()) }()

			if err := s.migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DB.Driver)
			return nil
		},
	}
}
