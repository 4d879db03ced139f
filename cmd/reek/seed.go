package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Create or update pages and contents from a YAML seed file",
		Long: `Seed applies a YAML file of pages and contents. Pages are matched by path,
so running the same file twice updates instead of duplicating. The file
defaults to SEED_FILE.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.SeedFile = args[0]
			}
			if cfg.SeedFile == "" {
				return errors.New("no seed file given")
			}

			s, err := openSite(cmd.Context(), cfg, stderrLogger(cfg))
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.Close()) }()

			res, err := s.seed(cmd.Context(), cfg.SeedFile)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd, res)
			}
			t := newTable(cmd, "Created", "Updated", "Contents")
			t.AppendRow([]any{res.Created, res.Updated, res.Contents})
			t.Render()
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}
