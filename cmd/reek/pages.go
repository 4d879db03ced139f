package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek/pkg/pages"
)

func newPagesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the page tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, err := openSite(cmd.Context(), cfg, stderrLogger(cfg))
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.Close()) }()

			all, err := s.store.All(cmd.Context())
			if err != nil {
				return err
			}
			pages.SortTree(all)

			if format == formatJSON {
				return outputJSON(cmd, all)
			}

			t := newTable(cmd, "URL", "Title", "View", "Order", "ID")
			for _, p := range all {
				view := p.ViewName
				if _, lookupErr := s.registry.Get(p.ViewName); lookupErr != nil {
					view += " (unregistered)"
				}
				t.AppendRow([]any{p.URL(), strings.Repeat("  ", p.Depth()) + p.Title, view, p.Order, p.ID})
			}
			t.Render()
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}
