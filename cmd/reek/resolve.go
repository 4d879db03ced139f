package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// resolution is the JSON form of a match.
type resolution struct {
	Path         string            `json:"path"`
	Page         pages.Page        `json:"page"`
	View         string            `json:"view"`
	Route        string            `json:"route,omitempty"`
	Namespace    string            `json:"namespace,omitempty"`
	Params       map[string]string `json:"params,omitempty"`
	SubpageSlugs []string          `json:"subpage_slugs,omitempty"`
}

func newResolveCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show which page and route serve a request path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
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

			resolver := pages.NewResolver(s.store, s.registry, pages.WithLogger(s.log))
			defer resolver.Close()

			m, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				var re *pages.ResolveError
				if errors.As(err, &re) && format == formatTable {
					printTried(cmd, re)
				}
				return err
			}

			res := resolution{
				Path:         args[0],
				Page:         m.Page,
				View:         m.View.Label(),
				Route:        m.Route,
				Namespace:    m.Namespace,
				Params:       maps.Clone(m.Defaults),
				SubpageSlugs: m.SubpageSlugs,
			}
			if res.Params == nil && len(m.Params) > 0 {
				res.Params = map[string]string{}
			}
			maps.Copy(res.Params, m.Params)

			if format == formatJSON {
				return outputJSON(cmd, res)
			}

			t := newTable(cmd, "Field", "Value")
			t.AppendRow([]any{"Page", res.Page.URL() + " (" + res.Page.Title + ")"})
			t.AppendRow([]any{"View", res.View})
			if res.Route != "" {
				route := res.Route
				if res.Namespace != "" {
					route = res.Namespace + ":" + route
				}
				t.AppendRow([]any{"Route", route})
			}
			for _, k := range slices.Sorted(maps.Keys(res.Params)) {
				t.AppendRow([]any{"Param " + k, res.Params[k]})
			}
			if len(res.SubpageSlugs) > 0 {
				t.AppendRow([]any{"Subpages", strings.Join(res.SubpageSlugs, "/")})
			}
			t.Render()
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func printTried(cmd *cobra.Command, re *pages.ResolveError) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "%s: %s\n", re.Path, re.Reason)
	for _, tried := range re.Tried {
		fmt.Fprintf(w, "  tried %s\n", tried)
	}
}
