package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// route is the JSON form of a reverse index entry.
type route struct {
	Name     string            `json:"name"`
	Pattern  string            `json:"pattern"`
	Page     string            `json:"page"`
	View     string            `json:"view"`
	Defaults map[string]string `json:"defaults,omitempty"`
}

func newReverseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "reverse [name [key=value...]]",
		Short: "Build the URL of a named route, or list all route names",
		Example: `  reek reverse
  reek reverse news:detail slug=hello-world`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			params, err := parseParams(args)
			if err != nil {
				return err
			}

			s, err := openSite(cmd.Context(), cfg, stderrLogger(cfg))
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.Close()) }()

			index := pages.NewReverseIndex(s.store, s.registry, pages.WithLogger(s.log))
			defer index.Close()

			if len(args) > 0 {
				url, err := index.Reverse(cmd.Context(), args[0], params)
				if err != nil {
					return err
				}
				if format == formatJSON {
					return outputJSON(cmd, map[string]string{"name": args[0], "url": url})
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			}

			routes, err := listRoutes(cmd, index)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, routes)
			}

			t := newTable(cmd, "Name", "Pattern", "Page", "View")
			for _, r := range routes {
				t.AppendRow([]any{r.Name, r.Pattern, r.Page, r.View})
			}
			t.Render()
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func listRoutes(cmd *cobra.Command, index *pages.ReverseIndex) ([]route, error) {
	names, err := index.Names(cmd.Context())
	if err != nil {
		return nil, err
	}

	var out []route
	for _, name := range names {
		all, err := index.LookupAll(cmd.Context(), name)
		if err != nil {
			return nil, err
		}
		for _, r := range all {
			out = append(out, route{
				Name:     r.Name,
				Pattern:  "/" + r.Pattern.String(),
				Page:     "/" + r.PagePath,
				View:     r.ViewLabel,
				Defaults: r.Defaults,
			})
		}
	}
	return out, nil
}

// parseParams reads key=value arguments after the route name.
func parseParams(args []string) (map[string]string, error) {
	if len(args) < 2 {
		return nil, nil
	}
	params := make(map[string]string, len(args)-1)
	for _, arg := range args[1:] {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", arg)
		}
		params[k] = v
	}
	return params, nil
}
