package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reek/pkg/pages"
)

// viewInfo is the JSON form of a registered view.
type viewInfo struct {
	Label       string   `json:"label"`
	Name        string   `json:"name"`
	Subpages    bool     `json:"subpages"`
	Application bool     `json:"application"`
	Namespace   string   `json:"namespace,omitempty"`
	Routes      []string `json:"routes,omitempty"`
}

func newViewsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "views",
		Short: "List the page types pages can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			infos := describeViews(newRegistry(nil))
			if format == formatJSON {
				return outputJSON(cmd, infos)
			}

			t := newTable(cmd, "Label", "Name", "Subpages", "Routes")
			for _, v := range infos {
				t.AppendRow([]any{v.Label, v.Name, v.Subpages, strings.Join(v.Routes, "\n")})
			}
			t.Render()
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func describeViews(reg *pages.Registry) []viewInfo {
	views := reg.Views()
	out := make([]viewInfo, 0, len(views))
	for _, v := range views {
		info := viewInfo{Label: v.Label(), Name: v.Name(), Subpages: v.AllowsSubpages()}
		if app, ok := v.(pages.Application); ok {
			info.Application = true
			info.Namespace = app.Namespace()
			for _, r := range app.URLs().All() {
				name := r.Name
				if info.Namespace != "" {
					name = info.Namespace + ":" + name
				}
				info.Routes = append(info.Routes, name+" "+r.Pattern)
			}
		}
		out = append(out, info)
	}
	return out
}
