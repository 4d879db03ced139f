package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "reek",
	Short:        "reek - a page tree site server",
	Long:         "reek serves a tree of pages whose types are pluggable views, some of which mount their own route tables.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "", "database driver: sqlite or postgres (env DATABASE_DRIVER)")
	flags.String("db-url", "", "database connection string (env DATABASE_CONN_URL)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "", "log format: json or text (env LOG_FORMAT)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newPagesCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newReverseCmd())
	rootCmd.AddCommand(newViewsCmd())
}
