package main

import (
	"github.com/spf13/cobra"

	"github.com/lensdb/lensdb/internal/config"
)

var migrationsDir string

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage lensdb's schema migration files",
	Long: `migrate reads and writes the JSON migration files that define a
schema's version history, and prints the JTD schema or lens path
computed from them.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "dir", config.Cfg.MigrationsDir, "migrations directory")
}
