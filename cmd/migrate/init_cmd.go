package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the migrations directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Initializing migration directory")
		if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
			return fmt.Errorf("could not create migrations directory: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
