package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lensdb/lensdb/internal/lens"
	"github.com/lensdb/lensdb/internal/migrator"
)

var newCmd = &cobra.Command{
	Use:   "new <schema> <version>",
	Short: "Write an empty migration file for a schema version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaName := args[0]
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("version must be an integer: %w", err)
		}

		path := filepath.Join(migrationsDir, fmt.Sprintf("%s.%d.json", schemaName, version))
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("migration file %s already exists", path)
		}

		data, err := json.MarshalIndent(migrator.Migration{Schema: schemaName, Version: version, Ops: []lens.Lens{}}, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode migration: %w", err)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", path, err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
