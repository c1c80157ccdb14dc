package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lensdb/lensdb/internal/migrator"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <schema> <version>",
	Short: "Print the JTD schema computed at a given migration version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaName := args[0]
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("version must be an integer: %w", err)
		}

		m, err := migrator.LoadDir(migrationsDir)
		if err != nil {
			return err
		}

		computed, err := m.Schema(schemaName, version)
		if err != nil {
			return fmt.Errorf("could not compute schema %s@%d: %w", schemaName, version, err)
		}

		out, err := json.MarshalIndent(computed, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode schema: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
