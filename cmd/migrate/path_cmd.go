package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lensdb/lensdb/internal/migrator"
)

var pathCmd = &cobra.Command{
	Use:   "path <schema> <from> <to>",
	Short: "Print the lens names on the migration path between two versions",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaName := args[0]
		from, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("from must be an integer: %w", err)
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("to must be an integer: %w", err)
		}

		m, err := migrator.LoadDir(migrationsDir)
		if err != nil {
			return err
		}

		if from == to {
			return nil
		}

		path := m.MigrationPath(schemaName, from, to)
		if path == nil {
			return fmt.Errorf("could not find migration path for %s from %d to %d", schemaName, from, to)
		}

		for _, l := range path {
			fmt.Println(l.Name())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
