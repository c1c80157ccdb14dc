package migrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadDir reads every file in dir, parses it as a Migration, and
// registers it against a fresh Migrator.
func LoadDir(dir string) (*Migrator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("migrator: read migrations directory %s: %w", dir, err)
	}

	m := New()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("migrator: read %s: %w", path, err)
		}

		var migration Migration
		if err := json.Unmarshal(data, &migration); err != nil {
			return nil, fmt.Errorf("migrator: parse %s: %w", path, err)
		}

		if err := m.AddMigration(migration); err != nil {
			return nil, fmt.Errorf("migrator: add migration from %s: %w", path, err)
		}
	}
	return m, nil
}
