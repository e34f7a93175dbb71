package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/javiermolinar/weekendly/internal/plan"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

// Open creates the repository for driver at path, creating parent
// directories as needed. An empty driver selects SQLite.
func Open(driver, path string, keep int) (plan.Repository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	switch strings.ToLower(driver) {
	case "", DriverSQLite:
		s, err := New(path, keep)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverJSON:
		return NewJSONFile(path), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q: must be %s or %s", driver, DriverSQLite, DriverJSON)
	}
}
