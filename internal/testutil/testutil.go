// Package testutil provides a migrated throwaway database for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/gradebook/internal/app/migrations"
	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/db"
)

// Config returns a valid configuration pointing at a fresh SQLite file in
// the test's temp dir, with the cheapest bcrypt cost.
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Session.Secret = "test-secret"
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Logging.Level = "disabled"
	return cfg
}

// NewDatabase opens and migrates the database described by cfg and closes
// it when the test ends.
func NewDatabase(t *testing.T, cfg *config.Config) *db.Database {
	t.Helper()

	database, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	err = migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background())
	require.NoError(t, err)

	return database
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, database *db.Database, table string) int {
	t.Helper()

	var n int
	err := database.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}
