// Package databasetest provides an in-memory database for tests.
package databasetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"roster/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a migrated, isolated SQLite database that is closed when the
// test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:roster_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	db, err := database.OpenDialector(sqlite.Open(dsn), "error")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
