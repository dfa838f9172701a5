package repository

import (
	"path/filepath"
	"testing"

	"courtside/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "courtside.db"))
	require.NoError(t, err)

	// a single connection serializes transactions, sparing sqlite its
	// write-lock errors while keeping the guarded updates meaningful
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}
