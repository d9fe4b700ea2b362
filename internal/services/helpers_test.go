package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/airstay/airstay-api/internal/database"
	"github.com/airstay/airstay-api/internal/models"
)

// newTestDB opens an in-memory database with the full schema applied. A
// single connection keeps every statement on the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New("file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func mustCreateUser(t *testing.T, db *sql.DB, name, email string) models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(name, email, "password123")
	require.NoError(t, err)
	return user
}
