package database_test

import (
	"context"
	"testing"

	"github.com/guiaemprende/backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
}

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, table := range []string{"users", "articles", "visits"} {
		var name string
		err := db.GetContext(ctx, &name,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_UniqueEmailIndex(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (nombre, email, fecha_de_registro) VALUES ('Ana', 'ana@example.com', '2026-01-01')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (nombre, email, fecha_de_registro) VALUES ('Ana', 'ANA@EXAMPLE.COM', '2026-01-01')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
