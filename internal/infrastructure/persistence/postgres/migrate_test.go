package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/personaltask/taskmanager/internal/infrastructure/persistence/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "00001_init.sql")
}

func TestRunMigrationsUsesGoose(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var called bool
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		called = true
		assert.Equal(t, ".", dir)
		return nil
	}
	require.NoError(t, runMigrations(context.Background(), nil))
	assert.True(t, called)

	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		return errors.New("boom")
	}
	assert.Error(t, runMigrations(context.Background(), nil))
}
