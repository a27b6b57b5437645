package persistence_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meapi/adapters/persistence"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/testutil"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

func TestInitSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(t)
	skills := persistence.NewSQLSkillRepo(store, logger.NewNopLogger())

	require.NoError(t, skills.Insert(ctx, skill.Skill{Name: "Go", Score: 3}))

	ddl, err := store.Schema("")
	require.NoError(t, err)
	require.NoError(t, store.InitSchema(ctx, ddl))

	got, err := skills.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []skill.Skill{{Name: "Go", Score: 3}}, got)
}

func TestInitSchemaFailureIsStoreError(t *testing.T) {
	store := testutil.NewMemoryStore(t)

	err := store.InitSchema(context.Background(), "CREATE TABLE broken (")
	assert.ErrorIs(t, err, apperror.ErrStore)
}

func TestSchemaFromFile(t *testing.T) {
	store := testutil.NewMemoryStore(t)
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS extra (id INTEGER);"), 0o644))

	ddl, err := store.Schema(path)
	require.NoError(t, err)
	assert.Contains(t, ddl, "extra")

	_, err = store.Schema(filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorIs(t, err, apperror.ErrStore)
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(t)
	skills := persistence.NewSQLSkillRepo(store, logger.NewNopLogger())
	require.NoError(t, skills.Insert(ctx, skill.Skill{Name: "Go", Score: 1}))

	boom := errors.New("boom")
	err := store.InTx(ctx, func(ctx context.Context) error {
		require.NoError(t, skills.DeleteAll(ctx))
		require.NoError(t, skills.Insert(ctx, skill.Skill{Name: "Rust", Score: 2}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := skills.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []skill.Skill{{Name: "Go", Score: 1}}, got)
}

func TestInTxCommits(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(t)
	skills := persistence.NewSQLSkillRepo(store, logger.NewNopLogger())

	err := store.InTx(ctx, func(ctx context.Context) error {
		return skills.Insert(ctx, skill.Skill{Name: "Rust", Score: 2})
	})
	require.NoError(t, err)

	got, err := skills.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenSQLiteCreatesDataDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "meapi.db")

	store, err := persistence.OpenSQLite(dsn, logger.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, persistence.DriverSQLite, store.Driver())
	_, err = os.Stat(filepath.Dir(dsn))
	assert.NoError(t, err)
}
