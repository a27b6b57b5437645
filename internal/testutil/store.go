// Package testutil builds in-memory stores for package tests.
package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meapi/adapters/persistence"
	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/pkg/logger"
)

// NewMemoryStore opens an in-memory SQLite store with the schema applied.
func NewMemoryStore(t *testing.T) *persistence.Store {
	t.Helper()
	store, err := persistence.OpenSQLite(":memory:", logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ddl, err := store.Schema("")
	require.NoError(t, err)
	require.NoError(t, store.InitSchema(context.Background(), ddl))
	return store
}

// CountingConn records every statement sent through it.
type CountingConn struct {
	persistence.Conn
	calls atomic.Int64
}

func NewCountingConn(c persistence.Conn) *CountingConn {
	return &CountingConn{Conn: c}
}

func (c *CountingConn) Calls() int64 { return c.calls.Load() }

func (c *CountingConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.calls.Add(1)
	return c.Conn.ExecContext(ctx, query, args...)
}

func (c *CountingConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.calls.Add(1)
	return c.Conn.QueryContext(ctx, query, args...)
}

func (c *CountingConn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	c.calls.Add(1)
	return c.Conn.QueryRowContext(ctx, query, args...)
}

type Repos struct {
	Profiles profile.Repository
	Skills   skill.Repository
	Work     work.Repository
	Projects project.Repository
}

func NewRepos(conn persistence.Conn) Repos {
	log := logger.NewNopLogger()
	return Repos{
		Profiles: persistence.NewSQLProfileRepo(conn, log),
		Skills:   persistence.NewSQLSkillRepo(conn, log),
		Work:     persistence.NewSQLWorkRepo(conn, log),
		Projects: persistence.NewSQLProjectRepo(conn, log),
	}
}
