package persistence

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/khoahotran/meapi/internal/config"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

//go:embed schema/*.sql
var schemaFS embed.FS

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Conn is what repositories execute statements against. *Store implements it;
// tests wrap it to observe store access.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Builder() sq.StatementBuilderType
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// Store owns the single database handle. Statements run in submission order
// on one connection; there is no locking above that.
type Store struct {
	db      *sql.DB
	driver  string
	builder sq.StatementBuilderType
	logger  logger.Logger
}

func NewStore(cfg config.Config, log logger.Logger) (*Store, error) {
	switch cfg.DB.Driver {
	case DriverSQLite:
		return OpenSQLite(cfg.DB.DSN, log)
	case DriverPostgres:
		return open("pgx", cfg.DB.DSN, DriverPostgres, sq.Dollar, log)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
}

// OpenSQLite opens a file-backed or ":memory:" SQLite store, creating the
// parent directory of a file path if needed.
func OpenSQLite(dsn string, log logger.Logger) (*Store, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
	}
	return open("sqlite", dsn, DriverSQLite, sq.Question, log)
}

func open(driverName, dsn, driver string, placeholder sq.PlaceholderFormat, log logger.Logger) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: statements are serialized, and ":memory:" stays a
	// single database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connect database successfully.", zap.String("driver", driver))
	return &Store{
		db:      db,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		logger:  log,
	}, nil
}

func (s *Store) Driver() string { return s.driver }

func (s *Store) Close() error {
	return s.db.Close()
}

// Schema returns the DDL script to apply: the file at path when set,
// otherwise the embedded script for the store's driver.
func (s *Store) Schema(path string) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", apperror.NewStore("failed to read schema file", err)
		}
		return string(b), nil
	}
	b, err := schemaFS.ReadFile("schema/" + s.driver + ".sql")
	if err != nil {
		return "", apperror.NewStore("no embedded schema for driver "+s.driver, err)
	}
	return string(b), nil
}

// InitSchema applies a DDL script. Every statement is IF NOT EXISTS, so
// running it against an initialized store changes nothing.
func (s *Store) InitSchema(ctx context.Context, ddl string) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return apperror.NewStore("failed to apply schema", err)
	}
	return nil
}

// InTx runs fn with a transaction bound to ctx. Repository calls made with
// that ctx go through the transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.NewStore("failed to begin transaction", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("Failed to rollback transaction", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperror.NewStore("failed to commit transaction", err)
	}
	return nil
}

func (s *Store) conn(ctx context.Context) dbtx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn(ctx).ExecContext(ctx, query, args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn(ctx).QueryContext(ctx, query, args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn(ctx).QueryRowContext(ctx, query, args...)
}

func (s *Store) Builder() sq.StatementBuilderType {
	return s.builder
}
