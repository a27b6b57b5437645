package persistence

import (
	"context"

	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type sqlWorkRepo struct {
	db     Conn
	logger logger.Logger
}

func NewSQLWorkRepo(db Conn, logger logger.Logger) work.Repository {
	return &sqlWorkRepo{db: db, logger: logger}
}

func (r *sqlWorkRepo) List(ctx context.Context) ([]work.Entry, error) {
	query, args, err := r.db.Builder().
		Select("company", "role", "start_date", "end_date", "description").
		From("work").
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build work query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStore("failed to query work", err)
	}
	defer rows.Close()

	entries := make([]work.Entry, 0)
	for rows.Next() {
		var e work.Entry
		if err := rows.Scan(&e.Company, &e.Role, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, apperror.NewStore("failed to scan work entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStore("error iterating work rows", err)
	}
	return entries, nil
}

func (r *sqlWorkRepo) Insert(ctx context.Context, e work.Entry) error {
	query, args, err := r.db.Builder().
		Insert("work").
		Columns("company", "role", "start_date", "end_date", "description").
		Values(e.Company, e.Role, e.StartDate, e.EndDate, e.Description).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build work insert", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to insert work entry", err)
	}
	return nil
}

func (r *sqlWorkRepo) DeleteAll(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete("work").ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build work delete", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to delete work", err)
	}
	return nil
}
