package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type sqlProfileRepo struct {
	db     Conn
	logger logger.Logger
}

func NewSQLProfileRepo(db Conn, logger logger.Logger) profile.Repository {
	return &sqlProfileRepo{db: db, logger: logger}
}

func (r *sqlProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	query, args, err := r.db.Builder().
		Select("name", "email", "education", "links_json").
		From("profile").
		Where(sq.Eq{"id": profile.SingletonID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	p := &profile.Profile{}
	var linksJSON string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&p.Name, &p.Email, &p.Education, &linksJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &profile.Profile{Links: map[string]string{}}, nil
		}
		return nil, apperror.NewStore("failed to query profile", err)
	}

	if err := json.Unmarshal([]byte(linksJSON), &p.Links); err != nil {
		r.logger.Warn("Failed to unmarshal profile links", zap.Error(err))
		p.Links = nil
	}
	p.Normalize()
	return p, nil
}

func (r *sqlProfileRepo) Count(ctx context.Context) (int, error) {
	query, args, err := r.db.Builder().Select("COUNT(*)").From("profile").ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build profile count query", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperror.NewStore("failed to count profile rows", err)
	}
	return n, nil
}

func (r *sqlProfileRepo) Delete(ctx context.Context) error {
	query, args, err := r.db.Builder().
		Delete("profile").
		Where(sq.Eq{"id": profile.SingletonID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile delete", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to delete profile", err)
	}
	return nil
}

func (r *sqlProfileRepo) Insert(ctx context.Context, p *profile.Profile) error {
	p.Normalize()
	linksJSON, err := json.Marshal(p.Links)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile links", err)
	}

	query, args, err := r.db.Builder().
		Insert("profile").
		Columns("id", "name", "email", "education", "links_json").
		Values(profile.SingletonID, p.Name, p.Email, p.Education, string(linksJSON)).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile insert", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to insert profile", err)
	}
	return nil
}
