package persistence

import (
	"context"

	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type sqlSkillRepo struct {
	db     Conn
	logger logger.Logger
}

func NewSQLSkillRepo(db Conn, logger logger.Logger) skill.Repository {
	return &sqlSkillRepo{db: db, logger: logger}
}

func (r *sqlSkillRepo) List(ctx context.Context) ([]skill.Skill, error) {
	query, args, err := r.db.Builder().
		Select("name", "score").
		From("skills").
		OrderBy("score DESC", "name ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skills query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStore("failed to query skills", err)
	}
	defer rows.Close()

	skills := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.Name, &s.Score); err != nil {
			return nil, apperror.NewStore("failed to scan skill", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStore("error iterating skill rows", err)
	}
	return skills, nil
}

// Insert relies on the UNIQUE(name) constraint: a duplicate keeps the
// existing row and its score.
func (r *sqlSkillRepo) Insert(ctx context.Context, s skill.Skill) error {
	query, args, err := r.db.Builder().
		Insert("skills").
		Columns("name", "score").
		Values(s.Name, s.Score).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build skill insert", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to insert skill", err)
	}
	return nil
}

func (r *sqlSkillRepo) DeleteAll(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete("skills").ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build skills delete", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to delete skills", err)
	}
	return nil
}
