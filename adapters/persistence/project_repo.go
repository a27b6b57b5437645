package persistence

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type sqlProjectRepo struct {
	db     Conn
	logger logger.Logger
}

func NewSQLProjectRepo(db Conn, logger logger.Logger) project.Repository {
	return &sqlProjectRepo{db: db, logger: logger}
}

// scanProject decodes the JSON text columns. A column that does not decode
// falls back to its empty value instead of failing the whole listing.
func scanProject(rows *sql.Rows, l logger.Logger) (project.Project, error) {
	var p project.Project
	var skillsJSON, linksJSON string

	if err := rows.Scan(&p.ID, &p.Title, &p.Description, &skillsJSON, &linksJSON); err != nil {
		return p, apperror.NewStore("failed to scan project row", err)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
		l.Warn("Failed to unmarshal project skills", zap.Int64("project_id", p.ID), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal([]byte(linksJSON), &p.Links); err != nil {
		l.Warn("Failed to unmarshal project links", zap.Int64("project_id", p.ID), zap.Error(err))
		p.Links = map[string]string{}
	}
	p.Normalize()
	return p, nil
}

func scanProjects(rows *sql.Rows, l logger.Logger) ([]project.Project, error) {
	defer rows.Close()
	projects := make([]project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows, l)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStore("error iterating project rows", err)
	}
	return projects, nil
}

func (r *sqlProjectRepo) List(ctx context.Context, order project.Order) ([]project.Project, error) {
	orderBy := "id ASC"
	if order == project.OrderNewestFirst {
		orderBy = "id DESC"
	}

	query, args, err := r.db.Builder().
		Select("id", "title", "description", "skills_json", "links_json").
		From("projects").
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build projects query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStore("failed to query projects", err)
	}
	return scanProjects(rows, r.logger)
}

func (r *sqlProjectRepo) Insert(ctx context.Context, p *project.Project) error {
	p.Normalize()
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal project skills", err)
	}
	linksJSON, err := json.Marshal(p.Links)
	if err != nil {
		return apperror.NewInternal("failed to marshal project links", err)
	}

	query, args, err := r.db.Builder().
		Insert("projects").
		Columns("title", "description", "skills_json", "links_json").
		Values(p.Title, p.Description, string(skillsJSON), string(linksJSON)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build project insert", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return apperror.NewStore("failed to insert project", err)
	}
	return nil
}

func (r *sqlProjectRepo) DeleteAll(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete("projects").ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build projects delete", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStore("failed to delete projects", err)
	}
	return nil
}
