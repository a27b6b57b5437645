package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/pkg/logger"
)

type SchemaInitializer interface {
	InitSchema(ctx context.Context, ddl string) error
}

// Seeder prepares the store on startup: schema first, then the seed document
// when the profile table is empty.
type Seeder struct {
	schema   SchemaInitializer
	ddl      string
	source   Source
	profiles profile.Repository
	skills   skill.Repository
	work     work.Repository
	projects project.Repository
	logger   logger.Logger
}

func NewSeeder(
	schema SchemaInitializer,
	ddl string,
	source Source,
	profiles profile.Repository,
	skills skill.Repository,
	workRepo work.Repository,
	projects project.Repository,
	log logger.Logger,
) *Seeder {
	return &Seeder{
		schema:   schema,
		ddl:      ddl,
		source:   source,
		profiles: profiles,
		skills:   skills,
		work:     workRepo,
		projects: projects,
		logger:   log,
	}
}

// Run reports whether seed data was inserted. The profile row count is the
// only guard: a store with a profile row is never touched, even if other
// tables are empty.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	if err := s.schema.InitSchema(ctx, s.ddl); err != nil {
		return false, err
	}

	n, err := s.profiles.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.logger.Info("Database already has data, skipping seed.")
		return false, nil
	}

	raw, err := s.source()
	if err != nil {
		return false, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return false, err
	}

	if err := s.insert(ctx, doc); err != nil {
		return false, err
	}

	s.logger.Info("Database seeded with initial data.",
		zap.Int("skills", len(doc.Skills)),
		zap.Int("work", len(doc.Work)),
		zap.Int("projects", len(doc.Projects)),
	)
	return true, nil
}

func (s *Seeder) insert(ctx context.Context, doc *Document) error {
	err := s.profiles.Insert(ctx, &profile.Profile{
		Name:      doc.Profile.Name,
		Email:     doc.Profile.Email,
		Education: doc.Profile.Education,
		Links:     doc.Profile.Links,
	})
	if err != nil {
		return err
	}

	for _, sk := range doc.Skills {
		score := skill.DefaultScore
		if sk.Score != nil {
			score = *sk.Score
		}
		if err := s.skills.Insert(ctx, skill.Skill{Name: sk.Name, Score: score}); err != nil {
			return err
		}
	}

	for _, w := range doc.Work {
		if err := s.work.Insert(ctx, work.Entry(w)); err != nil {
			return err
		}
	}

	for _, p := range doc.Projects {
		err := s.projects.Insert(ctx, &project.Project{
			Title:       p.Title,
			Description: p.Description,
			Skills:      p.Skills,
			Links:       p.Links,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
