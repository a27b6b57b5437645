package search

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/search"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/pkg/logger"
)

var tracer = otel.Tracer("github.com/khoahotran/meapi/usecase/search")

type SearchUseCase struct {
	projectRepo project.Repository
	skillRepo   skill.Repository
	workRepo    work.Repository
	logger      logger.Logger
}

func NewSearchUseCase(pr project.Repository, sr skill.Repository, wr work.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		projectRepo: pr,
		skillRepo:   sr,
		workRepo:    wr,
		logger:      log,
	}
}

type SearchInput struct {
	Query string
}

type SearchOutput struct {
	Results search.Results
}

// Execute runs a case-insensitive substring search over projects, skills and
// work. An empty query returns empty results without reading the store.
func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	q := strings.ToLower(input.Query)
	if q == "" {
		return &SearchOutput{Results: search.Empty()}, nil
	}

	ctx, span := tracer.Start(ctx, "SearchUseCase.Execute")
	defer span.End()
	uc.logger.Debug("Executing search", zap.String("query", input.Query))

	results := search.Empty()

	projects, err := uc.projectRepo.List(ctx, project.OrderOldestFirst)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.MatchesQuery(q) {
			results.Projects = append(results.Projects, p)
		}
	}

	skills, err := uc.skillRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range skills {
		if s.MatchesQuery(q) {
			results.Skills = append(results.Skills, s)
		}
	}

	entries, err := uc.workRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.MatchesQuery(q) {
			results.Work = append(results.Work, e)
		}
	}

	return &SearchOutput{Results: results}, nil
}
