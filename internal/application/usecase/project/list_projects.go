package project

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/pkg/logger"
)

var tracer = otel.Tracer("github.com/khoahotran/meapi/usecase/project")

type ListProjectsUseCase struct {
	projectRepo project.Repository
	logger      logger.Logger
}

func NewListProjectsUseCase(pRepo project.Repository, log logger.Logger) *ListProjectsUseCase {
	return &ListProjectsUseCase{projectRepo: pRepo, logger: log}
}

type ListProjectsInput struct {
	// Skill, when set, keeps only projects tagged with exactly this skill
	// (case-insensitive). It is not a substring match.
	Skill string
}

type ListProjectsOutput struct {
	Projects []project.Project
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListProjectsUseCase.Execute")
	defer span.End()
	span.SetAttributes(attribute.String("filter.skill", input.Skill))

	projects, err := uc.projectRepo.List(ctx, project.OrderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list projects failed: %w", err)
	}

	if input.Skill == "" {
		return &ListProjectsOutput{Projects: projects}, nil
	}

	filtered := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if p.HasSkill(input.Skill) {
			filtered = append(filtered, p)
		}
	}
	return &ListProjectsOutput{Projects: filtered}, nil
}
