package skill

import (
	"context"
	"fmt"

	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/pkg/logger"
)

type ListSkillsUseCase struct {
	skillRepo skill.Repository
	logger    logger.Logger
}

func NewListSkillsUseCase(sRepo skill.Repository, log logger.Logger) *ListSkillsUseCase {
	return &ListSkillsUseCase{skillRepo: sRepo, logger: log}
}

type ListSkillsOutput struct {
	Skills []skill.Skill
}

// Execute returns every skill ranked by score, ties broken by name.
func (uc *ListSkillsUseCase) Execute(ctx context.Context) (*ListSkillsOutput, error) {
	skills, err := uc.skillRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills failed: %w", err)
	}
	return &ListSkillsOutput{Skills: skills}, nil
}
