package search

import (
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
)

// Results holds matches from each collection. No ranking, no limit.
type Results struct {
	Projects []project.Project `json:"projects"`
	Skills   []skill.Skill     `json:"skills"`
	Work     []work.Entry      `json:"work"`
}

func Empty() Results {
	return Results{
		Projects: []project.Project{},
		Skills:   []skill.Skill{},
		Work:     []work.Entry{},
	}
}
