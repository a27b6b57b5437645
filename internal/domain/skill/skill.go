package skill

import (
	"context"
	"strings"
)

const DefaultScore = 1

type Skill struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// MatchesQuery reports whether the lower-cased query is a substring of the name.
func (s Skill) MatchesQuery(q string) bool {
	return strings.Contains(strings.ToLower(s.Name), q)
}

type Repository interface {
	// List returns skills by score descending, then name ascending.
	List(ctx context.Context) ([]Skill, error)
	// Insert adds a skill; a name that already exists is silently ignored.
	Insert(ctx context.Context, s Skill) error
	DeleteAll(ctx context.Context) error
}
