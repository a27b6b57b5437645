package project

import (
	"context"
	"strings"
)

// Project.Skills are free-text tags. They are not tied to skill rows: a tag
// may name a skill that does not exist, and the reverse.
type Project struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Skills      []string          `json:"skills"`
	Links       map[string]string `json:"links"`
}

type Order int

const (
	OrderOldestFirst Order = iota
	OrderNewestFirst
)

func (p *Project) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Links == nil {
		p.Links = map[string]string{}
	}
}

// HasSkill is an exact, case-insensitive tag match.
func (p Project) HasSkill(tag string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, tag) {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether the lower-cased query occurs in
// "title description" or inside any single tag.
func (p Project) MatchesQuery(q string) bool {
	if strings.Contains(strings.ToLower(p.Title+" "+p.Description), q) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

type Repository interface {
	List(ctx context.Context, order Order) ([]Project, error)
	Insert(ctx context.Context, p *Project) error
	DeleteAll(ctx context.Context) error
}
