package profile

import (
	"context"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
)

// SingletonID is the fixed key of the only profile row.
const SingletonID = 1

type Profile struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education string            `json:"education"`
	Links     map[string]string `json:"links"`
}

// Normalize replaces absent fields with their empty values so a stored
// profile never carries a null links mapping.
func (p *Profile) Normalize() {
	if p.Links == nil {
		p.Links = map[string]string{}
	}
}

// Aggregate is the full profile document: identity plus every collection.
type Aggregate struct {
	Profile
	Skills   []skill.Skill     `json:"skills"`
	Work     []work.Entry      `json:"work"`
	Projects []project.Project `json:"projects"`
}

type Repository interface {
	// Get returns the singleton, or an empty profile when no row exists.
	Get(ctx context.Context) (*Profile, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context) error
	Insert(ctx context.Context, p *Profile) error
}
