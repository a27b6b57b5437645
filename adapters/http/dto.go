package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
)

// Profile DTOs

type ProfileDTO struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education string            `json:"education"`
	Links     map[string]string `json:"links"`
	Skills    []skill.Skill     `json:"skills"`
	Work      []work.Entry      `json:"work"`
	Projects  []project.Project `json:"projects"`
}

func ToProfileDTO(a *profile.Aggregate) ProfileDTO {
	return ProfileDTO{
		Name:      a.Name,
		Email:     a.Email,
		Education: a.Education,
		Links:     a.Links,
		Skills:    a.Skills,
		Work:      a.Work,
		Projects:  a.Projects,
	}
}

// ReplaceProfileRequest keeps the collections raw: only a JSON array
// replaces a collection, anything else (absent, null, an object) leaves it
// alone.
type ReplaceProfileRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education string            `json:"education"`
	Links     map[string]string `json:"links"`
	Skills    json.RawMessage   `json:"skills"`
	Work      json.RawMessage   `json:"work"`
	Projects  json.RawMessage   `json:"projects"`
}

// SkillRequest accepts either "Go" or {"name": "Go", "score": 3}.
type SkillRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (s *SkillRequest) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("skill must be a string or an object, got null")
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = SkillRequest{Name: name}
		return nil
	}
	type plain SkillRequest
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("skill must be a string or an object: %w", err)
	}
	*s = SkillRequest(obj)
	return nil
}

type WorkRequest struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type ProjectRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Skills      []string          `json:"skills"`
	Links       map[string]string `json:"links"`
}

// decodeCollection returns nil, nil unless raw is a JSON array. A present
// array always yields a non-nil slice.
func decodeCollection[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	items := make([]T, 0)
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (req *ReplaceProfileRequest) ToDomainProfile() profile.Profile {
	return profile.Profile{
		Name:      req.Name,
		Email:     req.Email,
		Education: req.Education,
		Links:     req.Links,
	}
}

func (req *ReplaceProfileRequest) ToDomainSkills() ([]skill.Skill, error) {
	items, err := decodeCollection[SkillRequest](req.Skills)
	if err != nil || items == nil {
		return nil, err
	}
	// Nameless skills are dropped, not stored under "".
	skills := make([]skill.Skill, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		skills = append(skills, skill.Skill(it))
	}
	return skills, nil
}

func (req *ReplaceProfileRequest) ToDomainWork() ([]work.Entry, error) {
	items, err := decodeCollection[WorkRequest](req.Work)
	if err != nil || items == nil {
		return nil, err
	}
	entries := make([]work.Entry, len(items))
	for i, it := range items {
		entries[i] = work.Entry(it)
	}
	return entries, nil
}

func (req *ReplaceProfileRequest) ToDomainProjects() ([]project.Project, error) {
	items, err := decodeCollection[ProjectRequest](req.Projects)
	if err != nil || items == nil {
		return nil, err
	}
	projects := make([]project.Project, len(items))
	for i, it := range items {
		projects[i] = project.Project{
			Title:       it.Title,
			Description: it.Description,
			Skills:      it.Skills,
			Links:       it.Links,
		}
	}
	return projects, nil
}

// Project DTOs

type ProjectListDTO struct {
	Count    int               `json:"count"`
	Projects []project.Project `json:"projects"`
}

// Skill DTOs

type TopSkillsDTO struct {
	Skills []skill.Skill `json:"skills"`
}

type HealthDTO struct {
	Status string `json:"status"`
	TS     string `json:"ts"`
}
