package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/testutil"
	"github.com/khoahotran/meapi/pkg/logger"
)

func newListUseCase(t *testing.T, projects ...project.Project) *ListProjectsUseCase {
	t.Helper()
	store := testutil.NewMemoryStore(t)
	repos := testutil.NewRepos(store)
	for i := range projects {
		require.NoError(t, repos.Projects.Insert(context.Background(), &projects[i]))
	}
	return NewListProjectsUseCase(repos.Projects, logger.NewNopLogger())
}

func titles(ps []project.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestListProjectsNewestFirst(t *testing.T) {
	uc := newListUseCase(t,
		project.Project{Title: "one"},
		project.Project{Title: "two"},
		project.Project{Title: "three"},
	)

	out, err := uc.Execute(context.Background(), ListProjectsInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two", "one"}, titles(out.Projects))
}

func TestListProjectsSkillFilterIsExactTag(t *testing.T) {
	uc := newListUseCase(t,
		project.Project{Title: "Tracker", Skills: []string{"Go", "SQL"}},
		project.Project{Title: "Site", Skills: []string{"Golang", "CSS"}},
	)

	tests := []struct {
		skill string
		want  []string
	}{
		{"go", []string{"Tracker"}},
		{"GO", []string{"Tracker"}},
		{"golan", []string{}},
		{"golang", []string{"Site"}},
		{"java", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), ListProjectsInput{Skill: tt.skill})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(out.Projects))
		})
	}
}
