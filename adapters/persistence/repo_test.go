package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/meapi/adapters/persistence"
	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/internal/testutil"
)

type RepoTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *persistence.Store
	repos testutil.Repos
}

func (s *RepoTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewMemoryStore(s.T())
	s.repos = testutil.NewRepos(s.store)
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoTestSuite))
}

func (s *RepoTestSuite) Test_Profile_GetWithoutRow() {
	p, err := s.repos.Profiles.Get(s.ctx)
	s.NoError(err)
	s.Equal("", p.Name)
	s.NotNil(p.Links)

	n, err := s.repos.Profiles.Count(s.ctx)
	s.NoError(err)
	s.Equal(0, n)
}

func (s *RepoTestSuite) Test_Profile_DeleteThenInsertKeepsSingleton() {
	s.NoError(s.repos.Profiles.Insert(s.ctx, &profile.Profile{Name: "Ada", Links: map[string]string{"github": "https://github.com/ada"}}))
	s.NoError(s.repos.Profiles.Delete(s.ctx))
	s.NoError(s.repos.Profiles.Insert(s.ctx, &profile.Profile{Name: "Grace"}))

	n, err := s.repos.Profiles.Count(s.ctx)
	s.NoError(err)
	s.Equal(1, n)

	p, err := s.repos.Profiles.Get(s.ctx)
	s.NoError(err)
	s.Equal("Grace", p.Name)
	s.Equal(map[string]string{}, p.Links)
}

func (s *RepoTestSuite) Test_Profile_SecondInsertViolatesSingleton() {
	s.NoError(s.repos.Profiles.Insert(s.ctx, &profile.Profile{Name: "Ada"}))
	s.Error(s.repos.Profiles.Insert(s.ctx, &profile.Profile{Name: "Grace"}))
}

func (s *RepoTestSuite) Test_Skill_DuplicateInsertKeepsScore() {
	s.NoError(s.repos.Skills.Insert(s.ctx, skill.Skill{Name: "Go", Score: 7}))
	s.NoError(s.repos.Skills.Insert(s.ctx, skill.Skill{Name: "Go", Score: 2}))

	got, err := s.repos.Skills.List(s.ctx)
	s.NoError(err)
	s.Equal([]skill.Skill{{Name: "Go", Score: 7}}, got)
}

func (s *RepoTestSuite) Test_Skill_NamesAreCaseSensitiveInStore() {
	s.NoError(s.repos.Skills.Insert(s.ctx, skill.Skill{Name: "Go", Score: 1}))
	s.NoError(s.repos.Skills.Insert(s.ctx, skill.Skill{Name: "go", Score: 1}))

	got, err := s.repos.Skills.List(s.ctx)
	s.NoError(err)
	s.Len(got, 2)
}

func (s *RepoTestSuite) Test_Skill_OrderByScoreThenName() {
	for _, sk := range []skill.Skill{{Name: "A", Score: 5}, {Name: "B", Score: 9}, {Name: "C", Score: 5}} {
		s.NoError(s.repos.Skills.Insert(s.ctx, sk))
	}

	got, err := s.repos.Skills.List(s.ctx)
	s.NoError(err)
	s.Equal([]skill.Skill{{Name: "B", Score: 9}, {Name: "A", Score: 5}, {Name: "C", Score: 5}}, got)
}

func (s *RepoTestSuite) Test_Skill_TieBreakUsesByteOrder() {
	for _, name := range []string{"a", "B", "Z"} {
		s.NoError(s.repos.Skills.Insert(s.ctx, skill.Skill{Name: name, Score: 2}))
	}

	got, err := s.repos.Skills.List(s.ctx)
	s.NoError(err)
	s.Equal([]skill.Skill{{Name: "B", Score: 2}, {Name: "Z", Score: 2}, {Name: "a", Score: 2}}, got)
}

func (s *RepoTestSuite) Test_Work_OrderedByStartDate() {
	s.NoError(s.repos.Work.Insert(s.ctx, work.Entry{Company: "Later", StartDate: "2022-01"}))
	s.NoError(s.repos.Work.Insert(s.ctx, work.Entry{Company: "Earlier", StartDate: "2019-06"}))

	got, err := s.repos.Work.List(s.ctx)
	s.NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Earlier", got[0].Company)
	s.Equal("Later", got[1].Company)
}

func (s *RepoTestSuite) Test_Project_Ordering() {
	s.NoError(s.repos.Projects.Insert(s.ctx, &project.Project{Title: "first"}))
	s.NoError(s.repos.Projects.Insert(s.ctx, &project.Project{Title: "second", Skills: []string{"Go"}}))

	asc, err := s.repos.Projects.List(s.ctx, project.OrderOldestFirst)
	s.NoError(err)
	s.Equal("first", asc[0].Title)
	s.Equal([]string{}, asc[0].Skills)
	s.Equal(map[string]string{}, asc[0].Links)

	desc, err := s.repos.Projects.List(s.ctx, project.OrderNewestFirst)
	s.NoError(err)
	s.Equal("second", desc[0].Title)
	s.Greater(desc[0].ID, desc[1].ID)
}

func (s *RepoTestSuite) Test_Project_IDsNotReusedAfterDeleteAll() {
	s.NoError(s.repos.Projects.Insert(s.ctx, &project.Project{Title: "old"}))
	before, err := s.repos.Projects.List(s.ctx, project.OrderOldestFirst)
	s.NoError(err)

	s.NoError(s.repos.Projects.DeleteAll(s.ctx))
	s.NoError(s.repos.Projects.Insert(s.ctx, &project.Project{Title: "new"}))

	after, err := s.repos.Projects.List(s.ctx, project.OrderOldestFirst)
	s.NoError(err)
	s.Require().Len(after, 1)
	s.Greater(after[0].ID, before[0].ID)
}

func (s *RepoTestSuite) Test_Project_CorruptJSONFallsBackPerProject() {
	_, err := s.store.ExecContext(s.ctx,
		`INSERT INTO projects (title, description, skills_json, links_json) VALUES (?, ?, ?, ?)`,
		"broken", "", "not json", `{"site": 5}`)
	s.NoError(err)
	s.NoError(s.repos.Projects.Insert(s.ctx, &project.Project{Title: "fine", Skills: []string{"Go"}}))

	got, err := s.repos.Projects.List(s.ctx, project.OrderOldestFirst)
	s.NoError(err)
	s.Require().Len(got, 2)
	s.Equal([]string{}, got[0].Skills)
	s.Equal(map[string]string{}, got[0].Links)
	s.Equal([]string{"Go"}, got[1].Skills)
}
