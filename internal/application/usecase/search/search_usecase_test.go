package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/search"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/internal/testutil"
	"github.com/khoahotran/meapi/pkg/logger"
)

type SearchUseCaseTestSuite struct {
	suite.Suite
	ctx  context.Context
	conn *testutil.CountingConn
	uc   *SearchUseCase
}

func (s *SearchUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.conn = testutil.NewCountingConn(testutil.NewMemoryStore(s.T()))
	repos := testutil.NewRepos(s.conn)

	s.Require().NoError(repos.Projects.Insert(s.ctx, &project.Project{Title: "Tracker", Description: "habit app", Skills: []string{"Python", "SQL"}}))
	s.Require().NoError(repos.Projects.Insert(s.ctx, &project.Project{Title: "Blog", Skills: []string{"Go"}}))
	s.Require().NoError(repos.Skills.Insert(s.ctx, skill.Skill{Name: "Python", Score: 4}))
	s.Require().NoError(repos.Skills.Insert(s.ctx, skill.Skill{Name: "Go", Score: 6}))
	s.Require().NoError(repos.Work.Insert(s.ctx, work.Entry{Company: "Acme", Role: "Data Engineer", Description: "python pipelines"}))
	s.Require().NoError(repos.Work.Insert(s.ctx, work.Entry{Company: "Initech", Role: "Developer"}))

	s.uc = NewSearchUseCase(repos.Projects, repos.Skills, repos.Work, logger.NewNopLogger())
}

func TestSearchUseCase(t *testing.T) {
	suite.Run(t, new(SearchUseCaseTestSuite))
}

func (s *SearchUseCaseTestSuite) search(q string) search.Results {
	out, err := s.uc.Execute(s.ctx, SearchInput{Query: q})
	s.Require().NoError(err)
	return out.Results
}

func (s *SearchUseCaseTestSuite) Test_CaseInsensitive() {
	upper := s.search("PYTHON")
	lower := s.search("python")

	s.Equal(lower, upper)
	s.Require().Len(lower.Projects, 1)
	s.Equal("Tracker", lower.Projects[0].Title)
	s.Equal([]skill.Skill{{Name: "Python", Score: 4}}, lower.Skills)
	s.Require().Len(lower.Work, 1)
	s.Equal("Acme", lower.Work[0].Company)
}

func (s *SearchUseCaseTestSuite) Test_ConcatenatedFields() {
	res := s.search("tracker habit")
	s.Len(res.Projects, 1)

	res = s.search("acme data")
	s.Len(res.Work, 1)

	res = s.search("initech developer")
	s.Len(res.Work, 1)
}

func (s *SearchUseCaseTestSuite) Test_SubstringOfTag() {
	res := s.search("ytho")
	s.Len(res.Projects, 1)
	s.Len(res.Skills, 1)
}

func (s *SearchUseCaseTestSuite) Test_NoMatches() {
	res := s.search("haskell")
	s.Equal(search.Empty(), res)
}

func (s *SearchUseCaseTestSuite) Test_EmptyQuerySkipsStore() {
	before := s.conn.Calls()

	res := s.search("")

	s.Equal(search.Empty(), res)
	s.Equal(before, s.conn.Calls())
}
