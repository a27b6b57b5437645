package project

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/pkg/logger"
)

// ProjectsFeedUseCase renders the project list as a feed, newest first.
type ProjectsFeedUseCase struct {
	projectRepo project.Repository
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewProjectsFeedUseCase(pRepo project.Repository, profRepo profile.Repository, log logger.Logger) *ProjectsFeedUseCase {
	return &ProjectsFeedUseCase{
		projectRepo: pRepo,
		profileRepo: profRepo,
		logger:      log,
	}
}

type ProjectsFeedInput struct {
	// BaseURL is the public address of the API, used for the feed link.
	BaseURL string
}

func (uc *ProjectsFeedUseCase) Execute(ctx context.Context, input ProjectsFeedInput) (*feeds.Feed, error) {
	owner, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := uc.projectRepo.List(ctx, project.OrderNewestFirst)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(input.BaseURL, "/")
	title := "Projects"
	if owner.Name != "" {
		title = owner.Name + " - Projects"
	}
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: base + "/projects"},
		Description: "Projects, newest first.",
		Author:      &feeds.Author{Name: owner.Name, Email: owner.Email},
		Created:     time.Now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(projects))
	for _, p := range projects {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/projects#%d", base, p.ID),
			Title:       p.Title,
			Link:        &feeds.Link{Href: primaryLink(p, base)},
			Description: p.Description,
			Content:     strings.Join(p.Skills, ", "),
		})
	}

	uc.logger.Debug("Projects feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

// primaryLink picks the alphabetically first project link so the choice is
// stable across requests.
func primaryLink(p project.Project, base string) string {
	if len(p.Links) == 0 {
		return fmt.Sprintf("%s/projects#%d", base, p.ID)
	}
	labels := make([]string, 0, len(p.Links))
	for label := range p.Links {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return p.Links[labels[0]]
}
