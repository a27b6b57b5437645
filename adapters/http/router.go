package http

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/meapi/pkg/logger"
)

const healthTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Handlers struct {
	Profile *ProfileHandler
	Project *ProjectHandler
	Skill   *SkillHandler
	Search  *SearchHandler
	Feed    *FeedHandler
}

// NewRouter wires the public API. When staticDir holds an index.html it is
// served at GET /.
func NewRouter(h Handlers, staticDir string, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), CORS(), ErrorMiddleware(log))

	router.GET("/health", Health)

	router.GET("/profile", h.Profile.GetProfile)
	router.PUT("/profile", h.Profile.ReplaceProfile)
	router.GET("/projects", h.Project.ListProjects)
	router.GET("/skills/top", h.Skill.TopSkills)
	router.GET("/search", h.Search.Search)
	if h.Feed != nil {
		router.GET("/projects/feed.rss", h.Feed.ProjectsRSS)
	}

	if staticDir != "" {
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			router.StaticFile("/", index)
			router.Static("/static", staticDir)
		}
	}

	return router
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthDTO{
		Status: "ok",
		TS:     time.Now().UTC().Format(healthTimeLayout),
	})
}
