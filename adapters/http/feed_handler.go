package http

import (
	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/meapi/internal/application/usecase/project"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type FeedHandler struct {
	feedUseCase *projectUC.ProjectsFeedUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *projectUC.ProjectsFeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: uc,
		logger:      log,
	}
}

func (h *FeedHandler) ProjectsRSS(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	input := projectUC.ProjectsFeedInput{BaseURL: scheme + "://" + c.Request.Host}

	feed, err := h.feedUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate projects feed", err))
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write projects feed to response", err)
	}
}
