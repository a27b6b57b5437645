package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/khoahotran/meapi/internal/application/usecase/search"
	"github.com/khoahotran/meapi/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        log,
	}
}

// Search never rejects a missing q; it answers with empty results.
func (h *SearchHandler) Search(c *gin.Context) {
	input := searchUC.SearchInput{Query: c.Query("q")}
	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Results)
}
