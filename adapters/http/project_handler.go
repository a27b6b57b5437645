package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	projectUC "github.com/khoahotran/meapi/internal/application/usecase/project"
	"github.com/khoahotran/meapi/pkg/logger"
)

type ProjectHandler struct {
	listProjectsUseCase *projectUC.ListProjectsUseCase
	logger              logger.Logger
}

func NewProjectHandler(listUC *projectUC.ListProjectsUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		listProjectsUseCase: listUC,
		logger:              log,
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := projectUC.ListProjectsInput{Skill: c.Query("skill")}
	output, err := h.listProjectsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ProjectListDTO{Count: len(output.Projects), Projects: output.Projects})
}
