package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	skillUC "github.com/khoahotran/meapi/internal/application/usecase/skill"
	"github.com/khoahotran/meapi/pkg/logger"
)

type SkillHandler struct {
	listSkillsUseCase *skillUC.ListSkillsUseCase
	logger            logger.Logger
}

func NewSkillHandler(uc *skillUC.ListSkillsUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{listSkillsUseCase: uc, logger: log}
}

func (h *SkillHandler) TopSkills(c *gin.Context) {
	output, err := h.listSkillsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, TopSkillsDTO{Skills: output.Skills})
}
