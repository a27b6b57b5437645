package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	profileUC "github.com/khoahotran/meapi/internal/application/usecase/profile"
	"github.com/khoahotran/meapi/pkg/apperror"
	"github.com/khoahotran/meapi/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ReplaceProfile(c *gin.Context) {
	var req ReplaceProfileRequest
	// An empty body is an empty payload, not an error.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile replace", err))
		return
	}

	skills, err := req.ToDomainSkills()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skills list", err))
		return
	}
	work, err := req.ToDomainWork()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid work list", err))
		return
	}
	projects, err := req.ToDomainProjects()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid projects list", err))
		return
	}

	input := profileUC.ReplaceProfileInput{
		Profile:  req.ToDomainProfile(),
		Skills:   skills,
		Work:     work,
		Projects: projects,
	}
	if err := h.profileUseCase.ExecuteReplaceProfile(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
