package controllers

import (
	"fmt"
	"net/http"

	"github.com/SRKRCC/HackOverflow-backend/dto"
	"github.com/gin-gonic/gin"
)

// RegisterTeam 队伍报名入口
func (h *Handlers) RegisterTeam(c *gin.Context) {
	var req dto.TeamRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.RegistrationResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.Registration.RegisterTeam(&req, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegistrationResponse{
		Success: true,
		TeamID:  result.TeamID,
		SccID:   result.SccID,
		Message: fmt.Sprintf("Team %q registered successfully! Your SCC ID is %s. Please save your credentials safely.", req.TeamName, result.SccID),
	})
}
