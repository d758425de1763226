package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/dto"
	"github.com/SRKRCC/HackOverflow-backend/middlewares"
	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 队伍侧接口，全部要求 team 令牌 ---

func (h *Handlers) GetTeamDetails(c *gin.Context) {
	team, err := h.Store.Teams.WithMembers(middlewares.TeamID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teamId":       team.ID,
		"title":        team.Title,
		"scc_id":       team.SccID,
		"ps_id":        team.PsID,
		"team_members": team.Members,
	})
}

func (h *Handlers) GetTeamProblemStatement(c *gin.Context) {
	team, err := h.Store.Teams.ByID(middlewares.TeamID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if team.PsID == nil {
		utils.Error(c, http.StatusNotFound, "Problem statement not found")
		return
	}

	ps, err := h.Store.Statements.ByID(*team.PsID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Problem statement not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.Success(c, "Problem statement retrieved successfully", ps)
}

func (h *Handlers) GetTeamGallery(c *gin.Context) {
	team, err := h.Store.Teams.ByID(middlewares.TeamID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.Success(c, "Gallery images retrieved successfully", team.GalleryImages)
}

func (h *Handlers) GetTeamAnnouncements(c *gin.Context) {
	announcements, err := h.Store.Announcements.ActiveAt(time.Now())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.Success(c, "Announcements retrieved successfully", announcements)
}

// GetTeamTasks 队伍任务列表。未完成任务的 points_earned 对队伍不可见。
func (h *Handlers) GetTeamTasks(c *gin.Context) {
	tasks, err := h.Store.Tasks.ByTeam(middlewares.TeamID(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.SanitizeTasks(tasks))
}

func (h *Handlers) GetTeamTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.Store.Tasks.ByID(uint(taskID))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && task.TeamID != middlewares.TeamID(c)) {
		utils.Error(c, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, dto.SanitizeTask(task))
}

// SubmitTask 队伍提交任务评审
func (h *Handlers) SubmitTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req struct {
		TeamNotes *string `json:"teamNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Tasks.SubmitForReview(uint(taskID), middlewares.TeamID(c), req.TeamNotes, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task submitted for review successfully",
		"task":    dto.SanitizeTask(task),
	})
}

// SubmitCertificate 证书字段只允许提交一次
func (h *Handlers) SubmitCertificate(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req struct {
		CertificateName string `json:"certificate_name" binding:"required"`
		RollNumber      string `json:"roll_number" binding:"required"`
		Gender          string `json:"gender" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "certificate_name, roll_number and gender are required")
		return
	}

	member, err := h.Teams.SubmitCertificate(uint(memberID), middlewares.TeamID(c), services.CertificateInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Certificate details submitted successfully", member)
}
