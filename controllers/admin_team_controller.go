package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 管理员侧队伍接口 ---

func (h *Handlers) AdminGetTeams(c *gin.Context) {
	teams, err := h.Store.Teams.AllWithMembers()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	formatted := make([]gin.H, 0, len(teams))
	for _, team := range teams {
		formatted = append(formatted, gin.H{
			"teamId":           team.ID,
			"scc_id":           team.SccID,
			"title":            team.Title,
			"payment_verified": team.PaymentVerified,
			"members":          team.Members,
		})
	}
	c.JSON(http.StatusOK, formatted)
}

func (h *Handlers) AdminGetTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	team, err := h.Store.Teams.WithMembers(uint(teamID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, team)
}

// AdminUpdateTeam 只接受白名单字段
func (h *Handlers) AdminUpdateTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req struct {
		Title           *string   `json:"title"`
		PsID            *uint     `json:"ps_id"`
		GalleryImages   *[]string `json:"gallery_images"`
		PaymentVerified *bool     `json:"paymentVerified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	verrs := &apperrors.ValidationErrors{}
	updates := map[string]interface{}{}
	if req.Title != nil {
		if len(*req.Title) < 3 {
			verrs.Add("title", "Title must be at least 3 characters long")
		} else {
			updates["title"] = *req.Title
		}
	}
	if req.PsID != nil {
		if _, err := h.Store.Statements.ByID(*req.PsID); err != nil {
			verrs.Add("ps_id", "Problem statement not found")
		} else {
			updates["ps_id"] = *req.PsID
		}
	}
	if req.GalleryImages != nil {
		updates["gallery_images"] = *req.GalleryImages
	}
	if req.PaymentVerified != nil {
		updates["payment_verified"] = *req.PaymentVerified
	}
	if verrs.HasErrors() {
		respondError(c, verrs)
		return
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	if _, err := h.Store.Teams.ByID(uint(teamID)); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err := h.Store.Teams.Updates(uint(teamID), updates); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("TEAM_UPDATED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{
		"team_id": teamID,
	})
	utils.Success(c, "Team updated successfully", nil)
}

// AdminDeleteTeam 级联删除队伍
func (h *Handlers) AdminDeleteTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	if err := h.Teams.DeleteTeam(uint(teamID), auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// AdminAddGalleryImages 追加相册图片 URL
func (h *Handlers) AdminAddGalleryImages(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("teamId"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req struct {
		ImageURLs []string `json:"imageUrls" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "imageUrls is required")
		return
	}

	team, err := h.Store.Teams.ByID(uint(teamID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	images := append(team.GalleryImages, req.ImageURLs...)
	if err := h.Store.Teams.UpdateGallery(team.ID, images); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Images uploaded successfully",
		"uploaded": req.ImageURLs,
		"gallery":  images,
	})
}

// AdminRemoveGalleryImage 移除一张相册图片
func (h *Handlers) AdminRemoveGalleryImage(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("teamId"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	var req struct {
		ImageURL string `json:"imageUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "imageUrl is required")
		return
	}

	team, err := h.Store.Teams.ByID(uint(teamID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	images := make([]string, 0, len(team.GalleryImages))
	for _, url := range team.GalleryImages {
		if url != req.ImageURL {
			images = append(images, url)
		}
	}
	if err := h.Store.Teams.UpdateGallery(team.ID, images); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image removed successfully", "gallery": images})
}
