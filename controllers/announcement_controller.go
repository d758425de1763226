package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 公告接口 ---

// AdminCreateAnnouncement 创建公告，生效窗口必须合法
func (h *Handlers) AdminCreateAnnouncement(c *gin.Context) {
	var req struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description" binding:"required"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "All fields (title, description, start_time, end_time) are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Error(c, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	announcement := models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := h.Store.Announcements.Create(&announcement); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("ANNOUNCEMENT_CREATED", auditContext(c), c.FullPath(), http.StatusCreated, map[string]interface{}{
		"announcement_id": announcement.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Announcement created successfully", "data": announcement})
}

func (h *Handlers) AdminGetAnnouncements(c *gin.Context) {
	announcements, err := h.Store.Announcements.All()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcements fetched successfully", "data": announcements})
}

func (h *Handlers) AdminGetActiveAnnouncements(c *gin.Context) {
	announcements, err := h.Store.Announcements.ActiveAt(time.Now())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Active announcements fetched successfully", "data": announcements})
}

func (h *Handlers) AdminGetAnnouncement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid announcement id")
		return
	}
	announcement, err := h.Store.Announcements.ByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Announcement not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement fetched successfully", "data": announcement})
}

func (h *Handlers) AdminUpdateAnnouncement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid announcement id")
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	current, err := h.Store.Announcements.ByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Announcement not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// 校验合并后的窗口，避免只改一端导致 end <= start
	start, end := current.StartTime, current.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !end.After(start) {
		utils.Error(c, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	if err := h.Store.Announcements.Updates(uint(id), updates); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("ANNOUNCEMENT_UPDATED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"announcement_id": id})
	utils.Success(c, "Announcement updated successfully", nil)
}

func (h *Handlers) AdminDeleteAnnouncement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid announcement id")
		return
	}
	if _, err := h.Store.Announcements.ByID(uint(id)); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Announcement not found")
		return
	}
	if err := h.Store.Announcements.Delete(uint(id)); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("ANNOUNCEMENT_DELETED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"announcement_id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
