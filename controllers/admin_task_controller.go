package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 管理员侧任务接口 ---

func (h *Handlers) AdminCreateTask(c *gin.Context) {
	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "title, round_num and points are required")
		return
	}

	task, err := h.Tasks.Create(input, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handlers) AdminGetTasks(c *gin.Context) {
	tasks, err := h.Store.Tasks.All()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handlers) AdminGetTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.Store.Tasks.ByID(uint(taskID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, task)
}

// AdminUpdateTask 更新任务基本字段，状态迁移走专用接口
func (h *Handlers) AdminUpdateTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Difficulty  *string `json:"difficulty"`
		RoundNum    *int    `json:"round_num"`
		Points      *int    `json:"points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.RoundNum != nil {
		updates["round_num"] = *req.RoundNum
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	if _, err := h.Store.Tasks.ByID(uint(taskID)); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Task not found")
		return
	}
	if err := h.Store.Tasks.Updates(uint(taskID), updates); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogTask("TASK_UPDATED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"task_id": taskID})
	utils.Success(c, "Task updated successfully", nil)
}

// AdminCompleteTask 批准完成，可附得分与评审备注
func (h *Handlers) AdminCompleteTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req struct {
		PointsEarned *int    `json:"points_earned"`
		ReviewNotes  *string `json:"reviewNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Tasks.Complete(uint(taskID), req.PointsEarned, req.ReviewNotes, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task completed successfully", "task": task})
}

// AdminMoveTaskToPending 打回 pending
func (h *Handlers) AdminMoveTaskToPending(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.Tasks.MoveToPending(uint(taskID), auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task moved to pending", "task": task})
}

func (h *Handlers) AdminDeleteTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := h.Tasks.Delete(uint(taskID), auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
