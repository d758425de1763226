package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 题目目录接口 ---

// AdminCreateStatement 新建目录题目，编号按 HO2K25 前缀顺延
func (h *Handlers) AdminCreateStatement(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Tags        []string `json:"tags" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "All fields (title, description, category, tags) are required")
		return
	}

	var created models.ProblemStatement
	err := h.Store.Transaction(func(tx *repository.Store) error {
		last, err := tx.Statements.LastCatalog()
		if err != nil {
			return err
		}
		next := 1
		if last != nil {
			if n, err := strconv.Atoi(strings.TrimPrefix(last.PsID, "HO2K25")); err == nil {
				next = n + 1
			}
		}

		created = models.ProblemStatement{
			PsID:        utils.CatalogPsID(next),
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Tags:        req.Tags,
		}
		return tx.Statements.Create(&created)
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("STATEMENT_CREATED", auditContext(c), c.FullPath(), http.StatusCreated, map[string]interface{}{
		"ps_id": created.PsID,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Problem statement created successfully", "data": created})
}

func (h *Handlers) GetStatements(c *gin.Context) {
	statements, err := h.Store.Statements.Catalog()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Problem statements fetched successfully", "data": statements})
}

func (h *Handlers) GetStatementByPsID(c *gin.Context) {
	psID := c.Param("id")
	statement, err := h.Store.Statements.ByPsID(psID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Problem statement not found")
		return
	}
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Problem statement fetched successfully", "data": statement})
}

// AdminUpdateStatement 更新题目。psId 一经分配不可变，白名单不含它。
func (h *Handlers) AdminUpdateStatement(c *gin.Context) {
	psID := c.Param("id")

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Category    *string   `json:"category"`
		Tags        *[]string `json:"tags"`
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
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if len(updates) == 0 {
		utils.Error(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	if _, err := h.Store.Statements.ByPsID(psID); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Problem statement not found")
		return
	}
	if err := h.Store.Statements.Updates(psID, updates); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("STATEMENT_UPDATED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"ps_id": psID})
	utils.Success(c, "Problem statement updated successfully", nil)
}

func (h *Handlers) AdminDeleteStatement(c *gin.Context) {
	psID := c.Param("id")

	if _, err := h.Store.Statements.ByPsID(psID); errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(c, http.StatusNotFound, "Problem statement not found")
		return
	}
	if err := h.Store.Statements.Delete(psID); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Audit.LogAdminAction("STATEMENT_DELETED", auditContext(c), c.FullPath(), http.StatusOK, map[string]interface{}{"ps_id": psID})
	c.JSON(http.StatusOK, gin.H{"message": "Problem statement deleted successfully"})
}
