package controllers

import (
	"errors"
	"net/http"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/config"
	"github.com/SRKRCC/HackOverflow-backend/middlewares"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers 路由处理器集合，按文件划分各自的方法
type Handlers struct {
	Store        *repository.Store
	Registration *services.RegistrationService
	Tasks        *services.TaskService
	Teams        *services.TeamService
	Leaderboard  *services.LeaderboardService
	Audit        *services.AuditService
	RDB          *redis.Client
	Cfg          *config.Config
}

// auditContext 从请求装配审计上下文
func auditContext(c *gin.Context) services.AuditContext {
	ctx := services.AuditContext{
		RequestID: c.GetHeader("X-Request-Id"),
		IP:        c.ClientIP(),
	}
	if ctx.RequestID == "" {
		ctx.RequestID = services.NewRequestID()
	}
	if role, ok := c.Get(middlewares.CtxRole); ok {
		if r, ok := role.(models.Role); ok {
			ctx.Role = r
		}
	}
	ctx.TeamID = middlewares.TeamID(c)
	ctx.AdminID = middlewares.AdminID(c)
	return ctx
}

// respondError 错误分类到 HTTP 状态码的唯一出口
func respondError(c *gin.Context, err error) {
	var verrs *apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  verrs.Errors,
		})
		return
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
		return
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var invalidState *apperrors.InvalidStateError
	if errors.As(err, &invalidState) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidState.Message})
		return
	}

	var authErr *apperrors.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
