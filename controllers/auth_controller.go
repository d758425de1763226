package controllers

import (
	"errors"
	"net/http"

	"github.com/SRKRCC/HackOverflow-backend/middlewares"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Login 队伍按 SCC 标识登录，管理员按邮箱登录。
// 颁发 12 小时角色令牌并写入对应 Cookie。
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Role     models.Role `json:"role" binding:"required"`
		Username string      `json:"username" binding:"required"`
		Password string      `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Role, username, and password are required")
		return
	}

	auditCtx := auditContext(c)
	auditCtx.Role = req.Role
	h.Audit.LogAuth("LOGIN_ATTEMPT", auditCtx, c.FullPath(), 0, map[string]interface{}{"username": req.Username})

	var token, cookieName string
	var userID uint

	switch req.Role {
	case models.RoleAdmin:
		admin, err := h.Store.Admins.ByEmail(req.Username)
		if err != nil || !admin.CheckPassword(req.Password) {
			h.loginFailed(c, auditCtx, req.Username)
			return
		}
		t, err := utils.GenerateAdminToken(admin.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		token, cookieName, userID = t, middlewares.AdminCookieName, admin.ID
		auditCtx.AdminID = admin.ID

	case models.RoleTeam:
		team, err := h.Store.Teams.BySccID(req.Username)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !team.CheckPassword(req.Password)) {
			h.loginFailed(c, auditCtx, req.Username)
			return
		}
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		t, err := utils.GenerateTeamToken(team.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		token, cookieName, userID = t, middlewares.TeamCookieName, team.ID
		auditCtx.TeamID = team.ID

	default:
		utils.Error(c, http.StatusBadRequest, "Unknown role")
		return
	}

	maxAge := int(utils.TokenExpiry().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookieName, token, maxAge, "/", "", h.Cfg.Server.Mode == "release", true)

	h.Audit.LogAuth("LOGIN_SUCCESS", auditCtx, c.FullPath(), http.StatusOK, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": string(req.Role) + " login successful",
		"role":    req.Role,
		"userID":  userID,
		"token":   token,
	})
}

func (h *Handlers) loginFailed(c *gin.Context, auditCtx services.AuditContext, username string) {
	h.Audit.LogAuth("LOGIN_FAILED", auditCtx, c.FullPath(), http.StatusBadRequest, map[string]interface{}{"username": username})
	utils.Error(c, http.StatusBadRequest, "No existing user, please enter valid credentials")
}

// Logout 清除角色 Cookie
func (h *Handlers) Logout(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		utils.Error(c, http.StatusBadRequest, "Role is required")
		return
	}

	cookieName := middlewares.TeamCookieName
	if req.Role == models.RoleAdmin {
		cookieName = middlewares.AdminCookieName
	}
	c.SetCookie(cookieName, "", -1, "/", "", h.Cfg.Server.Mode == "release", true)

	h.Audit.LogAuth("LOGOUT_SUCCESS", auditContext(c), c.FullPath(), http.StatusOK, nil)
	c.JSON(http.StatusOK, gin.H{"message": string(req.Role) + " logout successful"})
}
