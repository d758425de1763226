package middlewares

import (
	"net/http"
	"strings"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
)

const (
	TeamCookieName  = "team_token"
	AdminCookieName = "admin_token"

	CtxRole    = "role"
	CtxTeamID  = "team_id"
	CtxAdminID = "admin_id"
)

// extractToken 先取角色对应的 Cookie，再回落到 Authorization Bearer
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireRole 校验令牌并检查角色声明，角色为闭合枚举，逐值匹配
func RequireRole(required models.Role) gin.HandlerFunc {
	cookieName := TeamCookieName
	if required == models.RoleAdmin {
		cookieName = AdminCookieName
	}

	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			utils.Error(c, http.StatusUnauthorized, "Token missing")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		switch claims.Role {
		case models.RoleTeam:
			if required != models.RoleTeam {
				utils.Error(c, http.StatusForbidden, "No rights to access the route")
				c.Abort()
				return
			}
			c.Set(CtxRole, models.RoleTeam)
			c.Set(CtxTeamID, claims.TeamID)
		case models.RoleAdmin:
			if required != models.RoleAdmin {
				utils.Error(c, http.StatusForbidden, "No rights to access the route")
				c.Abort()
				return
			}
			c.Set(CtxRole, models.RoleAdmin)
			c.Set(CtxAdminID, claims.AdminID)
		default:
			utils.Error(c, http.StatusForbidden, "Unknown role claim")
			c.Abort()
			return
		}

		c.Next()
	}
}

// TeamID 已认证队伍的主键
func TeamID(c *gin.Context) uint {
	if v, ok := c.Get(CtxTeamID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// AdminID 已认证管理员的主键
func AdminID(c *gin.Context) uint {
	if v, ok := c.Get(CtxAdminID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
