package routes

import (
	"net/http"

	"github.com/SRKRCC/HackOverflow-backend/controllers"
	"github.com/SRKRCC/HackOverflow-backend/middlewares"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/gin-gonic/gin"
)

// SetupRouter 装配全部路由。/team 与 /admin 分组各自挂角色校验。
func SetupRouter(h *controllers.Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORS(h.Cfg.Server.FrontendOrigin))

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/teams/register", h.RegisterTeam)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		api.GET("/problem-statements", h.GetStatements)
		api.GET("/problem-statements/:id", h.GetStatementByPsID)
		api.GET("/leaderboards", h.GetLeaderboard)
	}

	team := api.Group("/team")
	team.Use(middlewares.RequireRole(models.RoleTeam))
	{
		team.GET("/details", h.GetTeamDetails)
		team.GET("/problem-statement", h.GetTeamProblemStatement)
		team.GET("/gallery", h.GetTeamGallery)
		team.GET("/announcements", h.GetTeamAnnouncements)
		team.GET("/tasks", h.GetTeamTasks)
		team.GET("/tasks/:id", h.GetTeamTask)
		team.POST("/tasks/:id/submit", h.SubmitTask)
		team.PATCH("/members/:id/certificate", h.SubmitCertificate)
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/teams", h.AdminGetTeams)
		admin.GET("/teams/:id", h.AdminGetTeam)
		admin.PATCH("/teams/:id", h.AdminUpdateTeam)
		admin.DELETE("/teams/:id", h.AdminDeleteTeam)
		admin.POST("/gallery/:teamId", h.AdminAddGalleryImages)
		admin.DELETE("/gallery/:teamId", h.AdminRemoveGalleryImage)

		admin.POST("/tasks", h.AdminCreateTask)
		admin.GET("/tasks", h.AdminGetTasks)
		admin.GET("/tasks/:id", h.AdminGetTask)
		admin.PATCH("/tasks/:id", h.AdminUpdateTask)
		admin.POST("/tasks/:id/complete", h.AdminCompleteTask)
		admin.POST("/tasks/:id/pending", h.AdminMoveTaskToPending)
		admin.DELETE("/tasks/:id", h.AdminDeleteTask)

		admin.POST("/problem-statements", h.AdminCreateStatement)
		admin.PATCH("/problem-statements/:id", h.AdminUpdateStatement)
		admin.DELETE("/problem-statements/:id", h.AdminDeleteStatement)

		admin.GET("/members", h.AdminGetMembers)
		admin.GET("/members/filters", h.AdminGetMemberFilters)
		admin.GET("/members/:id", h.AdminGetMember)
		admin.PATCH("/members/:id", h.AdminUpdateMember)
		admin.POST("/members/:id/attendance", h.AdminMarkAttendance)

		admin.POST("/announcements", h.AdminCreateAnnouncement)
		admin.GET("/announcements", h.AdminGetAnnouncements)
		admin.GET("/announcements/active", h.AdminGetActiveAnnouncements)
		admin.GET("/announcements/:id", h.AdminGetAnnouncement)
		admin.PATCH("/announcements/:id", h.AdminUpdateAnnouncement)
		admin.DELETE("/announcements/:id", h.AdminDeleteAnnouncement)

		admin.GET("/leaderboards", h.AdminGetLeaderboard)
	}

	return r
}
