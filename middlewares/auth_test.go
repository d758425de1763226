package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
)

func newProtectedRouter(required models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireRole(required), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"team_id": TeamID(c), "admin_id": AdminID(c)})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	utils.InitJWT("test-secret", 1)

	t.Run("missing token is unauthorized", func(t *testing.T) {
		r := newProtectedRouter(models.RoleTeam)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid team cookie passes", func(t *testing.T) {
		token, err := utils.GenerateTeamToken(9)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		r := newProtectedRouter(models.RoleTeam)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TeamCookieName, Value: token})
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("bearer header works without cookie", func(t *testing.T) {
		token, _ := utils.GenerateAdminToken(2)
		r := newProtectedRouter(models.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("team token on admin route is forbidden", func(t *testing.T) {
		token, _ := utils.GenerateTeamToken(9)
		r := newProtectedRouter(models.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin token on team route is forbidden", func(t *testing.T) {
		token, _ := utils.GenerateAdminToken(2)
		r := newProtectedRouter(models.RoleTeam)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		r := newProtectedRouter(models.RoleTeam)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TeamCookieName, Value: "garbage"})
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
