package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SRKRCC/HackOverflow-backend/database"
	"github.com/SRKRCC/HackOverflow-backend/middlewares"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestHandlers 内存 sqlite 上的控制器套件，每个测试独立一库
func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// 单连接保住内存库
	sqlDB.SetMaxOpenConns(1)
	if err := database.MigrateTables(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := repository.NewStore(db)
	return &Handlers{
		Store:       store,
		Leaderboard: services.NewLeaderboardService(store, time.Minute, services.TieByTeamID, time.Now),
	}
}

// teamContext 以 team 身份装配一个测试请求上下文
func teamContext(t *testing.T, teamID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middlewares.CtxTeamID, teamID)
	return c, w
}

func seedControllerTeam(t *testing.T, h *Handlers, title string, psID *uint) *models.Team {
	t.Helper()
	team := &models.Team{
		SccID:         "SCC" + title,
		SccPassword:   "TESTPASSWORD1234",
		Title:         title,
		PsID:          psID,
		GalleryImages: []string{},
	}
	if err := h.Store.Teams.Create(team); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return team
}

func TestGetTeamProblemStatement(t *testing.T) {
	t.Run("returns assigned statement", func(t *testing.T) {
		h := newTestHandlers(t)
		ps := &models.ProblemStatement{
			PsID:        "HO2K25001",
			Title:       "Assigned statement",
			Description: "Seeded for tests",
			Category:    "General",
			Tags:        []string{"test"},
		}
		if err := h.Store.Statements.Create(ps); err != nil {
			t.Fatalf("seed statement: %v", err)
		}
		team := seedControllerTeam(t, h, "alpha", &ps.ID)

		c, w := teamContext(t, team.ID)
		h.GetTeamProblemStatement(c)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("team without statement is 404", func(t *testing.T) {
		h := newTestHandlers(t)
		team := seedControllerTeam(t, h, "beta", nil)

		c, w := teamContext(t, team.ID)
		h.GetTeamProblemStatement(c)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("unknown team is 404", func(t *testing.T) {
		h := newTestHandlers(t)

		c, w := teamContext(t, 9999)
		h.GetTeamProblemStatement(c)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("store failure is 500 not 404", func(t *testing.T) {
		h := newTestHandlers(t)
		team := seedControllerTeam(t, h, "gamma", nil)
		sqlDB, err := h.Store.DB().DB()
		if err != nil {
			t.Fatalf("sql handle: %v", err)
		}
		sqlDB.Close()

		c, w := teamContext(t, team.ID)
		h.GetTeamProblemStatement(c)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestGetTeamGallery(t *testing.T) {
	t.Run("store failure is 500 not 404", func(t *testing.T) {
		h := newTestHandlers(t)
		team := seedControllerTeam(t, h, "delta", nil)
		sqlDB, err := h.Store.DB().DB()
		if err != nil {
			t.Fatalf("sql handle: %v", err)
		}
		sqlDB.Close()

		c, w := teamContext(t, team.ID)
		h.GetTeamGallery(c)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestAdminGetLeaderboard(t *testing.T) {
	t.Run("responds with a bare array", func(t *testing.T) {
		h := newTestHandlers(t)
		seedControllerTeam(t, h, "alpha", nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		h.AdminGetLeaderboard(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var entries []services.LeaderboardEntry
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("body is not a json array: %v\n%s", err, w.Body.String())
		}
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		if entries[0].Title != "alpha" {
			t.Errorf("title = %q, want alpha", entries[0].Title)
		}
	})
}
