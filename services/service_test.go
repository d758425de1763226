package services

import (
	"fmt"
	"testing"

	"github.com/SRKRCC/HackOverflow-backend/database"
	"github.com/SRKRCC/HackOverflow-backend/dto"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore 内存 sqlite 上的完整仓库，每个测试独立一库
func newTestStore(t *testing.T) *repository.Store {
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
	return repository.NewStore(db)
}

func newTestAudit() *AuditService {
	return NewAuditService(nil, "test")
}

func seedCatalogStatement(t *testing.T, store *repository.Store, psID string) *models.ProblemStatement {
	t.Helper()
	ps := &models.ProblemStatement{
		PsID:        psID,
		Title:       "Seeded statement " + psID,
		Description: "Seeded for tests",
		Category:    "General",
		Tags:        []string{"test"},
	}
	if err := store.Statements.Create(ps); err != nil {
		t.Fatalf("seed statement: %v", err)
	}
	return ps
}

// validRequest 三人成队的合法报名表，邮箱按队名派生避免冲突
func validRequest(teamName, psID string) *dto.TeamRegistrationRequest {
	members := make([]dto.MemberInput, 3)
	for i := range members {
		members[i] = dto.MemberInput{
			Name:        fmt.Sprintf("Member %d", i+1),
			Email:       fmt.Sprintf("%s.m%d@example.com", teamName, i+1),
			Phone:       "9876543210",
			CollegeName: "SRKR Engineering College",
		}
	}
	return &dto.TeamRegistrationRequest{
		TeamName:         teamName,
		Members:          members,
		ProblemStatement: dto.ProblemStatementRef{PsID: psID},
	}
}

func seedTeam(t *testing.T, store *repository.Store, title, sccID string) *models.Team {
	t.Helper()
	team := &models.Team{
		SccID:         sccID,
		SccPassword:   "TESTPASSWORD1234",
		Title:         title,
		GalleryImages: []string{},
	}
	if err := store.Teams.Create(team); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return team
}

func seedTask(t *testing.T, store *repository.Store, teamID uint, points int, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:    fmt.Sprintf("Round task %d", points),
		RoundNum: 1,
		Points:   points,
		Status:   status,
		TeamID:   teamID,
	}
	if err := store.Tasks.Create(task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}
