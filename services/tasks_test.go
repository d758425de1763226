package services

import (
	"testing"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/models"
)

func newTaskService(t *testing.T) (*TaskService, *models.Team) {
	t.Helper()
	store := newTestStore(t)
	team := seedTeam(t, store, "Team1", "SCC001")
	return NewTaskService(store, newTestAudit(), CompleteDefaultFull), team
}

func TestTaskLifecycle(t *testing.T) {
	t.Run("create resolves team by scc id", func(t *testing.T) {
		svc, team := newTaskService(t)
		task, err := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, SccID: "SCC001"}, AuditContext{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.TeamID != team.ID {
			t.Errorf("team id = %d, want %d", task.TeamID, team.ID)
		}
		if task.Status != models.TaskStatusPending {
			t.Errorf("status = %q, want pending", task.Status)
		}
	})

	t.Run("create requires a team reference", func(t *testing.T) {
		svc, _ := newTaskService(t)
		_, err := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100}, AuditContext{})
		if !apperrors.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	t.Run("submit moves pending to in review", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, err := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		notes := "done, see repo"
		task, err := svc.SubmitForReview(created.ID, team.ID, &notes, AuditContext{})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if task.Status != models.TaskStatusInReview {
			t.Errorf("status = %q, want in_review", task.Status)
		}
		if task.TeamNotes == nil || *task.TeamNotes != notes {
			t.Error("team notes not stored")
		}
	})

	t.Run("submit rejected for another team's task", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})

		_, err := svc.SubmitForReview(created.ID, team.ID+1, nil, AuditContext{})
		if !apperrors.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})

	t.Run("submit rejected unless pending", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		if _, err := svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{}); err != nil {
			t.Fatalf("submit: %v", err)
		}

		_, err := svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{})
		if !apperrors.IsInvalidState(err) {
			t.Fatalf("err = %v, want invalid state", err)
		}
	})

	t.Run("complete rejected unless in review", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})

		_, err := svc.Complete(created.ID, nil, nil, AuditContext{})
		if !apperrors.IsInvalidState(err) {
			t.Fatalf("err = %v, want invalid state", err)
		}
	})

	t.Run("complete without score awards full points", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{})

		task, err := svc.Complete(created.ID, nil, nil, AuditContext{})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if task.PointsEarned == nil || *task.PointsEarned != 100 {
			t.Errorf("points earned = %v, want 100", task.PointsEarned)
		}
	})

	t.Run("complete enforces score bounds and keeps state", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{})

		over := 101
		if _, err := svc.Complete(created.ID, &over, nil, AuditContext{}); !apperrors.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
		neg := -1
		if _, err := svc.Complete(created.ID, &neg, nil, AuditContext{}); !apperrors.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}

		// 失败的完成不得改变任务
		task, err := svc.getTask(created.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if task.Status != models.TaskStatusInReview || task.PointsEarned != nil {
			t.Errorf("task mutated by rejected complete: %+v", task)
		}
	})

	t.Run("complete with partial score", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{})

		partial := 60
		notes := "partial credit"
		task, err := svc.Complete(created.ID, &partial, &notes, AuditContext{})
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		if *task.PointsEarned != 60 {
			t.Errorf("points earned = %d, want 60", *task.PointsEarned)
		}
		if task.ReviewNotes == nil || *task.ReviewNotes != notes {
			t.Error("review notes not stored")
		}
	})

	t.Run("move to pending clears review traces", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})
		svc.SubmitForReview(created.ID, team.ID, nil, AuditContext{})
		score := 80
		notes := "good"
		svc.Complete(created.ID, &score, &notes, AuditContext{})

		task, err := svc.MoveToPending(created.ID, AuditContext{})
		if err != nil {
			t.Fatalf("move to pending: %v", err)
		}
		if task.Status != models.TaskStatusPending {
			t.Errorf("status = %q, want pending", task.Status)
		}
		if task.PointsEarned != nil || task.ReviewNotes != nil {
			t.Error("review traces survived the reset")
		}
	})

	t.Run("delete removes the task", func(t *testing.T) {
		svc, team := newTaskService(t)
		created, _ := svc.Create(CreateTaskInput{Title: "Round 1", RoundNum: 1, Points: 100, TeamID: team.ID}, AuditContext{})

		if err := svc.Delete(created.ID, AuditContext{}); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := svc.getTask(created.ID); !apperrors.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})
}
