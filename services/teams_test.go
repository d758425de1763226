package services

import (
	"testing"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/models"
)

func TestDeleteTeam(t *testing.T) {
	t.Run("cascades and archives members", func(t *testing.T) {
		store := newTestStore(t)
		team := seedTeam(t, store, "Team1", "SCC001")
		member := models.Member{
			Name:        "Alice",
			Email:       "alice@example.com",
			PhoneNumber: "9876543210",
			CollegeName: "SRKR Engineering College",
			TeamID:      &team.ID,
		}
		if err := store.Members.Create(&member); err != nil {
			t.Fatalf("seed member: %v", err)
		}
		seedTask(t, store, team.ID, 100, models.TaskStatusCompleted)

		svc := NewTeamService(store, newTestAudit())
		if err := svc.DeleteTeam(team.ID, AuditContext{}); err != nil {
			t.Fatalf("delete team: %v", err)
		}

		if _, err := store.Teams.ByID(team.ID); err == nil {
			t.Error("team still present")
		}
		if members, _ := store.Members.ByTeam(team.ID); len(members) != 0 {
			t.Errorf("members left behind: %d", len(members))
		}
		if tasks, _ := store.Tasks.ByTeam(team.ID); len(tasks) != 0 {
			t.Errorf("tasks left behind: %d", len(tasks))
		}

		var archived []models.DeletedMember
		if err := store.DB().Find(&archived).Error; err != nil {
			t.Fatalf("load archive: %v", err)
		}
		if len(archived) != 1 {
			t.Fatalf("archived = %d, want 1", len(archived))
		}
		if archived[0].Email != "alice@example.com" || archived[0].TeamTitle != "Team1" {
			t.Errorf("archive snapshot = %+v", archived[0])
		}
	})

	t.Run("unknown team is not found", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewTeamService(store, newTestAudit())
		if err := svc.DeleteTeam(42, AuditContext{}); !apperrors.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})
}

func TestSubmitCertificate(t *testing.T) {
	seed := func(t *testing.T) (*TeamService, *models.Team, *models.Member) {
		t.Helper()
		store := newTestStore(t)
		team := seedTeam(t, store, "Team1", "SCC001")
		member := &models.Member{
			Name:        "Bob",
			Email:       "bob@example.com",
			PhoneNumber: "9876543210",
			CollegeName: "SRKR Engineering College",
			TeamID:      &team.ID,
		}
		if err := store.Members.Create(member); err != nil {
			t.Fatalf("seed member: %v", err)
		}
		return NewTeamService(store, newTestAudit()), team, member
	}

	input := CertificateInput{CertificateName: "Bob R", RollNumber: "21B91A0501", Gender: "male"}

	t.Run("first submission is stored", func(t *testing.T) {
		svc, team, member := seed(t)
		updated, err := svc.SubmitCertificate(member.ID, team.ID, input)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if updated.CertificateName == nil || *updated.CertificateName != "Bob R" {
			t.Errorf("certificate name = %v", updated.CertificateName)
		}
		if !updated.CertificateSubmitted() {
			t.Error("member not flagged submitted")
		}
	})

	t.Run("second submission conflicts", func(t *testing.T) {
		svc, team, member := seed(t)
		if _, err := svc.SubmitCertificate(member.ID, team.ID, input); err != nil {
			t.Fatalf("first submit: %v", err)
		}
		_, err := svc.SubmitCertificate(member.ID, team.ID, CertificateInput{CertificateName: "Other", RollNumber: "X", Gender: "female"})
		if !apperrors.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
	})

	t.Run("member of another team is not found", func(t *testing.T) {
		svc, team, member := seed(t)
		if _, err := svc.SubmitCertificate(member.ID, team.ID+1, input); !apperrors.IsNotFound(err) {
			t.Fatal("expected not found for foreign member")
		}
	})
}
