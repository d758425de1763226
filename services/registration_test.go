package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/dto"
)

func TestRegisterTeam(t *testing.T) {
	t.Run("issues sequential scc ids", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		first, err := svc.RegisterTeam(validRequest("alpha", "HO2K25001"), AuditContext{})
		if err != nil {
			t.Fatalf("register alpha: %v", err)
		}
		if first.SccID != "SCC001" {
			t.Errorf("first scc id = %q, want SCC001", first.SccID)
		}

		second, err := svc.RegisterTeam(validRequest("beta", "HO2K25001"), AuditContext{})
		if err != nil {
			t.Fatalf("register beta: %v", err)
		}
		if second.SccID != "SCC002" {
			t.Errorf("second scc id = %q, want SCC002", second.SccID)
		}
	})

	t.Run("issued password is sixteen uppercase hex chars", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		result, err := svc.RegisterTeam(validRequest("gamma", "HO2K25001"), AuditContext{})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if !regexp.MustCompile(`^[0-9A-F]{16}$`).MatchString(result.SccPassword) {
			t.Errorf("password %q is not 16 uppercase hex chars", result.SccPassword)
		}
	})

	t.Run("stores only hashed password", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		result, err := svc.RegisterTeam(validRequest("delta", "HO2K25001"), AuditContext{})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		team, err := store.Teams.ByID(result.TeamID)
		if err != nil {
			t.Fatalf("load team: %v", err)
		}
		if team.SccPassword == result.SccPassword {
			t.Error("plaintext password persisted")
		}
		if !team.CheckPassword(result.SccPassword) {
			t.Error("stored hash does not verify issued password")
		}
	})

	t.Run("creates members bound to the team", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		result, err := svc.RegisterTeam(validRequest("epsilon", "HO2K25001"), AuditContext{})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		members, err := store.Members.ByTeam(result.TeamID)
		if err != nil {
			t.Fatalf("load members: %v", err)
		}
		if len(members) != 3 {
			t.Fatalf("member count = %d, want 3", len(members))
		}
	})

	t.Run("custom problem statement gets cus prefix", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		req := validRequest("zeta", "")
		req.ProblemStatement = dto.ProblemStatementRef{
			IsCustom:    true,
			Title:       "Offline exam proctoring",
			Description: "Proctoring that works without connectivity",
			Category:    "Education",
		}
		result, err := svc.RegisterTeam(req, AuditContext{})
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		team, err := store.Teams.ByID(result.TeamID)
		if err != nil {
			t.Fatalf("load team: %v", err)
		}
		if team.PsID == nil {
			t.Fatal("team has no problem statement")
		}
		ps, err := store.Statements.ByID(*team.PsID)
		if err != nil {
			t.Fatalf("load statement: %v", err)
		}
		if ps.PsID != "CUS_01" {
			t.Errorf("custom ps id = %q, want CUS_01", ps.PsID)
		}
		if !ps.IsCustom {
			t.Error("statement not flagged custom")
		}
	})

	t.Run("unknown catalog statement is not found", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		_, err := svc.RegisterTeam(validRequest("eta", "HO2K25099"), AuditContext{})
		if !apperrors.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}
	})

	t.Run("duplicate team name conflicts", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		if _, err := svc.RegisterTeam(validRequest("theta", "HO2K25001"), AuditContext{}); err != nil {
			t.Fatalf("first register: %v", err)
		}
		req := validRequest("theta", "HO2K25001")
		for i := range req.Members {
			req.Members[i].Email = strings.Replace(req.Members[i].Email, "theta", "theta2", 1)
		}
		_, err := svc.RegisterTeam(req, AuditContext{})
		if !apperrors.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
	})

	t.Run("email registered in another team conflicts", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		if _, err := svc.RegisterTeam(validRequest("iota", "HO2K25001"), AuditContext{}); err != nil {
			t.Fatalf("first register: %v", err)
		}
		req := validRequest("kappa", "HO2K25001")
		req.Members[1].Email = "iota.m1@example.com"
		_, err := svc.RegisterTeam(req, AuditContext{})
		if !apperrors.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
	})

	t.Run("duplicate email inside payload fails validation", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		req := validRequest("lambda", "HO2K25001")
		req.Members[2].Email = req.Members[0].Email
		_, err := svc.RegisterTeam(req, AuditContext{})
		if !apperrors.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	t.Run("field errors accumulate per pass", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		req := validRequest("mu", "HO2K25001")
		req.Members[0].Email = "not-an-email"
		req.Members[1].Phone = "123"
		req.Members[2].Name = "x"
		_, err := svc.RegisterTeam(req, AuditContext{})

		var verrs *apperrors.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("err = %v, want validation errors", err)
		}
		if len(verrs.Errors) != 3 {
			t.Errorf("error count = %d, want 3: %v", len(verrs.Errors), verrs.Errors)
		}
	})

	t.Run("rejects team below minimum size", func(t *testing.T) {
		store := newTestStore(t)
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		req := validRequest("nu", "HO2K25001")
		req.Members = req.Members[:2]
		_, err := svc.RegisterTeam(req, AuditContext{})
		if !apperrors.IsValidation(err) {
			t.Fatalf("err = %v, want validation error", err)
		}
	})

	t.Run("racing unique key violation maps to conflict", func(t *testing.T) {
		wrapped := fmt.Errorf("create team: %w", gorm.ErrDuplicatedKey)
		if err := registrationError(wrapped); !apperrors.IsConflict(err) {
			t.Fatalf("err = %v, want conflict", err)
		}
		plain := errors.New("connection reset")
		if err := registrationError(plain); err != plain {
			t.Fatalf("err = %v, want passthrough", err)
		}
	})

	t.Run("nothing persists on conflict", func(t *testing.T) {
		store := newTestStore(t)
		seedCatalogStatement(t, store, "HO2K25001")
		svc := NewRegistrationService(store, LogMailer{}, newTestAudit(), nil, 3)

		if _, err := svc.RegisterTeam(validRequest("xi", "HO2K25001"), AuditContext{}); err != nil {
			t.Fatalf("first register: %v", err)
		}
		req := validRequest("omicron", "HO2K25001")
		req.Members[0].Email = "xi.m1@example.com"
		if _, err := svc.RegisterTeam(req, AuditContext{}); !apperrors.IsConflict(err) {
			t.Fatalf("want conflict, got %v", err)
		}

		if _, err := store.Teams.ByTitle("omicron"); err == nil {
			t.Error("conflicting registration left a team behind")
		}
	})
}
