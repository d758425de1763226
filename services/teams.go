package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"gorm.io/gorm"
)

// TeamService 队伍的管理侧操作：级联删除与成员证书提交
type TeamService struct {
	store *repository.Store
	audit *AuditService
}

func NewTeamService(store *repository.Store, audit *AuditService) *TeamService {
	return &TeamService{store: store, audit: audit}
}

// DeleteTeam 级联删除：任务删除，成员先归档进 DeletedMember 再删除，
// 最后删队伍本身，全程一个事务。
func (s *TeamService) DeleteTeam(teamID uint, auditCtx AuditContext) error {
	err := s.store.Transaction(func(tx *repository.Store) error {
		team, err := tx.Teams.WithMembers(teamID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("team")
		}
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range team.Members {
			snapshot := models.ArchiveMember(&team.Members[i], team.Title, now)
			if err := tx.Members.Archive(&snapshot); err != nil {
				return err
			}
		}
		if err := tx.Tasks.DeleteByTeam(teamID); err != nil {
			return err
		}
		if err := tx.Members.DeleteByTeam(teamID); err != nil {
			return err
		}
		return tx.Teams.Delete(teamID)
	})
	if err != nil {
		return err
	}

	s.audit.LogAdminAction("TEAM_DELETED", auditCtx, fmt.Sprintf("/admin/teams/%d", teamID), 200, map[string]interface{}{
		"team_id": teamID,
	})
	return nil
}

// CertificateInput 成员证书信息，只允许提交一次
type CertificateInput struct {
	CertificateName string `json:"certificate_name" binding:"required"`
	RollNumber      string `json:"roll_number" binding:"required"`
	Gender          string `json:"gender" binding:"required"`
}

// SubmitCertificate 提交证书字段。已提交过则拒绝，不覆盖。
func (s *TeamService) SubmitCertificate(memberID, teamID uint, input CertificateInput) (*models.Member, error) {
	member, err := s.store.Members.ByID(memberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("member")
	}
	if err != nil {
		return nil, err
	}
	if member.TeamID == nil || *member.TeamID != teamID {
		return nil, apperrors.NotFound("member")
	}
	if member.CertificateSubmitted() {
		return nil, apperrors.Conflictf("Certificate details already submitted for this member")
	}

	name := strings.TrimSpace(input.CertificateName)
	roll := strings.TrimSpace(input.RollNumber)
	gender := strings.TrimSpace(input.Gender)
	member.CertificateName = &name
	member.RollNumber = &roll
	member.Gender = &gender
	if err := s.store.Members.Save(member); err != nil {
		return nil, err
	}
	return member, nil
}
