package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/dto"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	indianPhonePattern = regexp.MustCompile(`^(\+91[-\s]?)?[6-9]\d{9}$`)
	loosePhonePattern  = regexp.MustCompile(`^[\d\s+()-]{10,15}$`)
)

const (
	passwordLength  = 16
	sccIDRetries    = 3
	defaultTeamSize = 3
)

// RegistrationResult 签发的凭据，口令只在这里以明文出现一次
type RegistrationResult struct {
	TeamID      uint
	SccID       string
	SccPassword string
}

// RegistrationService 队伍报名引擎：校验、去重、事务建队、发证
type RegistrationService struct {
	store       *repository.Store
	mailer      Mailer
	audit       *AuditService
	pool        *ants.Pool
	minTeamSize int
}

func NewRegistrationService(store *repository.Store, mailer Mailer, audit *AuditService, pool *ants.Pool, minTeamSize int) *RegistrationService {
	if minTeamSize <= 0 {
		minTeamSize = defaultTeamSize
	}
	return &RegistrationService{
		store:       store,
		mailer:      mailer,
		audit:       audit,
		pool:        pool,
		minTeamSize: minTeamSize,
	}
}

// RegisterTeam 注册队伍。校验按类推进：结构 → 成员字段 → 载荷内重复邮箱，
// 每类内部累积全部字段错误；库内查重与写入都在同一事务内完成。
func (s *RegistrationService) RegisterTeam(req *dto.TeamRegistrationRequest, auditCtx AuditContext) (*RegistrationResult, error) {
	s.audit.LogRegistration("REGISTER_ATTEMPT", auditCtx, "/teams/register", 0, map[string]interface{}{
		"team_name":    req.TeamName,
		"member_count": len(req.Members),
	})

	if err := s.validateStructure(req); err != nil {
		return nil, err
	}
	if err := s.validateMembers(req); err != nil {
		return nil, err
	}
	if err := validatePayloadEmails(req); err != nil {
		return nil, err
	}

	password := utils.GeneratePassword(passwordLength)

	var result *RegistrationResult
	var err error
	for attempt := 0; attempt <= sccIDRetries; attempt++ {
		fallback := attempt == sccIDRetries
		result, err = s.createTeamTx(req, password, fallback)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		// SCC 标识撞号，重试；最后一次改用时间戳降级标识。
		// 事务内的查重在每次重试时重跑，落库期间才出现的重复
		// （并发注册抢注同名/同邮箱）会以唯一键冲突走到这里。
	}
	if err != nil {
		err = registrationError(err)
		s.audit.LogRegistration("REGISTER_FAILED", auditCtx, "/teams/register", 0, map[string]interface{}{
			"team_name": req.TeamName,
			"error":     err.Error(),
		})
		return nil, err
	}

	s.audit.LogRegistration("REGISTER_SUCCESS", AuditContext{
		RequestID: auditCtx.RequestID,
		Role:      auditCtx.Role,
		TeamID:    result.TeamID,
		IP:        auditCtx.IP,
	}, "/teams/register", 201, map[string]interface{}{
		"team_name":    req.TeamName,
		"scc_id":       result.SccID,
		"member_count": len(req.Members),
	})

	// 提交后置动作：凭据邮件异步发送，失败不影响已完成的注册
	s.dispatchCredentialMail(req, result, auditCtx)

	return result, nil
}

func (s *RegistrationService) validateStructure(req *dto.TeamRegistrationRequest) error {
	verrs := &apperrors.ValidationErrors{}

	if len(strings.TrimSpace(req.TeamName)) < 2 {
		verrs.Add("teamName", "Team name is required (minimum 2 characters)")
	}
	if len(req.Members) == 0 {
		verrs.Add("members", "At least one member (lead) is required")
	}
	if len(req.Members) > 0 && len(req.Members) < s.minTeamSize {
		verrs.Add("team", fmt.Sprintf("Team must have at least %d members including the lead", s.minTeamSize))
	}

	ps := req.ProblemStatement
	if ps.IsCustom {
		if len(strings.TrimSpace(ps.Title)) < 5 {
			verrs.Add("problemStatement", "Custom problem statement must have a title (minimum 5 characters)")
		}
		if len(strings.TrimSpace(ps.Description)) < 10 {
			verrs.Add("problemStatement", "Custom problem statement must have a description (minimum 10 characters)")
		}
	} else if ps.PsID == "" {
		verrs.Add("problemStatement", "Problem statement ID is required for non-custom problems")
	}

	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

func (s *RegistrationService) validateMembers(req *dto.TeamRegistrationRequest) error {
	verrs := &apperrors.ValidationErrors{}

	for i, member := range req.Members {
		label := fmt.Sprintf("members[%d]", i)
		if i == 0 {
			label = "lead"
		}
		if len(strings.TrimSpace(member.Name)) < 2 {
			verrs.Add(label+".name", "Name must be at least 2 characters long")
		}
		if !emailPattern.MatchString(member.Email) {
			verrs.Add(label+".email", "Valid email address is required")
		}
		if !validPhone(member.Phone) {
			verrs.Add(label+".phone", "Valid phone number is required (10-15 digits)")
		}
		if len(strings.TrimSpace(member.CollegeName)) < 2 {
			verrs.Add(label+".collegeName", "College name is required")
		}
	}

	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

func validPhone(phone string) bool {
	return indianPhonePattern.MatchString(phone) || loosePhonePattern.MatchString(phone)
}

// validatePayloadEmails 载荷内部重复邮箱检测，含队长
func validatePayloadEmails(req *dto.TeamRegistrationRequest) error {
	verrs := &apperrors.ValidationErrors{}
	seen := make(map[string]bool, len(req.Members))
	for i, member := range req.Members {
		email := strings.ToLower(member.Email)
		if seen[email] {
			verrs.Add(fmt.Sprintf("members[%d].email", i), "Duplicate email in payload: "+member.Email)
		}
		seen[email] = true
	}
	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

// createTeamTx 单个事务内完成：查重、题目解析/创建、编号签发、建队、建成员。
// 任一步失败整体回滚，不会留下半个队伍。
func (s *RegistrationService) createTeamTx(req *dto.TeamRegistrationRequest, password string, fallbackID bool) (*RegistrationResult, error) {
	var result RegistrationResult

	err := s.store.Transaction(func(tx *repository.Store) error {
		exists, err := tx.Teams.TitleExists(req.TeamName)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.Conflictf("Team name already exists: %s", req.TeamName)
		}

		emails := make([]string, 0, len(req.Members))
		for _, member := range req.Members {
			emails = append(emails, member.Email)
		}
		used, err := tx.Members.EmailsInUse(emails)
		if err != nil {
			return err
		}
		if len(used) > 0 {
			return apperrors.Conflictf("Email(s) already registered: %s", strings.Join(used, ", "))
		}

		ps, err := s.resolveProblemStatement(tx, req.ProblemStatement)
		if err != nil {
			return err
		}

		var sccID string
		if fallbackID {
			sccID = utils.FallbackSccID(time.Now())
		} else {
			lastID, err := tx.Teams.LastSccID(utils.SccPrefix)
			if err != nil {
				return err
			}
			sccID = utils.NextSccID(lastID)
		}

		team := models.Team{
			SccID:         sccID,
			SccPassword:   password,
			Title:         req.TeamName,
			PsID:          &ps.ID,
			GalleryImages: []string{},
		}
		if err := tx.Teams.Create(&team); err != nil {
			return err
		}

		for _, input := range req.Members {
			member := models.Member{
				Name:        input.Name,
				Email:       input.Email,
				PhoneNumber: input.Phone,
				CollegeName: collegeOrDefault(input.CollegeName),
				Department:  input.Department,
				YearOfStudy: input.YearOfStudy,
				Location:    input.Location,
				TShirtSize:  input.TShirtSize,
				TeamID:      &team.ID,
			}
			if err := tx.Members.Create(&member); err != nil {
				return err
			}
		}

		result = RegistrationResult{TeamID: team.ID, SccID: sccID, SccPassword: password}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// registrationError 重试耗尽后仍是唯一键冲突的，按资源冲突上报而非内部错误
func registrationError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflictf("Team name or member email already registered")
	}
	return err
}

func collegeOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Not Specified"
	}
	return name
}

func (s *RegistrationService) resolveProblemStatement(tx *repository.Store, ref dto.ProblemStatementRef) (*models.ProblemStatement, error) {
	if !ref.IsCustom {
		ps, err := tx.Statements.ByPsID(ref.PsID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("problem statement " + ref.PsID)
		}
		if err != nil {
			return nil, err
		}
		return ps, nil
	}

	count, err := tx.Statements.CustomCount()
	if err != nil {
		return nil, err
	}
	ps := models.ProblemStatement{
		PsID:        utils.CustomPsID(int(count) + 1),
		Title:       ref.Title,
		Description: ref.Description,
		Category:    categoryOrDefault(ref.Category),
		Tags:        ref.Tags,
		IsCustom:    true,
	}
	if err := tx.Statements.Create(&ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

func categoryOrDefault(category string) string {
	if strings.TrimSpace(category) == "" {
		return "General"
	}
	return category
}

func (s *RegistrationService) dispatchCredentialMail(req *dto.TeamRegistrationRequest, result *RegistrationResult, auditCtx AuditContext) {
	if s.mailer == nil || len(req.Members) == 0 {
		return
	}

	leadEmail := req.Members[0].Email
	mail := CredentialMail{
		TeamTitle:   req.TeamName,
		SccID:       result.SccID,
		SccPassword: result.SccPassword,
		Members:     req.Members,
		LeadEmail:   leadEmail,
	}

	send := func() {
		err := s.mailer.SendCredentials(mail)
		subject := "Registration Confirmation - Team " + req.TeamName
		s.audit.LogEmail(err == nil, leadEmail, subject, auditCtx, map[string]interface{}{
			"team_id": result.TeamID,
			"scc_id":  result.SccID,
		})
		if err != nil {
			log.Printf("Failed to send registration email to %s: %v", leadEmail, err)
		}
	}

	if s.pool != nil {
		if err := s.pool.Submit(send); err == nil {
			return
		}
	}
	go send()
}
