package services

import (
	"errors"
	"fmt"

	"github.com/SRKRCC/HackOverflow-backend/apperrors"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"gorm.io/gorm"
)

// CreateTaskInput 管理员下发任务。队伍可按数字主键或 SCC 标识指定。
type CreateTaskInput struct {
	Title       string                 `json:"title" binding:"required"`
	Description *string                `json:"description"`
	Difficulty  *models.TaskDifficulty `json:"difficulty"`
	RoundNum    int                    `json:"round_num" binding:"required"`
	Points      int                    `json:"points" binding:"required,min=1"`
	TeamID      uint                   `json:"team_id"`
	SccID       string                 `json:"scc_id"`
}

// CompletionPolicy 完成时未显式给分的缺省策略
type CompletionPolicy string

const (
	// CompleteDefaultFull 未给分按满分记
	CompleteDefaultFull CompletionPolicy = "full"
	// CompleteKeepStaged 未给分时保留管理员先前暂存的部分分值
	CompleteKeepStaged CompletionPolicy = "staged"
)

// TaskService 任务状态机：pending → in_review → completed，
// 管理员可从任意状态打回 pending。
type TaskService struct {
	store  *repository.Store
	audit  *AuditService
	policy CompletionPolicy
}

func NewTaskService(store *repository.Store, audit *AuditService, policy CompletionPolicy) *TaskService {
	if policy == "" {
		policy = CompleteDefaultFull
	}
	return &TaskService{store: store, audit: audit, policy: policy}
}

// Create 管理员给队伍下发任务，初始 pending
func (s *TaskService) Create(input CreateTaskInput, auditCtx AuditContext) (*models.Task, error) {
	team, err := s.resolveTeam(input.TeamID, input.SccID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		RoundNum:    input.RoundNum,
		Points:      input.Points,
		Status:      models.TaskStatusPending,
		TeamID:      team.ID,
	}
	if err := s.store.Tasks.Create(&task); err != nil {
		return nil, err
	}

	s.audit.LogTask("TASK_CREATED", auditCtx, fmt.Sprintf("/admin/tasks/%d", task.ID), 201, map[string]interface{}{
		"task_id": task.ID,
		"team_id": team.ID,
		"points":  task.Points,
	})
	return &task, nil
}

func (s *TaskService) resolveTeam(teamID uint, sccID string) (*models.Team, error) {
	var team *models.Team
	var err error
	switch {
	case teamID != 0:
		team, err = s.store.Teams.ByID(teamID)
	case sccID != "":
		team, err = s.store.Teams.BySccID(sccID)
	default:
		verrs := &apperrors.ValidationErrors{}
		verrs.Add("team_id", "Either team_id or scc_id is required")
		return nil, verrs
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("team")
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// SubmitForReview 队伍提交评审，仅 pending 可提交
func (s *TaskService) SubmitForReview(taskID, teamID uint, teamNotes *string, auditCtx AuditContext) (*models.Task, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.TeamID != teamID {
		return nil, apperrors.NotFound("task")
	}
	if task.Status != models.TaskStatusPending {
		return nil, apperrors.InvalidState("Task must be pending to submit for review")
	}

	before := task.Status
	task.Status = models.TaskStatusInReview
	task.TeamNotes = teamNotes
	if err := s.store.Tasks.Save(task); err != nil {
		return nil, err
	}

	s.audit.LogTask("TASK_SUBMITTED", auditCtx, fmt.Sprintf("/team/tasks/%d/submit", taskID), 200, map[string]interface{}{
		"task_id": taskID,
		"team_id": teamID,
		"before":  before,
		"after":   task.Status,
	})
	return task, nil
}

// Complete 管理员批准完成，仅 in_review 可完成，得分必须落在 [0, points]
func (s *TaskService) Complete(taskID uint, pointsEarned *int, reviewNotes *string, auditCtx AuditContext) (*models.Task, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusInReview {
		return nil, apperrors.InvalidState("Task must be in review to complete")
	}

	earned, err := s.resolveEarnedPoints(task, pointsEarned)
	if err != nil {
		return nil, err
	}

	before := task.Status
	task.Status = models.TaskStatusCompleted
	task.PointsEarned = &earned
	task.ReviewNotes = reviewNotes
	if err := s.store.Tasks.Save(task); err != nil {
		return nil, err
	}

	s.audit.LogTask("TASK_COMPLETED", auditCtx, fmt.Sprintf("/admin/tasks/%d/complete", taskID), 200, map[string]interface{}{
		"task_id":       taskID,
		"team_id":       task.TeamID,
		"before":        before,
		"after":         task.Status,
		"points_earned": earned,
	})
	return task, nil
}

func (s *TaskService) resolveEarnedPoints(task *models.Task, pointsEarned *int) (int, error) {
	if pointsEarned == nil {
		if s.policy == CompleteKeepStaged && task.PointsEarned != nil {
			return *task.PointsEarned, nil
		}
		return task.Points, nil
	}
	if *pointsEarned < 0 || *pointsEarned > task.Points {
		verrs := &apperrors.ValidationErrors{}
		verrs.Add("points_earned", fmt.Sprintf("points_earned must be between 0 and %d", task.Points))
		return 0, verrs
	}
	return *pointsEarned, nil
}

// MoveToPending 管理员打回，任意状态回到 pending，清空评审痕迹
func (s *TaskService) MoveToPending(taskID uint, auditCtx AuditContext) (*models.Task, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	before := task.Status
	task.Status = models.TaskStatusPending
	task.PointsEarned = nil
	task.ReviewNotes = nil
	if err := s.store.Tasks.Save(task); err != nil {
		return nil, err
	}

	s.audit.LogTask("TASK_MOVED_TO_PENDING", auditCtx, fmt.Sprintf("/admin/tasks/%d/pending", taskID), 200, map[string]interface{}{
		"task_id": taskID,
		"team_id": task.TeamID,
		"before":  before,
		"after":   task.Status,
	})
	return task, nil
}

// Delete 删除任务。已完成任务被删后，队伍总分在下次重算时自然下降，
// 任务行之外不存在独立的得分台账，这是预期行为。
func (s *TaskService) Delete(taskID uint, auditCtx AuditContext) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}
	if err := s.store.Tasks.Delete(taskID); err != nil {
		return err
	}

	s.audit.LogTask("TASK_DELETED", auditCtx, fmt.Sprintf("/admin/tasks/%d", taskID), 200, map[string]interface{}{
		"task_id": taskID,
		"team_id": task.TeamID,
		"status":  task.Status,
	})
	return nil
}

func (s *TaskService) getTask(taskID uint) (*models.Task, error) {
	task, err := s.store.Tasks.ByID(taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("task")
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}
