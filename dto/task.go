package dto

import (
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
)

// TeamTaskView 队伍侧任务视图。points_earned 在任务完成前对队伍不可见，
// 该结构体刻意不含对应字段，完成后才由 FromTask 填充。
type TeamTaskView struct {
	ID           uint                   `json:"id"`
	Title        string                 `json:"title"`
	Description  *string                `json:"description,omitempty"`
	Difficulty   *models.TaskDifficulty `json:"difficulty,omitempty"`
	RoundNum     int                    `json:"round_num"`
	Points       int                    `json:"points"`
	Status       models.TaskStatus      `json:"status"`
	TeamNotes    *string                `json:"team_notes,omitempty"`
	PointsEarned *int                   `json:"points_earned,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// SanitizeTask 生成队伍可见的任务视图
func SanitizeTask(t *models.Task) TeamTaskView {
	view := TeamTaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Difficulty:  t.Difficulty,
		RoundNum:    t.RoundNum,
		Points:      t.Points,
		Status:      t.Status,
		TeamNotes:   t.TeamNotes,
		CreatedAt:   t.CreatedAt,
	}
	if t.Status == models.TaskStatusCompleted {
		view.PointsEarned = t.PointsEarned
	}
	return view
}

// SanitizeTasks 批量生成队伍可见视图
func SanitizeTasks(tasks []models.Task) []TeamTaskView {
	views := make([]TeamTaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, SanitizeTask(&tasks[i]))
	}
	return views
}
