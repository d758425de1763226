package models

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusInReview  TaskStatus = "in_review"
	TaskStatusCompleted TaskStatus = "completed"
)

type TaskDifficulty string

const (
	TaskDifficultyEasy   TaskDifficulty = "easy"
	TaskDifficultyMedium TaskDifficulty = "medium"
	TaskDifficultyHard   TaskDifficulty = "hard"
)

type Task struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Title        string          `gorm:"size:150;not null" json:"title"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	Difficulty   *TaskDifficulty `gorm:"size:10" json:"difficulty,omitempty"`
	RoundNum     int             `gorm:"not null" json:"round_num"`
	Points       int             `gorm:"not null" json:"points"`
	PointsEarned *int            `json:"points_earned,omitempty"`
	Status       TaskStatus      `gorm:"size:20;default:'pending';not null" json:"status"`
	TeamNotes    *string         `gorm:"type:text" json:"team_notes,omitempty"`
	ReviewNotes  *string         `gorm:"type:text" json:"review_notes,omitempty"`
	TeamID       uint            `gorm:"not null;index" json:"team_id"`
	Team         *Team           `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Task) TableName() string {
	return "hackoverflow_task"
}
