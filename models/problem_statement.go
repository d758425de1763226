package models

import "time"

type ProblemStatement struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PsID        string    `gorm:"size:20;uniqueIndex;not null" json:"ps_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	IsCustom    bool      `gorm:"default:false" json:"is_custom"`
	Teams       []Team    `gorm:"foreignKey:PsID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProblemStatement) TableName() string {
	return "hackoverflow_problem_statement"
}
