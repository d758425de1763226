package models

import "time"

type Announcement struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "hackoverflow_announcement"
}

// ActiveAt 是否在公告生效窗口内，active 为派生属性，不落库
func (a *Announcement) ActiveAt(now time.Time) bool {
	return !now.Before(a.StartTime) && now.Before(a.EndTime)
}
