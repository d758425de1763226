package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Team struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	SccID            string            `gorm:"size:20;uniqueIndex;not null" json:"scc_id"`
	SccPassword      string            `gorm:"size:255;not null" json:"-"`
	Title            string            `gorm:"size:100;uniqueIndex;not null" json:"title"`
	PsID             *uint             `json:"ps_id,omitempty"`
	ProblemStatement *ProblemStatement `gorm:"foreignKey:PsID" json:"problem_statement,omitempty"`
	GalleryImages    []string          `gorm:"serializer:json" json:"gallery_images"`
	PaymentVerified  bool              `gorm:"default:false" json:"payment_verified"`
	Members          []Member          `gorm:"foreignKey:TeamID" json:"team_members,omitempty"`
	Tasks            []Task            `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Team) TableName() string {
	return "hackoverflow_team"
}

// BeforeSave GORM Hook，保存前自动哈希登录口令
func (t *Team) BeforeSave(tx *gorm.DB) (err error) {
	if t.ID == 0 || tx.Statement.Changed("SccPassword") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(t.SccPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		t.SccPassword = string(hashed)
	}
	return
}

// CheckPassword 校验队伍口令
func (t *Team) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(t.SccPassword), []byte(password))
	return err == nil
}
