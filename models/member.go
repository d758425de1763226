package models

import "time"

type Member struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber  string  `gorm:"size:20;not null" json:"phone_number"`
	ProfileImage *string `gorm:"size:255" json:"profile_image,omitempty"`
	Department   *string `gorm:"size:100" json:"department,omitempty"`
	CollegeName  string  `gorm:"size:150;not null" json:"college_name"`
	YearOfStudy  *int    `json:"year_of_study,omitempty"`
	Location     *string `gorm:"size:100" json:"location,omitempty"`
	TShirtSize   *string `gorm:"size:10" json:"t_shirt_size,omitempty"`
	Attendance   int     `gorm:"default:0" json:"attendance"`

	// 证书字段只允许提交一次
	CertificateName *string `gorm:"size:100" json:"certificate_name,omitempty"`
	RollNumber      *string `gorm:"size:50" json:"roll_number,omitempty"`
	Gender          *string `gorm:"size:20" json:"gender,omitempty"`

	TeamID    *uint     `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "hackoverflow_member"
}

// CertificateSubmitted 证书信息是否已提交过
func (m *Member) CertificateSubmitted() bool {
	return m.CertificateName != nil || m.RollNumber != nil || m.Gender != nil
}
