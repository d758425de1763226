package models

import "time"

// DeletedMember 删除队伍时的成员归档快照，创建后不再修改
type DeletedMember struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	Department  *string   `gorm:"size:100" json:"department,omitempty"`
	CollegeName string    `gorm:"size:150;not null" json:"college_name"`
	YearOfStudy *int      `json:"year_of_study,omitempty"`
	Location    *string   `gorm:"size:100" json:"location,omitempty"`
	TShirtSize  *string   `gorm:"size:10" json:"t_shirt_size,omitempty"`
	Attendance  int       `json:"attendance"`
	TeamTitle   string    `gorm:"size:100;not null" json:"team_title"`
	DeletedAt   time.Time `json:"deleted_at"`
}

func (DeletedMember) TableName() string {
	return "hackoverflow_deleted_member"
}

// ArchiveMember 由在册成员生成归档快照
func ArchiveMember(m *Member, teamTitle string, now time.Time) DeletedMember {
	return DeletedMember{
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Department:  m.Department,
		CollegeName: m.CollegeName,
		YearOfStudy: m.YearOfStudy,
		Location:    m.Location,
		TShirtSize:  m.TShirtSize,
		Attendance:  m.Attendance,
		TeamTitle:   teamTitle,
		DeletedAt:   now,
	}
}
