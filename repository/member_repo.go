package repository

import (
	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
)

type MemberRepo struct {
	db *gorm.DB
}

func (r MemberRepo) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

func (r MemberRepo) ByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// EmailsInUse 给定邮箱集合中已被在册成员占用的部分
func (r MemberRepo) EmailsInUse(emails []string) ([]string, error) {
	var used []string
	err := r.db.Model(&models.Member{}).
		Where("email IN ?", emails).
		Pluck("email", &used).Error
	if err != nil {
		return nil, err
	}
	return used, nil
}

func (r MemberRepo) ByTeam(teamID uint) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// MemberFilter 成员目录的检索条件
type MemberFilter struct {
	Search     string
	Department string
	College    string
	Year       *int
	TShirtSize string
	HasTeam    *bool
}

func (r MemberRepo) Search(f MemberFilter) ([]models.Member, error) {
	q := r.db.Model(&models.Member{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR phone_number LIKE ?", like, like, like)
	}
	if f.Department != "" {
		q = q.Where("department LIKE ?", "%"+f.Department+"%")
	}
	if f.College != "" {
		q = q.Where("college_name LIKE ?", "%"+f.College+"%")
	}
	if f.Year != nil {
		q = q.Where("year_of_study = ?", *f.Year)
	}
	if f.TShirtSize != "" {
		q = q.Where("t_shirt_size = ?", f.TShirtSize)
	}
	if f.HasTeam != nil {
		if *f.HasTeam {
			q = q.Where("team_id IS NOT NULL")
		} else {
			q = q.Where("team_id IS NULL")
		}
	}

	var members []models.Member
	if err := q.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// DistinctValues 下拉筛选项的去重取值
func (r MemberRepo) DistinctValues(column string) ([]string, error) {
	var values []string
	err := r.db.Model(&models.Member{}).
		Where(column + " IS NOT NULL").
		Distinct().
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r MemberRepo) Updates(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Member{}).Where("id = ?", id).Updates(fields).Error
}

// IncrementAttendance 出勤计数加一
func (r MemberRepo) IncrementAttendance(id uint) error {
	return r.db.Model(&models.Member{}).Where("id = ?", id).
		UpdateColumn("attendance", gorm.Expr("attendance + 1")).Error
}

func (r MemberRepo) Save(member *models.Member) error {
	return r.db.Save(member).Error
}

func (r MemberRepo) Delete(id uint) error {
	return r.db.Delete(&models.Member{}, id).Error
}

func (r MemberRepo) DeleteByTeam(teamID uint) error {
	return r.db.Where("team_id = ?", teamID).Delete(&models.Member{}).Error
}

// Archive 写入删除归档快照
func (r MemberRepo) Archive(snapshot *models.DeletedMember) error {
	return r.db.Create(snapshot).Error
}
