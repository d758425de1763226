package repository

import (
	"errors"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepo struct {
	db *gorm.DB
}

func (r TeamRepo) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

func (r TeamRepo) ByID(id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r TeamRepo) BySccID(sccID string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("scc_id = ?", sccID).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r TeamRepo) ByTitle(title string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("title = ?", title).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// TitleExists 队名是否已被占用
func (r TeamRepo) TitleExists(title string) (bool, error) {
	_, err := r.ByTitle(title)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// LastSccID 最近一次签发的 SCC 标识，按创建序（主键）而非字典序取。
// 加行锁，使并发注册在此处串行化，避免重复编号。
func (r TeamRepo) LastSccID(prefix string) (string, error) {
	var team models.Team
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scc_id LIKE ?", prefix+"%").
		Order("id DESC").
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return team.SccID, nil
}

// WithMembers 队伍及其成员
func (r TeamRepo) WithMembers(id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.Preload("Members").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// AllWithMembers 全部队伍及成员
func (r TeamRepo) AllWithMembers() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// AllWithTasks 全部队伍及任务，排行榜重算的数据源
func (r TeamRepo) AllWithTasks() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Tasks").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r TeamRepo) Updates(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Team{}).Where("id = ?", id).Updates(fields).Error
}

func (r TeamRepo) UpdateGallery(id uint, images []string) error {
	return r.db.Model(&models.Team{}).Where("id = ?", id).Update("gallery_images", images).Error
}

func (r TeamRepo) Delete(id uint) error {
	return r.db.Delete(&models.Team{}, id).Error
}
