package repository

import (
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
)

type AnnouncementRepo struct {
	db *gorm.DB
}

func (r AnnouncementRepo) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r AnnouncementRepo) ByID(id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r AnnouncementRepo) All() ([]models.Announcement, error) {
	var list []models.Announcement
	if err := r.db.Order("start_time DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ActiveAt 生效窗口覆盖 now 的公告
func (r AnnouncementRepo) ActiveAt(now time.Time) ([]models.Announcement, error) {
	var list []models.Announcement
	err := r.db.Where("start_time <= ? AND end_time > ?", now, now).
		Order("start_time DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r AnnouncementRepo) Updates(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Announcement{}).Where("id = ?", id).Updates(fields).Error
}

func (r AnnouncementRepo) Delete(id uint) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}
