package repository

import (
	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
)

type TaskRepo struct {
	db *gorm.DB
}

func (r TaskRepo) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r TaskRepo) ByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r TaskRepo) All() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Team").Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r TaskRepo) ByTeam(teamID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r TaskRepo) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r TaskRepo) Updates(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

func (r TaskRepo) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

func (r TaskRepo) DeleteByTeam(teamID uint) error {
	return r.db.Where("team_id = ?", teamID).Delete(&models.Task{}).Error
}
