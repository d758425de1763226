package repository

import (
	"errors"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProblemStatementRepo struct {
	db *gorm.DB
}

func (r ProblemStatementRepo) Create(ps *models.ProblemStatement) error {
	return r.db.Create(ps).Error
}

func (r ProblemStatementRepo) ByID(id uint) (*models.ProblemStatement, error) {
	var ps models.ProblemStatement
	if err := r.db.First(&ps, id).Error; err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r ProblemStatementRepo) ByPsID(psID string) (*models.ProblemStatement, error) {
	var ps models.ProblemStatement
	if err := r.db.Where("ps_id = ?", psID).First(&ps).Error; err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r ProblemStatementRepo) All() ([]models.ProblemStatement, error) {
	var statements []models.ProblemStatement
	if err := r.db.Order("id ASC").Find(&statements).Error; err != nil {
		return nil, err
	}
	return statements, nil
}

// Catalog 非自定义的目录题目
func (r ProblemStatementRepo) Catalog() ([]models.ProblemStatement, error) {
	var statements []models.ProblemStatement
	if err := r.db.Where("is_custom = ?", false).Order("id ASC").Find(&statements).Error; err != nil {
		return nil, err
	}
	return statements, nil
}

// CustomCount 自定义题目计数，用于生成 CUS_ 序号。加行锁串行化并发注册。
func (r ProblemStatementRepo) CustomCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.ProblemStatement{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("is_custom = ?", true).
		Count(&count).Error
	return count, err
}

// LastCatalogNumber 目录题目编号的已用最大序号
func (r ProblemStatementRepo) LastCatalog() (*models.ProblemStatement, error) {
	var ps models.ProblemStatement
	err := r.db.Where("is_custom = ?", false).Order("id DESC").First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// Updates 更新题目字段。psId 一经分配不可变，调用方不得传入 ps_id。
func (r ProblemStatementRepo) Updates(psID string, fields map[string]interface{}) error {
	return r.db.Model(&models.ProblemStatement{}).Where("ps_id = ?", psID).Updates(fields).Error
}

func (r ProblemStatementRepo) Delete(psID string) error {
	return r.db.Where("ps_id = ?", psID).Delete(&models.ProblemStatement{}).Error
}
