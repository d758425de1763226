package database

import (
	"fmt"
	"log"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/config"
	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 连接池配置，ConnMaxLifetime 用于规避 MySQL wait_timeout
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
	return db, nil
}

func MigrateTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProblemStatement{},
		&models.Team{},
		&models.Member{},
		&models.Task{},
		&models.Admin{},
		&models.Announcement{},
		&models.DeletedMember{},
	)
}
