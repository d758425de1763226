package database

import (
	"log"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"gorm.io/gorm"
)

// Seed 在空库时写入题目目录与默认管理员
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	var psCount int64
	if err := db.Model(&models.ProblemStatement{}).Count(&psCount).Error; err != nil {
		return err
	}

	if psCount == 0 {
		statements := []models.ProblemStatement{
			{PsID: "HO2K25001", Title: "AI-powered Crop Monitoring", Description: "Build an AI system to detect crop diseases from images.", Category: "Agriculture", Tags: []string{"AI", "Machine Learning", "Agriculture"}},
			{PsID: "HO2K25002", Title: "Smart Waste Management", Description: "IoT-based system for tracking and managing waste bins.", Category: "Environment", Tags: []string{"IoT", "Environment", "Sustainability"}},
			{PsID: "HO2K25003", Title: "Energy Optimization in Smart Homes", Description: "Develop a system to optimize electricity usage in smart homes.", Category: "Energy", Tags: []string{"Smart Home", "Energy", "IoT"}},
			{PsID: "HO2K25004", Title: "AI Tutor for Students", Description: "An AI-powered tutor to help students with personalized learning.", Category: "Education", Tags: []string{"AI", "Education", "Personalization"}},
			{PsID: "HO2K25005", Title: "Flood Prediction System", Description: "Develop an ML-based flood prediction and alerting system.", Category: "Disaster Management", Tags: []string{"ML", "Disaster Management", "Alerting"}},
		}
		if err := db.Create(&statements).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d catalog problem statements", len(statements))
	}

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		admin := models.Admin{Email: adminEmail, Password: adminPassword}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seeded default admin %s", adminEmail)
	}

	return nil
}
