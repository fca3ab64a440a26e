package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

func defaultEmployees() []models.Employee {
	now := time.Now()
	return []models.Employee{
		{ID: 1, Name: "Arun", Role: models.RoleEngraver, Active: true, CreatedAt: now},
		{ID: 2, Name: "Sreerag", Role: models.RoleEngraver, Active: true, CreatedAt: now},
		{ID: 3, Name: "Rahul", Role: models.RoleEngraver, Active: true, CreatedAt: now},
	}
}

func defaultProductTypes() []models.ProductType {
	now := time.Now()
	return []models.ProductType{
		{ID: 1, Name: "Keychain", Active: true, CreatedAt: now},
		{ID: 2, Name: "Photo Frame", Active: true, CreatedAt: now},
		{ID: 3, Name: "Wall Art", Active: true, CreatedAt: now},
		{ID: 4, Name: "Custom", Active: true, CreatedAt: now},
	}
}

// SeedDefaults fills in the default team and product types when those
// tables are empty. Existing rows are never touched, so re-running is
// safe.
func SeedDefaults(db *gorm.DB) error {
	var employeeCount int64
	if err := db.Model(&models.Employee{}).Count(&employeeCount).Error; err != nil {
		return err
	}
	if employeeCount == 0 {
		employees := defaultEmployees()
		if err := db.Create(&employees).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d default employees", len(employees))
	}

	var typeCount int64
	if err := db.Model(&models.ProductType{}).Count(&typeCount).Error; err != nil {
		return err
	}
	if typeCount == 0 {
		types := defaultProductTypes()
		if err := db.Create(&types).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d default product types", len(types))
	}

	return nil
}
