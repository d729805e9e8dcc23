package database

import (
	"fmt"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.CommonCode{},
		&models.CalendarDay{},
		&models.ShareGroup{},
		&models.ShareGroupMember{},
		&models.SavingsGoal{},
		&models.SavingsContribution{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
