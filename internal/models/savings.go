package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CycleWeekly  = "WEEKLY"
	CycleMonthly = "MONTHLY"
)

// SavingsGoal is a target amount the user contributes towards.
// The current amount is derived from contributions.
type SavingsGoal struct {
	ID            uint64              `gorm:"column:goal_id;primaryKey;autoIncrement" json:"goal_id"`
	UserID        string              `gorm:"column:usr_id;size:20;index;not null" json:"usr_id"`
	Name          string              `gorm:"column:goal_name;size:100;not null" json:"goal_name"`
	TargetAmount  decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	PlannedAmount decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"planned_amount"`
	PlannedCycle  *string             `gorm:"size:16" json:"planned_cycle"`
	StartDate     string              `gorm:"size:10" json:"start_date"`
	TargetDate    *string             `gorm:"size:10" json:"target_date"`
	UseYN         YN                  `gorm:"column:use_yn;size:1;not null;default:Y" json:"use_yn"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SavingsContribution is one deposit towards a goal.
type SavingsContribution struct {
	ID        uint64          `gorm:"column:contribution_id;primaryKey;autoIncrement" json:"contribution_id"`
	GoalID    uint64          `gorm:"column:goal_id;index;not null" json:"goal_id"`
	Date      string          `gorm:"column:contribution_date;size:10;not null" json:"contribution_date"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Memo      *string         `gorm:"size:255" json:"memo"`
	CreatedAt time.Time       `json:"created_at"`

	Goal SavingsGoal `gorm:"foreignKey:GoalID;references:ID" json:"-"`
}
