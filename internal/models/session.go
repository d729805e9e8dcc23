package models

import "time"

// Session backs an issued JWT so it can be revoked on logout.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36"` // jti
	UserID    string    `gorm:"column:usr_id;size:20;index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}
