package models

import "time"

const (
	UserActive   = "ACTIVE"
	UserInactive = "INACTIVE"
)

// User represents an application user. ID is the login id.
type User struct {
	ID           string     `gorm:"column:usr_id;primaryKey;size:20" json:"usr_id"`
	UUID         string     `gorm:"column:usr_uuid;size:36;uniqueIndex;not null" json:"usr_uuid"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nickname     string     `gorm:"size:50;not null" json:"nickname"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	ProfileImage string     `gorm:"size:512" json:"profile_image"`
	Status       string     `gorm:"size:16;index;not null;default:ACTIVE" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
