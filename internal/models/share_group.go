package models

import "time"

const (
	MemberPending  = "PENDING"
	MemberAccepted = "ACCEPTED"
	MemberRejected = "REJECTED"
)

// ShareGroup is a set of users who see each other's shared wallets.
type ShareGroup struct {
	ID        uint64    `gorm:"column:group_id;primaryKey;autoIncrement" json:"group_id"`
	Name      string    `gorm:"column:group_name;size:100;not null" json:"group_name"`
	OwnerID   string    `gorm:"column:owner_id;size:20;index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	Members []ShareGroupMember `gorm:"foreignKey:GroupID;references:ID" json:"members,omitempty"`
}

// ShareGroupMember links a user to a group. Only ACCEPTED members share.
type ShareGroupMember struct {
	GroupID     uint64     `gorm:"column:group_id;primaryKey" json:"group_id"`
	UserID      string     `gorm:"column:usr_id;primaryKey;size:20;index" json:"usr_id"`
	Status      string     `gorm:"size:16;not null;default:PENDING" json:"status"`
	InvitedAt   time.Time  `json:"invited_at"`
	RespondedAt *time.Time `json:"responded_at"`
}
