package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"gorm.io/gorm"
)

// ListShareGroups returns the groups the user belongs to or is invited
// to, with all members.
func (s *Store) ListShareGroups(ctx context.Context, userID string) ([]models.ShareGroup, error) {
	groups := []models.ShareGroup{}
	err := s.conn(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("invited_at, usr_id") }).
		Where("group_id IN (?)", s.conn(ctx).Model(&models.ShareGroupMember{}).
			Select("group_id").
			Where("usr_id = ? AND status <> ?", userID, models.MemberRejected)).
		Order("group_id").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list share groups: %w", err)
	}
	return groups, nil
}

// CreateShareGroup creates a group with the creator as accepted member.
func (s *Store) CreateShareGroup(ctx context.Context, userID, name string) (*models.ShareGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.Invalid("group_name", "group_name is required")
	}
	if len([]rune(name)) > 100 {
		return nil, util.Invalid("group_name", "group_name too long, max 100 characters")
	}

	now := s.now()
	group := models.ShareGroup{Name: name, OwnerID: userID}
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(&group).Error; err != nil {
			return fmt.Errorf("create share group: %w", err)
		}
		member := models.ShareGroupMember{
			GroupID:     group.ID,
			UserID:      userID,
			Status:      models.MemberAccepted,
			InvitedAt:   now,
			RespondedAt: &now,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("add owner: %w", err)
		}
		group.Members = []models.ShareGroupMember{member}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Store) membership(ctx context.Context, groupID uint64, userID string) (*models.ShareGroupMember, error) {
	var m models.ShareGroupMember
	err := s.conn(ctx).Where("group_id = ? AND usr_id = ?", groupID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// InviteMember adds invitee to the group as PENDING. Only accepted
// members may invite.
func (s *Store) InviteMember(ctx context.Context, userID string, groupID uint64, inviteeID string) (*models.ShareGroupMember, error) {
	inviter, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, util.NotFound("share group")
	}
	if inviter.Status != models.MemberAccepted {
		return nil, util.Forbidden("only accepted members can invite")
	}

	inviteeID = strings.TrimSpace(inviteeID)
	if inviteeID == "" {
		return nil, util.Invalid("usr_id", "usr_id is required")
	}
	if _, err := s.GetUser(ctx, inviteeID); err != nil {
		return nil, err
	}

	existing, err := s.membership(ctx, groupID, inviteeID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != models.MemberRejected {
		return nil, &util.ConflictError{Field: "member"}
	}

	member := models.ShareGroupMember{
		GroupID:   groupID,
		UserID:    inviteeID,
		Status:    models.MemberPending,
		InvitedAt: s.now(),
	}
	// a rejected invitation may be reissued
	if err := s.conn(ctx).Save(&member).Error; err != nil {
		return nil, fmt.Errorf("invite member: %w", err)
	}
	return &member, nil
}

// RespondInvitation accepts or rejects the user's pending invitation.
func (s *Store) RespondInvitation(ctx context.Context, userID string, groupID uint64, status string) (*models.ShareGroupMember, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.MemberAccepted && status != models.MemberRejected {
		return nil, util.Invalid("status", "status must be ACCEPTED or REJECTED")
	}

	m, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Status != models.MemberPending {
		return nil, util.NotFound("invitation")
	}

	now := s.now()
	err = s.conn(ctx).Model(&models.ShareGroupMember{}).
		Where("group_id = ? AND usr_id = ?", groupID, userID).
		Updates(map[string]interface{}{"status": status, "responded_at": now}).Error
	if err != nil {
		return nil, fmt.Errorf("respond invitation: %w", err)
	}
	m.Status = status
	m.RespondedAt = &now
	return m, nil
}
