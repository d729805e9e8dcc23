package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"gorm.io/gorm"
)

// CreateSession records a new login session valid for ttl.
func (s *Store) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.conn(ctx).Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

// ActiveSession returns the session if it is neither revoked nor expired.
func (s *Store) ActiveSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.conn(ctx).Where("id = ?", id).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Unauthorized("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.Revoked || !s.now().Before(sess.ExpiresAt) {
		return nil, util.Unauthorized("session expired")
	}
	return &sess, nil
}

// RevokeSession ends one session. Unknown ids are ignored.
func (s *Store) RevokeSession(ctx context.Context, id string) error {
	err := s.conn(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func revokeUserSessions(tx *gorm.DB, userID string) error {
	err := tx.Model(&models.Session{}).
		Where("usr_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
