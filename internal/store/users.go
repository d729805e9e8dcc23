package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"gorm.io/gorm"
)

const credentialMismatch = "id or password mismatch"

// SignupInput is the payload of a registration.
type SignupInput struct {
	ID       string
	Email    string
	Nickname string
	Password string
}

func (in *SignupInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.Email = strings.TrimSpace(in.Email)
	in.Nickname = strings.TrimSpace(in.Nickname)
}

func (in SignupInput) validate() error {
	if err := util.ValidateUserID(in.ID); err != nil {
		return err
	}
	if err := util.ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := util.ValidateNickname(in.Nickname); err != nil {
		return err
	}
	return util.ValidatePassword(in.Password)
}

// CreateUser registers an active user. Duplicate id or email yields a
// *util.ConflictError naming the field.
func (s *Store) CreateUser(ctx context.Context, in SignupInput) (*models.User, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	db := s.conn(ctx)
	unique := []struct {
		field, cond, value string
	}{
		{"id", "usr_id = ?", in.ID},
		{"email", "LOWER(email) = LOWER(?)", in.Email},
	}
	for _, u := range unique {
		var count int64
		if err := db.Model(&models.User{}).Where(u.cond, u.value).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check %s: %w", u.field, err)
		}
		if count > 0 {
			return nil, &util.ConflictError{Field: u.field}
		}
	}

	hash, err := util.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           in.ID,
		UUID:         uuid.NewString(),
		Email:        in.Email,
		Nickname:     in.Nickname,
		PasswordHash: hash,
		Status:       models.UserActive,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUser returns the active user with the given login id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).
		Where("usr_id = ? AND status = ?", id, models.UserActive).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// VerifyCredentials checks id and password against the active user and
// stamps the login time. Both failure modes report the same message.
func (s *Store) VerifyCredentials(ctx context.Context, id, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, strings.TrimSpace(id))
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.Unauthorized(credentialMismatch)
	}
	if err != nil {
		return nil, err
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, util.Unauthorized(credentialMismatch)
	}

	now := s.now()
	if err := s.conn(ctx).Model(user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginAt = &now
	return user, nil
}

// ProfilePatch carries the editable profile fields; nil leaves a field as is.
type ProfilePatch struct {
	Nickname     *string
	ProfileImage *string
}

// UpdateProfile applies patch to the active user.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Nickname != nil {
		nickname := strings.TrimSpace(*patch.Nickname)
		if err := util.ValidateNickname(nickname); err != nil {
			return nil, err
		}
		updates["nickname"] = nickname
	}
	if patch.ProfileImage != nil {
		if len(*patch.ProfileImage) > 512 {
			return nil, util.Invalid("profile_image", "profile_image too long")
		}
		updates["profile_image"] = strings.TrimSpace(*patch.ProfileImage)
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.conn(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetUser(ctx, id)
}

// ChangePassword replaces the password after checking the current one.
func (s *Store) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !util.CheckPassword(oldPassword, user.PasswordHash) {
		return util.Invalid("old_password", "current password is incorrect")
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return util.Invalid("new_password", "new password must be at least 8 characters")
	}

	hash, err := util.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.conn(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeactivateUser marks the user inactive and revokes every session.
func (s *Store) DeactivateUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("usr_id = ?", id).
			Update("status", models.UserInactive).Error; err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}
		return revokeUserSessions(tx, id)
	})
}
