package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletView is a wallet with its bank display name.
type WalletView struct {
	models.Wallet
	BankName *string `gorm:"column:bank_nm" json:"bank_nm"`
}

const walletColumns = `w.*,
	(SELECT c.cd_nm FROM common_codes c WHERE c.grp_cd = 'BANK' AND c.cd = w.bank_cd) AS bank_nm`

// WalletFilter narrows ListWallets. Empty fields are ignored.
type WalletFilter struct {
	UserID string
	UseYN  models.YN
	Type   string
}

// ListWallets returns the user's wallets, newest first.
func (s *Store) ListWallets(ctx context.Context, f WalletFilter) ([]WalletView, error) {
	q := s.conn(ctx).Table("wallets w").Select(walletColumns).Where("w.usr_id = ?", f.UserID)
	if f.UseYN != "" {
		q = q.Where("w.use_yn = ?", f.UseYN)
	}
	if f.Type != "" {
		q = q.Where("w.wlt_type = ?", f.Type)
	}

	wallets := []WalletView{}
	if err := q.Order("w.created_at DESC, w.wlt_id DESC").Scan(&wallets).Error; err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

// GetWallet returns one of the user's wallets, active or not.
func (s *Store) GetWallet(ctx context.Context, userID string, id uint64) (*WalletView, error) {
	var wallets []WalletView
	err := s.conn(ctx).Table("wallets w").Select(walletColumns).
		Where("w.wlt_id = ? AND w.usr_id = ?", id, userID).
		Limit(1).
		Scan(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	if len(wallets) == 0 {
		return nil, util.NotFound("wallet")
	}
	return &wallets[0], nil
}

// WalletInput is the payload for a new wallet. Empty flags take their
// defaults: is_default=N, use_yn=Y, share_yn=N.
type WalletInput struct {
	Type       string
	Name       string
	BankCode   *string
	CardNumber *string
	IsDefault  models.YN
	UseYN      models.YN
	ShareYN    models.YN
}

// CreateWallet inserts a wallet. Setting it as default clears the
// user's other defaults in the same transaction.
func (s *Store) CreateWallet(ctx context.Context, userID string, in WalletInput) (*WalletView, error) {
	w := models.Wallet{
		UserID:     userID,
		Type:       strings.TrimSpace(in.Type),
		Name:       strings.TrimSpace(in.Name),
		BankCode:   trimmed(in.BankCode),
		CardNumber: trimmed(in.CardNumber),
		IsDefault:  orDefault(in.IsDefault, models.No),
		UseYN:      orDefault(in.UseYN, models.Yes),
		ShareYN:    orDefault(in.ShareYN, models.No),
	}
	if err := validateWallet(w); err != nil {
		return nil, err
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if w.IsDefault.Bool() {
			if err := clearDefaults(tx, userID, 0); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(&w).Error; err != nil {
			return fmt.Errorf("create wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetWallet(ctx, userID, w.ID)
}

// WalletPatch holds a partial wallet update; nil fields are left alone.
type WalletPatch struct {
	Type       *string
	Name       *string
	BankCode   *string
	CardNumber *string
	IsDefault  *models.YN
	UseYN      *models.YN
	ShareYN    *models.YN
}

// UpdateWallet applies patch to one of the user's wallets.
func (s *Store) UpdateWallet(ctx context.Context, userID string, id uint64, patch WalletPatch) (*WalletView, error) {
	current, err := s.GetWallet(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	w := current.Wallet
	updates := map[string]interface{}{}
	if patch.Type != nil {
		w.Type = strings.TrimSpace(*patch.Type)
		updates["wlt_type"] = w.Type
	}
	if patch.Name != nil {
		w.Name = strings.TrimSpace(*patch.Name)
		updates["wlt_name"] = w.Name
	}
	if patch.BankCode != nil {
		w.BankCode = trimmed(patch.BankCode)
		updates["bank_cd"] = w.BankCode
	}
	if patch.CardNumber != nil {
		w.CardNumber = trimmed(patch.CardNumber)
		updates["card_number"] = w.CardNumber
	}
	if patch.IsDefault != nil {
		w.IsDefault = *patch.IsDefault
		updates["is_default"] = w.IsDefault
	}
	if patch.UseYN != nil {
		w.UseYN = *patch.UseYN
		updates["use_yn"] = w.UseYN
	}
	if patch.ShareYN != nil {
		w.ShareYN = *patch.ShareYN
		updates["share_yn"] = w.ShareYN
	}
	if err := validateWallet(w); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return current, nil
	}

	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.IsDefault != nil && patch.IsDefault.Bool() {
			if err := clearDefaults(tx, userID, id); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Wallet{}).Where("wlt_id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetWallet(ctx, userID, id)
}

// DeleteWallet soft-deletes a wallet. Its transactions are kept.
func (s *Store) DeleteWallet(ctx context.Context, userID string, id uint64) error {
	if _, err := s.GetWallet(ctx, userID, id); err != nil {
		return err
	}
	err := s.conn(ctx).Model(&models.Wallet{}).
		Where("wlt_id = ?", id).
		Update("use_yn", models.No).Error
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

// activeWallet loads a wallet the user owns and has not deleted.
func activeWallet(tx *gorm.DB, userID string, id uint64) (*models.Wallet, error) {
	var w models.Wallet
	err := tx.Where("wlt_id = ? AND usr_id = ? AND use_yn = ?", id, userID, models.Yes).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Invalid("wlt_id", "wallet does not belong to the user or is inactive")
	}
	if err != nil {
		return nil, fmt.Errorf("check wallet: %w", err)
	}
	return &w, nil
}

// clearDefaults unsets is_default on the user's wallets other than keep.
func clearDefaults(tx *gorm.DB, userID string, keep uint64) error {
	q := tx.Model(&models.Wallet{}).Where("usr_id = ? AND is_default = ?", userID, models.Yes)
	if keep != 0 {
		q = q.Where("wlt_id <> ?", keep)
	}
	if err := q.Update("is_default", models.No).Error; err != nil {
		return fmt.Errorf("clear default wallets: %w", err)
	}
	return nil
}

func validateWallet(w models.Wallet) error {
	if !models.IsWalletType(w.Type) {
		return util.Invalid("wlt_type", "wlt_type must be one of %s", strings.Join(models.WalletTypes, ", "))
	}
	if w.Name == "" {
		return util.Invalid("wlt_name", "wlt_name is required")
	}
	if len([]rune(w.Name)) > 100 {
		return util.Invalid("wlt_name", "wlt_name too long, max 100 characters")
	}
	for field, flag := range map[string]models.YN{"is_default": w.IsDefault, "use_yn": w.UseYN, "share_yn": w.ShareYN} {
		if !flag.Valid() {
			return util.Invalid(field, "%s must be Y or N", field)
		}
	}
	return nil
}

func orDefault(flag, def models.YN) models.YN {
	if flag == "" {
		return def
	}
	return flag
}

// trimmed trims s and maps blank strings to nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
