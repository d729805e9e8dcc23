package store

import (
	"context"
	"fmt"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
)

// ListCommonCodes returns lookup entries ordered by group, sort order and
// code. Empty arguments are not filtered on.
func (s *Store) ListCommonCodes(ctx context.Context, groupCode string, useYN models.YN) ([]models.CommonCode, error) {
	q := s.conn(ctx).Model(&models.CommonCode{})
	if groupCode != "" {
		q = q.Where("grp_cd = ?", groupCode)
	}
	if useYN != "" {
		q = q.Where("use_yn = ?", useYN)
	}

	codes := []models.CommonCode{}
	if err := q.Order("grp_cd, sort_order, cd").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("list common codes: %w", err)
	}
	return codes, nil
}

// codeExists reports whether an active code exists in the group.
func (s *Store) codeExists(ctx context.Context, groupCode, code string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.CommonCode{}).
		Where("grp_cd = ? AND cd = ? AND use_yn = ?", groupCode, code, models.Yes).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check code: %w", err)
	}
	return count > 0, nil
}
