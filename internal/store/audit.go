package store

import (
	"context"
	"fmt"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"gorm.io/gorm"
)

// RecordAudit stores one audit entry.
func (s *Store) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	if err := s.conn(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// ListAuditLogs pages the user's audit entries, newest first.
func (s *Store) ListAuditLogs(ctx context.Context, userID string, page, size int) ([]models.AuditLog, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	base := s.conn(ctx).Model(&models.AuditLog{}).Where("usr_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	logs := []models.AuditLog{}
	err := base.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}
