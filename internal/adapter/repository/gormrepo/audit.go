package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/audit"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) AppendStatus(ctx context.Context, h *audit.StatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *AuditRepository) ListStatus(ctx context.Context, contractID uint64) ([]audit.StatusHistory, error) {
	var out []audit.StatusHistory
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AuditRepository) AppendActivity(ctx context.Context, a *audit.ActivityLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AuditRepository) ListActivity(ctx context.Context, contractID uint64, limit int) ([]audit.ActivityLog, error) {
	var out []audit.ActivityLog
	q := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}
