package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/inspection"
)

type InspectionRepository struct{ db *gorm.DB }

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, l *inspection.Log) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, "inspection")
}

func (r *InspectionRepository) ListByContract(ctx context.Context, contractID uint64) ([]inspection.Log, error) {
	var out []inspection.Log
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("inspected_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *InspectionRepository) ListInspectedBetween(ctx context.Context, from, to time.Time) ([]inspection.Log, error) {
	var out []inspection.Log
	res := r.db.WithContext(ctx).
		Where("inspected_at >= ? AND inspected_at < ?", from, to).
		Order("inspected_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
