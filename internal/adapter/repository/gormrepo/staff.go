package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/staff"
)

type StaffRepository struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) *StaffRepository { return &StaffRepository{db: db} }

func (r *StaffRepository) GetByStaffID(ctx context.Context, staffID string) (*staff.Staff, error) {
	var out staff.Staff
	res := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "staff")
	}
	return &out, nil
}

func (r *StaffRepository) Create(ctx context.Context, s *staff.Staff) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "staff")
}
