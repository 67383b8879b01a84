package staffmock

import (
	"context"

	domain "pawnshop-backoffice/internal/domain/staff"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByStaffIDFn func(ctx context.Context, staffID string) (*domain.Staff, error)
	CreateFn       func(ctx context.Context, s *domain.Staff) error
}

func (m *Repo) GetByStaffID(ctx context.Context, staffID string) (*domain.Staff, error) {
	if m.GetByStaffIDFn != nil {
		return m.GetByStaffIDFn(ctx, staffID)
	}
	return nil, context.Canceled
}

func (m *Repo) Create(ctx context.Context, s *domain.Staff) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
