package inspectionmock

import (
	"context"
	"time"

	domain "pawnshop-backoffice/internal/domain/inspection"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, l *domain.Log) error
	ListByContractFn func(ctx context.Context, contractID uint64) ([]domain.Log, error)

	ListInspectedBetweenFn func(ctx context.Context, from, to time.Time) ([]domain.Log, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Log) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByContract(ctx context.Context, contractID uint64) ([]domain.Log, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListInspectedBetween(ctx context.Context, from, to time.Time) ([]domain.Log, error) {
	if m.ListInspectedBetweenFn != nil {
		return m.ListInspectedBetweenFn(ctx, from, to)
	}
	return nil, context.Canceled
}
