package paymentmock

import (
	"context"
	"time"

	domain "pawnshop-backoffice/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByContractFn func(ctx context.Context, contractID uint64) ([]domain.Payment, error)
	DeleteFn         func(ctx context.Context, p *domain.Payment, deletedBy string) error

	ListCreatedBetweenFn func(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByContract(ctx context.Context, contractID uint64) ([]domain.Payment, error) {
	if m.ListByContractFn != nil {
		return m.ListByContractFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, p *domain.Payment, deletedBy string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p, deletedBy)
	}
	return nil
}

func (m *Repo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	if m.ListCreatedBetweenFn != nil {
		return m.ListCreatedBetweenFn(ctx, from, to)
	}
	return nil, context.Canceled
}
