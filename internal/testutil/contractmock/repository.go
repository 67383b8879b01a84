package contractmock

import (
	"context"
	"time"

	domain "pawnshop-backoffice/internal/domain/contract"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.Sequencer  = (*Sequencer)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateFn                   func(ctx context.Context, c *domain.Contract) error
	SaveFn                     func(ctx context.Context, c *domain.Contract) error
	GetByContractIDFn          func(ctx context.Context, contractID string) (*domain.Contract, error)
	GetByContractIDForUpdateFn func(ctx context.Context, contractID string) (*domain.Contract, error)
	GetByQRCodeFn              func(ctx context.Context, qrCode string) (*domain.Contract, error)
	ListFn                     func(ctx context.Context, f domain.ListFilter) ([]domain.Contract, int64, error)
	ListOverdueFn              func(ctx context.Context, today time.Time) ([]domain.Contract, error)
	MaxSequenceByQRPrefixFn    func(ctx context.Context, prefix string) (int64, error)
	CountByCustomerFn          func(ctx context.Context, customerID string, statuses []domain.Status) (int64, error)
	ListCreatedBetweenFn       func(ctx context.Context, from, to time.Time) ([]domain.Contract, error)
	ListByIDsFn                func(ctx context.Context, ids []uint64) ([]domain.Contract, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByContractID(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.GetByContractIDFn != nil {
		return m.GetByContractIDFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByContractIDForUpdate(ctx context.Context, contractID string) (*domain.Contract, error) {
	if m.GetByContractIDForUpdateFn != nil {
		return m.GetByContractIDForUpdateFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByQRCode(ctx context.Context, qrCode string) (*domain.Contract, error) {
	if m.GetByQRCodeFn != nil {
		return m.GetByQRCodeFn(ctx, qrCode)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Contract, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Contract, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, today)
	}
	return nil, context.Canceled
}

func (m *Repo) MaxSequenceByQRPrefix(ctx context.Context, prefix string) (int64, error) {
	if m.MaxSequenceByQRPrefixFn != nil {
		return m.MaxSequenceByQRPrefixFn(ctx, prefix)
	}
	return 0, context.Canceled
}

func (m *Repo) CountByCustomer(ctx context.Context, customerID string, statuses []domain.Status) (int64, error) {
	if m.CountByCustomerFn != nil {
		return m.CountByCustomerFn(ctx, customerID, statuses)
	}
	return 0, context.Canceled
}

func (m *Repo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	if m.ListCreatedBetweenFn != nil {
		return m.ListCreatedBetweenFn(ctx, from, to)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByIDs(ctx context.Context, ids []uint64) ([]domain.Contract, error) {
	if m.ListByIDsFn != nil {
		return m.ListByIDsFn(ctx, ids)
	}
	return nil, context.Canceled
}

// Sequencer hands out the value NextFn returns, or 1.
type Sequencer struct {
	NextFn func(ctx context.Context, prefix string) (int, error)
}

func (m *Sequencer) Next(ctx context.Context, prefix string) (int, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, prefix)
	}
	return 1, nil
}
