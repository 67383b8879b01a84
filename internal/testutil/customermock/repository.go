package customermock

import (
	"context"

	domain "pawnshop-backoffice/internal/domain/customer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, c *domain.Customer) error
	SaveFn               func(ctx context.Context, c *domain.Customer) error
	GetByCustomerIDFn    func(ctx context.Context, customerID string) (*domain.Customer, error)
	FindActiveByIDCardFn func(ctx context.Context, idCardNumber, exceptCustomerID string) (*domain.Customer, error)
	SearchFn             func(ctx context.Context, query string, limit int) ([]domain.Customer, error)
	ListByCustomerIDsFn  func(ctx context.Context, customerIDs []string) ([]domain.Customer, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) FindActiveByIDCard(ctx context.Context, idCardNumber, exceptCustomerID string) (*domain.Customer, error) {
	if m.FindActiveByIDCardFn != nil {
		return m.FindActiveByIDCardFn(ctx, idCardNumber, exceptCustomerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCustomerIDs(ctx context.Context, customerIDs []string) ([]domain.Customer, error) {
	if m.ListByCustomerIDsFn != nil {
		return m.ListByCustomerIDsFn(ctx, customerIDs)
	}
	return nil, context.Canceled
}
