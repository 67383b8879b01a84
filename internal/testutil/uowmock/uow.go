package uowmock

import (
	"context"
	"errors"

	"pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinContractTxFn func(ctx context.Context, contractID string, fn func(r uow.Repos, c *contract.Contract) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinContractTx(fn func(context.Context, string, func(uow.Repos, *contract.Contract) error) error) *UoW {
	m.WithinContractTxFn = fn
	return m
}

// WithRepos runs both methods straight against r, loading the contract
// through r.Contracts.GetByContractIDForUpdate like the real implementation.
func (m *UoW) WithRepos(r uow.Repos) *UoW {
	m.WithinTxFn = func(_ context.Context, fn func(uow.Repos) error) error { return fn(r) }
	m.WithinContractTxFn = func(ctx context.Context, contractID string, fn func(uow.Repos, *contract.Contract) error) error {
		c, err := r.Contracts.GetByContractIDForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		return fn(r, c)
	}
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinContractTx(ctx context.Context, contractID string, fn func(r uow.Repos, c *contract.Contract) error) error {
	if m.WithinContractTxFn != nil {
		return m.WithinContractTxFn(ctx, contractID, fn)
	}
	return errUnimplemented
}
