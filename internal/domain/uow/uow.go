package uow

import (
	"context"

	"pawnshop-backoffice/internal/domain/attachment"
	"pawnshop-backoffice/internal/domain/audit"
	"pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/inspection"
	"pawnshop-backoffice/internal/domain/payment"
)

// Repos bound to one transaction.
type Repos struct {
	Contracts   contract.Repository
	Payments    payment.Repository
	Audit       audit.Repository
	Inspections inspection.Repository
	Images      attachment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the contract row first, then pass it in
	WithinContractTx(ctx context.Context, contractID string, fn func(r Repos, c *contract.Contract) error) error
}
