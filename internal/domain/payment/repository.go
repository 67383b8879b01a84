package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// Get by public payment_id
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)

	// Newest first
	ListByContract(ctx context.Context, contractID uint64) ([]Payment, error)

	// created_at in [from, to), newest first; deleted payments excluded
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]Payment, error)

	// Delete removes p from the ledger, recording who removed it.
	Delete(ctx context.Context, p *Payment, deletedBy string) error
}
