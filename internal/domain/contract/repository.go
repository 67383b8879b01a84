package contract

import (
	"context"
	"time"
)

type ListFilter struct {
	Statuses   []Status
	CustomerID string
	// contract_date range, inclusive
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	// Save writes every column and bumps Version; a stale Version fails with a conflict.
	Save(ctx context.Context, c *Contract) error
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
	// Locks the row for the rest of the transaction.
	GetByContractIDForUpdate(ctx context.Context, contractID string) (*Contract, error)
	GetByQRCode(ctx context.Context, qrCode string) (*Contract, error)
	List(ctx context.Context, f ListFilter) ([]Contract, int64, error)
	// Open contracts that are stored as OVERDUE or whose due_date is before today.
	ListOverdue(ctx context.Context, today time.Time) ([]Contract, error)
	// Highest sequence_number among codes starting with prefix, 0 when none.
	MaxSequenceByQRPrefix(ctx context.Context, prefix string) (int64, error)
	// Every status when statuses is empty.
	CountByCustomer(ctx context.Context, customerID string, statuses []Status) (int64, error)
	// created_at in [from, to), newest first
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]Contract, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]Contract, error)
}

// Sequencer hands out the per-day sequence for a tracking code prefix.
type Sequencer interface {
	Next(ctx context.Context, prefix string) (int, error)
}
