package inspection

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Log) error
	// Newest first
	ListByContract(ctx context.Context, contractID uint64) ([]Log, error)
	// inspected_at in [from, to), newest first
	ListInspectedBetween(ctx context.Context, from, to time.Time) ([]Log, error)
}
