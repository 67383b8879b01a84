package audit

import "context"

type Repository interface {
	AppendStatus(ctx context.Context, h *StatusHistory) error
	// Oldest first
	ListStatus(ctx context.Context, contractID uint64) ([]StatusHistory, error)

	AppendActivity(ctx context.Context, a *ActivityLog) error
	ListActivity(ctx context.Context, contractID uint64, limit int) ([]ActivityLog, error)
}
