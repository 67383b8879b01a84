package auditmock

import (
	"context"

	domain "pawnshop-backoffice/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendStatusFn   func(ctx context.Context, h *domain.StatusHistory) error
	ListStatusFn     func(ctx context.Context, contractID uint64) ([]domain.StatusHistory, error)
	AppendActivityFn func(ctx context.Context, a *domain.ActivityLog) error
	ListActivityFn   func(ctx context.Context, contractID uint64, limit int) ([]domain.ActivityLog, error)
}

func (m *Repo) AppendStatus(ctx context.Context, h *domain.StatusHistory) error {
	if m.AppendStatusFn != nil {
		return m.AppendStatusFn(ctx, h)
	}
	return nil
}

func (m *Repo) ListStatus(ctx context.Context, contractID uint64) ([]domain.StatusHistory, error) {
	if m.ListStatusFn != nil {
		return m.ListStatusFn(ctx, contractID)
	}
	return nil, context.Canceled
}

func (m *Repo) AppendActivity(ctx context.Context, a *domain.ActivityLog) error {
	if m.AppendActivityFn != nil {
		return m.AppendActivityFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListActivity(ctx context.Context, contractID uint64, limit int) ([]domain.ActivityLog, error) {
	if m.ListActivityFn != nil {
		return m.ListActivityFn(ctx, contractID, limit)
	}
	return nil, context.Canceled
}
