package shared

import (
	"context"

	"go.uber.org/zap"

	"pawnshop-backoffice/internal/domain/audit"
)

// Activity writes activity_logs rows after the owning transaction committed.
// A failed write is logged and dropped; it never fails the operation.
type Activity struct {
	repo audit.Repository
}

func NewActivity(repo audit.Repository) *Activity { return &Activity{repo: repo} }

func (a *Activity) Log(ctx context.Context, staffID string, contractID *uint64, action, description string) {
	if a == nil || a.repo == nil {
		return
	}
	entry := &audit.ActivityLog{
		StaffID:     staffID,
		ContractID:  contractID,
		Action:      action,
		Description: description,
	}
	if err := a.repo.AppendActivity(ctx, entry); err != nil {
		zap.L().Warn("activity log write failed",
			zap.String("action", action),
			zap.String("staff_id", staffID),
			zap.Error(err),
		)
	}
}
