package shared

import (
	"errors"

	"go.uber.org/zap"

	"pawnshop-backoffice/internal/domain/apperr"
)

// RequireStaff rejects an operation with no acting staff member.
func RequireStaff(staffID string) error {
	if staffID == "" {
		return apperr.Unauthorized("staff identity required")
	}
	return nil
}

// Fail passes domain errors through and wraps anything else as a
// persistence failure, logging it once.
func Fail(op string, err error) error {
	err = apperr.Persistence(op, err)
	if errors.Is(err, apperr.ErrPersistence) {
		zap.L().Error("persistence failure", zap.String("op", op), zap.Error(err))
	}
	return err
}
