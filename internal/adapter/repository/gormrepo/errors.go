package gormrepo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/apperr"
)

// translate maps driver errors onto domain kinds; anything else is returned as is.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity)
	case isDuplicate(err):
		return &apperr.Error{Kind: apperr.ErrConflict, Msg: entity + " already exists", Err: err}
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers opened without TranslateError
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
