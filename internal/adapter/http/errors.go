package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/domain/apperr"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalidTransition, apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrValidation:
		return http.StatusUnprocessableEntity
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// fail writes err as an ErrorResponse. Internal failures are not echoed
// to the client; the use case already logged them.
func fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		return c.JSON(status, ErrorResponse{Error: "internal error"})
	}
	resp := ErrorResponse{Error: err.Error()}
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Field != "" {
		resp.Error = ae.Kind.Error()
		resp.Details = []FieldError{{Field: ae.Field, Message: ae.Msg}}
	}
	return c.JSON(status, resp)
}

// bindAndValidate binds the request into req and runs the validator,
// writing the 400/422 response itself. ok is false when a response was
// written.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
