package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/contract"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("contract"), http.StatusNotFound},
		{fmt.Errorf("load: %w", apperr.NotFound("payment")), http.StatusNotFound},
		{&contract.TransitionError{From: contract.StatusDraft, Action: contract.ActionExtend}, http.StatusConflict},
		{apperr.Invalid("days", "must be between 1 and 365"), http.StatusUnprocessableEntity},
		{apperr.Unauthorized("staff identity required"), http.StatusUnauthorized},
		{apperr.Conflict("stale contract"), http.StatusConflict},
		{apperr.Persistence("save", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func runFail(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if e := fail(c, err); e != nil {
		t.Fatalf("fail: %v", e)
	}
	var body ErrorResponse
	if e := json.Unmarshal(rec.Body.Bytes(), &body); e != nil {
		t.Fatalf("bad json: %v", e)
	}
	return rec, body
}

func TestFail_FieldDetails(t *testing.T) {
	rec, body := runFail(t, apperr.Invalid("days", "must be between 1 and 365"))
	if rec.Code != http.StatusUnprocessableEntity || body.Error != "validation failed" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "days" {
		t.Fatalf("details = %+v", body.Details)
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	rec, body := runFail(t, apperr.Persistence("save contract", errors.New("dial tcp 10.0.0.3:3306: refused")))
	if rec.Code != http.StatusInternalServerError || body.Error != "internal error" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
}

func TestFail_TransitionMessage(t *testing.T) {
	rec, body := runFail(t, &contract.TransitionError{From: contract.StatusDraft, Action: contract.ActionExtend})
	if rec.Code != http.StatusConflict || body.Error != "invalid transition: cannot extend a contract in status DRAFT" {
		t.Fatalf("got %d %+v", rec.Code, body)
	}
}
