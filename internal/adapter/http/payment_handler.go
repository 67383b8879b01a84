package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/payment"
	ucPayment "pawnshop-backoffice/internal/usecase/payment"
)

type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Type            string     `json:"payment_type"     validate:"required,oneof=INTEREST PARTIAL FULL_REDEEM EXTENSION_FEE PENALTY OTHER"`
	Method          string     `json:"payment_method"   validate:"omitempty,oneof=CASH BANK_TRANSFER OTHER"`
	Amount          int64      `json:"amount"           validate:"gt=0,lte=1000000000000000"`
	InterestAmount  int64      `json:"interest_amount"  validate:"gte=0,lte=1000000000000000"`
	PrincipalAmount int64      `json:"principal_amount" validate:"gte=0,lte=1000000000000000"`
	PenaltyAmount   int64      `json:"penalty_amount"   validate:"gte=0,lte=1000000000000000"`
	PaymentDate     *time.Time `json:"payment_date"`
	Notes           string     `json:"notes"            validate:"max=2000"`
	ReceiptNumber   *string    `json:"receipt_number"   validate:"omitempty,max=64"`
}

type allocatePaymentReq struct {
	Type          string     `json:"payment_type"   validate:"omitempty,oneof=INTEREST PARTIAL FULL_REDEEM EXTENSION_FEE PENALTY OTHER"`
	Method        string     `json:"payment_method" validate:"omitempty,oneof=CASH BANK_TRANSFER OTHER"`
	Amount        int64      `json:"amount"         validate:"gt=0,lte=1000000000000000"`
	PenaltyAmount int64      `json:"penalty_amount" validate:"gte=0,lte=1000000000000000"`
	PaymentDate   *time.Time `json:"payment_date"`
	Notes         string     `json:"notes"          validate:"max=2000"`
	ReceiptNumber *string    `json:"receipt_number" validate:"omitempty,max=64"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req recordPaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Record(c.Request().Context(), middleware.StaffID(c), id, ucPayment.RecordInput{
		Type:            payment.Type(req.Type),
		Method:          payment.Method(req.Method),
		Amount:          req.Amount,
		InterestAmount:  req.InterestAmount,
		PrincipalAmount: req.PrincipalAmount,
		PenaltyAmount:   req.PenaltyAmount,
		PaymentDate:     req.PaymentDate,
		Notes:           req.Notes,
		ReceiptNumber:   req.ReceiptNumber,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) Allocate(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req allocatePaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.RecordAllocated(c.Request().Context(), middleware.StaffID(c), id, ucPayment.AllocateInput{
		Type:          payment.Type(req.Type),
		Method:        payment.Method(req.Method),
		Amount:        req.Amount,
		PenaltyAmount: req.PenaltyAmount,
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
		ReceiptNumber: req.ReceiptNumber,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) List(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	rows, err := h.uc.List(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows})
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	paymentID := c.Param("payment_id")
	if !reHex32.MatchString(paymentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_id path param"})
	}
	bal, err := h.uc.Delete(c.Request().Context(), middleware.StaffID(c), id, paymentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, bal)
}
