package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/internal/usecase/contract"
)

const dateLayout = "2006-01-02"

type ContractHandler struct{ uc *contract.Usecase }

func NewContractHandler(uc *contract.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type createContractReq struct {
	CustomerID          string           `json:"customer_id"           validate:"required,hex32"`
	VehicleCategoryCode string           `json:"vehicle_category_code" validate:"required,upperalpha,min=2,max=6"`
	ContractTypeCode    string           `json:"contract_type_code"    validate:"required,upperalpha,min=2,max=10"`
	AppraisedValue      int64            `json:"appraised_value"       validate:"gte=0,lte=1000000000000000"`
	LoanAmount          int64            `json:"loan_amount"           validate:"gt=0,lte=1000000000000000"`
	InterestRate        *decimal.Decimal `json:"interest_rate"`
	DurationDays        int              `json:"duration_days"         validate:"gte=0,lte=3650"`
	Notes               string           `json:"notes"                 validate:"max=2000"`
	Activate            bool             `json:"activate"`
}

type reasonReq struct {
	Reason string `json:"reason" validate:"max=500"`
}

type extendReq struct {
	Days   int    `json:"days"   validate:"required,gte=1,lte=365"`
	Reason string `json:"reason" validate:"max=500"`
}

type redeemReq struct {
	Amount        int64   `json:"amount"         validate:"gt=0,lte=1000000000000000"`
	Method        string  `json:"payment_method" validate:"omitempty,oneof=CASH BANK_TRANSFER OTHER"`
	Notes         string  `json:"notes"          validate:"max=2000"`
	ReceiptNumber *string `json:"receipt_number" validate:"omitempty,max=64"`
}

type listContractsReq struct {
	// comma separated
	Status     string `query:"status"`
	CustomerID string `query:"customer_id" validate:"omitempty,hex32"`
	From       string `query:"from"        validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to"          validate:"omitempty,datetime=2006-01-02"`
	Page       int    `query:"page"        validate:"gte=0,lte=10000"`
	Limit      int    `query:"limit"       validate:"gte=0"`
}

type dailyReq struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type pageReq struct {
	Limit  int `query:"limit"  validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

func (h *ContractHandler) Create(c echo.Context) error {
	var req createContractReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.StaffID(c), contract.CreateInput{
		CustomerID:          req.CustomerID,
		VehicleCategoryCode: req.VehicleCategoryCode,
		ContractTypeCode:    req.ContractTypeCode,
		AppraisedValue:      req.AppraisedValue,
		LoanAmount:          req.LoanAmount,
		InterestRate:        req.InterestRate,
		DurationDays:        req.DurationDays,
		Notes:               req.Notes,
		Activate:            req.Activate,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContractHandler) List(c echo.Context) error {
	var req listContractsReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := contract.ListInput{CustomerID: req.CustomerID, Page: req.Page, Limit: req.Limit}
	for _, s := range strings.Split(req.Status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			in.Statuses = append(in.Statuses, s)
		}
	}
	// datetime validation already ran
	if req.From != "" {
		t, _ := time.Parse(dateLayout, req.From)
		in.From = &t
	}
	if req.To != "" {
		t, _ := time.Parse(dateLayout, req.To)
		in.To = &t
	}

	res, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ContractHandler) Overdue(c echo.Context) error {
	var req pageReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rep, err := h.uc.Overdue(c.Request().Context(), contract.OverdueInput{Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// Daily reports one business day; date defaults to today.
func (h *ContractHandler) Daily(c echo.Context) error {
	var req dailyReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rep, err := h.uc.Daily(c.Request().Context(), parseDate(req.Date))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ContractHandler) Get(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) History(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	rows, err := h.uc.History(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows})
}

func (h *ContractHandler) RedeemQuote(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	q, err := h.uc.RedeemQuote(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *ContractHandler) Activate(c echo.Context) error {
	return h.withReason(c, h.uc.Activate)
}

func (h *ContractHandler) Cancel(c echo.Context) error {
	return h.withReason(c, h.uc.Cancel)
}

func (h *ContractHandler) Liquidate(c echo.Context) error {
	return h.withReason(c, h.uc.Liquidate)
}

func (h *ContractHandler) Receive(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	dto, err := h.uc.ReceiveAsset(c.Request().Context(), middleware.StaffID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Extend(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req extendReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Extend(c.Request().Context(), middleware.StaffID(c), id, contract.ExtendInput{Days: req.Days, Reason: req.Reason})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Redeem(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req redeemReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Redeem(c.Request().Context(), middleware.StaffID(c), id, contract.RedeemInput{
		Amount:        req.Amount,
		Method:        payment.Method(req.Method),
		Notes:         req.Notes,
		ReceiptNumber: req.ReceiptNumber,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ContractHandler) Reconcile(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	res, err := h.uc.Reconcile(c.Request().Context(), middleware.StaffID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type reasonAction func(ctx context.Context, staffID, contractID, reason string) (*contract.ContractDTO, error)

func (h *ContractHandler) withReason(c echo.Context, action reasonAction) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req reasonReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := action(c.Request().Context(), middleware.StaffID(c), id, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// contractParam reads and checks :contract_id, writing the 400 itself.
func contractParam(c echo.Context) (string, bool, error) { return hexParam(c, "contract_id") }

func hexParam(c echo.Context, name string) (string, bool, error) {
	id := c.Param(name)
	if id == "" {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
	}
	if !reHex32.MatchString(id) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
	}
	return id, true, nil
}
