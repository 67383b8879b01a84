package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/customer"
	ucCustomer "pawnshop-backoffice/internal/usecase/customer"
)

type CustomerHandler struct{ uc *ucCustomer.Usecase }

func NewCustomerHandler(uc *ucCustomer.Usecase) *CustomerHandler { return &CustomerHandler{uc: uc} }

type createCustomerReq struct {
	FullName          string `json:"full_name"            validate:"required,max=255"`
	Phone             string `json:"phone"                validate:"max=20"`
	Email             string `json:"email"                validate:"omitempty,email,max=255"`
	Address           string `json:"address"              validate:"max=1000"`
	IDCardType        string `json:"id_card_type"         validate:"required,oneof=CMND CCCD PASSPORT OTHER"`
	IDCardNumber      string `json:"id_card_number"       validate:"required,max=32"`
	IDCardIssuedDate  string `json:"id_card_issued_date"  validate:"omitempty,datetime=2006-01-02"`
	IDCardIssuedPlace string `json:"id_card_issued_place" validate:"max=255"`
	DateOfBirth       string `json:"date_of_birth"        validate:"omitempty,datetime=2006-01-02"`
	Gender            string `json:"gender"               validate:"omitempty,oneof=MALE FEMALE OTHER"`
	IDCardFrontImage  string `json:"id_card_front_image"  validate:"max=512"`
	IDCardBackImage   string `json:"id_card_back_image"   validate:"max=512"`
	PortraitImage     string `json:"portrait_image"       validate:"max=512"`
	Notes             string `json:"notes"                validate:"max=2000"`
}

// absent fields are left alone
type updateCustomerReq struct {
	FullName          *string `json:"full_name"            validate:"omitempty,max=255"`
	Phone             *string `json:"phone"                validate:"omitempty,max=20"`
	Email             *string `json:"email"                validate:"omitempty,email,max=255"`
	Address           *string `json:"address"              validate:"omitempty,max=1000"`
	IDCardType        *string `json:"id_card_type"         validate:"omitempty,oneof=CMND CCCD PASSPORT OTHER"`
	IDCardNumber      *string `json:"id_card_number"       validate:"omitempty,max=32"`
	IDCardIssuedDate  *string `json:"id_card_issued_date"  validate:"omitempty,datetime=2006-01-02"`
	IDCardIssuedPlace *string `json:"id_card_issued_place" validate:"omitempty,max=255"`
	DateOfBirth       *string `json:"date_of_birth"        validate:"omitempty,datetime=2006-01-02"`
	Gender            *string `json:"gender"               validate:"omitempty,oneof=MALE FEMALE OTHER"`
	IDCardFrontImage  *string `json:"id_card_front_image"  validate:"omitempty,max=512"`
	IDCardBackImage   *string `json:"id_card_back_image"   validate:"omitempty,max=512"`
	PortraitImage     *string `json:"portrait_image"       validate:"omitempty,max=512"`
	Notes             *string `json:"notes"                validate:"omitempty,max=2000"`
}

type searchCustomersReq struct {
	Query string `query:"q"     validate:"max=100"`
	Limit int    `query:"limit" validate:"gte=0,lte=50"`
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Create(c.Request().Context(), middleware.StaffID(c), ucCustomer.CreateInput{
		FullName:          req.FullName,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		IDCardType:        customer.IDCardType(req.IDCardType),
		IDCardNumber:      req.IDCardNumber,
		IDCardIssuedDate:  parseDate(req.IDCardIssuedDate),
		IDCardIssuedPlace: req.IDCardIssuedPlace,
		DateOfBirth:       parseDate(req.DateOfBirth),
		Gender:            customer.Gender(req.Gender),
		IDCardFrontImage:  req.IDCardFrontImage,
		IDCardBackImage:   req.IDCardBackImage,
		PortraitImage:     req.PortraitImage,
		Notes:             req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CustomerHandler) Search(c echo.Context) error {
	var req searchCustomersReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rows, err := h.uc.Search(c.Request().Context(), ucCustomer.SearchInput{Query: req.Query, Limit: req.Limit})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": rows})
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok, err := hexParam(c, "customer_id")
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok, err := hexParam(c, "customer_id")
	if !ok {
		return err
	}
	var req updateCustomerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := ucCustomer.UpdateInput{
		FullName:          req.FullName,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		IDCardNumber:      req.IDCardNumber,
		IDCardIssuedPlace: req.IDCardIssuedPlace,
		IDCardFrontImage:  req.IDCardFrontImage,
		IDCardBackImage:   req.IDCardBackImage,
		PortraitImage:     req.PortraitImage,
		Notes:             req.Notes,
	}
	if req.IDCardType != nil {
		t := customer.IDCardType(*req.IDCardType)
		in.IDCardType = &t
	}
	if req.Gender != nil {
		g := customer.Gender(*req.Gender)
		in.Gender = &g
	}
	if req.IDCardIssuedDate != nil {
		in.IDCardIssuedDate = parseDate(*req.IDCardIssuedDate)
	}
	if req.DateOfBirth != nil {
		in.DateOfBirth = parseDate(*req.DateOfBirth)
	}

	out, err := h.uc.Update(c.Request().Context(), middleware.StaffID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok, err := hexParam(c, "customer_id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.StaffID(c), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseDate reads a YYYY-MM-DD the validator already accepted; "" is nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
