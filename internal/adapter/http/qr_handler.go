package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/usecase/contract"
)

type QRHandler struct{ uc *contract.Usecase }

func NewQRHandler(uc *contract.Usecase) *QRHandler { return &QRHandler{uc: uc} }

type validateQRReq struct {
	QRCode string `json:"qr_code" validate:"required,max=64"`
}

// Validate never fails on a malformed code; it reports valid=false instead.
func (h *QRHandler) Validate(c echo.Context) error {
	var req validateQRReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.ValidateQR(c.Request().Context(), req.QRCode)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *QRHandler) Lookup(c echo.Context) error {
	dto, err := h.uc.GetByQRCode(c.Request().Context(), c.Param("qr_code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
