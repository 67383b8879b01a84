package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/inspection"
	ucInspection "pawnshop-backoffice/internal/usecase/inspection"
)

type InspectionHandler struct{ uc *ucInspection.Usecase }

func NewInspectionHandler(uc *ucInspection.Usecase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

type recordInspectionReq struct {
	Result      string     `json:"result"        validate:"required,oneof=PRESENT MISSING"`
	Latitude    *float64   `json:"gps_latitude"  validate:"required,gte=-90,lte=90"`
	Longitude   *float64   `json:"gps_longitude" validate:"required,gte=-180,lte=180"`
	AccuracyM   float64    `json:"gps_accuracy"  validate:"gte=0"`
	MissingNote string     `json:"missing_note"  validate:"required_if=Result MISSING,max=2000"`
	Photos      []string   `json:"photos"        validate:"required,min=1,dive,required,max=512"`
	InspectedAt *time.Time `json:"inspected_at"`
}

func (h *InspectionHandler) Record(c echo.Context) error {
	id, ok, err := contractParam(c)
	if !ok {
		return err
	}
	var req recordInspectionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Record(c.Request().Context(), middleware.StaffID(c), id, ucInspection.RecordInput{
		Result:      inspection.Result(req.Result),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AccuracyM:   req.AccuracyM,
		MissingNote: req.MissingNote,
		Photos:      req.Photos,
		InspectedAt: req.InspectedAt,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InspectionHandler) List(c echo.Context) error {
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
