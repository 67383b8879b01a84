package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/attachment"
	ucAttachment "pawnshop-backoffice/internal/usecase/attachment"
)

type UploadHandler struct{ uc *ucAttachment.Usecase }

func NewUploadHandler(uc *ucAttachment.Usecase) *UploadHandler { return &UploadHandler{uc: uc} }

type uploadReq struct {
	Prefix     string `form:"prefix"      validate:"max=128"`
	ContractID string `form:"contract_id" validate:"omitempty,hex32"`
	ImageType  string `form:"image_type"  validate:"omitempty,oneof=RECEIVING INSPECTION RETURNING DAMAGE DOCUMENT OTHER"`
}

// Upload takes a multipart form with a "file" part.
func (h *UploadHandler) Upload(c echo.Context) error {
	// multipart overhead on top of the file itself
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, ucAttachment.MaxUploadBytes+1<<20)

	var req uploadReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer f.Close()

	res, err := h.uc.Upload(c.Request().Context(), middleware.StaffID(c), ucAttachment.UploadInput{
		Prefix:      req.Prefix,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
		ContractID:  req.ContractID,
		ImageType:   attachment.ImageType(req.ImageType),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *UploadHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.StaffID(c), c.QueryParam("path")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
