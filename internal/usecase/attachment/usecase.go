package attachment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/attachment"
	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/usecase/shared"
)

const defaultPrefix = "uploads"

var rePrefixJunk = regexp.MustCompile(`[^a-z0-9/_-]+`)

type Usecase struct {
	blobs     attachment.BlobStore
	images    attachment.Repository
	contracts domain.Repository
	activity  *shared.Activity
	clock     shared.Clock
}

func NewUsecase(blobs attachment.BlobStore, images attachment.Repository, contracts domain.Repository, audits audit.Repository, clock shared.Clock) *Usecase {
	return &Usecase{
		blobs:     blobs,
		images:    images,
		contracts: contracts,
		activity:  shared.NewActivity(audits),
		clock:     clock,
	}
}

// Upload stores the object under <prefix>/<unix-ms>_<uuid>.<ext>. When a
// contract is named an image row is written too; failing that write does
// not fail the upload.
func (u *Usecase) Upload(ctx context.Context, staffID string, in UploadInput) (*UploadResult, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if in.Body == nil {
		return nil, apperr.Invalid("file", "is required")
	}
	if in.Size > MaxUploadBytes {
		return nil, apperr.Invalid("file", fmt.Sprintf("must not exceed %d bytes", MaxUploadBytes))
	}

	// Read one byte past the limit so oversize bodies with a lying Size are caught.
	data, err := io.ReadAll(io.LimitReader(in.Body, MaxUploadBytes+1))
	if err != nil {
		return nil, apperr.Invalid("file", "could not be read")
	}
	if len(data) == 0 {
		return nil, apperr.Invalid("file", "is empty")
	}
	if len(data) > MaxUploadBytes {
		return nil, apperr.Invalid("file", fmt.Sprintf("must not exceed %d bytes", MaxUploadBytes))
	}

	contentType := normalizeType(in.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeType(http.DetectContentType(data))
	}
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, apperr.Invalid("file", "type must be jpeg, png, webp or pdf")
	}

	if in.ImageType == "" {
		in.ImageType = attachment.ImageOther
	}
	if !attachment.ValidImageType(in.ImageType) {
		return nil, apperr.Invalid("image_type", "is not supported")
	}

	var c *domain.Contract
	if in.ContractID != "" {
		if c, err = u.contracts.GetByContractID(ctx, in.ContractID); err != nil {
			return nil, shared.Fail("get contract", err)
		}
	}

	key := fmt.Sprintf("%s/%d_%s.%s", SanitizePrefix(in.Prefix), u.clock.Now().UnixMilli(), uuid.NewString(), ext)
	obj, err := u.blobs.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return nil, shared.Fail("store object", err)
	}

	out := &UploadResult{Object: *obj, FileName: in.FileName, ContentType: contentType}
	if c == nil {
		return out, nil
	}

	// Inspection photos get their rows from the inspection itself.
	if in.ImageType != attachment.ImageInspection {
		img := &attachment.Image{
			ContractID: c.ID,
			ImageType:  in.ImageType,
			Path:       obj.Path,
			FileName:   in.FileName,
			SizeBytes:  obj.Size,
			MimeType:   contentType,
			UploadedBy: staffID,
		}
		if err := u.images.Create(ctx, img); err != nil {
			zap.L().Warn("image row write failed",
				zap.String("contract_id", c.ContractID),
				zap.String("path", obj.Path),
				zap.Error(err),
			)
		} else {
			out.Image = img
		}
	}

	cid := c.ID
	u.activity.Log(ctx, staffID, &cid, audit.ActionPhotoUploaded,
		fmt.Sprintf("%s %s", in.ImageType, obj.Path))
	return out, nil
}

// Delete removes the object and any image row pointing at it.
func (u *Usecase) Delete(ctx context.Context, staffID, path string) error {
	if err := shared.RequireStaff(staffID); err != nil {
		return err
	}
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if path == "" {
		return apperr.Invalid("path", "is required")
	}
	if strings.Contains(path, "..") {
		return apperr.Invalid("path", "is invalid")
	}

	if err := u.blobs.Delete(ctx, path); err != nil {
		return shared.Fail("delete object", err)
	}
	if err := u.images.DeleteByPath(ctx, path); err != nil {
		return shared.Fail("delete image row", err)
	}
	return nil
}

// SanitizePrefix lowercases the folder and strips anything outside
// [a-z0-9/_-], falling back to "uploads".
func SanitizePrefix(p string) string {
	p = rePrefixJunk.ReplaceAllString(strings.ToLower(strings.TrimSpace(p)), "")
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return defaultPrefix
	}
	return strings.Join(kept, "/")
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	return ct
}
