package inspection

import (
	"context"
	"fmt"
	"path"
	"strings"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/attachment"
	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/inspection"
	"pawnshop-backoffice/internal/domain/uow"
	"pawnshop-backoffice/internal/usecase/shared"
	"pawnshop-backoffice/pkg/id"
)

type Usecase struct {
	contracts   domain.Repository
	inspections inspection.Repository
	images      attachment.Repository
	uow         uow.UnitOfWork
	activity    *shared.Activity
	clock       shared.Clock
}

func NewUsecase(contracts domain.Repository, inspections inspection.Repository, images attachment.Repository, audits audit.Repository, tx uow.UnitOfWork, clock shared.Clock) *Usecase {
	return &Usecase{
		contracts:   contracts,
		inspections: inspections,
		images:      images,
		uow:         tx,
		activity:    shared.NewActivity(audits),
		clock:       clock,
	}
}

// Record appends a presence check and links its photos. The contract status
// is never touched.
func (u *Usecase) Record(ctx context.Context, staffID, contractID string, in RecordInput) (*InspectionDTO, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if err := validate(&in); err != nil {
		return nil, err
	}

	now := u.clock.Now()
	inspectedAt := now
	if in.InspectedAt != nil {
		inspectedAt = *in.InspectedAt
	}

	var out *InspectionDTO
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *domain.Contract) error {
		if _, err := domain.Transition(c.Status, domain.ActionInspect); err != nil {
			return err
		}
		l := &inspection.Log{
			InspectionID: id.NewID32(),
			ContractID:   c.ID,
			StaffID:      staffID,
			Result:       in.Result,
			Latitude:     *in.Latitude,
			Longitude:    *in.Longitude,
			AccuracyM:    in.AccuracyM,
			InspectedAt:  inspectedAt,
		}
		if in.Result == inspection.ResultMissing {
			note := in.MissingNote
			l.MissingNote = &note
		}
		if err := r.Inspections.Create(ctx, l); err != nil {
			return err
		}

		out = &InspectionDTO{Log: *l, Photos: make([]attachment.Image, 0, len(in.Photos))}
		for _, p := range in.Photos {
			img := &attachment.Image{
				ContractID:   c.ID,
				InspectionID: &l.ID,
				ImageType:    attachment.ImageInspection,
				Path:         p,
				FileName:     path.Base(p),
				UploadedBy:   staffID,
			}
			if err := r.Images.Create(ctx, img); err != nil {
				return err
			}
			out.Photos = append(out.Photos, *img)
		}
		return nil
	})
	if err != nil {
		return nil, shared.Fail("record inspection", err)
	}

	cid := out.ContractID
	u.activity.Log(ctx, staffID, &cid, audit.ActionInspectionDone,
		fmt.Sprintf("%s with %d photos", out.Result, len(out.Photos)))
	return out, nil
}

// List returns a contract's inspections, newest first.
func (u *Usecase) List(ctx context.Context, contractID string) ([]inspection.Log, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, shared.Fail("get contract", err)
	}
	rows, err := u.inspections.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, shared.Fail("list inspections", err)
	}
	return rows, nil
}

func validate(in *RecordInput) error {
	switch in.Result {
	case inspection.ResultPresent, inspection.ResultMissing:
	default:
		return apperr.Invalid("result", "must be PRESENT or MISSING")
	}
	if in.Latitude == nil || in.Longitude == nil {
		return apperr.Invalid("gps", "coordinates are required")
	}
	if *in.Latitude < -90 || *in.Latitude > 90 {
		return apperr.Invalid("gps_latitude", "must be between -90 and 90")
	}
	if *in.Longitude < -180 || *in.Longitude > 180 {
		return apperr.Invalid("gps_longitude", "must be between -180 and 180")
	}
	if in.AccuracyM < 0 {
		return apperr.Invalid("gps_accuracy", "must not be negative")
	}
	in.MissingNote = strings.TrimSpace(in.MissingNote)
	if in.Result == inspection.ResultMissing && in.MissingNote == "" {
		return apperr.Invalid("missing_note", "is required when the asset is missing")
	}

	photos := in.Photos[:0:0]
	for _, p := range in.Photos {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.Contains(p, "..") {
			return apperr.Invalid("photos", "contains an invalid path")
		}
		photos = append(photos, p)
	}
	if len(photos) == 0 {
		return apperr.Invalid("photos", "at least one photo is required")
	}
	in.Photos = photos
	return nil
}
