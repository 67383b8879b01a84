package inspection

import (
	"time"

	"pawnshop-backoffice/internal/domain/attachment"
	"pawnshop-backoffice/internal/domain/inspection"
)

type RecordInput struct {
	Result      inspection.Result
	Latitude    *float64
	Longitude   *float64
	AccuracyM   float64
	MissingNote string
	// blob paths of photos uploaded beforehand
	Photos []string
	// nil records the inspection at the current time
	InspectedAt *time.Time
}

type InspectionDTO struct {
	inspection.Log
	Photos []attachment.Image `json:"photos"`
}
