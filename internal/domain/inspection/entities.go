package inspection

import "time"

type Result string

const (
	ResultPresent Result = "PRESENT"
	ResultMissing Result = "MISSING"
)

// Table: inspection_logs. Append-only; an inspection never touches contract status.
type Log struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	InspectionID string `gorm:"column:inspection_id;type:char(32);not null;uniqueIndex:ux_inspection_logs_inspection_id" json:"inspection_id"`
	ContractID   uint64 `gorm:"column:contract_id;not null;index:idx_inspection_logs_contract" json:"-"`
	StaffID      string `gorm:"column:staff_id;type:char(32);not null" json:"staff_id"`
	Result       Result `gorm:"column:result;size:8;not null" json:"result"`

	Latitude    float64 `gorm:"column:gps_latitude;not null" json:"gps_latitude"`
	Longitude   float64 `gorm:"column:gps_longitude;not null" json:"gps_longitude"`
	AccuracyM   float64 `gorm:"column:gps_accuracy;not null;default:0" json:"gps_accuracy"`
	MissingNote *string `gorm:"column:missing_note;type:text" json:"missing_note,omitempty"`

	InspectedAt time.Time `gorm:"column:inspected_at;not null" json:"inspected_at"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Log) TableName() string { return "inspection_logs" }
