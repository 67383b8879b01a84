package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusActive      Status = "ACTIVE"
	StatusExtended    Status = "EXTENDED"
	StatusOverdue     Status = "OVERDUE"
	StatusRedeemed    Status = "REDEEMED"
	StatusLiquidating Status = "LIQUIDATING"
	StatusLiquidated  Status = "LIQUIDATED"
	StatusCancelled   Status = "CANCELLED"
)

// Table: contracts. Rows are never deleted; closed contracts stay for audit.
type Contract struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ContractID string `gorm:"column:contract_id;type:char(32);not null;uniqueIndex:ux_contracts_contract_id" json:"contract_id"`
	// Asset tracking code, see pkg/qrcode
	QRCode         string `gorm:"column:qr_code;size:40;not null;uniqueIndex:ux_contracts_qr_code" json:"qr_code"`
	SequenceNumber int    `gorm:"column:sequence_number;not null" json:"sequence_number"`

	CustomerID          string `gorm:"column:customer_id;type:char(32);not null;index:idx_contracts_customer" json:"customer_id"`
	VehicleCategoryCode string `gorm:"column:vehicle_category_code;size:6;not null" json:"vehicle_category_code"`
	ContractTypeCode    string `gorm:"column:contract_type_code;size:10;not null" json:"contract_type_code"`
	CreatedBy           string `gorm:"column:created_by;type:char(32);not null" json:"created_by"`

	Status Status `gorm:"column:status;size:16;not null;index:idx_contracts_status_due" json:"status"`

	AppraisedValue     int64           `gorm:"column:appraised_value;not null;default:0" json:"appraised_value"`
	LoanAmount         int64           `gorm:"column:loan_amount;not null;default:0" json:"loan_amount"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,3);not null;default:0" json:"interest_rate"`
	TotalAmountPaid    int64           `gorm:"column:total_amount_paid;not null;default:0" json:"total_amount_paid"`
	TotalInterestPaid  int64           `gorm:"column:total_interest_paid;not null;default:0" json:"total_interest_paid"`
	OutstandingBalance int64           `gorm:"column:outstanding_balance;not null;default:0" json:"outstanding_balance"`

	ContractDate   time.Time  `gorm:"column:contract_date;type:date;not null" json:"contract_date"`
	StartDate      time.Time  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	DueDate        *time.Time `gorm:"column:due_date;type:date;index:idx_contracts_status_due" json:"due_date,omitempty"`
	ActualEndDate  *time.Time `gorm:"column:actual_end_date;type:date" json:"actual_end_date,omitempty"`
	ExtensionCount int        `gorm:"column:extension_count;not null;default:0" json:"extension_count"`

	IsAssetReceived bool       `gorm:"column:is_asset_received;not null;default:false" json:"is_asset_received"`
	ReceivedAt      *time.Time `gorm:"column:received_at" json:"received_at,omitempty"`
	ReceivedBy      *string    `gorm:"column:received_by;type:char(32)" json:"received_by,omitempty"`

	Notes string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	// Optimistic concurrency counter, bumped by every Save.
	Version   uint64    `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

// EffectiveStatus is the status as of now, with OVERDUE derived from the due date.
func (c *Contract) EffectiveStatus(now time.Time) Status {
	return Effective(c.Status, c.DueDate, now)
}
