package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/inspection"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/pkg/accounting"
	"pawnshop-backoffice/pkg/qrcode"
)

const (
	MinExtensionDays = 1
	MaxExtensionDays = 365
	MaxDurationDays  = 3650

	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 10_000
)

type CreateInput struct {
	CustomerID          string
	VehicleCategoryCode string
	ContractTypeCode    string
	AppraisedValue      int64
	LoanAmount          int64
	// nil takes the contract type's default
	InterestRate *decimal.Decimal
	// 0 takes the contract type's default
	DurationDays int
	Notes        string
	// open straight into ACTIVE instead of DRAFT
	Activate bool
}

type ExtendInput struct {
	Days   int
	Reason string
}

type RedeemInput struct {
	Amount        int64
	Method        payment.Method
	Notes         string
	ReceiptNumber *string
}

type ListInput struct {
	Statuses   []string
	CustomerID string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type ContractDTO struct {
	ContractID          string `json:"contract_id"`
	QRCode              string `json:"qr_code"`
	QRDisplay           string `json:"qr_display"`
	SequenceNumber      int    `json:"sequence_number"`
	CustomerID          string `json:"customer_id"`
	VehicleCategoryCode string `json:"vehicle_category_code"`
	ContractTypeCode    string `json:"contract_type_code"`
	CreatedBy           string `json:"created_by"`

	// Status is derived: OVERDUE once the due date has passed.
	Status       string   `json:"status"`
	StoredStatus string   `json:"stored_status"`
	Allowed      []string `json:"allowed_actions"`

	AppraisedValue     int64           `json:"appraised_value"`
	LoanAmount         int64           `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInterest    int64           `json:"monthly_interest"`
	TotalAmountPaid    int64           `json:"total_amount_paid"`
	TotalInterestPaid  int64           `json:"total_interest_paid"`
	OutstandingBalance int64           `json:"outstanding_balance"`

	ContractDate   time.Time  `json:"contract_date"`
	StartDate      time.Time  `json:"start_date"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ActualEndDate  *time.Time `json:"actual_end_date,omitempty"`
	ExtensionCount int        `json:"extension_count"`
	DaysRemaining  int        `json:"days_remaining"`
	DaysOverdue    int        `json:"days_overdue"`
	IsNearingDue   bool       `json:"is_nearing_due"`

	IsAssetReceived bool       `json:"is_asset_received"`
	ReceivedAt      *time.Time `json:"received_at,omitempty"`
	ReceivedBy      *string    `json:"received_by,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	Version   uint64    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResult struct {
	Items []ContractDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type RedeemResult struct {
	Contract *ContractDTO    `json:"contract"`
	Payment  payment.Payment `json:"payment"`
}

type ReconcileResult struct {
	Contract *ContractDTO `json:"contract"`
	Changed  bool         `json:"changed"`
}

type RedeemQuote struct {
	ContractID         string          `json:"contract_id"`
	Principal          int64           `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	DaysElapsed        int             `json:"days_elapsed"`
	Interest           int64           `json:"interest"`
	DaysOverdue        int             `json:"days_overdue"`
	Penalty            int64           `json:"penalty"`
	TotalPaid          int64           `json:"total_paid"`
	OutstandingBalance int64           `json:"outstanding_balance"`
	Amount             int64           `json:"redeem_amount"`
	AsOf               time.Time       `json:"as_of"`
}

type QRValidation struct {
	Valid      bool         `json:"valid"`
	Code       *qrcode.Code `json:"code,omitempty"`
	Display    string       `json:"display,omitempty"`
	Found      bool         `json:"found"`
	ContractID string       `json:"contract_id,omitempty"`
	Status     string       `json:"status,omitempty"`
	IsActive   bool         `json:"is_active"`
}

type OverdueInput struct {
	Limit  int
	Offset int
}

type OverdueItem struct {
	ContractID         string    `json:"contract_id"`
	QRCode             string    `json:"qr_code"`
	CustomerID         string    `json:"customer_id"`
	Status             string    `json:"status"`
	DueDate            time.Time `json:"due_date"`
	DaysOverdue        int       `json:"days_overdue"`
	LoanAmount         int64     `json:"loan_amount"`
	OutstandingBalance int64     `json:"outstanding_balance"`
	Penalty            int64     `json:"penalty"`
}

type OverdueBuckets struct {
	Days1To7   int `json:"days_1_7"`
	Days8To30  int `json:"days_8_30"`
	Days31To60 int `json:"days_31_60"`
	Over60     int `json:"over_60"`
}

type OverdueSummary struct {
	TotalCount         int   `json:"total_count"`
	TotalOverdueAmount int64 `json:"total_overdue_amount"`
	TotalLoanAmount    int64 `json:"total_loan_amount"`
}

type OverdueReport struct {
	AsOf    time.Time      `json:"as_of"`
	Summary OverdueSummary `json:"summary"`
	Buckets OverdueBuckets `json:"buckets"`
	Items   []OverdueItem  `json:"items"`
}

type DailyContract struct {
	ContractID   string    `json:"contract_id"`
	QRCode       string    `json:"qr_code"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Status       string    `json:"status"`
	LoanAmount   int64     `json:"loan_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

type DailyPayment struct {
	PaymentID    string         `json:"payment_id"`
	ContractID   string         `json:"contract_id"`
	QRCode       string         `json:"qr_code"`
	CustomerName string         `json:"customer_name,omitempty"`
	Type         payment.Type   `json:"payment_type"`
	Method       payment.Method `json:"payment_method"`
	Amount       int64          `json:"amount"`
	CreatedAt    time.Time      `json:"created_at"`
}

type DailyInspection struct {
	InspectionID string            `json:"inspection_id"`
	ContractID   string            `json:"contract_id"`
	QRCode       string            `json:"qr_code"`
	StaffID      string            `json:"staff_id"`
	Result       inspection.Result `json:"result"`
	Latitude     float64           `json:"gps_latitude"`
	Longitude    float64           `json:"gps_longitude"`
	InspectedAt  time.Time         `json:"inspected_at"`
}

type DailySummary struct {
	Contracts struct {
		Count           int   `json:"count"`
		TotalLoanAmount int64 `json:"total_loan_amount"`
	} `json:"contracts"`
	Payments struct {
		Count       int   `json:"count"`
		TotalAmount int64 `json:"total_amount"`
	} `json:"payments"`
	Inspections struct {
		Count   int `json:"count"`
		Present int `json:"present"`
		Missing int `json:"missing"`
	} `json:"inspections"`
}

type DailyReport struct {
	// YYYY-MM-DD in the business time zone
	Date        string            `json:"date"`
	Summary     DailySummary      `json:"summary"`
	Contracts   []DailyContract   `json:"contracts"`
	Payments    []DailyPayment    `json:"payments"`
	Inspections []DailyInspection `json:"inspections"`
}

func (b *OverdueBuckets) add(days int) {
	switch {
	case days <= 0:
	case days <= 7:
		b.Days1To7++
	case days <= 30:
		b.Days8To30++
	case days <= 60:
		b.Days31To60++
	default:
		b.Over60++
	}
}

func toDTO(c *domain.Contract, now time.Time, warningDays int) *ContractDTO {
	dto := &ContractDTO{
		ContractID:          c.ContractID,
		QRCode:              c.QRCode,
		QRDisplay:           c.QRCode,
		SequenceNumber:      c.SequenceNumber,
		CustomerID:          c.CustomerID,
		VehicleCategoryCode: c.VehicleCategoryCode,
		ContractTypeCode:    c.ContractTypeCode,
		CreatedBy:           c.CreatedBy,
		Status:              string(c.EffectiveStatus(now)),
		StoredStatus:        string(c.Status),
		AppraisedValue:      c.AppraisedValue,
		LoanAmount:          c.LoanAmount,
		InterestRate:        c.InterestRate,
		MonthlyInterest:     accounting.MonthlyInterest(c.LoanAmount, c.InterestRate),
		TotalAmountPaid:     c.TotalAmountPaid,
		TotalInterestPaid:   c.TotalInterestPaid,
		OutstandingBalance:  c.OutstandingBalance,
		ContractDate:        c.ContractDate,
		StartDate:           c.StartDate,
		DueDate:             c.DueDate,
		ActualEndDate:       c.ActualEndDate,
		ExtensionCount:      c.ExtensionCount,
		IsAssetReceived:     c.IsAssetReceived,
		ReceivedAt:          c.ReceivedAt,
		ReceivedBy:          c.ReceivedBy,
		Notes:               c.Notes,
		Version:             c.Version,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if code, ok := qrcode.Parse(c.QRCode); ok {
		dto.QRDisplay = code.Display()
	}
	if !domain.IsTerminal(c.Status) {
		dto.DaysRemaining = accounting.DaysRemaining(c.DueDate, now)
		dto.DaysOverdue = accounting.DaysOverdue(c.DueDate, now)
		dto.IsNearingDue = accounting.IsNearingDue(c.DueDate, now, warningDays)
	}
	for _, a := range domain.Allowed(c.Status) {
		dto.Allowed = append(dto.Allowed, string(a))
	}
	return dto
}

func statusEntry(c *domain.Contract, from domain.Status, staffID, reason string) *audit.StatusHistory {
	h := &audit.StatusHistory{
		ContractID: c.ID,
		NewStatus:  string(c.Status),
		ChangedBy:  staffID,
		Reason:     reason,
	}
	if from != "" {
		old := string(from)
		h.OldStatus = &old
	}
	return h
}
