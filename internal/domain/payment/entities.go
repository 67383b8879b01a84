package payment

import (
	"time"

	"gorm.io/gorm"
)

type Type string

const (
	TypeInterest     Type = "INTEREST"
	TypePartial      Type = "PARTIAL"
	TypeFullRedeem   Type = "FULL_REDEEM"
	TypeExtensionFee Type = "EXTENSION_FEE"
	TypePenalty      Type = "PENALTY"
	TypeOther        Type = "OTHER"
)

type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodOther        Method = "OTHER"
)

func ValidType(t Type) bool {
	switch t {
	case TypeInterest, TypePartial, TypeFullRedeem, TypeExtensionFee, TypePenalty, TypeOther:
		return true
	}
	return false
}

func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}

// Table: payments. A payment is never edited; a mistaken one is removed by a
// compensating delete that also reverses its effect on the contract.
type Payment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// FK to contracts.id (numeric)
	ContractID uint64 `gorm:"column:contract_id;not null;index:idx_payments_contract" json:"-"`

	Type   Type   `gorm:"column:payment_type;size:16;not null" json:"payment_type"`
	Method Method `gorm:"column:payment_method;size:16;not null" json:"payment_method"`

	Amount          int64 `gorm:"column:amount;not null" json:"amount"`
	InterestAmount  int64 `gorm:"column:interest_amount;not null;default:0" json:"interest_amount"`
	PrincipalAmount int64 `gorm:"column:principal_amount;not null;default:0" json:"principal_amount"`
	PenaltyAmount   int64 `gorm:"column:penalty_amount;not null;default:0" json:"penalty_amount"`

	PaymentDate   time.Time `gorm:"column:payment_date;not null" json:"payment_date"`
	ReceivedBy    string    `gorm:"column:received_by;type:char(32);not null" json:"received_by"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ReceiptNumber *string   `gorm:"column:receipt_number;size:64" json:"receipt_number,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy *string        `gorm:"column:deleted_by;type:char(32)" json:"-"`
}

func (Payment) TableName() string { return "payments" }

// ComponentSum is interest + principal + penalty.
func (p *Payment) ComponentSum() int64 {
	return p.InterestAmount + p.PrincipalAmount + p.PenaltyAmount
}
