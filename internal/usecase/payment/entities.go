package payment

import (
	"time"

	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/pkg/accounting"
)

type RecordInput struct {
	Type            payment.Type
	Method          payment.Method
	Amount          int64
	InterestAmount  int64
	PrincipalAmount int64
	PenaltyAmount   int64
	// nil records the payment at the current time
	PaymentDate   *time.Time
	Notes         string
	ReceiptNumber *string
}

// AllocateInput lets the ledger derive the interest/principal split.
type AllocateInput struct {
	// empty derives INTEREST / PARTIAL / PENALTY from the split
	Type          payment.Type
	Method        payment.Method
	Amount        int64
	PenaltyAmount int64
	PaymentDate   *time.Time
	Notes         string
	ReceiptNumber *string
}

type BalanceDTO struct {
	ContractID         string `json:"contract_id"`
	Status             string `json:"status"`
	OutstandingBalance int64  `json:"outstanding_balance"`
	TotalAmountPaid    int64  `json:"total_amount_paid"`
	TotalInterestPaid  int64  `json:"total_interest_paid"`
	Version            uint64 `json:"version"`
}

type PaymentResult struct {
	Payment    payment.Payment        `json:"payment"`
	Allocation *accounting.Allocation `json:"allocation,omitempty"`
	Contract   BalanceDTO             `json:"contract"`
}

func balanceOf(c *domain.Contract) BalanceDTO {
	return BalanceDTO{
		ContractID:         c.ContractID,
		Status:             string(c.Status),
		OutstandingBalance: c.OutstandingBalance,
		TotalAmountPaid:    c.TotalAmountPaid,
		TotalInterestPaid:  c.TotalInterestPaid,
		Version:            c.Version,
	}
}
