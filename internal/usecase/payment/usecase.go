package payment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/internal/domain/uow"
	"pawnshop-backoffice/internal/usecase/shared"
	"pawnshop-backoffice/pkg/accounting"
	"pawnshop-backoffice/pkg/id"
)

type Usecase struct {
	contracts domain.Repository
	payments  payment.Repository
	uow       uow.UnitOfWork
	activity  *shared.Activity
	clock     shared.Clock
}

func NewUsecase(contracts domain.Repository, payments payment.Repository, audits audit.Repository, tx uow.UnitOfWork, clock shared.Clock) *Usecase {
	return &Usecase{
		contracts: contracts,
		payments:  payments,
		uow:       tx,
		activity:  shared.NewActivity(audits),
		clock:     clock,
	}
}

// Record appends a payment with a caller-supplied split. The components
// must add up to the amount; fee-like payments may leave all of them zero.
func (u *Usecase) Record(ctx context.Context, staffID, contractID string, in RecordInput) (*PaymentResult, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if err := validateRecord(&in); err != nil {
		return nil, err
	}

	return u.record(ctx, staffID, contractID, func(c *domain.Contract, now time.Time) (*payment.Payment, *accounting.Allocation, error) {
		return newPayment(c, staffID, now, in), nil, nil
	})
}

// RecordAllocated appends a payment whose split is derived: penalty first,
// then accrued interest, then principal. Paying more than is owed is
// rejected rather than silently absorbed.
func (u *Usecase) RecordAllocated(ctx context.Context, staffID, contractID string, in AllocateInput) (*PaymentResult, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if err := checkAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.PenaltyAmount < 0 || in.PenaltyAmount > in.Amount {
		return nil, apperr.Invalid("penalty_amount", "must be between 0 and amount")
	}
	if in.Method == "" {
		in.Method = payment.MethodCash
	}
	if !payment.ValidMethod(in.Method) {
		return nil, apperr.Invalid("payment_method", "is not supported")
	}
	if in.Type != "" && !payment.ValidType(in.Type) {
		return nil, apperr.Invalid("payment_type", "is not supported")
	}

	return u.record(ctx, staffID, contractID, func(c *domain.Contract, now time.Time) (*payment.Payment, *accounting.Allocation, error) {
		owed := OutstandingInterest(c, now)
		alloc := accounting.AllocatePayment(in.Amount-in.PenaltyAmount, owed, c.OutstandingBalance)
		if alloc.Excess > 0 {
			return nil, nil, apperr.Invalid("amount", fmt.Sprintf("exceeds the amount owed by %d", alloc.Excess))
		}

		typ := in.Type
		if typ == "" {
			switch {
			case alloc.Principal > 0:
				typ = payment.TypePartial
			case alloc.Interest > 0:
				typ = payment.TypeInterest
			default:
				typ = payment.TypePenalty
			}
		}
		p := newPayment(c, staffID, now, RecordInput{
			Type:            typ,
			Method:          in.Method,
			Amount:          in.Amount,
			InterestAmount:  alloc.Interest,
			PrincipalAmount: alloc.Principal,
			PenaltyAmount:   in.PenaltyAmount,
			PaymentDate:     in.PaymentDate,
			Notes:           in.Notes,
			ReceiptNumber:   in.ReceiptNumber,
		})
		return p, &alloc, nil
	})
}

// OutstandingInterest is the interest accrued since the start date that has
// not been paid yet.
func OutstandingInterest(c *domain.Contract, now time.Time) int64 {
	accrued := accounting.Interest(c.LoanAmount, c.InterestRate, accounting.DaysElapsed(c.StartDate, now))
	return max(accrued-c.TotalInterestPaid, 0)
}

type buildFunc func(c *domain.Contract, now time.Time) (*payment.Payment, *accounting.Allocation, error)

func (u *Usecase) record(ctx context.Context, staffID, contractID string, build buildFunc) (*PaymentResult, error) {
	now := u.clock.Now()
	var res *PaymentResult

	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *domain.Contract) error {
		if _, err := domain.Transition(c.Status, domain.ActionRecordPayment); err != nil {
			return err
		}
		p, alloc, err := build(c, now)
		if err != nil {
			return err
		}

		if p.PrincipalAmount > c.OutstandingBalance {
			zap.L().Warn("payment principal exceeds outstanding balance",
				zap.String("contract_id", c.ContractID),
				zap.Int64("principal_amount", p.PrincipalAmount),
				zap.Int64("outstanding_balance", c.OutstandingBalance),
			)
		}
		paid, okPaid := accounting.AddAmounts(c.TotalAmountPaid, p.Amount)
		interest, okInterest := accounting.AddAmounts(c.TotalInterestPaid, p.InterestAmount)
		if !okPaid || !okInterest {
			return apperr.Invalid("amount", "would overflow the contract totals")
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		c.OutstandingBalance = max(c.OutstandingBalance-p.PrincipalAmount, 0)
		c.TotalAmountPaid = paid
		c.TotalInterestPaid = interest
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}

		res = &PaymentResult{Payment: *p, Allocation: alloc, Contract: balanceOf(c)}
		return nil
	})
	if err != nil {
		return nil, shared.Fail("record payment", err)
	}

	cid := res.Payment.ContractID
	u.activity.Log(ctx, staffID, &cid, audit.ActionPaymentReceived,
		fmt.Sprintf("%s %d via %s", res.Payment.Type, res.Payment.Amount, res.Payment.Method))
	return res, nil
}

// Delete reverses a payment's effect on the contract totals and removes it.
// Closed contracts refuse, and the contract status is never rolled back.
func (u *Usecase) Delete(ctx context.Context, staffID, contractID, paymentID string) (*BalanceDTO, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}

	var (
		out *BalanceDTO
		p   *payment.Payment
	)
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *domain.Contract) error {
		if _, err := domain.Transition(c.Status, domain.ActionDeletePayment); err != nil {
			return err
		}
		var err error
		p, err = r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.ContractID != c.ID {
			return apperr.NotFound("payment")
		}

		c.OutstandingBalance += p.PrincipalAmount
		c.TotalAmountPaid = max(c.TotalAmountPaid-p.Amount, 0)
		c.TotalInterestPaid = max(c.TotalInterestPaid-p.InterestAmount, 0)
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		if err := r.Payments.Delete(ctx, p, staffID); err != nil {
			return err
		}
		b := balanceOf(c)
		out = &b
		return nil
	})
	if err != nil {
		return nil, shared.Fail("delete payment", err)
	}

	u.activity.Log(ctx, staffID, &p.ContractID, audit.ActionPaymentDeleted,
		fmt.Sprintf("reversed %s %d (%s)", p.Type, p.Amount, p.PaymentID))
	return out, nil
}

// List returns a contract's payments, newest first.
func (u *Usecase) List(ctx context.Context, contractID string) ([]payment.Payment, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, shared.Fail("get contract", err)
	}
	rows, err := u.payments.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, shared.Fail("list payments", err)
	}
	return rows, nil
}

func validateRecord(in *RecordInput) error {
	if !payment.ValidType(in.Type) {
		return apperr.Invalid("payment_type", "is not supported")
	}
	if in.Method == "" {
		in.Method = payment.MethodCash
	}
	if !payment.ValidMethod(in.Method) {
		return apperr.Invalid("payment_method", "is not supported")
	}
	if err := checkAmount(in.Amount); err != nil {
		return err
	}
	for _, part := range []struct {
		field string
		v     int64
	}{
		{"interest_amount", in.InterestAmount},
		{"principal_amount", in.PrincipalAmount},
		{"penalty_amount", in.PenaltyAmount},
	} {
		if part.v < 0 || part.v > in.Amount {
			return apperr.Invalid(part.field, "must be between 0 and amount")
		}
	}

	sum, _ := accounting.AddAmounts(in.InterestAmount, in.PrincipalAmount, in.PenaltyAmount)
	feeLike := in.Type == payment.TypeExtensionFee || in.Type == payment.TypeOther
	if sum != in.Amount && !(feeLike && sum == 0) {
		return apperr.Invalid("amount",
			fmt.Sprintf("must equal interest + principal + penalty (%d), got %d", sum, in.Amount))
	}
	return nil
}

func checkAmount(amount int64) error {
	if amount <= 0 {
		return apperr.Invalid("amount", "must be positive")
	}
	if amount > accounting.MaxAmount {
		return apperr.Invalid("amount", fmt.Sprintf("must not exceed %d", accounting.MaxAmount))
	}
	return nil
}

func newPayment(c *domain.Contract, staffID string, now time.Time, in RecordInput) *payment.Payment {
	date := now
	if in.PaymentDate != nil {
		date = *in.PaymentDate
	}
	return &payment.Payment{
		PaymentID:       id.NewID32(),
		ContractID:      c.ID,
		Type:            in.Type,
		Method:          in.Method,
		Amount:          in.Amount,
		InterestAmount:  in.InterestAmount,
		PrincipalAmount: in.PrincipalAmount,
		PenaltyAmount:   in.PenaltyAmount,
		PaymentDate:     date,
		ReceivedBy:      staffID,
		Notes:           in.Notes,
		ReceiptNumber:   in.ReceiptNumber,
		CreatedAt:       now,
	}
}
