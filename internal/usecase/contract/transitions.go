package contract

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

// effect mutates the locked contract before its new status is saved.
type effect func(r uow.Repos, c *domain.Contract, now time.Time) error

var activityFor = map[domain.Action]string{
	domain.ActionActivate:     audit.ActionContractActivated,
	domain.ActionCancel:       audit.ActionContractCancelled,
	domain.ActionReceiveAsset: audit.ActionAssetReceived,
	domain.ActionExtend:       audit.ActionContractExtended,
	domain.ActionRedeem:       audit.ActionContractRedeemed,
	domain.ActionLiquidate:    audit.ActionContractLiquidated,
	domain.ActionMarkOverdue:  audit.ActionStatusChanged,
}

// apply runs one state-machine action under the contract lock. The guard,
// the effect, the save and the status history row commit together.
func (u *Usecase) apply(ctx context.Context, staffID, contractID string, a domain.Action, reason string, fx effect) (*domain.Contract, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	now := u.clock.Now()

	var out *domain.Contract
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *domain.Contract) error {
		from := c.Status
		to, err := domain.Transition(from, a)
		if err != nil {
			return err
		}
		if fx != nil {
			if err := fx(r, c, now); err != nil {
				return err
			}
		}
		c.Status = to
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		if to != from {
			if err := r.Audit.AppendStatus(ctx, statusEntry(c, from, staffID, reason)); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, shared.Fail(string(a)+" contract", err)
	}

	desc := reason
	if desc == "" {
		desc = fmt.Sprintf("%s %s", a, out.QRCode)
	}
	u.activity.Log(ctx, staffID, &out.ID, activityFor[a], desc)
	return out, nil
}

func (u *Usecase) Activate(ctx context.Context, staffID, contractID, reason string) (*ContractDTO, error) {
	c, err := u.apply(ctx, staffID, contractID, domain.ActionActivate, reason, nil)
	if err != nil {
		return nil, err
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

func (u *Usecase) Cancel(ctx context.Context, staffID, contractID, reason string) (*ContractDTO, error) {
	c, err := u.apply(ctx, staffID, contractID, domain.ActionCancel, reason, nil)
	if err != nil {
		return nil, err
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

// ReceiveAsset records that the collateral is now in the shop's custody.
func (u *Usecase) ReceiveAsset(ctx context.Context, staffID, contractID string) (*ContractDTO, error) {
	c, err := u.apply(ctx, staffID, contractID, domain.ActionReceiveAsset, "", func(_ uow.Repos, c *domain.Contract, now time.Time) error {
		at := now.UTC()
		by := staffID
		c.IsAssetReceived = true
		c.ReceivedAt = &at
		c.ReceivedBy = &by
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

// Extend pushes the due date forward from the current due date, or from
// today when the contract has none.
func (u *Usecase) Extend(ctx context.Context, staffID, contractID string, in ExtendInput) (*ContractDTO, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if in.Days < MinExtensionDays || in.Days > MaxExtensionDays {
		return nil, apperr.Invalid("days", fmt.Sprintf("must be between %d and %d", MinExtensionDays, MaxExtensionDays))
	}
	reason := in.Reason
	if reason == "" {
		reason = fmt.Sprintf("extended by %d days", in.Days)
	}
	c, err := u.apply(ctx, staffID, contractID, domain.ActionExtend, reason, func(_ uow.Repos, c *domain.Contract, now time.Time) error {
		base := accounting.CivilDate(now)
		if c.DueDate != nil {
			base = *c.DueDate
		}
		due := accounting.DueDate(base, in.Days)
		c.DueDate = &due
		c.ExtensionCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

// Redeem closes the contract against a final FULL_REDEEM payment.
func (u *Usecase) Redeem(ctx context.Context, staffID, contractID string, in RedeemInput) (*RedeemResult, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	if in.Amount <= 0 || in.Amount > accounting.MaxAmount {
		return nil, apperr.Invalid("amount", fmt.Sprintf("must be between 1 and %d", accounting.MaxAmount))
	}
	if in.Method == "" {
		in.Method = payment.MethodCash
	}
	if !payment.ValidMethod(in.Method) {
		return nil, apperr.Invalid("payment_method", "is not supported")
	}

	var p *payment.Payment
	c, err := u.apply(ctx, staffID, contractID, domain.ActionRedeem, "redeemed", func(r uow.Repos, c *domain.Contract, now time.Time) error {
		if in.Amount < c.OutstandingBalance {
			zap.L().Warn("redeem amount below outstanding balance",
				zap.String("contract_id", c.ContractID),
				zap.Int64("amount", in.Amount),
				zap.Int64("outstanding_balance", c.OutstandingBalance),
			)
		}
		p = &payment.Payment{
			PaymentID:       id.NewID32(),
			ContractID:      c.ID,
			Type:            payment.TypeFullRedeem,
			Method:          in.Method,
			Amount:          in.Amount,
			PrincipalAmount: in.Amount,
			PaymentDate:     now,
			ReceivedBy:      staffID,
			Notes:           in.Notes,
			ReceiptNumber:   in.ReceiptNumber,
			CreatedAt:       now,
		}
		paid, ok := accounting.AddAmounts(c.TotalAmountPaid, in.Amount)
		if !ok {
			return apperr.Invalid("amount", "would overflow the contract totals")
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		end := accounting.CivilDate(now)
		c.TotalAmountPaid = paid
		c.OutstandingBalance = 0
		c.ActualEndDate = &end
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RedeemResult{Contract: toDTO(c, u.clock.Now(), u.nearingDays), Payment: *p}, nil
}

func (u *Usecase) Liquidate(ctx context.Context, staffID, contractID, reason string) (*ContractDTO, error) {
	c, err := u.apply(ctx, staffID, contractID, domain.ActionLiquidate, reason, func(_ uow.Repos, c *domain.Contract, now time.Time) error {
		end := accounting.CivilDate(now)
		c.ActualEndDate = &end
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

// Reconcile stores OVERDUE for a contract whose derived status already is
// OVERDUE. Anything else is left alone and reported as unchanged.
func (u *Usecase) Reconcile(ctx context.Context, staffID, contractID string) (*ReconcileResult, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	now := u.clock.Now()

	var (
		out     *domain.Contract
		changed bool
		reason  string
	)
	err := u.uow.WithinContractTx(ctx, contractID, func(r uow.Repos, c *domain.Contract) error {
		out = c
		if c.Status == domain.StatusOverdue || c.EffectiveStatus(now) != domain.StatusOverdue {
			return nil
		}
		from := c.Status
		to, err := domain.Transition(from, domain.ActionMarkOverdue)
		if err != nil {
			return err
		}
		c.Status = to
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		reason = fmt.Sprintf("due date passed %d days ago", accounting.DaysOverdue(c.DueDate, now))
		if err := r.Audit.AppendStatus(ctx, statusEntry(c, from, staffID, reason)); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, shared.Fail("reconcile contract", err)
	}
	if changed {
		u.activity.Log(ctx, staffID, &out.ID, audit.ActionStatusChanged, reason)
	}
	return &ReconcileResult{Contract: toDTO(out, now, u.nearingDays), Changed: changed}, nil
}
