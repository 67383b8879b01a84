package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pawnshop-backoffice/internal/catalog"
	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/customer"
	"pawnshop-backoffice/internal/domain/inspection"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/internal/domain/uow"
	"pawnshop-backoffice/internal/usecase/shared"
	"pawnshop-backoffice/pkg/accounting"
	"pawnshop-backoffice/pkg/id"
	"pawnshop-backoffice/pkg/qrcode"
)

type Options struct {
	Clock            shared.Clock
	PenaltyDailyRate decimal.Decimal
	NearingDueDays   int
}

// Stores are the repositories read outside a transaction.
type Stores struct {
	Contracts   domain.Repository
	Customers   customer.Repository
	Payments    payment.Repository
	Inspections inspection.Repository
	Audits      audit.Repository
}

type Usecase struct {
	contracts   domain.Repository
	customers   customer.Repository
	payments    payment.Repository
	inspections inspection.Repository
	audits      audit.Repository
	uow         uow.UnitOfWork
	seq         domain.Sequencer
	catalog     *catalog.Catalog
	activity    *shared.Activity

	clock       shared.Clock
	penaltyRate decimal.Decimal
	nearingDays int
}

func NewUsecase(s Stores, tx uow.UnitOfWork, seq domain.Sequencer, cat *catalog.Catalog, opts Options) *Usecase {
	if cat == nil {
		cat = catalog.Default()
	}
	if opts.NearingDueDays <= 0 {
		opts.NearingDueDays = accounting.DefaultWarningDays
	}
	return &Usecase{
		contracts:   s.Contracts,
		customers:   s.Customers,
		payments:    s.Payments,
		inspections: s.Inspections,
		audits:      s.Audits,
		uow:         tx,
		seq:         seq,
		catalog:     cat,
		activity:    shared.NewActivity(s.Audits),
		clock:       opts.Clock,
		penaltyRate: opts.PenaltyDailyRate,
		nearingDays: opts.NearingDueDays,
	}
}

// Create opens a contract under a catalog category/type, allocating its
// tracking code from the daily sequence.
func (u *Usecase) Create(ctx context.Context, staffID string, in CreateInput) (*ContractDTO, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}

	cat, ok := u.catalog.Category(strings.ToUpper(strings.TrimSpace(in.VehicleCategoryCode)))
	if !ok {
		return nil, apperr.Invalid("vehicle_category_code", "is not in the catalog")
	}
	typ, ok := u.catalog.Type(strings.ToUpper(strings.TrimSpace(in.ContractTypeCode)))
	if !ok {
		return nil, apperr.Invalid("contract_type_code", "is not in the catalog")
	}
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, apperr.Invalid("customer_id", "is required")
	}
	if in.AppraisedValue < 0 || in.AppraisedValue > accounting.MaxAmount {
		return nil, apperr.Invalid("appraised_value", fmt.Sprintf("must be between 0 and %d", accounting.MaxAmount))
	}
	if in.LoanAmount <= 0 || in.LoanAmount > accounting.MaxAmount {
		return nil, apperr.Invalid("loan_amount", fmt.Sprintf("must be between 1 and %d", accounting.MaxAmount))
	}

	rate := typ.InterestRate()
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperr.Invalid("interest_rate", "must be between 0 and 100")
	}

	duration := typ.DefaultDurationDays
	if in.DurationDays != 0 {
		duration = in.DurationDays
	}
	if duration < 1 || duration > MaxDurationDays {
		return nil, apperr.Invalid("duration_days", fmt.Sprintf("must be between 1 and %d", MaxDurationDays))
	}

	if in.AppraisedValue > 0 {
		if limit := accounting.MaxLoanAmount(in.AppraisedValue, cat.LoanRatio()); limit > 0 && in.LoanAmount > limit {
			return nil, apperr.Invalid("loan_amount",
				fmt.Sprintf("exceeds %s%% of appraised value (max %d)", cat.LoanRatio().String(), limit))
		}
	}

	cust, err := u.customers.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, shared.Fail("get customer", err)
	}
	if !cust.IsActive {
		return nil, apperr.NotFound("customer")
	}

	now := u.clock.Now()
	today := accounting.CivilDate(now)
	seq, err := u.seq.Next(ctx, qrcode.Prefix(cat.Code, typ.Code, today))
	if err != nil {
		return nil, shared.Fail("allocate sequence", err)
	}
	qr, err := qrcode.Generate(cat.Code, typ.Code, today, seq)
	if err != nil {
		return nil, apperr.Invalid("qr_code", err.Error())
	}

	status := domain.StatusDraft
	if in.Activate {
		status = domain.StatusActive
	}
	due := accounting.DueDate(today, duration)

	c := &domain.Contract{
		ContractID:          id.NewID32(),
		QRCode:              qr,
		SequenceNumber:      seq,
		CustomerID:          cust.CustomerID,
		VehicleCategoryCode: cat.Code,
		ContractTypeCode:    typ.Code,
		CreatedBy:           staffID,
		Status:              status,
		AppraisedValue:      in.AppraisedValue,
		LoanAmount:          in.LoanAmount,
		InterestRate:        rate,
		OutstandingBalance:  in.LoanAmount,
		ContractDate:        today,
		StartDate:           today,
		DueDate:             &due,
		Notes:               in.Notes,
		Version:             1,
		CreatedAt:           now,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		return r.Audit.AppendStatus(ctx, statusEntry(c, "", staffID, "contract created"))
	})
	if err != nil {
		return nil, shared.Fail("create contract", err)
	}

	u.activity.Log(ctx, staffID, &c.ID, audit.ActionContractCreated,
		fmt.Sprintf("created %s for %d", c.QRCode, c.LoanAmount))

	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

func (u *Usecase) Get(ctx context.Context, contractID string) (*ContractDTO, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, shared.Fail("get contract", err)
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

func (u *Usecase) GetByQRCode(ctx context.Context, raw string) (*ContractDTO, error) {
	code, ok := qrcode.Parse(raw)
	if !ok {
		return nil, apperr.Invalid("qr_code", "is not a valid tracking code")
	}
	c, err := u.contracts.GetByQRCode(ctx, code.String())
	if err != nil {
		return nil, shared.Fail("get contract by qr", err)
	}
	return toDTO(c, u.clock.Now(), u.nearingDays), nil
}

// ValidateQR reports on a scanned code without failing on bad input: a
// malformed code is Valid=false, an unknown one Found=false.
func (u *Usecase) ValidateQR(ctx context.Context, raw string) (*QRValidation, error) {
	code, ok := qrcode.Parse(raw)
	if !ok {
		return &QRValidation{}, nil
	}
	out := &QRValidation{Valid: true, Code: &code, Display: code.Display()}

	c, err := u.contracts.GetByQRCode(ctx, code.String())
	switch {
	case apperr.KindOf(err) == apperr.ErrNotFound:
		return out, nil
	case err != nil:
		return nil, shared.Fail("validate qr", err)
	}
	status := c.EffectiveStatus(u.clock.Now())
	out.Found = true
	out.ContractID = c.ContractID
	out.Status = string(status)
	out.IsActive = domain.IsOpen(status)
	return out, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := domain.ListFilter{CustomerID: in.CustomerID, From: in.From, To: in.To}
	for _, s := range in.Statuses {
		st := domain.Status(strings.ToUpper(strings.TrimSpace(s)))
		if !knownStatus(st) {
			return nil, apperr.Invalid("status", fmt.Sprintf("unknown status %q", s))
		}
		f.Statuses = append(f.Statuses, st)
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, apperr.Invalid("to", "must not be before from")
	}

	page, limit := in.Page, in.Limit
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return nil, apperr.Invalid("page", fmt.Sprintf("must not exceed %d", MaxPage))
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	rows, total, err := u.contracts.List(ctx, f)
	if err != nil {
		return nil, shared.Fail("list contracts", err)
	}
	now := u.clock.Now()
	out := &ListResult{Items: make([]ContractDTO, 0, len(rows)), Total: total, Page: page, Limit: limit}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i], now, u.nearingDays))
	}
	return out, nil
}

func (u *Usecase) History(ctx context.Context, contractID string) ([]audit.StatusHistory, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, shared.Fail("get contract", err)
	}
	rows, err := u.audits.ListStatus(ctx, c.ID)
	if err != nil {
		return nil, shared.Fail("list status history", err)
	}
	return rows, nil
}

func knownStatus(s domain.Status) bool {
	switch s {
	case domain.StatusDraft, domain.StatusActive, domain.StatusExtended, domain.StatusOverdue,
		domain.StatusRedeemed, domain.StatusLiquidating, domain.StatusLiquidated, domain.StatusCancelled:
		return true
	}
	return false
}
