package contract

import (
	"context"
	"time"

	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/inspection"
	"pawnshop-backoffice/internal/usecase/shared"
	"pawnshop-backoffice/pkg/accounting"
)

// Overdue lists open contracts past their due date (or stored as OVERDUE),
// most overdue first. Summary and buckets cover every row; Limit/Offset
// only page the items.
func (u *Usecase) Overdue(ctx context.Context, in OverdueInput) (*OverdueReport, error) {
	now := u.clock.Now()
	rows, err := u.contracts.ListOverdue(ctx, accounting.CivilDate(now))
	if err != nil {
		return nil, shared.Fail("list overdue contracts", err)
	}

	rep := &OverdueReport{AsOf: accounting.CivilDate(now), Items: []OverdueItem{}}
	items := make([]OverdueItem, 0, len(rows))
	for i := range rows {
		c := &rows[i]
		days := accounting.DaysOverdue(c.DueDate, now)

		rep.Summary.TotalCount++
		rep.Summary.TotalOverdueAmount += c.OutstandingBalance
		rep.Summary.TotalLoanAmount += c.LoanAmount
		rep.Buckets.add(days)

		item := OverdueItem{
			ContractID:         c.ContractID,
			QRCode:             c.QRCode,
			CustomerID:         c.CustomerID,
			Status:             string(c.EffectiveStatus(now)),
			DaysOverdue:        days,
			LoanAmount:         c.LoanAmount,
			OutstandingBalance: c.OutstandingBalance,
			Penalty:            accounting.Penalty(c.OutstandingBalance, u.penaltyRate, days),
		}
		if c.DueDate != nil {
			item.DueDate = *c.DueDate
		}
		items = append(items, item)
	}

	start := min(max(in.Offset, 0), len(items))
	end := len(items)
	if in.Limit > 0 {
		end = min(start+in.Limit, len(items))
	}
	rep.Items = append(rep.Items, items[start:end]...)
	return rep, nil
}

// Daily summarises one business day: contracts opened, payments taken and
// inspections done. A nil date means today.
func (u *Usecase) Daily(ctx context.Context, date *time.Time) (*DailyReport, error) {
	day := u.clock.Today()
	if date != nil {
		day = accounting.CivilDate(*date)
	}
	from, to := u.clock.DayRange(day)

	created, err := u.contracts.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, shared.Fail("list contracts for day", err)
	}
	pays, err := u.payments.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, shared.Fail("list payments for day", err)
	}
	logs, err := u.inspections.ListInspectedBetween(ctx, from, to)
	if err != nil {
		return nil, shared.Fail("list inspections for day", err)
	}

	refs := make(map[uint64]*domain.Contract, len(created))
	for i := range created {
		refs[created[i].ID] = &created[i]
	}
	var missing []uint64
	need := func(id uint64) {
		if _, ok := refs[id]; !ok {
			refs[id] = nil
			missing = append(missing, id)
		}
	}
	for _, p := range pays {
		need(p.ContractID)
	}
	for _, l := range logs {
		need(l.ContractID)
	}
	if len(missing) > 0 {
		rows, err := u.contracts.ListByIDs(ctx, missing)
		if err != nil {
			return nil, shared.Fail("list contracts by id", err)
		}
		for i := range rows {
			refs[rows[i].ID] = &rows[i]
		}
	}

	names, err := u.customerNames(ctx, refs)
	if err != nil {
		return nil, err
	}

	rep := &DailyReport{
		Date:        day.Format("2006-01-02"),
		Contracts:   make([]DailyContract, 0, len(created)),
		Payments:    make([]DailyPayment, 0, len(pays)),
		Inspections: make([]DailyInspection, 0, len(logs)),
	}
	for _, c := range created {
		rep.Summary.Contracts.Count++
		rep.Summary.Contracts.TotalLoanAmount += c.LoanAmount
		rep.Contracts = append(rep.Contracts, DailyContract{
			ContractID:   c.ContractID,
			QRCode:       c.QRCode,
			CustomerID:   c.CustomerID,
			CustomerName: names[c.CustomerID],
			Status:       string(c.Status),
			LoanAmount:   c.LoanAmount,
			CreatedAt:    c.CreatedAt,
		})
	}
	for _, p := range pays {
		rep.Summary.Payments.Count++
		rep.Summary.Payments.TotalAmount += p.Amount
		item := DailyPayment{
			PaymentID: p.PaymentID,
			Type:      p.Type,
			Method:    p.Method,
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt,
		}
		if c := refs[p.ContractID]; c != nil {
			item.ContractID, item.QRCode, item.CustomerName = c.ContractID, c.QRCode, names[c.CustomerID]
		}
		rep.Payments = append(rep.Payments, item)
	}
	for _, l := range logs {
		rep.Summary.Inspections.Count++
		switch l.Result {
		case inspection.ResultPresent:
			rep.Summary.Inspections.Present++
		case inspection.ResultMissing:
			rep.Summary.Inspections.Missing++
		}
		item := DailyInspection{
			InspectionID: l.InspectionID,
			StaffID:      l.StaffID,
			Result:       l.Result,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
			InspectedAt:  l.InspectedAt,
		}
		if c := refs[l.ContractID]; c != nil {
			item.ContractID, item.QRCode = c.ContractID, c.QRCode
		}
		rep.Inspections = append(rep.Inspections, item)
	}
	return rep, nil
}

func (u *Usecase) customerNames(ctx context.Context, refs map[uint64]*domain.Contract) (map[string]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, c := range refs {
		if c != nil && !seen[c.CustomerID] {
			seen[c.CustomerID] = true
			ids = append(ids, c.CustomerID)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := u.customers.ListByCustomerIDs(ctx, ids)
	if err != nil {
		return nil, shared.Fail("list customers by id", err)
	}
	for _, c := range rows {
		names[c.CustomerID] = c.FullName
	}
	return names, nil
}

// RedeemQuote prices a redemption as of today: principal, accrued interest
// since the start date and any overdue penalty, less everything paid so far.
func (u *Usecase) RedeemQuote(ctx context.Context, contractID string) (*RedeemQuote, error) {
	c, err := u.contracts.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, shared.Fail("get contract", err)
	}
	if _, err := domain.Transition(c.Status, domain.ActionRedeem); err != nil {
		return nil, err
	}

	now := u.clock.Now()
	elapsed := accounting.DaysElapsed(c.StartDate, now)
	overdue := accounting.DaysOverdue(c.DueDate, now)
	penalty := accounting.Penalty(c.OutstandingBalance, u.penaltyRate, overdue)

	return &RedeemQuote{
		ContractID:         c.ContractID,
		Principal:          c.LoanAmount,
		InterestRate:       c.InterestRate,
		DaysElapsed:        elapsed,
		Interest:           accounting.Interest(c.LoanAmount, c.InterestRate, elapsed),
		DaysOverdue:        overdue,
		Penalty:            penalty,
		TotalPaid:          c.TotalAmountPaid,
		OutstandingBalance: c.OutstandingBalance,
		Amount:             accounting.RedeemAmount(c.LoanAmount, c.InterestRate, elapsed, c.TotalAmountPaid, penalty),
		AsOf:               accounting.CivilDate(now),
	}, nil
}
