// Package accounting holds the pure money and calendar rules for contracts.
//
// Money is integer currency units. Rates are percentages held as decimals;
// intermediate products are exact and only the final figure is rounded
// (half away from zero) to a whole unit.
//
// Calendar functions work on civil dates: a time.Time is reduced to its
// year/month/day in its own location and compared at UTC midnight, so
// callers pass "now" already converted to the business time zone.
package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerMonth is the fixed month length used to prorate monthly interest.
const DaysPerMonth = 30

// DefaultWarningDays is the nearing-due window used when none is configured.
const DefaultWarningDays = 3

// MaxAmount bounds any single money figure the ledger accepts. Sums of a
// handful of such figures stay far from int64 overflow.
const MaxAmount int64 = 1_000_000_000_000_000

var (
	hundred       = decimal.NewFromInt(100)
	monthDivisor  = decimal.NewFromInt(100 * DaysPerMonth)
	hoursInOneDay = 24.0
)

// Interest is simple daily-prorated interest: principal*rate/100/30*days.
func Interest(principal int64, monthlyRatePct decimal.Decimal, days int) int64 {
	if principal <= 0 || !monthlyRatePct.IsPositive() || days <= 0 {
		return 0
	}
	v := decimal.NewFromInt(principal).
		Mul(monthlyRatePct).
		Mul(decimal.NewFromInt(int64(days))).
		Div(monthDivisor)
	return v.Round(0).IntPart()
}

// Penalty is balance*rate/100*days for a daily penalty rate.
func Penalty(balance int64, dailyRatePct decimal.Decimal, daysOverdue int) int64 {
	if balance <= 0 || !dailyRatePct.IsPositive() || daysOverdue <= 0 {
		return 0
	}
	v := decimal.NewFromInt(balance).
		Mul(dailyRatePct).
		Mul(decimal.NewFromInt(int64(daysOverdue))).
		Div(hundred)
	return v.Round(0).IntPart()
}

// MonthlyInterest is one full month of interest on principal.
func MonthlyInterest(principal int64, monthlyRatePct decimal.Decimal) int64 {
	if principal <= 0 || !monthlyRatePct.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(principal).Mul(monthlyRatePct).Div(hundred).Round(0).IntPart()
}

// MaxLoanAmount caps a loan at ratioPct percent of the appraised value.
func MaxLoanAmount(appraised int64, ratioPct decimal.Decimal) int64 {
	if appraised <= 0 || !ratioPct.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(appraised).Mul(ratioPct).Div(hundred).Round(0).IntPart()
}

// CivilDate returns the calendar date of t (in t's location) at UTC midnight.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / hoursInOneDay)
}

func DueDate(start time.Time, durationDays int) time.Time {
	return CivilDate(start).AddDate(0, 0, durationDays)
}

// DaysOverdue is how many whole days now is past due, never negative.
// A contract without a due date is never overdue.
func DaysOverdue(due *time.Time, now time.Time) int {
	if due == nil {
		return 0
	}
	if n := DaysBetween(*due, now); n > 0 {
		return n
	}
	return 0
}

// DaysRemaining is due minus today; negative once overdue.
func DaysRemaining(due *time.Time, now time.Time) int {
	if due == nil {
		return 0
	}
	return DaysBetween(now, *due)
}

// DaysElapsed counts days since start, floored at 0.
func DaysElapsed(start, now time.Time) int {
	if start.IsZero() {
		return 0
	}
	if n := DaysBetween(start, now); n > 0 {
		return n
	}
	return 0
}

func IsNearingDue(due *time.Time, now time.Time, warningDays int) bool {
	if due == nil {
		return false
	}
	r := DaysRemaining(due, now)
	return r >= 0 && r <= warningDays
}

// Allocation is how a single payment splits across what is owed.
type Allocation struct {
	Interest           int64 `json:"interest_portion"`
	Principal          int64 `json:"principal_portion"`
	RemainingInterest  int64 `json:"remaining_interest"`
	RemainingPrincipal int64 `json:"remaining_principal"`
	Excess             int64 `json:"excess"`
}

// AllocatePayment settles outstanding interest first, then principal.
// Whatever is left over is reported as Excess.
func AllocatePayment(amount, outstandingInterest, outstandingPrincipal int64) Allocation {
	amount = max(amount, 0)
	outstandingInterest = max(outstandingInterest, 0)
	outstandingPrincipal = max(outstandingPrincipal, 0)

	i := min(amount, outstandingInterest)
	p := min(amount-i, outstandingPrincipal)
	return Allocation{
		Interest:           i,
		Principal:          p,
		RemainingInterest:  outstandingInterest - i,
		RemainingPrincipal: outstandingPrincipal - p,
		Excess:             amount - i - p,
	}
}

// RedeemAmount is what the customer owes to close the contract today.
func RedeemAmount(principal int64, monthlyRatePct decimal.Decimal, daysElapsed int, totalPaid, penalty int64) int64 {
	owed := principal + Interest(principal, monthlyRatePct, daysElapsed) + penalty - totalPaid
	return max(owed, 0)
}

// AddAmounts sums non-negative money figures. ok is false when any term is
// negative or the total would pass MaxAmount*1000, which leaves headroom for
// running totals without risking int64 overflow.
func AddAmounts(terms ...int64) (sum int64, ok bool) {
	const limit = MaxAmount * 1000
	for _, t := range terms {
		if t < 0 || t > limit-sum {
			return 0, false
		}
		sum += t
	}
	return sum, true
}
