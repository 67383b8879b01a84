package contract

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pawnshop-backoffice/internal/catalog"
	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/audit"
	domain "pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/customer"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/internal/domain/uow"
	"pawnshop-backoffice/internal/testutil/auditmock"
	"pawnshop-backoffice/internal/testutil/contractmock"
	"pawnshop-backoffice/internal/testutil/customermock"
	"pawnshop-backoffice/internal/testutil/inspectionmock"
	"pawnshop-backoffice/internal/testutil/paymentmock"
	"pawnshop-backoffice/internal/testutil/uowmock"
	"pawnshop-backoffice/internal/usecase/shared"
)

const staffID = "0123456789abcdef0123456789abcdef"

var now = time.Date(2026, 2, 6, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// harness wires the use case to mocks that keep one contract in memory.
type harness struct {
	uc        *Usecase
	contract  *domain.Contract
	contracts *contractmock.Repo
	audits    *auditmock.Repo
	seq       *contractmock.Sequencer

	customers   map[string]*customer.Customer
	paymentRepo *paymentmock.Repo
	inspectRepo *inspectionmock.Repo

	saves    int
	history  []audit.StatusHistory
	activity []audit.ActivityLog
	payments []payment.Payment
}

func newHarness(t *testing.T, c *domain.Contract) *harness {
	t.Helper()
	h := &harness{contract: c, customers: map[string]*customer.Customer{}}
	for _, id := range []string{"c", "cust", "cust-1"} {
		h.customers[id] = &customer.Customer{CustomerID: id, FullName: "Customer " + id, IsActive: true}
	}
	customers := &customermock.Repo{
		GetByCustomerIDFn: func(_ context.Context, id string) (*customer.Customer, error) {
			c, ok := h.customers[id]
			if !ok {
				return nil, apperr.NotFound("customer")
			}
			cp := *c
			return &cp, nil
		},
		ListByCustomerIDsFn: func(_ context.Context, ids []string) ([]customer.Customer, error) {
			var out []customer.Customer
			for _, id := range ids {
				if c, ok := h.customers[id]; ok {
					out = append(out, *c)
				}
			}
			return out, nil
		},
	}

	load := func(_ context.Context, id string) (*domain.Contract, error) {
		if h.contract == nil || h.contract.ContractID != id {
			return nil, apperr.NotFound("contract")
		}
		cp := *h.contract
		return &cp, nil
	}
	h.contracts = &contractmock.Repo{
		GetByContractIDFn:          load,
		GetByContractIDForUpdateFn: load,
		GetByQRCodeFn: func(_ context.Context, qr string) (*domain.Contract, error) {
			if h.contract == nil || h.contract.QRCode != qr {
				return nil, apperr.NotFound("contract")
			}
			cp := *h.contract
			return &cp, nil
		},
		CreateFn: func(_ context.Context, c *domain.Contract) error {
			c.ID = 101
			cp := *c
			h.contract = &cp
			return nil
		},
		SaveFn: func(_ context.Context, c *domain.Contract) error {
			h.saves++
			c.Version++
			cp := *c
			h.contract = &cp
			return nil
		},
	}
	h.audits = &auditmock.Repo{
		AppendStatusFn: func(_ context.Context, e *audit.StatusHistory) error {
			h.history = append(h.history, *e)
			return nil
		},
		AppendActivityFn: func(_ context.Context, a *audit.ActivityLog) error {
			h.activity = append(h.activity, *a)
			return nil
		},
		ListStatusFn: func(context.Context, uint64) ([]audit.StatusHistory, error) {
			return h.history, nil
		},
	}
	h.paymentRepo = &paymentmock.Repo{
		CreateFn: func(_ context.Context, p *payment.Payment) error {
			h.payments = append(h.payments, *p)
			return nil
		},
	}
	h.inspectRepo = &inspectionmock.Repo{}
	h.seq = &contractmock.Sequencer{}

	tx := uowmock.New().WithRepos(uow.Repos{Contracts: h.contracts, Payments: h.paymentRepo, Audit: h.audits})
	h.uc = NewUsecase(Stores{
		Contracts:   h.contracts,
		Customers:   customers,
		Payments:    h.paymentRepo,
		Inspections: h.inspectRepo,
		Audits:      h.audits,
	}, tx, h.seq, catalog.Default(), Options{
		Clock:            shared.FixedClock(now, time.UTC),
		PenaltyDailyRate: decimal.RequireFromString("0.1"),
	})
	return h
}

func activeContract() *domain.Contract {
	due := day(2026, 2, 6)
	return &domain.Contract{
		ID:                  7,
		ContractID:          "c0000000000000000000000000000007",
		QRCode:              "CAR-RENTAL-20260107-01",
		CustomerID:          "cust",
		VehicleCategoryCode: "CAR",
		ContractTypeCode:    "RENTAL",
		Status:              domain.StatusActive,
		LoanAmount:          10_000_000,
		InterestRate:        decimal.NewFromInt(3),
		OutstandingBalance:  5_000_000,
		ContractDate:        day(2026, 1, 7),
		StartDate:           day(2026, 1, 7),
		DueDate:             &due,
		Version:             1,
	}
}

func withStatus(s domain.Status) *domain.Contract {
	c := activeContract()
	c.Status = s
	return c
}
