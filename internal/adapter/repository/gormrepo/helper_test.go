package gormrepo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pawnshop-backoffice/internal/domain/contract"
	infradb "pawnshop-backoffice/internal/infrastructure/db"
	"pawnshop-backoffice/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// One connection only: every new :memory: connection is a fresh database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func makeContract(qr string, status contract.Status, due *time.Time) *contract.Contract {
	start := day(2026, 1, 7)
	return &contract.Contract{
		ContractID:          id.NewID32(),
		QRCode:              qr,
		SequenceNumber:      1,
		CustomerID:          id.NewID32(),
		VehicleCategoryCode: "CAR",
		ContractTypeCode:    "RENTAL",
		CreatedBy:           id.NewID32(),
		Status:              status,
		AppraisedValue:      20_000_000,
		LoanAmount:          10_000_000,
		InterestRate:        decimal.RequireFromString("3"),
		OutstandingBalance:  10_000_000,
		ContractDate:        start,
		StartDate:           start,
		DueDate:             due,
	}
}
