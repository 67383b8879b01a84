package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/adapter/repository/gormrepo"
	"pawnshop-backoffice/internal/adapter/storage"
	"pawnshop-backoffice/internal/catalog"
	"pawnshop-backoffice/internal/domain/customer"
	"pawnshop-backoffice/internal/domain/payment"
	"pawnshop-backoffice/internal/domain/staff"
	"pawnshop-backoffice/internal/infrastructure/cache"
	infradb "pawnshop-backoffice/internal/infrastructure/db"
	ucAttachment "pawnshop-backoffice/internal/usecase/attachment"
	"pawnshop-backoffice/internal/usecase/contract"
	ucCustomer "pawnshop-backoffice/internal/usecase/customer"
	ucInspection "pawnshop-backoffice/internal/usecase/inspection"
	ucPayment "pawnshop-backoffice/internal/usecase/payment"
	"pawnshop-backoffice/internal/usecase/shared"
)

var testSecret = []byte("router-test-secret-0123456789")

const (
	clerkID    = "11111111111111111111111111111111"
	managerID  = "22222222222222222222222222222222"
	customerID = "cccccccccccccccccccccccccccccccc"
)

type apiEnv struct {
	t       *testing.T
	e       *echo.Echo
	db      *gorm.DB
	blobDir string
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	staffs := gormrepo.NewStaffRepository(db)
	for _, s := range []staff.Staff{
		{StaffID: clerkID, Code: "S001", FullName: "Counter Clerk", Role: staff.RoleStaff, IsActive: true},
		{StaffID: managerID, Code: "M001", FullName: "Branch Manager", Role: staff.RoleManager, IsActive: true},
	} {
		s := s
		if err := staffs.Create(context.Background(), &s); err != nil {
			t.Fatalf("seed staff: %v", err)
		}
	}

	blobDir := t.TempDir()
	blobs, err := storage.NewLocal(blobDir, "/files")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	customers := gormrepo.NewCustomerRepository(db)
	if err := customers.Create(context.Background(), &customer.Customer{
		CustomerID: customerID, FullName: "Seeded Customer", IDCardType: customer.IDCardCCCD,
		IDCardNumber: "001200000001", IsActive: true, CreatedBy: clerkID,
	}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	contracts := gormrepo.NewContractRepository(db)
	payments := gormrepo.NewPaymentRepository(db)
	audits := gormrepo.NewAuditRepository(db)
	inspections := gormrepo.NewInspectionRepository(db)
	images := gormrepo.NewImageRepository(db)
	tx := gormrepo.NewGormUoW(db)
	clock := shared.FixedClock(time.Date(2026, 2, 6, 10, 0, 0, 0, time.UTC), time.UTC)
	seq := cache.NewSequencer(rdb, contracts.MaxSequenceByQRPrefix)
	contractUC := contract.NewUsecase(contract.Stores{
		Contracts:   contracts,
		Customers:   customers,
		Payments:    payments,
		Inspections: inspections,
		Audits:      audits,
	}, tx, seq, catalog.Default(), contract.Options{Clock: clock})

	e := echo.New()
	e.Validator = NewValidator()
	Register(e, Routes{
		Health:      NewHandler(map[string]Pinger{"db": sqlDB.PingContext}),
		Contracts:   NewContractHandler(contractUC),
		Customers:   NewCustomerHandler(ucCustomer.NewUsecase(customers, contracts, audits, clock)),
		Payments:    NewPaymentHandler(ucPayment.NewUsecase(contracts, payments, audits, tx, clock)),
		Inspections: NewInspectionHandler(ucInspection.NewUsecase(contracts, inspections, images, audits, tx, clock)),
		QR:          NewQRHandler(contractUC),
		Uploads:     NewUploadHandler(ucAttachment.NewUsecase(blobs, images, contracts, audits, clock)),
		Auth:        middleware.Authenticate(testSecret, staffs),
		Idempotency: middleware.Idempotency(rdb, time.Minute),
	})
	return &apiEnv{t: t, e: e, db: db, blobDir: blobDir}
}

func (a *apiEnv) token(staffID string) string {
	a.t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": staffID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		a.t.Fatalf("sign: %v", err)
	}
	return s
}

type reqOpt func(*http.Request)

func withKey(k string) reqOpt {
	return func(r *http.Request) { r.Header.Set(middleware.HeaderIdempotencyKey, k) }
}

func (a *apiEnv) send(method, path, staffID string, body io.Reader, contentType string, opts ...reqOpt) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if staffID != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token(staffID))
	}
	req.Header.Set(middleware.HeaderIdempotencyKey, uuid.NewString())
	req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *apiEnv) do(method, path, staffID string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	return a.send(method, path, staffID, r, echo.MIMEApplicationJSON, opts...)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body %s)", v, err, rec.Body.String())
	}
	return v
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, code, rec.Body.String())
	}
}

func (a *apiEnv) createContract(activate bool) contract.ContractDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id":           customerID,
		"vehicle_category_code": "CAR",
		"contract_type_code":    "RENTAL",
		"appraised_value":       20_000_000,
		"loan_amount":           10_000_000,
		"activate":              activate,
	})
	expect(a.t, rec, http.StatusCreated)
	return decode[contract.ContractDTO](a.t, rec)
}

func (a *apiEnv) getContract(contractID string) contract.ContractDTO {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/contracts/"+contractID, clerkID, nil)
	expect(a.t, rec, http.StatusOK)
	return decode[contract.ContractDTO](a.t, rec)
}

func TestRouter_Health(t *testing.T) {
	a := newAPI(t)
	expect(t, a.send(http.MethodGet, "/health", "", nil, ""), http.StatusOK)
}

func TestRouter_RequiresAuth(t *testing.T) {
	a := newAPI(t)
	expect(t, a.do(http.MethodGet, "/contracts", "", nil), http.StatusUnauthorized)
	expect(t, a.do(http.MethodGet, "/contracts", "ffffffffffffffffffffffffffffffff", nil), http.StatusUnauthorized)
}

func TestRouter_ContractLifecycle(t *testing.T) {
	a := newAPI(t)

	c := a.createContract(true)
	if c.QRCode != "CAR-RENTAL-20260206-01" || c.Status != "ACTIVE" || c.OutstandingBalance != 10_000_000 {
		t.Fatalf("created = %+v", c)
	}
	if c.DueDate == nil || !c.DueDate.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("due = %v", c.DueDate)
	}
	second := a.createContract(false)
	if second.QRCode != "CAR-RENTAL-20260206-02" || second.Status != "DRAFT" {
		t.Fatalf("second = %+v", second)
	}

	base := "/contracts/" + c.ContractID

	got := decode[contract.ContractDTO](t, a.do(http.MethodGet, base, clerkID, nil))
	if got.ContractID != c.ContractID || got.MonthlyInterest != 300_000 {
		t.Fatalf("get = %+v", got)
	}

	rec := a.do(http.MethodPost, base+"/extend", clerkID, map[string]any{"days": 30})
	expect(t, rec, http.StatusOK)
	ext := decode[contract.ContractDTO](t, rec)
	if ext.Status != "EXTENDED" || ext.ExtensionCount != 1 || !ext.DueDate.Equal(time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("extended = %+v", ext)
	}

	// DRAFT cannot be extended
	expect(t, a.do(http.MethodPost, "/contracts/"+second.ContractID+"/extend", clerkID, map[string]any{"days": 30}), http.StatusConflict)
	expect(t, a.do(http.MethodPost, base+"/extend", clerkID, map[string]any{"days": 0}), http.StatusUnprocessableEntity)

	expect(t, a.do(http.MethodPost, base+"/receive", clerkID, nil), http.StatusOK)

	quote := decode[contract.RedeemQuote](t, a.do(http.MethodGet, base+"/redeem-quote", clerkID, nil))
	if quote.Amount != 10_000_000 {
		t.Fatalf("quote = %+v", quote)
	}

	rec = a.do(http.MethodPost, base+"/redeem", clerkID, map[string]any{"amount": quote.Amount})
	expect(t, rec, http.StatusOK)
	red := decode[contract.RedeemResult](t, rec)
	if red.Contract.Status != "REDEEMED" || red.Contract.OutstandingBalance != 0 || red.Payment.Type != payment.TypeFullRedeem {
		t.Fatalf("redeemed = %+v", red)
	}

	// closed
	expect(t, a.do(http.MethodPost, base+"/liquidate", clerkID, map[string]any{"reason": "late"}), http.StatusConflict)

	hist := decode[struct {
		Items []struct {
			NewStatus string `json:"new_status"`
		} `json:"items"`
	}](t, a.do(http.MethodGet, base+"/history", clerkID, nil))
	if len(hist.Items) != 3 {
		t.Fatalf("history = %+v", hist.Items)
	}

	expect(t, a.do(http.MethodPost, "/contracts/"+second.ContractID+"/cancel", clerkID, map[string]any{"reason": "customer left"}), http.StatusOK)

	list := decode[contract.ListResult](t, a.do(http.MethodGet, "/contracts?status=CANCELLED,REDEEMED&customer_id="+customerID, clerkID, nil))
	if list.Total != 2 || len(list.Items) != 2 {
		t.Fatalf("list = %+v", list)
	}
	expect(t, a.do(http.MethodGet, "/contracts?from=2026-02-10&to=2026-02-01", clerkID, nil), http.StatusUnprocessableEntity)
	expect(t, a.do(http.MethodGet, "/contracts?from=06-02-2026", clerkID, nil), http.StatusUnprocessableEntity)
	expect(t, a.do(http.MethodGet, "/contracts?status=BOGUS", clerkID, nil), http.StatusUnprocessableEntity)
	expect(t, a.do(http.MethodGet, "/contracts?page=9223372036854775807&limit=100", clerkID, nil), http.StatusUnprocessableEntity)
}

func TestRouter_ContractErrors(t *testing.T) {
	a := newAPI(t)

	expect(t, a.do(http.MethodGet, "/contracts/"+uuid.New().String(), clerkID, nil), http.StatusBadRequest)
	expect(t, a.do(http.MethodGet, "/contracts/ffffffffffffffffffffffffffffffff", clerkID, nil), http.StatusNotFound)
	expect(t, a.send(http.MethodPost, "/contracts", clerkID, bytes.NewBufferString(`{"loan_amount":`), echo.MIMEApplicationJSON), http.StatusBadRequest)

	rec := a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id":           "nope",
		"vehicle_category_code": "car",
		"contract_type_code":    "RENTAL",
		"loan_amount":           0,
	})
	expect(t, rec, http.StatusUnprocessableEntity)
	body := decode[ErrorResponse](t, rec)
	for _, f := range []string{"customer_id", "vehicle_category_code", "loan_amount"} {
		found := false
		for _, d := range body.Details {
			found = found || d.Field == f
		}
		if !found {
			t.Errorf("missing detail for %s: %+v", f, body.Details)
		}
	}

	// above 70% of appraised value
	expect(t, a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id": customerID, "vehicle_category_code": "CAR", "contract_type_code": "RENTAL",
		"appraised_value": 10_000_000, "loan_amount": 8_000_000,
	}), http.StatusUnprocessableEntity)

	// not in the catalog
	expect(t, a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id": customerID, "vehicle_category_code": "BOAT", "contract_type_code": "RENTAL", "loan_amount": 1_000,
	}), http.StatusUnprocessableEntity)

	// no such customer
	expect(t, a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id": "dddddddddddddddddddddddddddddddd", "vehicle_category_code": "CAR", "contract_type_code": "RENTAL", "loan_amount": 1_000,
	}), http.StatusNotFound)
}

func TestRouter_Customers(t *testing.T) {
	a := newAPI(t)

	body := map[string]any{
		"full_name":      "Nguyen Van A",
		"phone":          "0901234567",
		"id_card_type":   "CCCD",
		"id_card_number": "079200000123",
		"date_of_birth":  "1990-05-01",
		"gender":         "MALE",
	}
	rec := a.do(http.MethodPost, "/customers", clerkID, body)
	expect(t, rec, http.StatusCreated)
	cust := decode[customer.Customer](t, rec)
	if len(cust.CustomerID) != 32 || cust.FullName != "Nguyen Van A" || !cust.IsActive || cust.CreatedBy != clerkID {
		t.Fatalf("created = %+v", cust)
	}

	expect(t, a.do(http.MethodPost, "/customers", clerkID, body), http.StatusConflict)
	expect(t, a.do(http.MethodPost, "/customers", clerkID, map[string]any{
		"full_name": "B", "id_card_type": "CCCD", "id_card_number": "1", "email": "not-an-email",
	}), http.StatusUnprocessableEntity)
	expect(t, a.do(http.MethodPost, "/customers", clerkID, map[string]any{
		"full_name": "B", "id_card_type": "LICENSE", "id_card_number": "1",
	}), http.StatusUnprocessableEntity)

	found := decode[struct {
		Items []customer.Customer `json:"items"`
	}](t, a.do(http.MethodGet, "/customers?q=nguyen", clerkID, nil))
	if len(found.Items) != 1 || found.Items[0].CustomerID != cust.CustomerID {
		t.Fatalf("search = %+v", found.Items)
	}
	expect(t, a.do(http.MethodGet, "/customers?limit=51", clerkID, nil), http.StatusUnprocessableEntity)

	path := "/customers/" + cust.CustomerID
	rec = a.do(http.MethodPatch, path, clerkID, map[string]any{"phone": "0909999999"})
	expect(t, rec, http.StatusOK)
	if upd := decode[customer.Customer](t, rec); upd.Phone == nil || *upd.Phone != "0909999999" || upd.FullName != "Nguyen Van A" {
		t.Fatalf("updated = %+v", upd)
	}
	got := decode[customer.Customer](t, a.do(http.MethodGet, path, clerkID, nil))
	if got.Phone == nil || *got.Phone != "0909999999" {
		t.Fatalf("get = %+v", got)
	}

	// an open contract blocks removal
	rec = a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id": cust.CustomerID, "vehicle_category_code": "CAR", "contract_type_code": "RENTAL",
		"appraised_value": 20_000_000, "loan_amount": 10_000_000,
	})
	expect(t, rec, http.StatusCreated)
	draft := decode[contract.ContractDTO](t, rec)
	expect(t, a.do(http.MethodDelete, path, clerkID, nil), http.StatusConflict)

	expect(t, a.do(http.MethodPost, "/contracts/"+draft.ContractID+"/cancel", clerkID, map[string]any{"reason": "changed mind"}), http.StatusOK)
	expect(t, a.do(http.MethodDelete, path, clerkID, nil), http.StatusNoContent)
	expect(t, a.do(http.MethodGet, path, clerkID, nil), http.StatusNotFound)
	expect(t, a.do(http.MethodGet, "/customers/xyz", clerkID, nil), http.StatusBadRequest)

	// removed customers cannot take new contracts
	expect(t, a.do(http.MethodPost, "/contracts", clerkID, map[string]any{
		"customer_id": cust.CustomerID, "vehicle_category_code": "CAR", "contract_type_code": "RENTAL", "loan_amount": 1_000,
	}), http.StatusNotFound)
}

func TestRouter_DailyReport(t *testing.T) {
	a := newAPI(t)
	c := a.createContract(true)
	a.createContract(false)
	expect(t, a.do(http.MethodPost, "/contracts/"+c.ContractID+"/payments", clerkID, map[string]any{
		"payment_type": "INTEREST", "amount": 300_000, "interest_amount": 300_000,
	}), http.StatusCreated)

	rep := decode[contract.DailyReport](t, a.do(http.MethodGet, "/reports/daily?date=2026-02-06", clerkID, nil))
	if rep.Date != "2026-02-06" || rep.Summary.Contracts.Count != 2 || rep.Summary.Contracts.TotalLoanAmount != 20_000_000 {
		t.Fatalf("contracts summary = %+v", rep.Summary)
	}
	if rep.Summary.Payments.Count != 1 || rep.Summary.Payments.TotalAmount != 300_000 || len(rep.Payments) != 1 {
		t.Fatalf("payments = %+v", rep.Payments)
	}
	if p := rep.Payments[0]; p.QRCode != c.QRCode || p.CustomerName != "Seeded Customer" {
		t.Fatalf("payment row = %+v", p)
	}

	// today is the fixed clock's day
	today := decode[contract.DailyReport](t, a.do(http.MethodGet, "/reports/daily", clerkID, nil))
	if today.Date != "2026-02-06" || len(today.Contracts) != 2 {
		t.Fatalf("today = %+v", today)
	}

	other := decode[contract.DailyReport](t, a.do(http.MethodGet, "/reports/daily?date=2026-02-07", clerkID, nil))
	if other.Summary.Contracts.Count != 0 || other.Contracts == nil || len(other.Payments) != 0 {
		t.Fatalf("empty day = %+v", other)
	}
	expect(t, a.do(http.MethodGet, "/reports/daily?date=06-02-2026", clerkID, nil), http.StatusUnprocessableEntity)
}

func TestRouter_Payments(t *testing.T) {
	a := newAPI(t)
	c := a.createContract(true)
	base := "/contracts/" + c.ContractID + "/payments"

	rec := a.do(http.MethodPost, base, clerkID, map[string]any{
		"payment_type":     "PARTIAL",
		"amount":           1_000_000,
		"interest_amount":  200_000,
		"principal_amount": 800_000,
	})
	expect(t, rec, http.StatusCreated)
	res := decode[ucPayment.PaymentResult](t, rec)
	if res.Contract.OutstandingBalance != 9_200_000 || res.Contract.TotalAmountPaid != 1_000_000 {
		t.Fatalf("balance = %+v", res.Contract)
	}

	// components must add up
	expect(t, a.do(http.MethodPost, base, clerkID, map[string]any{
		"payment_type": "PARTIAL", "amount": 1_000, "principal_amount": 999,
	}), http.StatusUnprocessableEntity)
	// components large enough to wrap int64 when summed
	rec = a.do(http.MethodPost, base, clerkID, map[string]any{
		"payment_type": "PARTIAL", "amount": 1,
		"interest_amount": int64(math.MaxInt64), "principal_amount": int64(math.MaxInt64), "penalty_amount": 3,
	})
	expect(t, rec, http.StatusUnprocessableEntity)
	if got := a.getContract(c.ContractID); got.OutstandingBalance != 9_200_000 {
		t.Fatalf("balance after rejected payment = %d", got.OutstandingBalance)
	}

	rec = a.do(http.MethodPost, base+"/allocate", clerkID, map[string]any{"amount": 500_000})
	expect(t, rec, http.StatusCreated)
	alloc := decode[ucPayment.PaymentResult](t, rec)
	// nothing accrued on day one, so it all goes to principal
	if alloc.Allocation == nil || alloc.Payment.PrincipalAmount != 500_000 || alloc.Contract.OutstandingBalance != 8_700_000 {
		t.Fatalf("allocated = %+v", alloc)
	}

	list := decode[struct {
		Items []payment.Payment `json:"items"`
	}](t, a.do(http.MethodGet, base, clerkID, nil))
	if len(list.Items) != 2 {
		t.Fatalf("payments = %+v", list.Items)
	}

	del := base + "/" + res.Payment.PaymentID
	expect(t, a.do(http.MethodDelete, del, clerkID, nil), http.StatusForbidden)
	rec = a.do(http.MethodDelete, del, managerID, nil)
	expect(t, rec, http.StatusOK)
	bal := decode[ucPayment.BalanceDTO](t, rec)
	if bal.OutstandingBalance != 9_500_000 || bal.TotalAmountPaid != 500_000 {
		t.Fatalf("after delete = %+v", bal)
	}
	expect(t, a.do(http.MethodDelete, del, managerID, nil), http.StatusNotFound)
	expect(t, a.do(http.MethodDelete, base+"/not-hex", managerID, nil), http.StatusBadRequest)
}

func TestRouter_IdempotentReplay(t *testing.T) {
	a := newAPI(t)
	c := a.createContract(true)
	path := "/contracts/" + c.ContractID + "/payments"
	body := map[string]any{"payment_type": "INTEREST", "amount": 300_000, "interest_amount": 300_000}
	key := withKey(uuid.NewString())

	first := a.do(http.MethodPost, path, clerkID, body, key)
	expect(t, first, http.StatusCreated)
	again := a.do(http.MethodPost, path, clerkID, body, key)
	expect(t, again, http.StatusCreated)
	if first.Body.String() != again.Body.String() {
		t.Fatalf("replay differs:\n%s\n%s", first.Body.String(), again.Body.String())
	}

	var n int64
	a.db.Model(&payment.Payment{}).Count(&n)
	if n != 1 {
		t.Fatalf("payments stored = %d, want 1", n)
	}
}

func TestRouter_InspectionsAndQR(t *testing.T) {
	a := newAPI(t)
	c := a.createContract(true)
	base := "/contracts/" + c.ContractID + "/inspections"

	expect(t, a.do(http.MethodPost, base, clerkID, map[string]any{
		"result": "MISSING", "gps_latitude": 10.77, "gps_longitude": 106.70, "photos": []string{"a.jpg"},
	}), http.StatusUnprocessableEntity)
	expect(t, a.do(http.MethodPost, base, clerkID, map[string]any{
		"result": "PRESENT", "gps_longitude": 106.70, "photos": []string{"a.jpg"},
	}), http.StatusUnprocessableEntity)

	rec := a.do(http.MethodPost, base, clerkID, map[string]any{
		"result": "PRESENT", "gps_latitude": 10.77, "gps_longitude": 106.70, "gps_accuracy": 5,
		"photos": []string{"inspections/a.jpg", "inspections/b.jpg"},
	})
	expect(t, rec, http.StatusCreated)
	dto := decode[ucInspection.InspectionDTO](t, rec)
	if len(dto.Photos) != 2 || dto.InspectionID == "" {
		t.Fatalf("inspection = %+v", dto)
	}
	list := decode[struct {
		Items []json.RawMessage `json:"items"`
	}](t, a.do(http.MethodGet, base, clerkID, nil))
	if len(list.Items) != 1 {
		t.Fatalf("inspections = %d", len(list.Items))
	}

	v := decode[contract.QRValidation](t, a.do(http.MethodPost, "/qr/validate", clerkID, map[string]any{"qr_code": "car-rental-20260206-01"}))
	if !v.Valid || !v.Found || !v.IsActive || v.ContractID != c.ContractID || v.Display != "CAR-RENTAL-2026.02.06-01" {
		t.Fatalf("validate = %+v", v)
	}
	v = decode[contract.QRValidation](t, a.do(http.MethodPost, "/qr/validate", clerkID, map[string]any{"qr_code": "garbage"}))
	if v.Valid || v.Found {
		t.Fatalf("garbage = %+v", v)
	}

	expect(t, a.do(http.MethodGet, "/qr/CAR-RENTAL-20260206-01", clerkID, nil), http.StatusOK)
	expect(t, a.do(http.MethodGet, "/qr/CAR-RENTAL-20260206-09", clerkID, nil), http.StatusNotFound)
	expect(t, a.do(http.MethodGet, "/qr/nope", clerkID, nil), http.StatusUnprocessableEntity)

	rep := decode[contract.OverdueReport](t, a.do(http.MethodGet, "/contracts/overdue", clerkID, nil))
	if rep.Summary.TotalCount != 0 {
		t.Fatalf("overdue = %+v", rep)
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write(data)
	_ = w.Close()
	return buf, w.FormDataContentType()
}

func TestRouter_Uploads(t *testing.T) {
	a := newAPI(t)
	c := a.createContract(true)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	body, ct := multipartBody(t, map[string]string{"prefix": "receiving", "contract_id": c.ContractID, "image_type": "RECEIVING"}, "front.png", "image/png", png)
	rec := a.send(http.MethodPost, "/uploads", clerkID, body, ct)
	expect(t, rec, http.StatusCreated)
	res := decode[ucAttachment.UploadResult](t, rec)
	if res.Image == nil || res.URL != "/files/"+res.Path {
		t.Fatalf("upload = %+v", res)
	}
	if b, err := os.ReadFile(filepath.Join(a.blobDir, filepath.FromSlash(res.Path))); err != nil || !bytes.Equal(b, png) {
		t.Fatalf("stored file = %q, %v", b, err)
	}

	body, ct = multipartBody(t, nil, "x.html", "text/html", []byte("<html></html>"))
	expect(t, a.send(http.MethodPost, "/uploads", clerkID, body, ct), http.StatusUnprocessableEntity)

	body, ct = multipartBody(t, map[string]string{"contract_id": "bad"}, "front.png", "image/png", png)
	expect(t, a.send(http.MethodPost, "/uploads", clerkID, body, ct), http.StatusUnprocessableEntity)

	expect(t, a.do(http.MethodDelete, "/uploads?path="+res.Path, clerkID, nil), http.StatusNoContent)
	expect(t, a.do(http.MethodDelete, "/uploads?path="+res.Path, clerkID, nil), http.StatusNotFound)
	expect(t, a.do(http.MethodDelete, "/uploads?path=../etc/passwd", clerkID, nil), http.StatusUnprocessableEntity)
}
