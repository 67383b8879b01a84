package http

import (
	"github.com/labstack/echo/v4"

	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/domain/staff"
)

// Routes bundles what Register needs. Auth and Idempotency are applied in
// that order to every route except /health.
type Routes struct {
	Health      *Handler
	Contracts   *ContractHandler
	Customers   *CustomerHandler
	Payments    *PaymentHandler
	Inspections *InspectionHandler
	QR          *QRHandler
	Uploads     *UploadHandler

	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)

	mw := []echo.MiddlewareFunc{r.Auth}
	if r.Idempotency != nil {
		mw = append(mw, r.Idempotency)
	}
	api := e.Group("", mw...)

	api.POST("/contracts", r.Contracts.Create)
	api.GET("/contracts", r.Contracts.List)
	api.GET("/contracts/overdue", r.Contracts.Overdue)
	api.GET("/reports/overdue", r.Contracts.Overdue)
	api.GET("/reports/daily", r.Contracts.Daily)

	api.POST("/customers", r.Customers.Create)
	api.GET("/customers", r.Customers.Search)
	api.GET("/customers/:customer_id", r.Customers.Get)
	api.PATCH("/customers/:customer_id", r.Customers.Update)
	api.DELETE("/customers/:customer_id", r.Customers.Delete)

	ct := api.Group("/contracts/:contract_id")
	ct.GET("", r.Contracts.Get)
	ct.GET("/history", r.Contracts.History)
	ct.GET("/redeem-quote", r.Contracts.RedeemQuote)
	ct.POST("/activate", r.Contracts.Activate)
	ct.POST("/cancel", r.Contracts.Cancel)
	ct.POST("/receive", r.Contracts.Receive)
	ct.POST("/extend", r.Contracts.Extend)
	ct.POST("/redeem", r.Contracts.Redeem)
	ct.POST("/liquidate", r.Contracts.Liquidate)
	ct.POST("/reconcile", r.Contracts.Reconcile)

	ct.POST("/payments", r.Payments.Record)
	ct.GET("/payments", r.Payments.List)
	ct.POST("/payments/allocate", r.Payments.Allocate)
	ct.DELETE("/payments/:payment_id", r.Payments.Delete,
		middleware.RequireRole(staff.RoleSuperAdmin, staff.RoleAdmin, staff.RoleManager))

	ct.POST("/inspections", r.Inspections.Record)
	ct.GET("/inspections", r.Inspections.List)

	api.POST("/qr/validate", r.QR.Validate)
	api.GET("/qr/:qr_code", r.QR.Lookup)

	api.POST("/uploads", r.Uploads.Upload)
	api.DELETE("/uploads", r.Uploads.Delete)
}
