package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "pawnshop-backoffice/internal/adapter/http"
	"pawnshop-backoffice/internal/adapter/middleware"
	"pawnshop-backoffice/internal/adapter/repository/gormrepo"
	"pawnshop-backoffice/internal/adapter/storage"
	"pawnshop-backoffice/internal/catalog"
	"pawnshop-backoffice/internal/config"
	"pawnshop-backoffice/internal/infrastructure/cache"
	"pawnshop-backoffice/internal/infrastructure/db"
	"pawnshop-backoffice/internal/infrastructure/logging"
	ucAttachment "pawnshop-backoffice/internal/usecase/attachment"
	"pawnshop-backoffice/internal/usecase/contract"
	ucCustomer "pawnshop-backoffice/internal/usecase/customer"
	ucInspection "pawnshop-backoffice/internal/usecase/inspection"
	ucPayment "pawnshop-backoffice/internal/usecase/payment"
	"pawnshop-backoffice/internal/usecase/shared"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, flush, err := logging.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer flush()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("open redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer rdb.Close()

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.Load(cfg.CatalogFile); err != nil {
			logger.Fatal("load catalog", zap.String("file", cfg.CatalogFile), zap.Error(err))
		}
	}

	loc, _ := cfg.Location() // checked by Validate
	clock := shared.NewClock(loc)

	blobs, err := storage.NewLocal(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		logger.Fatal("blob store", zap.Error(err))
	}

	contracts := gormrepo.NewContractRepository(gdb)
	customers := gormrepo.NewCustomerRepository(gdb)
	payments := gormrepo.NewPaymentRepository(gdb)
	audits := gormrepo.NewAuditRepository(gdb)
	inspections := gormrepo.NewInspectionRepository(gdb)
	images := gormrepo.NewImageRepository(gdb)
	staffs := gormrepo.NewStaffRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	contractUC := contract.NewUsecase(contract.Stores{
		Contracts:   contracts,
		Customers:   customers,
		Payments:    payments,
		Inspections: inspections,
		Audits:      audits,
	}, tx, cache.NewSequencer(rdb, contracts.MaxSequenceByQRPrefix), cat, contract.Options{
		Clock:            clock,
		PenaltyDailyRate: cfg.PenaltyDailyRate,
		NearingDueDays:   cfg.NearingDueDays,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.BodyLimit("8M"), middleware.RequestLogger())
	e.Static(cfg.BlobBaseURL, cfg.BlobDir)

	httpadp.Register(e, httpadp.Routes{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"db":    sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Contracts:   httpadp.NewContractHandler(contractUC),
		Customers:   httpadp.NewCustomerHandler(ucCustomer.NewUsecase(customers, contracts, audits, clock)),
		Payments:    httpadp.NewPaymentHandler(ucPayment.NewUsecase(contracts, payments, audits, tx, clock)),
		Inspections: httpadp.NewInspectionHandler(ucInspection.NewUsecase(contracts, inspections, images, audits, tx, clock)),
		QR:          httpadp.NewQRHandler(contractUC),
		Uploads:     httpadp.NewUploadHandler(ucAttachment.NewUsecase(blobs, images, contracts, audits, clock)),
		Auth:        middleware.Authenticate([]byte(cfg.JWTSecret), staffs),
		Idempotency: middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	})

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
