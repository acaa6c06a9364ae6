package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/config"
	"github.com/Arnold-CK/Anjo/internal/repository/mongodb"
	"github.com/Arnold-CK/Anjo/internal/repository/sheets"
	"github.com/Arnold-CK/Anjo/internal/scheduler"
	"github.com/Arnold-CK/Anjo/internal/server/handlers"
	"github.com/Arnold-CK/Anjo/internal/server/router"
	dashboardsvc "github.com/Arnold-CK/Anjo/internal/service/dashboard"
	entrysvc "github.com/Arnold-CK/Anjo/internal/service/entry"
	whatsappsvc "github.com/Arnold-CK/Anjo/internal/service/whatsapp"
	whatsappclient "github.com/Arnold-CK/Anjo/pkg/clients/whatsapp"
	"github.com/Arnold-CK/Anjo/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	books, err := sheets.NewWorkbooks(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	dashboardSvc := dashboardsvc.NewService(*books, loc, logger.Named(baseLogger, "svc.dashboard"))
	entrySvc := entrysvc.NewService(*books, loc, logger.Named(baseLogger, "svc.entry"))

	routes := router.Handlers{
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, logger.Named(baseLogger, "handlers.dashboard")),
		Entry:     handlers.NewEntryHandler(entrySvc, logger.Named(baseLogger, "handlers.entry")),
	}

	var store scheduler.SnapshotStore
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo
		routes.Snapshots = handlers.NewSnapshotHandler(mongoRepo, logger.Named(baseLogger, "handlers.snapshots"))
	} else {
		baseLogger.Warn("mongodb uri missing, weekly snapshots will not be archived")
	}

	var digest scheduler.DigestSender
	if cfg.WhatsApp.Enabled() {
		digest = whatsappsvc.NewDigestService(whatsappclient.NewClient(cfg.WhatsApp), cfg.WhatsApp.DigestRecipient, logger.Named(baseLogger, "svc.whatsapp"))
		baseLogger.Info("whatsapp weekly digest enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, weekly digest disabled")
	}

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, dashboardSvc, store, digest, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(routes, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
