package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prima-crm/prima-crm/internal/app"
	"github.com/prima-crm/prima-crm/internal/auth"
	"github.com/prima-crm/prima-crm/internal/dashboard"
	"github.com/prima-crm/prima-crm/internal/leads"
	"github.com/prima-crm/prima-crm/internal/masterdata"
	"github.com/prima-crm/prima-crm/internal/platform/cache"
	"github.com/prima-crm/prima-crm/internal/platform/db"
	"github.com/prima-crm/prima-crm/internal/quotation"
	"github.com/prima-crm/prima-crm/internal/revenue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	devMode := cfg.DevMode()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, redisClient, cfg.SessionTTL)
	authHandler := auth.NewHandler(logger, authService, devMode)

	lookups := masterdata.NewRepository(pool)
	quotationRepo := quotation.NewRepository(pool)
	quotationService := quotation.NewService(quotationRepo, lookups, logger)
	quotationHandler := quotation.NewHandler(logger, quotationService, devMode)
	quotationAdmin := quotation.NewAdminHandler(logger, quotationService, devMode)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardRepo := dashboard.NewRepository(pool)
	dashboardService := dashboard.NewService(dashboardRepo, quotationRepo, dashboardCache, logger)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, devMode)
	if err := dashboardCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("dashboard cache listener", slog.Any("error", err))
	}

	leadsRepo := leads.NewRepository(pool)
	leadsService := leads.NewService(leadsRepo, logger)
	leadsHandler := leads.NewHandler(logger, leadsService, devMode)

	revenueRepo := revenue.NewRepository(pool)
	revenueService := revenue.NewService(revenueRepo, redisClient, logger)
	revenueHandler := revenue.NewHandler(logger, revenueService, devMode)

	router := app.NewRouter(app.RouterParams{
		Logger:                logger,
		Config:                cfg,
		AuthService:           authService,
		AuthHandler:           authHandler,
		QuotationHandler:      quotationHandler,
		QuotationAdminHandler: quotationAdmin,
		DashboardHandler:      dashboardHandler,
		LeadsHandler:          leadsHandler,
		RevenueHandler:        revenueHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
