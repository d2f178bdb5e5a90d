package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/risk-radar/risk-radar/internal/app"
	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/invoices"
	"github.com/risk-radar/risk-radar/internal/overview"
	"github.com/risk-radar/risk-radar/internal/procurement"
	"github.com/risk-radar/risk-radar/internal/stock"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	client := erpnext.NewClient(erpnext.Config{
		BaseURL:   cfg.ERPURL,
		APIKey:    cfg.ERPAPIKey,
		APISecret: cfg.ERPAPISecret,
	})

	overdueDefaults := invoices.Defaults{
		DaysMediumMax: cfg.OverdueDaysMediumMax,
		DaysHighMin:   cfg.OverdueDaysHighMin,
	}

	invoiceService := invoices.NewService(client)
	invoiceHandler := invoices.NewHandler(logger, invoiceService, overdueDefaults)

	stockService := stock.NewService(client)
	stockHandler := stock.NewHandler(logger, stockService)

	procurementService := procurement.NewService(client)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	overviewHandler := overview.NewHandler(logger, invoiceService, stockService, procurementService, overdueDefaults)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		InvoiceHandler:     invoiceHandler,
		StockHandler:       stockHandler,
		ProcurementHandler: procurementHandler,
		OverviewHandler:    overviewHandler,
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
