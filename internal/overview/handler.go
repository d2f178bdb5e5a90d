// Package overview serves the combined KPI summary behind the dashboard's
// headline strip, fanning out to the three risk reports concurrently.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/invoices"
	"github.com/risk-radar/risk-radar/internal/platform/httpx"
	"github.com/risk-radar/risk-radar/internal/procurement"
	"github.com/risk-radar/risk-radar/internal/stock"
)

// Panel carries one report's headline counters.
type Panel struct {
	Count       int `json:"count"`
	MediumCount int `json:"medium_count"`
	HighCount   int `json:"high_count"`
}

// Summary is the payload of the dashboard summary endpoint.
type Summary struct {
	OverdueInvoices         Panel   `json:"overdue_invoices"`
	TotalOutstandingOverdue float64 `json:"total_outstanding_overdue"`
	LowStock                Panel   `json:"low_stock"`
	DelayedPurchaseOrders   Panel   `json:"delayed_purchase_orders"`
}

// InvoiceService provides the overdue invoice report.
type InvoiceService interface {
	Overdue(ctx context.Context, f invoices.OverdueFilters) (invoices.OverdueReport, error)
}

// StockService provides the low-stock report.
type StockService interface {
	LowStock(ctx context.Context, f stock.LowStockFilters) (stock.LowStockResult, error)
}

// ProcurementService provides the delayed purchase order report.
type ProcurementService interface {
	Delayed(ctx context.Context, limit int) (procurement.DelayedResult, error)
}

// Handler serves the combined dashboard summary.
type Handler struct {
	logger      *slog.Logger
	invoices    InvoiceService
	stock       StockService
	procurement ProcurementService
	defaults    invoices.Defaults
}

// NewHandler constructs the overview HTTP handler.
func NewHandler(logger *slog.Logger, inv InvoiceService, stk StockService, proc ProcurementService, defaults invoices.Defaults) *Handler {
	return &Handler{
		logger:      logger,
		invoices:    inv,
		stock:       stk,
		procurement: proc,
		defaults:    defaults,
	}
}

// There is no partial summary: if any report fails the whole request fails
// through the same status mapping as the individual endpoints.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	var (
		overdue invoices.OverdueReport
		low     stock.LowStockResult
		delayed procurement.DelayedResult
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		overdue, err = h.invoices.Overdue(ctx, invoices.OverdueFilters{
			DaysMediumMax: h.defaults.DaysMediumMax,
			DaysHighMin:   h.defaults.DaysHighMin,
		})
		return err
	})
	g.Go(func() error {
		var err error
		low, err = h.stock.LowStock(ctx, stock.LowStockFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		delayed, err = h.procurement.Delayed(ctx, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		status, detail := erpnext.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("dashboard summary", slog.Any("error", err))
		} else {
			h.logger.Warn("dashboard summary", slog.Int("status", status), slog.Any("error", err))
		}
		httpx.Error(w, status, detail)
		return
	}

	httpx.JSON(w, http.StatusOK, Summary{
		OverdueInvoices: Panel{
			Count:       overdue.Count,
			MediumCount: overdue.MediumCount,
			HighCount:   overdue.HighCount,
		},
		TotalOutstandingOverdue: overdue.KPIs.TotalOutstandingOverdueAmount,
		LowStock: Panel{
			Count:       low.Count,
			MediumCount: low.MediumCount,
			HighCount:   low.HighCount,
		},
		DelayedPurchaseOrders: Panel{
			Count:       delayed.Count,
			MediumCount: delayed.MediumCount,
			HighCount:   delayed.HighCount,
		},
	})
}
