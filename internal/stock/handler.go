package stock

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/risk-radar/risk-radar/internal/erpnext"
	"github.com/risk-radar/risk-radar/internal/platform/httpx"
)

// StockService is the contract the handler drives.
type StockService interface {
	Ledger(ctx context.Context, f LedgerFilters) (LedgerResult, error)
	LowStock(ctx context.Context, f LowStockFilters) (LowStockResult, error)
}

// Handler serves the stock ledger and low-stock endpoints.
type Handler struct {
	logger   *slog.Logger
	service  StockService
	validate *validator.Validate
}

// NewHandler constructs the stock HTTP handler.
func NewHandler(logger *slog.Logger, service StockService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

type limitParams struct {
	Limit int `validate:"gte=1,lte=1000"`
}

// lowStockDefaultLimit is the fetch window the endpoint requests when the
// caller does not set one. The service-level fallback stays larger for
// internal callers like the dashboard summary.
const lowStockDefaultLimit = 100

func (h *Handler) handleLedger(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLedgerLimit)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(limitParams{Limit: limit}); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	aggregate, err := queryBool(r, "aggregate", true)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Ledger(r.Context(), LedgerFilters{
		Limit:     limit,
		ItemCode:  r.URL.Query().Get("item_code"),
		Warehouse: r.URL.Query().Get("warehouse"),
		Aggregate: aggregate,
	})
	if err != nil {
		h.respondError(w, "stock ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", lowStockDefaultLimit)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(limitParams{Limit: limit}); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.LowStock(r.Context(), LowStockFilters{
		Limit:     limit,
		Warehouse: r.URL.Query().Get("warehouse"),
		ItemCode:  r.URL.Query().Get("item_code"),
	})
	if err != nil {
		h.respondError(w, "low stock", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	status, detail := erpnext.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	} else {
		h.logger.Warn(op, slog.Int("status", status), slog.Any("error", err))
	}
	httpx.Error(w, status, detail)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", name, raw)
	}
	return value, nil
}

func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q is not a boolean", name, raw)
	}
	return value, nil
}
