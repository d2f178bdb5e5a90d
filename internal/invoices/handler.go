package invoices

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

// Defaults carries the deployment-level overdue risk thresholds. Historic
// deployments ran with 7/8 and 14/15 day boundaries; both remain reachable
// through configuration and per-request parameters.
type Defaults struct {
	DaysMediumMax int
	DaysHighMin   int
}

// InvoiceService is the contract the handler drives.
type InvoiceService interface {
	List(ctx context.Context, limit int) (ListResult, error)
	Overdue(ctx context.Context, f OverdueFilters) (OverdueReport, error)
}

// Handler serves the invoice endpoints.
type Handler struct {
	logger   *slog.Logger
	service  InvoiceService
	defaults Defaults
	validate *validator.Validate
}

// NewHandler constructs the invoice HTTP handler.
func NewHandler(logger *slog.Logger, service InvoiceService, defaults Defaults) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		defaults: defaults,
		validate: validator.New(),
	}
}

type overdueParams struct {
	Limit         int `validate:"gte=1,lte=1000"`
	DaysMediumMax int `validate:"gte=1"`
	DaysHighMin   int `validate:"gte=1"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.respondError(w, "list invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	mediumMax, err := queryInt(r, "days_medium_max", h.defaults.DaysMediumMax)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	highMin, err := queryInt(r, "days_high_min", h.defaults.DaysHighMin)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params := overdueParams{Limit: limit, DaysMediumMax: mediumMax, DaysHighMin: highMin}
	if err := h.validate.Struct(params); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Overdue(r.Context(), OverdueFilters{
		Limit:         limit,
		Customer:      r.URL.Query().Get("customer"),
		DaysMediumMax: mediumMax,
		DaysHighMin:   highMin,
	})
	if err != nil {
		h.respondError(w, "overdue invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
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
