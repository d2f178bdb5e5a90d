package procurement

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

// ProcurementService is the contract the handler drives.
type ProcurementService interface {
	Delayed(ctx context.Context, limit int) (DelayedResult, error)
}

// Handler serves the delayed purchase order endpoint.
type Handler struct {
	logger   *slog.Logger
	service  ProcurementService
	validate *validator.Validate
}

// NewHandler constructs the procurement HTTP handler.
func NewHandler(logger *slog.Logger, service ProcurementService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

type limitParams struct {
	Limit int `validate:"gte=1,lte=1000"`
}

func (h *Handler) handleDelayed(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(limitParams{Limit: limit}); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Delayed(r.Context(), limit)
	if err != nil {
		h.respondError(w, "delayed purchase orders", err)
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
