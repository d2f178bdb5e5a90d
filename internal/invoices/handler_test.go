package invoices

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risk-radar/risk-radar/internal/erpnext"
)

type stubService struct {
	listResult  ListResult
	listErr     error
	overdue     OverdueReport
	overdueErr  error
	lastFilters OverdueFilters
}

func (s *stubService) List(_ context.Context, limit int) (ListResult, error) {
	return s.listResult, s.listErr
}

func (s *stubService) Overdue(_ context.Context, f OverdueFilters) (OverdueReport, error) {
	s.lastFilters = f
	return s.overdue, s.overdueErr
}

func newTestRouter(service InvoiceService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, service, Defaults{DaysMediumMax: 7, DaysHighMin: 8})
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestHandleListOK(t *testing.T) {
	service := &stubService{listResult: ListResult{Count: 1, Data: []Invoice{{Name: "SINV-0001"}}}}
	router := newTestRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count": 1, "data": [{"name": "SINV-0001", "customer": "", "posting_date": "", "due_date": "", "status": "", "outstanding_amount": 0, "grand_total": 0, "currency": ""}]}`, rec.Body.String())
}

func TestHandleListRejectsBadLimit(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices?limit=abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid limit")
}

func TestHandleOverdueAppliesDeploymentDefaults(t *testing.T) {
	service := &stubService{overdue: OverdueReport{Data: []OverdueInvoice{}}}
	router := newTestRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices/overdue", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, service.lastFilters.DaysMediumMax)
	assert.Equal(t, 8, service.lastFilters.DaysHighMin)
	assert.Equal(t, DefaultLimit, service.lastFilters.Limit)
}

func TestHandleOverdueForwardsParams(t *testing.T) {
	service := &stubService{overdue: OverdueReport{Data: []OverdueInvoice{}}}
	router := newTestRouter(service)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/overdue?limit=25&customer=Acme&days_medium_max=14&days_high_min=15", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, OverdueFilters{
		Limit:         25,
		Customer:      "Acme",
		DaysMediumMax: 14,
		DaysHighMin:   15,
	}, service.lastFilters)
}

func TestHandleOverdueValidatesParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{name: "limit too large", query: "limit=1001"},
		{name: "limit zero", query: "limit=0"},
		{name: "negative threshold", query: "days_high_min=-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubService{})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices/overdue?"+tc.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleOverdueErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "config error",
			err:        &erpnext.ConfigError{Message: "Missing ERP_URL in environment"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail": "Missing ERP_URL in environment"}`,
		},
		{
			name:       "authentication",
			err:        &erpnext.StatusError{StatusCode: 401, Status: "401 Unauthorized", Doctype: "Sales Invoice"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail": "ERPNext authentication failed"}`,
		},
		{
			name:       "upstream failure",
			err:        &erpnext.StatusError{StatusCode: 500, Status: "500 Internal Server Error", Doctype: "Sales Invoice"},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"detail": "ERPNext API error: Sales Invoice listing returned 500 Internal Server Error"}`,
		},
		{
			name:       "unreachable",
			err:        erpnext.ErrUnreachable,
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"detail": "Cannot connect to ERPNext"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubService{overdueErr: tc.err})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices/overdue", nil))

			require.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
