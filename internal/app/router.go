package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/risk-radar/risk-radar/internal/invoices"
	"github.com/risk-radar/risk-radar/internal/overview"
	"github.com/risk-radar/risk-radar/internal/procurement"
	"github.com/risk-radar/risk-radar/internal/stock"
	"github.com/risk-radar/risk-radar/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	InvoiceHandler     *invoices.Handler
	StockHandler       *stock.Handler
	ProcurementHandler *procurement.Handler
	OverviewHandler    *overview.Handler
}

// NewRouter constructs the chi.Router serving the risk radar API and the
// static dashboard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The dashboard lives in the embedded static tree.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/dashboard.html", http.StatusTemporaryRedirect)
	})

	params.InvoiceHandler.MountRoutes(r)
	params.StockHandler.MountRoutes(r)
	params.ProcurementHandler.MountRoutes(r)
	if params.OverviewHandler != nil {
		params.OverviewHandler.MountRoutes(r)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// Static files are served without the per-route rate limits.
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers so the
// dashboard assets are cached for an hour in the browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
