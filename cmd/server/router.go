package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycgate/internal/platform/config"
	adminmw "kycgate/pkg/platform/middleware/admin"
	"kycgate/pkg/platform/middleware/request"
	"kycgate/pkg/platform/middleware/requesttime"
	"kycgate/pkg/platform/validation"
)

func newRouter(cfg config.Config, log *slog.Logger, app *application) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(request.Latency(request.NewMetrics(), routePattern))

	app.health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(request.ContentTypeJSON)
		r.Use(requesttime.Middleware)
		r.Use(chimw.Timeout(cfg.RequestTimeout))

		app.handler.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(adminGuard(cfg.AdminToken, log))
			app.handler.RegisterAdmin(r)
		})
	})
	return r
}

// adminGuard enforces the admin token when one is configured. Without a token
// only the reviewer identity is captured.
func adminGuard(token string, log *slog.Logger) func(http.Handler) http.Handler {
	if token == "" {
		log.Warn("ADMIN_API_TOKEN not set; admin routes are unguarded")
		return adminmw.CaptureActor
	}
	return adminmw.RequireAdminToken(token, log)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
