package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-chi-calculator/internal/apperr"
	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// NewRouter mounts the calculator API under basePath along with the health
// and metrics endpoints. Unknown routes and methods get classified error
// reports.
func NewRouter(basePath string, calc *calculator.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(observability.RecoveryMiddleware)

	// Set before mounting so sub-routers inherit them.
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, basePath, calc)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	observability.WriteFailure(w, r, apperr.Newf(apperr.KindNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	observability.WriteFailure(w, r, apperr.Newf(apperr.KindMethodNotAllowed, "Method '%s' is not supported for this request", r.Method))
}
