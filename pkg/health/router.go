package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router mounts /healthz (liveness) and /readyz (readiness) on a chi router.
func Router(checks Checks, opts ...Option) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", LivenessHandler())
	r.Get("/readyz", ReadinessHandler(checks, opts...))
	return r
}
