package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/virtualta/internal/metrics"
)

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	CORS               CORSOptions
	RateLimitPerMinute int
	RateLimitBurst     int
	APIKeys            []string
}

// NewRouter mounts the API routes behind the middleware chain.
func NewRouter(s *Server, logger *zap.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(logger))
	r.Use(CORS(opts.CORS))
	r.Use(OptionsOK)
	r.Use(RateLimitMiddleware(opts.RateLimitPerMinute, opts.RateLimitBurst))
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	r.Post("/api", s.Ask)
	r.Post("/api/", s.Ask)
	r.Get("/api/health", s.Health)
	r.Get("/api/recent", s.Recent)
	r.Get("/metrics", s.Metrics)

	r.NotFound(s.NotFound)
	r.MethodNotAllowed(s.NotFound)

	return r
}
