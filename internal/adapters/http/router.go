package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arceusss10/sports-news-dashboard/internal/application"
)

const (
	limitSession = "session"
	limitExports = "exports"
)

type Options struct {
	RequestTimeout time.Duration
	RateLimits     map[string]RateLimit
	Observability  ObservabilityConfig
}

// Handler binds the dashboard use-cases to HTTP.
type Handler struct {
	service *application.Service
	obs     *Observability
	limiter *RateLimiter
	timeout time.Duration
}

func NewHandler(service *application.Service, opts Options) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Handler{
		service: service,
		obs:     NewObservability(opts.Observability),
		limiter: NewRateLimiter(opts.RateLimits),
		timeout: opts.RequestTimeout,
	}
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(h.obs.Middleware)

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Method(http.MethodGet, "/metrics", h.obs.MetricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))
		r.Use(h.actorMiddleware)

		r.With(h.limiter.Middleware(limitSession)).Post("/session", h.createSession)

		r.Get("/news", h.listNews)
		r.Get("/news/categories/{category}", h.listNewsByCategory)

		r.Get("/rates", h.getRates)
		r.Put("/rates", h.setRates)
		r.Post("/rates/randomize", h.randomizeRates)

		r.Post("/payouts/total", h.computeTotal)
		r.Post("/payouts/authors", h.computePerAuthor)
		r.Post("/payouts/ledger", h.computeLedger)

		r.Group(func(r chi.Router) {
			r.Use(h.limiter.Middleware(limitExports))
			r.Post("/exports/total/{format}", h.exportTotal)
			r.Post("/exports/authors/{format}", h.exportPerAuthor)
		})
	})

	return r
}
