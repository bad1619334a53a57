package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

type ObservabilityConfig struct {
	ServiceName   string
	MetricsPrefix string
	Disabled      bool
}

// Observability records request metrics and spans, plus export and rate
// change counters. Each instance owns its registry.
type Observability struct {
	cfg         ObservabilityConfig
	tracer      trace.Tracer
	requests    *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	exports     *prometheus.CounterVec
	rateChanges *prometheus.CounterVec
	registry    *prometheus.Registry
}

func NewObservability(cfg ObservabilityConfig) *Observability {
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	if cfg.MetricsPrefix == "" {
		cfg.MetricsPrefix = "dashboard"
	}
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.MetricsPrefix,
		Name:      "http_requests_total",
		Help:      "HTTP requests processed, by route, method and status.",
	}, []string{"route", "method", "status"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.MetricsPrefix,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.MetricsPrefix,
		Name:      "payout_exports_total",
		Help:      "Payout reports exported, by format and variant.",
	}, []string{"format", "variant"})
	rateChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.MetricsPrefix,
		Name:      "payout_rate_changes_total",
		Help:      "Accepted payout rate changes, by kind of change.",
	}, []string{"change"})
	registry.MustRegister(
		requests, durations, exports, rateChanges,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Observability{
		cfg:         cfg,
		tracer:      otel.Tracer(cfg.ServiceName),
		requests:    requests,
		durations:   durations,
		exports:     exports,
		rateChanges: rateChanges,
		registry:    registry,
	}
}

func (o *Observability) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o.cfg.Disabled {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ctx, span := o.tracer.Start(r.Context(), r.Method+" request", trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		))
		defer span.End()

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := recorder.status()
		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		o.requests.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		o.durations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (o *Observability) Exported(format domain.ExportFormat, variant domain.ReportVariant) {
	o.exports.WithLabelValues(string(format), string(variant)).Inc()
}

func (o *Observability) RateChanged(change string) {
	o.rateChanges.WithLabelValues(change).Inc()
}

func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
