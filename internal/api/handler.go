package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/amakhet/soil-api/internal/metrics"
	"github.com/amakhet/soil-api/internal/model"
	"github.com/amakhet/soil-api/internal/provider"
	"github.com/amakhet/soil-api/internal/soil"
)

const (
	serviceName      = "AmaKhet Soil Analysis API"
	completedMessage = "Soil analysis completed successfully"
)

// DefaultAllowedOrigins are the browser origins accepted when none are configured.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5000"}

// Handler serves the soil analysis endpoints.
type Handler struct {
	provider     provider.Provider
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	origins      []string
	bufferMeters int
	windowDays   int
	now          func() time.Time
	router       chi.Router
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics records request outcomes in m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.metrics = m
		h.gatherer = g
	}
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) {
		if len(origins) > 0 {
			h.origins = origins
		}
	}
}

// WithDefaults sets the buffer and trailing window used by the coordinate route
// and by bodies without buffer_meters.
func WithDefaults(bufferMeters, windowDays int) Option {
	return func(h *Handler) {
		if bufferMeters > 0 {
			h.bufferMeters = bufferMeters
		}
		if windowDays > 0 {
			h.windowDays = windowDays
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// New creates a Handler backed by p and registers all routes.
func New(p provider.Provider, opts ...Option) *Handler {
	h := &Handler{
		provider:     p,
		origins:      DefaultAllowedOrigins,
		bufferMeters: 50,
		windowDays:   90,
		now:          time.Now,
	}
	for _, o := range opts {
		o(h)
	}

	r := chi.NewRouter()
	r.Use(corsHandler(h.origins))
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Post("/api/soil-analysis", h.analyzeBody)
	r.Get("/api/soil-analysis/{lat}/{lon}", h.analyzeCoordinates)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) simulated() bool {
	return h.provider.Variant() == provider.VariantSimulated
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	msg := serviceName
	if h.simulated() {
		msg += " (Simple Version)"
	}
	jsonResp(w, http.StatusOK, RootResponse{Message: msg})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: h.timestamp()})
}

func (h *Handler) analyzeBody(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, badRequestf("Invalid request body: %v", err))
		return
	}
	loc, err := req.Location(h.bufferMeters)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.analyze(w, r, loc)
}

func (h *Handler) analyzeCoordinates(w http.ResponseWriter, r *http.Request) {
	window := model.TrailingWindow(h.now().UTC(), h.windowDays)
	loc, err := pathLocation(chi.URLParam(r, "lat"), chi.URLParam(r, "lon"), h.bufferMeters, window)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.analyze(w, r, loc)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, loc model.Location) {
	resp, err := h.Analyze(r.Context(), loc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.ObserveAnalysis(string(h.provider.Variant()), metrics.OutcomeSuccess)
	jsonResp(w, http.StatusOK, resp)
}

// Analyze measures loc, classifies the measurements and wraps the report in
// the success envelope. Provider errors are returned unchanged.
func (h *Handler) Analyze(ctx context.Context, loc model.Location) (*AnalysisResponse, error) {
	start := time.Now()
	m, err := h.provider.Measure(ctx, loc)
	h.metrics.ObserveProvider(string(h.provider.Variant()), time.Since(start))
	if err != nil {
		return nil, err
	}

	report := soil.Classify(*m)
	msg := completedMessage
	if h.simulated() {
		msg += " (simulated data)"
	}

	zap.L().Info("soil analysis completed",
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude),
		zap.String("status", string(report.Status)),
		zap.Int("health_percentage", report.HealthPercentage),
	)
	return &AnalysisResponse{
		Success:   true,
		Data:      &report,
		Message:   msg,
		Timestamp: h.timestamp(),
	}, nil
}

// fail maps err to a status code and writes the detail body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	variant := string(h.provider.Variant())

	var br *badRequest
	if errors.As(err, &br) {
		h.metrics.ObserveAnalysis(variant, metrics.OutcomeClientError)
		jsonErr(w, http.StatusBadRequest, br.msg)
		return
	}

	h.metrics.ObserveAnalysis(variant, metrics.OutcomeFailure)
	zap.L().Error("soil analysis failed",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("variant", variant),
		zap.Error(err),
	)
	jsonErr(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Detail: msg})
}
