package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/vehicle-decision/internal/engine"
	"github.com/iwvelando/vehicle-decision/internal/scenario"
	"github.com/iwvelando/vehicle-decision/pkg/constants"
	"github.com/iwvelando/vehicle-decision/pkg/output"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type contextKey struct{}

type handler struct {
	logger      *zap.Logger
	engine      *engine.Engine
	scenarios   *scenario.Generator
	cache       ResultCache
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the decision API. A nil
// cache disables response caching.
func NewHandler(logger *zap.Logger, cfg *Config, eng *engine.Engine, cache ResultCache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if eng == nil {
		eng = engine.New(logger, nil)
	}

	maxBodySize := cfg.BodySizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      eng,
		scenarios:   scenario.New(logger, eng),
		cache:       cache,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	router := mux.NewRouter()
	router.Use(h.withRequestID)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(h.notFound)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/validate", h.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/analyze", h.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/scenarios", h.handleScenarios).Methods(http.MethodPost)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(router)
}

type validateResponse struct {
	Issues []engine.ValidationIssue `json:"issues"`
}

type analyzeResponse struct {
	Issues  []engine.ValidationIssue `json:"issues"`
	Result  *engine.Result           `json:"result"`
	Display *output.Display          `json:"display"`
}

type scenariosResponse struct {
	Scenarios []scenario.Result `json:"scenarios"`
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

func (h *handler) requestLogger(r *http.Request, op string) *zap.Logger {
	id, _ := r.Context().Value(contextKey{}).(string)
	return h.logger.With(zap.String("op", op), zap.String("requestId", id))
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidate"
	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	issues := h.engine.Validate(in)
	if issues == nil {
		issues = []engine.ValidationIssue{}
	}
	h.writeJSON(w, http.StatusOK, validateResponse{Issues: issues})
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnalyze"
	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	h.cached(w, r, op, "analyze", in, func() interface{} {
		outcome := h.engine.Run(in)
		issues := outcome.Issues
		if issues == nil {
			issues = []engine.ValidationIssue{}
		}
		return analyzeResponse{
			Issues:  issues,
			Result:  outcome.Result,
			Display: output.NewDisplay(outcome.Result),
		}
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	in, ok := h.decodeInputs(w, r, op)
	if !ok {
		return
	}

	h.cached(w, r, op, "scenarios", in, func() interface{} {
		return scenariosResponse{Scenarios: h.scenarios.Generate(in)}
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": http.StatusText(http.StatusMethodNotAllowed)})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, map[string]string{"error": http.StatusText(http.StatusNotFound)})
}

// decodeInputs reads one VehicleInputs snapshot from the body. Malformed
// field values are not errors; only unreadable JSON is rejected.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request, op string) (*engine.VehicleInputs, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var in engine.VehicleInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return nil, false
	}
	return &in, true
}

// cached serves a computed response, consulting the cache by a digest of the
// re-encoded inputs so formatting differences share an entry. A hit replays
// the stored body, so calculatedAt is the time of the original computation.
func (h *handler) cached(w http.ResponseWriter, r *http.Request, op, route string, in *engine.VehicleInputs, compute func() interface{}) {
	logger := h.requestLogger(r, op)
	start := time.Now()

	var key string
	if h.cache != nil {
		canonical, err := json.Marshal(in)
		if err == nil {
			key = CacheKey(route, canonical)
			body, hit, err := h.cache.Get(r.Context(), key)
			if err != nil {
				logger.Warn("cache lookup failed", zap.Error(err))
			}
			if hit {
				w.Header().Set("X-Cache", "hit")
				h.writeRaw(w, http.StatusOK, body)
				logger.Debug("served cached response", zap.String("key", key))
				return
			}
		}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(compute()); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), op)
		return
	}

	if key != "" {
		if err := h.cache.Set(r.Context(), key, buf.Bytes()); err != nil {
			logger.Warn("cache store failed", zap.Error(err))
		}
		w.Header().Set("X-Cache", "miss")
	}

	logger.Info("decision computed",
		zap.String("route", route),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeRaw(w, http.StatusOK, buf.Bytes())
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r, op).Error("decision request failed",
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
