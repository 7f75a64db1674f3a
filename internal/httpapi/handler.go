package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/catalogsql"
	"comfora/core-go/internal/configurator"
	"comfora/core-go/internal/db"
	"comfora/core-go/internal/metrics"
	"comfora/core-go/internal/pricing"
	"comfora/core-go/internal/quotecache"
)

// quoteQueries is the slice of catalogsql the handler needs for audit rows.
type quoteQueries interface {
	InsertPriceQuote(ctx context.Context, arg catalogsql.InsertPriceQuoteParams) error
}

type Handler struct {
	log     zerolog.Logger
	pool    *db.Pool
	quotes  quoteQueries
	store   *catalog.Store
	cache   *quotecache.Cache
	metrics *metrics.Metrics
}

func NewHandler(log zerolog.Logger, pool *db.Pool, store *catalog.Store, cache *quotecache.Cache, m *metrics.Metrics) *Handler {
	var q quoteQueries
	if queries := pool.Queries(); queries != nil {
		q = queries
	}
	if store == nil {
		store = catalog.NewStore(nil)
	}
	return &Handler{log: log, pool: pool, quotes: q, store: store, cache: cache, metrics: m}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(h.accessLog)

	// Health
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/configurator", func(r chi.Router) {
				r.Get("/options", h.handleOptions)
				r.Post("/normalize", h.handleNormalize)
				r.Post("/price", h.handlePrice)
			})
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			ww.Header().Set("X-Request-ID", reqID)
		}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		h.metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.Status(), duration)
		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("http_request")
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	// The engine itself needs no database; readiness only degrades when a
	// configured database stops answering.
	if h.pool != nil {
		if err := h.pool.Ping(ctx); err != nil {
			h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not ready", map[string]any{"error": err.Error()})
			return
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"ready":           true,
		"catalog_version": h.store.Current().Version,
	})
}

type normalizeResponse struct {
	Config  configurator.Configuration `json:"config"`
	Derived configurator.Derived       `json:"derived"`
}

func (h *Handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var raw configurator.RawConfiguration
	if err := decodeJSONStrict(r, &raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid request body", map[string]any{"error": err.Error()})
		return
	}

	cfg := configurator.Normalize(raw)
	h.metrics.IncNormalizePass()

	h.writeJSON(w, http.StatusOK, normalizeResponse{
		Config:  cfg,
		Derived: configurator.Derive(cfg),
	})
}

type priceResponse struct {
	Config  configurator.Configuration `json:"config"`
	Derived configurator.Derived       `json:"derived"`
	Pricing pricing.Breakdown          `json:"pricing"`
	Cached  bool                       `json:"cached"`
}

func (h *Handler) handlePrice(w http.ResponseWriter, r *http.Request) {
	var raw configurator.RawConfiguration
	if err := decodeJSONStrict(r, &raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid request body", map[string]any{"error": err.Error()})
		return
	}

	cfg := configurator.Normalize(raw)
	h.metrics.IncNormalizePass()
	snap := h.store.Current()

	breakdown, cached := h.priceWithCache(r.Context(), cfg, snap)
	h.metrics.IncQuotePriced(cached)
	if breakdown.Incomplete {
		h.metrics.IncIncompletePricing()
	}

	h.recordQuote(r.Context(), cfg, breakdown)

	h.writeJSON(w, http.StatusOK, priceResponse{
		Config:  cfg,
		Derived: configurator.Derive(cfg),
		Pricing: breakdown,
		Cached:  cached,
	})
}

func (h *Handler) priceWithCache(ctx context.Context, cfg configurator.Configuration, snap *catalog.Snapshot) (pricing.Breakdown, bool) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return configurator.Price(cfg, snap), false
	}

	key := h.cache.Key(snap.Version, payload)
	if data, ok := h.cache.Get(ctx, key); ok {
		var bd pricing.Breakdown
		if err := json.Unmarshal(data, &bd); err == nil {
			return bd, true
		}
	}

	bd := configurator.Price(cfg, snap)
	if data, err := json.Marshal(bd); err == nil {
		h.cache.Set(ctx, key, data)
	}
	return bd, false
}

// recordQuote persists a quote audit row when a database is configured.
// Failures are logged and never surface to the shopper.
func (h *Handler) recordQuote(ctx context.Context, cfg configurator.Configuration, bd pricing.Breakdown) {
	if h.quotes == nil {
		return
	}

	var configMap map[string]any
	if data, err := json.Marshal(cfg); err == nil {
		_ = json.Unmarshal(data, &configMap)
	}

	err := h.quotes.InsertPriceQuote(ctx, catalogsql.InsertPriceQuoteParams{
		Shape:             string(cfg.Shape),
		Config:            configMap,
		TotalPrice:        bd.TotalPrice,
		TotalFabricMeters: bd.TotalFabricMeters,
		Incomplete:        bd.Incomplete,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to record price quote")
	}
}
