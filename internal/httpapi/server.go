package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"audiod/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	Status() types.StatusResponse
	ListTriggers() []types.Trigger
	Backends() types.BackendsResponse
	Query(search string, maxDistance float64) []types.EventInfo
	Play(ctx context.Context, trigger, object string) (string, error)
	StopEvent(ctx context.Context, id string) error
	Switch(ctx context.Context, backend string) (types.SwitchResponse, error)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no backend"))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/triggers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.TriggersResponse{Triggers: svc.ListTriggers()})
	})

	r.Get("/backends", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Backends())
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			var dist float64
			if v := q.Get("distance"); v != "" {
				d, err := strconv.ParseFloat(v, 64)
				if err != nil || d < 0 {
					writeJSONError(w, http.StatusBadRequest, "distance must be a non-negative number")
					return
				}
				dist = d
			}
			writeJSON(w, http.StatusOK, types.EventsResponse{Events: svc.Query(q.Get("filter"), dist)})
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req types.PlayRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Trigger) == "" {
				writeJSONError(w, http.StatusBadRequest, "trigger is required")
				return
			}
			ctx, cancel := commandContext(r.Context())
			defer cancel()
			id, err := svc.Play(ctx, req.Trigger, req.Object)
			if err != nil {
				commandFailed(w, r, "play", err, map[string]any{"trigger": req.Trigger, "object": req.Object})
				return
			}
			logCommand(r, "play", http.StatusCreated, nil, map[string]any{"trigger": req.Trigger, "object": req.Object, "event": id})
			writeJSON(w, http.StatusCreated, types.PlayResponse{ID: id})
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			ctx, cancel := commandContext(r.Context())
			defer cancel()
			if err := svc.StopEvent(ctx, id); err != nil {
				commandFailed(w, r, "stop", err, map[string]any{"event": id})
				return
			}
			logCommand(r, "stop", http.StatusNoContent, nil, map[string]any{"event": id})
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Post("/switch", func(w http.ResponseWriter, r *http.Request) {
		var req types.SwitchRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Backend) == "" {
			writeJSONError(w, http.StatusBadRequest, "backend is required")
			return
		}
		ctx, cancel := commandContext(r.Context())
		defer cancel()
		res, err := svc.Switch(ctx, req.Backend)
		if err != nil {
			commandFailed(w, r, "switch", err, map[string]any{"backend": req.Backend})
			return
		}
		logCommand(r, "switch", http.StatusOK, nil, map[string]any{"from": res.Previous, "to": res.Current, "released": res.Released})
		writeJSON(w, http.StatusOK, res)
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// decodeJSON checks the content type and decodes a size-limited body into v.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// oversized bodies also land here; keep the size limit out of the message
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func commandFailed(w http.ResponseWriter, r *http.Request, op string, err error, fields map[string]any) {
	status := statusFor(err)
	countCommandError(op, status)
	logCommand(r, op, status, err, fields)
	// The client is gone; nobody reads the response.
	if r.Context().Err() != nil {
		return
	}
	writeJSONError(w, status, err.Error())
}
