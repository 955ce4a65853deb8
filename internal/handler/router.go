package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"blogapp/internal/logger"
)

// HealthCheck probes a single backing dependency.
type HealthCheck func(ctx context.Context) error

// NewRouter assembles the HTTP surface: the admin API behind a shared
// token and an unauthenticated health endpoint. An empty token disables
// the auth check, which is only acceptable for local development.
func NewRouter(admin *AdminHandler, adminToken string, checks map[string]HealthCheck, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", healthz(checks))

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAdminToken(adminToken))

		r.Post("/posts/{id}/approve", admin.ApprovePost)
		r.Post("/posts/{id}/unpublish", admin.UnpublishPost)
		r.Delete("/posts/{id}", admin.DeletePost)
		r.Put("/users/{id}/status", admin.UpdateUserStatus)
		r.Get("/delivery-attempts", admin.ListDeliveryAttempts)
	})

	return r
}

func requireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" {
				got := r.Header.Get("X-Admin-Token")
				if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
					respondError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				logger.Component("http"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		respondJSON(w, status, results)
	}
}
