package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evalhq/rubric/internal/config"
	"github.com/evalhq/rubric/internal/events"
	"github.com/evalhq/rubric/internal/store"
)

func NewRouter(s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	configs := NewConfigHandler(s, ev, logger)
	rankings := NewRankingHandler(s)
	scores := NewScoresHandler(s, ev)
	reports := NewReportsHandler(s, ev, cfg.Ranking.DefaultReportTitle)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", configs.ListProjects)
		r.Get("/scoring/templates", configs.Templates)

		r.Route("/projects/{project_id}", func(r chi.Router) {
			r.Get("/scoring/config", configs.Get)
			r.Put("/scoring/config", configs.Put)
			r.Delete("/scoring/config", configs.Delete)
			r.Post("/scoring/config/validate", configs.Validate)

			r.Get("/ranking", rankings.Get)
			r.Post("/ranking/preview", rankings.Preview)
			r.Get("/dashboard", rankings.Dashboard)

			r.Get("/scores", scores.List)
			r.Put("/scores", scores.Put)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
				r.Post("/reports", reports.Create)
				r.Get("/reports", reports.List)
			})
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
