package main

import (
	"errors"
	"net/http"

	"github.com/AdamBeresnev/pitwall/internal/config"
	"github.com/AdamBeresnev/pitwall/internal/httputil"
	"github.com/AdamBeresnev/pitwall/internal/metrics"
	"github.com/AdamBeresnev/pitwall/internal/service"
	"github.com/AdamBeresnev/pitwall/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newRouter(dbConn *sqlx.DB, cfg *config.Config) http.Handler {
	stores := store.New(dbConn)
	scoringService := service.NewScoringService(dbConn, stores)
	standings := service.NewStandingsCache(service.NewCompetitionService(dbConn, stores), cfg.StandingsCacheTTL)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbConn.PingContext(r.Context()); err != nil {
			httputil.InternalServerError(w, "Database unavailable", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Get("/competitions/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
		competitionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid competition ID", err)
			return
		}

		entries, err := standings.Standings(r.Context(), competitionID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				httputil.NotFound(w, "Competition not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get standings", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, entries)
	})

	r.Post("/events/{id}/score", func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid event ID", err)
			return
		}

		report, err := scoringService.ScoreEvent(r.Context(), eventID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				httputil.NotFound(w, "Event not found", err)
			case errors.Is(err, service.ErrNoVerifiedResults):
				httputil.Conflict(w, "Event has no verified results", err)
			default:
				httputil.InternalServerError(w, "Failed to score event", err)
			}
			return
		}
		standings.Invalidate(report.CompetitionID)
		httputil.WriteJSON(w, http.StatusOK, report)
	})

	return r
}
