// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/alos-ai/alos/libs/shipment-engine/cmd/shipment-api/handlers"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/classify"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/config"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/observability"
	"github.com/alos-ai/alos/libs/shipment-engine/internal/planner"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, engine *classify.Engine, pl *planner.Planner, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"shipment-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		// The catalog is embedded before the router exists, so reaching
		// this handler means the engine is usable.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	classifyHandler := handlers.NewClassifyHandler(logger, engine)
	quoteHandler := handlers.NewQuoteHandler(logger)
	planHandler := handlers.NewPlanHandler(logger, pl)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/classify", classifyHandler.Classify)

		r.Route("/routes", func(r chi.Router) {
			r.Post("/quote", quoteHandler.Quote)
		})

		r.Route("/shipments", func(r chi.Router) {
			r.Post("/plan", planHandler.Plan)
		})
	})

	return r
}
