package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashdeck/flashdeck-api/internal/api"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	setHandler := api.NewSetHandler(app.store, app.logger)
	cardHandler := api.NewCardHandler(app.store, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settings, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessions, app.store, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Set endpoints
		r.Get("/sets", setHandler.ListSets)
		r.Post("/sets", setHandler.CreateSet)
		r.Get("/sets/{id}", setHandler.GetSet)
		r.Put("/sets/{id}", setHandler.UpdateSet)
		r.Delete("/sets/{id}", setHandler.DeleteSet)

		// Card endpoints
		r.Get("/cards", cardHandler.ListCards)
		r.Post("/cards", cardHandler.CreateCard)
		r.Put("/cards/{id}", cardHandler.UpdateCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)

		// Settings endpoints
		r.Get("/settings", settingsHandler.GetSettings)
		r.Patch("/settings", settingsHandler.PatchSettings)

		// Play session endpoints
		r.Post("/sets/{id}/sessions", sessionHandler.StartSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Post("/sessions/{id}/{action}", sessionHandler.ApplyAction)
		r.Delete("/sessions/{id}", sessionHandler.EndSession)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
