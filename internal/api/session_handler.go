package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/session"
)

// SessionHandler handles play-session HTTP requests.
type SessionHandler struct {
	manager *session.Manager
	store   *collection.Store
	logger  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	manager *session.Manager,
	store *collection.Store,
	logger *slog.Logger,
) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		manager: manager,
		store:   store,
		logger:  logger.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /sets/{id}/sessions requests, opening a play
// session over the set's current cards.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "id")

	if _, ok := h.store.GetSet(setID); !ok {
		RespondWithError(w, r, http.StatusNotFound, "Set not found")
		return
	}

	view := h.manager.Start(setID, h.store.CardsForSet(setID))
	RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /sessions/{id} requests.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}
	RespondWithJSON(w, r, http.StatusOK, view)
}

// ApplyAction handles POST /sessions/{id}/{action} requests for the
// flip, next, previous, shuffle and restart operations.
func (h *SessionHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	action, ok := session.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		RespondWithError(w, r, http.StatusBadRequest, "Unknown session action")
		return
	}

	view, err := h.manager.Apply(chi.URLParam(r, "id"), action)
	if err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}
	RespondWithJSON(w, r, http.StatusOK, view)
}

// EndSession handles DELETE /sessions/{id} requests. Ending an unknown
// session is still a 204.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	h.manager.End(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
