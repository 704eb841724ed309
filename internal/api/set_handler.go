package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// SetHandler handles set-related HTTP requests.
type SetHandler struct {
	store  *collection.Store
	logger *slog.Logger
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(store *collection.Store, logger *slog.Logger) *SetHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SetHandler")
	}

	return &SetHandler{
		store:  store,
		logger: logger.With(slog.String("component", "set_handler")),
	}
}

// ListSets handles GET /sets requests.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, h.store.Sets())
}

// GetSet handles GET /sets/{id} requests, returning the set and its cards.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	set, ok := h.store.GetSet(id)
	if !ok {
		RespondWithError(w, r, http.StatusNotFound, "Set not found")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SetDetailResponse{
		Set:   set,
		Cards: h.store.CardsForSet(id),
	})
}

// CreateSet handles POST /sets requests.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req SetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	set, err := domain.NewSet(req.Name, req.Label, req.Icon, tagsFromRequest(req.Tags))
	if err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	if err := h.store.AddSet(r.Context(), *set); err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	h.logger.Debug("set created", slog.String("set_id", set.ID))
	RespondWithJSON(w, r, http.StatusCreated, set)
}

// UpdateSet handles PUT /sets/{id} requests.
func (h *SetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.store.GetSet(id); !ok {
		RespondWithError(w, r, http.StatusNotFound, "Set not found")
		return
	}

	var req SetRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	set := domain.Set{
		ID:    id,
		Name:  req.Name,
		Label: req.Label,
		Icon:  req.Icon,
		Tags:  tagsFromRequest(req.Tags),
	}

	if err := h.store.UpdateSet(r.Context(), id, set); err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	updated, _ := h.store.GetSet(id)
	RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteSet handles DELETE /sets/{id} requests. The set's cards are
// removed with it; deleting an absent set is still a 204 because the
// desired end state already holds.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.RemoveSet(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// tagsFromRequest converts tag payloads to domain tags, assigning IDs to
// new tags that arrive without one.
func tagsFromRequest(reqs []TagRequest) []domain.Tag {
	if len(reqs) == 0 {
		return nil
	}
	tags := make([]domain.Tag, len(reqs))
	for i, tr := range reqs {
		id := tr.ID
		if id == "" {
			id = uuid.NewString()
		}
		tags[i] = domain.Tag{ID: id, Name: tr.Name}
	}
	return tags
}
