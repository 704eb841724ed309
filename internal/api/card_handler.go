package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	store  *collection.Store
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(store *collection.Store, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		store:  store,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards requests. With a ?set={id} query parameter
// it returns only that set's cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	if setID := r.URL.Query().Get("set"); setID != "" {
		RespondWithJSON(w, r, http.StatusOK, h.store.CardsForSet(setID))
		return
	}
	RespondWithJSON(w, r, http.StatusOK, h.store.Cards())
}

// CreateCard handles POST /cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	card, err := domain.NewCard(req.SetID, req.TopText, req.BottomText, req.Tag)
	if err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	if err := h.store.AddCard(r.Context(), *card); err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	// Re-read so the response carries the derived tag label.
	created, _ := h.store.GetCard(card.ID)
	h.logger.Debug("card created",
		slog.String("card_id", card.ID),
		slog.String("set_id", card.SetID))
	RespondWithJSON(w, r, http.StatusCreated, created)
}

// UpdateCard handles PUT /cards/{id} requests.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.store.GetCard(id); !ok {
		RespondWithError(w, r, http.StatusNotFound, "Card not found")
		return
	}

	var req CardRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	card := domain.Card{
		ID:         id,
		SetID:      req.SetID,
		TopText:    req.TopText,
		BottomText: req.BottomText,
		Tag:        req.Tag,
	}

	if err := h.store.UpdateCard(r.Context(), id, card); err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	updated, _ := h.store.GetCard(id)
	RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteCard handles DELETE /cards/{id} requests. Deleting an absent card
// is still a 204 because the desired end state already holds.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.DeleteCard(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
