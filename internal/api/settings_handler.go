package api

import (
	"log/slog"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// SettingsHandler handles settings-related HTTP requests.
type SettingsHandler struct {
	settings *collection.SettingsStore
	logger   *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *collection.SettingsStore, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		settings: settings,
		logger:   logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings requests.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, h.settings.Settings())
}

// PatchSettings handles PATCH /settings requests, merging the provided
// fields into the stored settings.
func (h *SettingsHandler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	patch := collection.SettingsPatch{ShowProgressBar: req.ShowProgressBar}
	if req.Theme != nil {
		theme := domain.Theme(*req.Theme)
		patch.Theme = &theme
	}

	updated, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	RespondWithJSON(w, r, http.StatusOK, updated)
}
