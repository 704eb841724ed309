package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// validate is the shared request validator. validator.Validate is safe for
// concurrent use.
var validate = validator.New()

// TagRequest is one tag entry inside a set payload. The ID may be empty on
// creation; the handler assigns one.
type TagRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,max=16"`
}

// SetRequest defines the payload for creating or replacing a set.
type SetRequest struct {
	Name  string       `json:"name"  validate:"required,min=3,max=16"`
	Label string       `json:"label"`
	Icon  string       `json:"icon"  validate:"required"`
	Tags  []TagRequest `json:"tags"  validate:"omitempty,dive"`
}

// CardRequest defines the payload for creating or replacing a card.
type CardRequest struct {
	SetID      string `json:"setId"      validate:"required"`
	TopText    string `json:"topText"    validate:"required,max=100"`
	BottomText string `json:"bottomText" validate:"required,max=100"`
	Tag        string `json:"tag"`
}

// SettingsRequest defines the payload for a partial settings update.
// Omitted fields are left unchanged.
type SettingsRequest struct {
	ShowProgressBar *bool   `json:"showProgressBar"`
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

// SetDetailResponse is a set together with its cards, returned by the
// single-set endpoint.
type SetDetailResponse struct {
	domain.Set
	Cards []domain.Card `json:"cards"`
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. Returns a client-facing error message on failure.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
