package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardSetIDEmpty is returned when a card's set ID is empty.
	ErrCardSetIDEmpty = errors.New("card set ID cannot be empty")

	// ErrCardTopTextEmpty is returned when a card's front side is empty.
	ErrCardTopTextEmpty = errors.New("card top text cannot be empty")

	// ErrCardBottomTextEmpty is returned when a card's back side is empty.
	ErrCardBottomTextEmpty = errors.New("card bottom text cannot be empty")
)

// Card is one flashcard belonging to exactly one Set. TopText is the front
// of the card and BottomText the back. Tag optionally references a Tag.ID
// in the owning set; TagLabel is a denormalized copy of that tag's name,
// derived at write time and never supplied by callers.
type Card struct {
	ID         string `json:"id"`
	SetID      string `json:"setId"`
	TopText    string `json:"topText"`
	BottomText string `json:"bottomText"`
	Tag        string `json:"tag"`
	TagLabel   string `json:"tagLabel"`
}

// NewCard creates a new Card with a generated ID. TagLabel is left empty;
// the collection store derives it from the owning set when the card is
// written. Returns an error if validation fails.
func NewCard(setID, topText, bottomText, tag string) (*Card, error) {
	card := &Card{
		ID:         uuid.NewString(),
		SetID:      setID,
		TopText:    topText,
		BottomText: bottomText,
		Tag:        tag,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrCardIDEmpty
	}

	if c.SetID == "" {
		return ErrCardSetIDEmpty
	}

	if c.TopText == "" {
		return ErrCardTopTextEmpty
	}

	if c.BottomText == "" {
		return ErrCardBottomTextEmpty
	}

	return nil
}
