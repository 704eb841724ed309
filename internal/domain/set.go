package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Set-specific validation errors
var (
	// ErrSetIDEmpty is returned when a set ID is empty.
	ErrSetIDEmpty = errors.New("set ID cannot be empty")

	// ErrSetNameEmpty is returned when a set's name is empty.
	ErrSetNameEmpty = errors.New("set name cannot be empty")

	// ErrSetIconEmpty is returned when a set's icon is empty.
	ErrSetIconEmpty = errors.New("set icon cannot be empty")

	// ErrTagIDEmpty is returned when a tag's ID is empty.
	ErrTagIDEmpty = errors.New("tag ID cannot be empty")

	// ErrTagNameEmpty is returned when a tag's name is empty.
	ErrTagNameEmpty = errors.New("tag name cannot be empty")

	// ErrTagIDDuplicate is returned when two tags in the same set share an ID.
	ErrTagIDDuplicate = errors.New("tag ID duplicated within set")
)

// Tag is a user-defined label scoped to one Set. Cards belonging to that
// set may reference a tag by ID for filtering and display.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Set is a named, user-created collection of flashcards. A set owns its
// tags; they are embedded in the set record rather than stored separately.
// The Label field holds a color/category token chosen by the user and the
// Icon field holds an emoji or symbol shown on the set's card in the UI.
type Set struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Tags  []Tag  `json:"tags"`
}

// NewSet creates a new Set with a generated ID.
// Returns an error if validation fails.
func NewSet(name, label, icon string, tags []Tag) (*Set, error) {
	set := &Set{
		ID:    uuid.NewString(),
		Name:  name,
		Label: label,
		Icon:  icon,
		Tags:  tags,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the Set has valid data.
// Returns an error if any field fails validation.
func (s *Set) Validate() error {
	if s.ID == "" {
		return ErrSetIDEmpty
	}

	if s.Name == "" {
		return ErrSetNameEmpty
	}

	if s.Icon == "" {
		return ErrSetIconEmpty
	}

	seen := make(map[string]bool, len(s.Tags))
	for _, tag := range s.Tags {
		if tag.ID == "" {
			return ErrTagIDEmpty
		}
		if tag.Name == "" {
			return ErrTagNameEmpty
		}
		if seen[tag.ID] {
			return ErrTagIDDuplicate
		}
		seen[tag.ID] = true
	}

	return nil
}

// TagName resolves a tag ID to the tag's current name within this set.
// Returns the empty string if tagID is empty or does not match any tag.
// Card write paths use this to derive the denormalized TagLabel field, so
// a card's label always reflects the owning set's tag names at write time.
func (s *Set) TagName(tagID string) string {
	if tagID == "" {
		return ""
	}
	for _, tag := range s.Tags {
		if tag.ID == tagID {
			return tag.Name
		}
	}
	return ""
}

// Clone returns a deep copy of the set, including its tags.
func (s *Set) Clone() Set {
	out := *s
	if s.Tags != nil {
		out.Tags = make([]Tag, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}
