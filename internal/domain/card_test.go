package domain

import (
	"testing"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid card creation
	setID := "set-1"

	card, err := NewCard(setID, "What is Go?", "A programming language", "tag-1")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == "" {
		t.Error("Expected generated ID, got empty string")
	}

	if card.SetID != setID {
		t.Errorf("Expected set ID %s, got %s", setID, card.SetID)
	}

	if card.TopText != "What is Go?" {
		t.Errorf("Expected top text %q, got %q", "What is Go?", card.TopText)
	}

	if card.Tag != "tag-1" {
		t.Errorf("Expected tag %q, got %q", "tag-1", card.Tag)
	}

	if card.TagLabel != "" {
		t.Errorf("Expected empty tag label on creation, got %q", card.TagLabel)
	}

	// Test invalid setID
	_, err = NewCard("", "front", "back", "")
	if err != ErrCardSetIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardSetIDEmpty, err)
	}

	// Test empty top text
	_, err = NewCard(setID, "", "back", "")
	if err != ErrCardTopTextEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardTopTextEmpty, err)
	}

	// Test empty bottom text
	_, err = NewCard(setID, "front", "", "")
	if err != ErrCardBottomTextEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardBottomTextEmpty, err)
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validCard := Card{
		ID:         "card-1",
		SetID:      "set-1",
		TopText:    "front",
		BottomText: "back",
	}

	if err := validCard.Validate(); err != nil {
		t.Errorf("Expected valid card, got error %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Card)
		wantErr error
	}{
		{"empty ID", func(c *Card) { c.ID = "" }, ErrCardIDEmpty},
		{"empty set ID", func(c *Card) { c.SetID = "" }, ErrCardSetIDEmpty},
		{"empty top text", func(c *Card) { c.TopText = "" }, ErrCardTopTextEmpty},
		{"empty bottom text", func(c *Card) { c.BottomText = "" }, ErrCardBottomTextEmpty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard
			tc.mutate(&card)
			if err := card.Validate(); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}

	// An empty tag reference is legal; it simply means "no tag".
	untagged := validCard
	untagged.Tag = ""
	untagged.TagLabel = ""
	if err := untagged.Validate(); err != nil {
		t.Errorf("Expected untagged card to be valid, got %v", err)
	}
}
