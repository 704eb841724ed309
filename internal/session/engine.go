package session

import (
	"math/rand/v2"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Engine holds the state of one play session: an ordered card sequence, a
// cursor into it, and the flip state of the card under the cursor.
//
// The engine never returns errors. An empty sequence yields no current
// card and zero progress, and every navigation operation tolerates it
// without producing negative indices. Engine is not safe for concurrent
// use; the Manager serializes access.
type Engine struct {
	cards   []domain.Card
	cursor  int
	flipped bool
}

// NewEngine creates an engine over the given cards with the cursor on the
// first card, unflipped.
func NewEngine(cards []domain.Card) *Engine {
	e := &Engine{}
	e.Reconcile(cards)
	return e
}

// Reconcile adopts a new card list for the session, keeping the user's
// position sensible:
//
//   - An empty list resets the session entirely.
//   - If the card under the cursor still exists in the new list, the
//     cursor follows it to its new position and the flip state is kept:
//     the user is still looking at the same card.
//   - If that card is gone, the cursor is clamped into range and the flip
//     state resets, since a flipped state referring to a now-different
//     card would be confusing.
func (e *Engine) Reconcile(cards []domain.Card) {
	if len(cards) == 0 {
		e.cards = nil
		e.cursor = 0
		e.flipped = false
		return
	}

	var currentID string
	if e.cursor < len(e.cards) {
		currentID = e.cards[e.cursor].ID
	}

	next := make([]domain.Card, len(cards))
	copy(next, cards)

	if idx := cursorFor(currentID, next); idx >= 0 {
		e.cursor = idx
	} else {
		if e.cursor > len(next)-1 {
			e.cursor = len(next) - 1
		}
		e.flipped = false
	}
	e.cards = next
}

// cursorFor locates the card with the given ID in cards.
// Returns -1 when cardID is empty or not present.
func cursorFor(cardID string, cards []domain.Card) int {
	if cardID == "" {
		return -1
	}
	for i := range cards {
		if cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

// Flip toggles the current card between front and back.
func (e *Engine) Flip() {
	e.flipped = !e.flipped
}

// Next advances the cursor and resets the flip state.
// No-op when the cursor is already on the last card.
func (e *Engine) Next() {
	if e.cursor < len(e.cards)-1 {
		e.cursor++
		e.flipped = false
	}
}

// Previous moves the cursor back and resets the flip state.
// No-op when the cursor is already on the first card.
func (e *Engine) Previous() {
	if e.cursor > 0 {
		e.cursor--
		e.flipped = false
	}
}

// Shuffle applies a uniform random permutation (Fisher-Yates) to the
// sequence and restarts from the front, unflipped. Membership is
// unchanged: the same cards remain in the session.
func (e *Engine) Shuffle() {
	rand.Shuffle(len(e.cards), func(i, j int) {
		e.cards[i], e.cards[j] = e.cards[j], e.cards[i]
	})
	e.cursor = 0
	e.flipped = false
}

// Restart moves back to the first card, unflipped, without reordering.
func (e *Engine) Restart() {
	e.cursor = 0
	e.flipped = false
}

// CurrentCard returns the card under the cursor.
// The second result is false when the session is empty.
func (e *Engine) CurrentCard() (domain.Card, bool) {
	if len(e.cards) == 0 {
		return domain.Card{}, false
	}
	return e.cards[e.cursor], true
}

// Cursor returns the current position in the sequence.
func (e *Engine) Cursor() int {
	return e.cursor
}

// TotalCards returns the number of cards in the session.
func (e *Engine) TotalCards() int {
	return len(e.cards)
}

// IsFlipped reports whether the current card shows its back side.
func (e *Engine) IsFlipped() bool {
	return e.flipped
}

// Progress returns how far through the sequence the cursor is, as a
// percentage. An empty session is 0%.
func (e *Engine) Progress() float64 {
	if len(e.cards) == 0 {
		return 0
	}
	return float64(e.cursor+1) / float64(len(e.cards)) * 100
}

// IsFirstCard reports whether the cursor is on the first card.
// Trivially true for an empty session.
func (e *Engine) IsFirstCard() bool {
	return e.cursor == 0
}

// IsLastCard reports whether the cursor is on the last card.
// Trivially true for an empty session.
func (e *Engine) IsLastCard() bool {
	return len(e.cards) == 0 || e.cursor == len(e.cards)-1
}
