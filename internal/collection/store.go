package collection

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/storage"
)

// MaxCardsPerSet is the hard cap on cards attached to a single set.
const MaxCardsPerSet = 250

// Durable record keys. Kept stable across releases so existing installs
// keep their data.
const (
	setsRecordKey  = "flashcard-sets-storage"
	cardsRecordKey = "flashcard-cards-storage"
)

// Snapshot is an immutable view of the collection handed to subscribers
// after every successful mutation.
type Snapshot struct {
	Sets  []domain.Set
	Cards []domain.Card
}

// Subscriber receives a fresh snapshot whenever the collection changes.
type Subscriber func(Snapshot)

// Store is the sole owner of durable set and card state. All mutations
// pass through it: it applies the change in memory, persists the whole
// affected record, and then notifies subscribers.
//
// A Store must be constructed with New and hydrated once before use.
type Store struct {
	mu          sync.RWMutex
	records     storage.RecordStore
	logger      *slog.Logger
	sets        []domain.Set
	cards       []domain.Card
	hydrated    bool
	subscribers []Subscriber
}

// New creates a new collection Store backed by the given record store.
func New(records storage.RecordStore, logger *slog.Logger) *Store {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for collection.Store")
	}

	return &Store{
		records: records,
		logger:  logger.With(slog.String("component", "collection_store")),
	}
}

// Hydrate loads the sets and cards records from durable storage into
// memory. Missing records mean a first run and yield empty collections.
// Read or parse failures are logged and likewise treated as empty state so
// the app can always start; they are never surfaced to the caller.
// Hydrate is idempotent: once hydrated, further calls do nothing.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}

	s.sets = loadRecord[domain.Set](ctx, s.records, setsRecordKey, s.logger)
	s.cards = loadRecord[domain.Card](ctx, s.records, cardsRecordKey, s.logger)
	s.hydrated = true

	s.logger.Info("collection hydrated",
		slog.Int("sets", len(s.sets)),
		slog.Int("cards", len(s.cards)))
}

// loadRecord reads and unmarshals one JSON array record, falling back to
// an empty slice on any failure.
func loadRecord[T any](
	ctx context.Context,
	records storage.RecordStore,
	key string,
	logger *slog.Logger,
) []T {
	data, err := records.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNoRecord) {
			logger.Warn("failed to read record, starting empty",
				slog.String("key", key),
				slog.Any("error", err))
		}
		return []T{}
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("failed to parse record, starting empty",
			slog.String("key", key),
			slog.Any("error", err))
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// IsHydrated reports whether Hydrate has completed.
func (s *Store) IsHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Subscribe registers fn to receive a snapshot after every successful
// mutation. Subscribers are called synchronously, outside the store's
// lock, in registration order.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Sets returns a copy of the ordered set collection.
func (s *Store) Sets() []domain.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSets(s.sets)
}

// Cards returns a copy of the ordered card collection.
func (s *Store) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCards(s.cards)
}

// CardsForSet returns a copy of the cards belonging to one set, in
// collection order.
func (s *Store) CardsForSet(setID string) []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Card{}
	for _, card := range s.cards {
		if card.SetID == setID {
			out = append(out, card)
		}
	}
	return out
}

// GetSet returns the set with the given ID, if present.
func (s *Store) GetSet(id string) (domain.Set, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sets {
		if s.sets[i].ID == id {
			return s.sets[i].Clone(), true
		}
	}
	return domain.Set{}, false
}

// GetCard returns the card with the given ID, if present.
func (s *Store) GetCard(id string) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, card := range s.cards {
		if card.ID == id {
			return card, true
		}
	}
	return domain.Card{}, false
}

// AddSet appends a set to the collection and persists the sets record.
func (s *Store) AddSet(ctx context.Context, set domain.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.sets = append(s.sets, set.Clone())
	s.persistSets(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// UpdateSet replaces the set with the given ID in place, preserving its
// position in the ordered collection. Updating an absent ID is a no-op.
func (s *Store) UpdateSet(ctx context.Context, id string, set domain.Set) error {
	set.ID = id
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.sets {
		if s.sets[i].ID == id {
			s.sets[i] = set.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.mu.Unlock()
		return nil
	}
	s.persistSets(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// RemoveSet deletes the set with the given ID and every card that belongs
// to it, in one logical step, then persists both records. Removing an
// absent ID is a no-op.
func (s *Store) RemoveSet(ctx context.Context, id string) {
	s.mu.Lock()

	kept := s.sets[:0:0]
	for _, set := range s.sets {
		if set.ID != id {
			kept = append(kept, set)
		}
	}
	if len(kept) == len(s.sets) {
		s.mu.Unlock()
		return
	}
	s.sets = kept

	keptCards := s.cards[:0:0]
	for _, card := range s.cards {
		if card.SetID != id {
			keptCards = append(keptCards, card)
		}
	}
	s.cards = keptCards

	s.persistSets(ctx)
	s.persistCards(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// AddCard appends a card to the collection and persists the cards record.
// Returns ErrSetNotFound if the card's set does not exist, and
// ErrCapacityExceeded if the set already holds MaxCardsPerSet cards; in
// both cases no state changes.
func (s *Store) AddCard(ctx context.Context, card domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	set, ok := s.findSetLocked(card.SetID)
	if !ok {
		s.mu.Unlock()
		return ErrSetNotFound
	}

	if s.countCardsLocked(card.SetID, "") >= MaxCardsPerSet {
		s.mu.Unlock()
		return capacityError(card.SetID)
	}

	card.TagLabel = set.TagName(card.Tag)
	s.cards = append(s.cards, card)
	s.persistCards(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// UpdateCard replaces the card with the given ID in place. If the update
// moves the card to a different set, the destination set's capacity is
// re-checked excluding the moving card. Updating an absent ID is a no-op.
func (s *Store) UpdateCard(ctx context.Context, id string, card domain.Card) error {
	card.ID = id
	if err := card.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := -1
	for i := range s.cards {
		if s.cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	set, ok := s.findSetLocked(card.SetID)
	if !ok {
		s.mu.Unlock()
		return ErrSetNotFound
	}

	if card.SetID != s.cards[idx].SetID &&
		s.countCardsLocked(card.SetID, id) >= MaxCardsPerSet {
		s.mu.Unlock()
		return capacityError(card.SetID)
	}

	card.TagLabel = set.TagName(card.Tag)
	s.cards[idx] = card
	s.persistCards(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// DeleteCard removes the card with the given ID and persists the cards
// record. Deleting an absent ID is a no-op.
func (s *Store) DeleteCard(ctx context.Context, id string) {
	s.mu.Lock()

	kept := s.cards[:0:0]
	for _, card := range s.cards {
		if card.ID != id {
			kept = append(kept, card)
		}
	}
	if len(kept) == len(s.cards) {
		s.mu.Unlock()
		return
	}
	s.cards = kept

	s.persistCards(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Store) findSetLocked(id string) (domain.Set, bool) {
	for i := range s.sets {
		if s.sets[i].ID == id {
			return s.sets[i], true
		}
	}
	return domain.Set{}, false
}

// countCardsLocked counts the cards attached to setID, excluding the card
// with excludeID (used when re-checking capacity for a cross-set move).
func (s *Store) countCardsLocked(setID, excludeID string) int {
	n := 0
	for _, card := range s.cards {
		if card.SetID == setID && card.ID != excludeID {
			n++
		}
	}
	return n
}

// persistSets serializes the entire sets collection and writes it through.
// Write failures are logged but not propagated: the in-memory state is the
// source of truth and the next successful write re-serializes everything.
func (s *Store) persistSets(ctx context.Context) {
	data, err := json.Marshal(s.sets)
	if err != nil {
		s.logger.Error("failed to serialize sets record", slog.Any("error", err))
		return
	}
	if err := s.records.Write(ctx, setsRecordKey, data); err != nil {
		s.logger.Error("failed to persist sets record", slog.Any("error", err))
	}
}

// persistCards mirrors persistSets for the cards record.
func (s *Store) persistCards(ctx context.Context) {
	data, err := json.Marshal(s.cards)
	if err != nil {
		s.logger.Error("failed to serialize cards record", slog.Any("error", err))
		return
	}
	if err := s.records.Write(ctx, cardsRecordKey, data); err != nil {
		s.logger.Error("failed to persist cards record", slog.Any("error", err))
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Sets:  cloneSets(s.sets),
		Cards: cloneCards(s.cards),
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	subscribers := make([]Subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

func cloneSets(sets []domain.Set) []domain.Set {
	out := make([]domain.Set, len(sets))
	for i := range sets {
		out[i] = sets[i].Clone()
	}
	return out
}

func cloneCards(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, len(cards))
	copy(out, cards)
	return out
}
