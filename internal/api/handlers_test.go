package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/storage"
	"github.com/flashdeck/flashdeck-api/internal/session"
)

// testEnv wires a real collection store, settings store and session
// manager behind a chi router, mirroring the server's route table.
type testEnv struct {
	router   *chi.Mux
	store    *collection.Store
	settings *collection.SettingsStore
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	store := collection.New(records, logger)
	settings := collection.NewSettings(records, logger)
	store.Hydrate(context.Background())
	settings.Hydrate(context.Background())

	sessions := session.NewManager(logger)
	store.Subscribe(sessions.HandleSnapshot)

	setHandler := NewSetHandler(store, logger)
	cardHandler := NewCardHandler(store, logger)
	settingsHandler := NewSettingsHandler(settings, logger)
	sessionHandler := NewSessionHandler(sessions, store, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/sets", setHandler.ListSets)
		r.Post("/sets", setHandler.CreateSet)
		r.Get("/sets/{id}", setHandler.GetSet)
		r.Put("/sets/{id}", setHandler.UpdateSet)
		r.Delete("/sets/{id}", setHandler.DeleteSet)
		r.Get("/cards", cardHandler.ListCards)
		r.Post("/cards", cardHandler.CreateCard)
		r.Put("/cards/{id}", cardHandler.UpdateCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)
		r.Get("/settings", settingsHandler.GetSettings)
		r.Patch("/settings", settingsHandler.PatchSettings)
		r.Post("/sets/{id}/sessions", sessionHandler.StartSession)
		r.Get("/sessions/{id}", sessionHandler.GetSession)
		r.Post("/sessions/{id}/{action}", sessionHandler.ApplyAction)
		r.Delete("/sessions/{id}", sessionHandler.EndSession)
	})

	return &testEnv{router: r, store: store, settings: settings, sessions: sessions}
}

// do performs a request against the test router and decodes the JSON
// response body into out when it is non-nil.
func (env *testEnv) do(t *testing.T, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func (env *testEnv) createSet(t *testing.T, req SetRequest) domain.Set {
	t.Helper()
	var set domain.Set
	rec := env.do(t, http.MethodPost, "/api/sets", req, &set)
	require.Equal(t, http.StatusCreated, rec.Code)
	return set
}

func TestSetEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	set := env.createSet(t, SetRequest{
		Name: "Spanish",
		Icon: "📚",
		Tags: []TagRequest{{Name: "verbs"}},
	})
	assert.NotEmpty(t, set.ID)
	require.Len(t, set.Tags, 1)
	assert.NotEmpty(t, set.Tags[0].ID, "tag IDs are assigned server-side")

	var sets []domain.Set
	rec := env.do(t, http.MethodGet, "/api/sets", nil, &sets)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sets, 1)

	var detail SetDetailResponse
	rec = env.do(t, http.MethodGet, "/api/sets/"+set.ID, nil, &detail)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, set.ID, detail.ID)
	assert.Empty(t, detail.Cards)

	rec = env.do(t, http.MethodGet, "/api/sets/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var updated domain.Set
	rec = env.do(t, http.MethodPut, "/api/sets/"+set.ID,
		SetRequest{Name: "Castellano", Icon: "📚"}, &updated)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Castellano", updated.Name)

	rec = env.do(t, http.MethodPut, "/api/sets/missing",
		SetRequest{Name: "Ghost set", Icon: "👻"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/sets/"+set.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.store.Sets())

	// Deleting again is still 204: the set is already gone.
	rec = env.do(t, http.MethodDelete, "/api/sets/"+set.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateSetValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  SetRequest
	}{
		{"name too short", SetRequest{Name: "ab", Icon: "📚"}},
		{"name too long", SetRequest{Name: "seventeen chars!!", Icon: "📚"}},
		{"missing icon", SetRequest{Name: "Spanish"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/sets", tc.req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCardEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	set := env.createSet(t, SetRequest{
		Name: "Spanish",
		Icon: "📚",
		Tags: []TagRequest{{ID: "t1", Name: "verbs"}},
	})

	var card domain.Card
	rec := env.do(t, http.MethodPost, "/api/cards", CardRequest{
		SetID:      set.ID,
		TopText:    "hola",
		BottomText: "hello",
		Tag:        "t1",
	}, &card)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "verbs", card.TagLabel, "tag label derived from the set's tag")

	rec = env.do(t, http.MethodPost, "/api/cards", CardRequest{
		SetID:      "missing",
		TopText:    "a",
		BottomText: "b",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var cards []domain.Card
	rec = env.do(t, http.MethodGet, "/api/cards?set="+set.ID, nil, &cards)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cards, 1)

	var updated domain.Card
	rec = env.do(t, http.MethodPut, "/api/cards/"+card.ID, CardRequest{
		SetID:      set.ID,
		TopText:    "buenos dias",
		BottomText: "good morning",
	}, &updated)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buenos dias", updated.TopText)
	assert.Empty(t, updated.TagLabel, "cleared tag clears the label")

	rec = env.do(t, http.MethodPut, "/api/cards/missing", CardRequest{
		SetID:      set.ID,
		TopText:    "a",
		BottomText: "b",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/cards/"+card.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.store.Cards())
}

func TestCardCapacityConflict(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	set := env.createSet(t, SetRequest{Name: "Full set", Icon: "🗂️"})

	// Fill the set through the store directly; the HTTP round-trips are
	// not what this test is about.
	for i := 0; i < collection.MaxCardsPerSet; i++ {
		card, err := domain.NewCard(set.ID, fmt.Sprintf("front %d", i), "back", "")
		require.NoError(t, err)
		require.NoError(t, env.store.AddCard(ctx, *card))
	}

	rec := env.do(t, http.MethodPost, "/api/cards", CardRequest{
		SetID:      set.ID,
		TopText:    "one too many",
		BottomText: "nope",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, env.store.CardsForSet(set.ID), collection.MaxCardsPerSet)
}

func TestSettingsEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	var settings domain.Settings
	rec := env.do(t, http.MethodGet, "/api/settings", nil, &settings)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultSettings(), settings)

	light := "light"
	hide := false
	rec = env.do(t, http.MethodPatch, "/api/settings", SettingsRequest{
		Theme:           &light,
		ShowProgressBar: &hide,
	}, &settings)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ThemeLight, settings.Theme)
	assert.False(t, settings.ShowProgressBar)

	sepia := "sepia"
	rec = env.do(t, http.MethodPatch, "/api/settings", SettingsRequest{Theme: &sepia}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	set := env.createSet(t, SetRequest{Name: "Spanish", Icon: "📚"})

	var created []domain.Card
	for _, front := range []string{"uno", "dos", "tres"} {
		card, err := domain.NewCard(set.ID, front, "n", "")
		require.NoError(t, err)
		require.NoError(t, env.store.AddCard(ctx, *card))
		created = append(created, *card)
	}

	var view session.View
	rec := env.do(t, http.MethodPost, "/api/sets/"+set.ID+"/sessions", nil, &view)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, view.TotalCards)
	require.NotNil(t, view.CurrentCard)
	assert.Equal(t, "uno", view.CurrentCard.TopText)

	rec = env.do(t, http.MethodPost, "/api/sets/missing/sessions", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/flip", nil, &view)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, view.IsFlipped)

	rec = env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/next", nil, &view)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, view.Cursor)
	assert.False(t, view.IsFlipped)

	rec = env.do(t, http.MethodPost, "/api/sessions/"+view.ID+"/sideways", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/sessions/missing/next", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting the current card through the API reconciles the session.
	rec = env.do(t, http.MethodDelete, "/api/cards/"+created[1].ID, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/sessions/"+view.ID, nil, &view)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, view.TotalCards)
	require.NotNil(t, view.CurrentCard)
	assert.Equal(t, "tres", view.CurrentCard.TopText)

	rec = env.do(t, http.MethodDelete, "/api/sessions/"+view.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/sessions/"+view.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
