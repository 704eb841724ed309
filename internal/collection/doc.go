// Package collection implements the stores that own the app's durable
// state: the collection store for sets and cards, and the settings store
// for user preferences.
//
// Both stores follow the same lifecycle: construct with New*, call Hydrate
// once at startup to load durable records into memory, then read and
// mutate through the store's methods. After hydration the in-memory state
// is the source of truth for reads; every mutation applies in memory first
// and then writes the whole affected record back to durable storage.
// Hydration never fails the app: unreadable or corrupt records are logged
// and treated as empty (or default) state.
package collection
