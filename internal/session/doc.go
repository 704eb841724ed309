// Package session implements play mode: the engine that turns one set's
// cards into a navigable, shuffleable study sequence, and the manager that
// tracks live sessions and keeps them consistent with the collection as it
// changes underneath them.
package session
