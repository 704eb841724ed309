package collection

import (
	"errors"
	"fmt"
)

// Errors returned by collection store write paths. Read paths never error
// for absent entities, and deleting something that is already gone is a
// silent no-op.
var (
	// ErrCapacityExceeded is returned when adding or moving a card would
	// push a set past MaxCardsPerSet. The store's state is left untouched.
	ErrCapacityExceeded = errors.New("set card capacity exceeded")

	// ErrSetNotFound is returned when a card write targets a set that does
	// not exist. Cards may never reference a missing set.
	ErrSetNotFound = errors.New("set not found")
)

// capacityError wraps ErrCapacityExceeded with the offending set ID.
func capacityError(setID string) error {
	return fmt.Errorf("%w: set %s already holds %d cards", ErrCapacityExceeded, setID, MaxCardsPerSet)
}
