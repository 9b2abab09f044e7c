package overrides

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no override has ever been saved.
var ErrNotFound = errors.New("override not found")

// Store is the interface for override persistence backends. Each backend
// holds at most one override per dataset: saving replaces the previous
// snapshot wholesale.
type Store interface {
	// Load retrieves the saved override.
	// Returns ErrNotFound if no layout has ever been saved.
	Load(ctx context.Context) (*Override, error)

	// Save stores an override, replacing any previous snapshot.
	Save(ctx context.Context, o *Override) error

	// Delete removes the saved override. Deleting when nothing is saved
	// is not an error.
	Delete(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
