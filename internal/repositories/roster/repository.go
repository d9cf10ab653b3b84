// Package roster provides the interface for persisting the tracked character roster
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/artifact-tracker/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
)

// DefaultKey is the storage key the roster snapshot lives under
const DefaultKey = "genshinTracker_v1"

// Repository persists the whole roster as a single snapshot.
// There are no partial updates: every Save overwrites the previous snapshot.
type Repository interface {
	// Load returns the stored roster in display order
	// Returns an empty roster with Found=false when nothing was saved yet
	// Returns errors.DataLoss when the stored snapshot cannot be decoded
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save overwrites the stored roster
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// LoadInput defines the input for loading the roster
type LoadInput struct{}

// LoadOutput defines the output for loading the roster
type LoadOutput struct {
	Characters []entities.CharacterData
	Found      bool
}

// SaveInput defines the input for saving the roster
type SaveInput struct {
	Characters []entities.CharacterData
}

// SaveOutput defines the output for saving the roster
type SaveOutput struct {
	Bytes int
}
