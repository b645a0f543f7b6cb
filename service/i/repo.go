package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/google/uuid"
)

// RunRepo keeps the history of finished runs.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID retrieves a run by its unique ID.
	// Returns dmn.ErrRunNotFound if there is no such run.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
}
