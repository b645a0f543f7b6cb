package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/google/uuid"
)

// RunStore keeps the live runs and serialises access to each of them.
type RunStore interface {
	// Save stores the run, replacing any previous version.
	Save(ctx context.Context, run *dmn.Run) error

	// Load returns the stored run or dmn.ErrRunNotFound.
	Load(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// Delete removes the run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the IDs of the stored runs, most recently updated first.
	List(ctx context.Context) ([]uuid.UUID, error)

	// Lock takes the per-run lock. The returned func releases it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}
