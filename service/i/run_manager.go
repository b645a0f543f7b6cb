package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/google/uuid"
)

// RunManager hosts exploration runs driven over the API.
type RunManager interface {
	// Create starts a run from the origin towards goal.
	Create(ctx context.Context, goal explorer.Point) (*dmn.Run, error)

	// Report applies a sensor report to the run.
	Report(ctx context.Context, id uuid.UUID, r explorer.SensorReport) (*dmn.Run, error)

	// Expand queues the reachable neighbors of p.
	Expand(ctx context.Context, id uuid.UUID, p explorer.Point) (*dmn.Run, error)

	// Next pops the next frontier cell and moves the robot there. It returns false when
	// nothing is left to explore.
	Next(ctx context.Context, id uuid.UUID) (explorer.Point, bool, error)

	// Step reports (when r is not nil), expands and moves the robot in one call.
	Step(ctx context.Context, id uuid.UUID, r *explorer.SensorReport) (*dmn.StepResult, error)

	Cell(ctx context.Context, id uuid.UUID, p explorer.Point) (explorer.Cell, error)
	Dump(ctx context.Context, id uuid.UUID) (string, error)
	Status(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
	FrontierLen(ctx context.Context, id uuid.UUID) (int, error)
	List(ctx context.Context) ([]*dmn.Run, error)

	// Finish archives the run and removes it from the live store.
	Finish(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// Subscribe streams the dump of the run after every change until Unsubscribe or Finish.
	Subscribe(id uuid.UUID) <-chan string
	Unsubscribe(id uuid.UUID, sub <-chan string)
}
