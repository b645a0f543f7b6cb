// Package domain holds the records shared by the service and its adapters.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/google/uuid"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrRunLocked   = errors.New("run is locked by another request")

	ErrReportRequired = errors.New("the robot position needs a sensor report")
)

// Run is one exploration hosted by the server: the robot position and counters next to the
// explorer snapshot.
type Run struct {
	ID          uuid.UUID      `bson:"_id"`
	Goal        explorer.Point `bson:"goal"`
	Position    explorer.Point `bson:"position"`
	Steps       int            `bson:"steps"`
	Expansions  int            `bson:"expansions"`
	Frontier    int            `bson:"frontier"`
	ReachedGoal bool           `bson:"reachedGoal"`
	Finished    bool           `bson:"finished"`
	CreatedAt   time.Time      `bson:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
	Snapshot    []byte         `bson:"snapshot"` // explorer.MarshalBinary
}

// Explorer restores the explorer stored in the snapshot.
func (r *Run) Explorer() (*explorer.Explorer, error) {
	e := &explorer.Explorer{}
	if err := e.UnmarshalBinary(r.Snapshot); err != nil {
		return nil, err
	}
	return e, nil
}

// Capture stores the explorer state into the snapshot and records the frontier size.
func (r *Run) Capture(e *explorer.Explorer) error {
	snapshot, err := e.MarshalBinary()
	if err != nil {
		return err
	}
	r.Snapshot = snapshot
	r.Frontier = e.FrontierLen()
	return nil
}

// StepResult tells where a step took the robot.
type StepResult struct {
	Next explorer.Point
	Done bool // the frontier was empty, the robot did not move
	Run  *Run
}
