// Package runapi exposes the hosted exploration runs over HTTP.
package runapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
)

// Point is a cell coordinate. The fields are pointers so that 0 passes the required check.
type Point struct {
	X *int `json:"x" binding:"required,min=0"`
	Y *int `json:"y" binding:"required,min=0"`
}

func (p Point) point() explorer.Point {
	return explorer.Point{X: *p.X, Y: *p.Y}
}

func newPoint(p explorer.Point) *Point {
	x, y := p.X, p.Y
	return &Point{X: &x, Y: &y}
}

// CreateRunRequest starts a run from the origin towards Goal.
type CreateRunRequest struct {
	Goal Point `json:"goal" binding:"required"`
}

// ReportRequest is what the robot saw around one cell. Missing walls mean "unknown".
type ReportRequest struct {
	Point
	Up    string `json:"up" binding:"omitempty,oneof=open blocked unknown"`
	Down  string `json:"down" binding:"omitempty,oneof=open blocked unknown"`
	Left  string `json:"left" binding:"omitempty,oneof=open blocked unknown"`
	Right string `json:"right" binding:"omitempty,oneof=open blocked unknown"`
}

func (r ReportRequest) report() explorer.SensorReport {
	return explorer.SensorReport{
		P:     r.point(),
		Up:    wall(r.Up),
		Down:  wall(r.Down),
		Left:  wall(r.Left),
		Right: wall(r.Right),
	}
}

func wall(s string) explorer.Wall {
	switch s {
	case "open":
		return explorer.WallOpen
	case "blocked":
		return explorer.WallBlocked
	}
	return explorer.WallUnknown
}

// RunResponse describes a run without its snapshot.
type RunResponse struct {
	ID          string    `json:"id"`
	Goal        *Point    `json:"goal"`
	Position    *Point    `json:"position"`
	Steps       int       `json:"steps"`
	Expansions  int       `json:"expansions"`
	Frontier    int       `json:"frontier"`
	ReachedGoal bool      `json:"reached_goal"`
	Finished    bool      `json:"finished"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newRunResponse(run *dmn.Run) *RunResponse {
	return &RunResponse{
		ID:          run.ID.String(),
		Goal:        newPoint(run.Goal),
		Position:    newPoint(run.Position),
		Steps:       run.Steps,
		Expansions:  run.Expansions,
		Frontier:    run.Frontier,
		ReachedGoal: run.ReachedGoal,
		Finished:    run.Finished,
		CreatedAt:   run.CreatedAt,
		UpdatedAt:   run.UpdatedAt,
	}
}

// MoveResponse answers next and step: where the robot went, or Done when the frontier ran
// out.
type MoveResponse struct {
	Next *Point       `json:"next,omitempty"`
	Done bool         `json:"done"`
	Run  *RunResponse `json:"run,omitempty"`
}

// CellResponse is the knowledge about one cell.
type CellResponse struct {
	*Point
	Cost  *uint16  `json:"cost,omitempty"`
	From  *Point   `json:"from,omitempty"`
	Up    string   `json:"up"`
	Right string   `json:"right"`
	Flags []string `json:"flags"`
}

var flagNames = []struct {
	flag explorer.CellFlag
	name string
}{
	{explorer.FlagUpdated, "updated"},
	{explorer.FlagSearchAround, "search_around"},
	{explorer.FlagFrontierQueued, "frontier_queued"},
	{explorer.FlagCostAvailable, "cost_available"},
	{explorer.FlagCostDirty, "cost_dirty"},
}

func newCellResponse(p explorer.Point, c explorer.Cell) *CellResponse {
	res := &CellResponse{
		Point: newPoint(p),
		Up:    c.Wall(true).String(),
		Right: c.Wall(false).String(),
		Flags: []string{},
	}
	if cost, ok := c.CostValue(); ok {
		res.Cost = &cost
	}
	if from, ok := c.Predecessor(); ok {
		res.From = newPoint(from)
	}
	for _, f := range flagNames {
		if c.Flags.Has(f.flag) {
			res.Flags = append(res.Flags, f.name)
		}
	}
	return res
}

// FrontierResponse is returned by expand. Frontier is the size the expansion left, before any
// later request changed the run.
type FrontierResponse struct {
	Frontier int          `json:"frontier"`
	Run      *RunResponse `json:"run"`
}
