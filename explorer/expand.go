package explorer

import (
	"cmp"
	"slices"
)

// neighborCount is the most neighbors a single expansion can queue.
const neighborCount = 8

type candidate struct {
	p        Point
	priority int
	order    int
}

// Expand queues the reachable neighbors of p, which must already have a cost.
//
// Every passable neighbor is relaxed with cost(p)+1. The ones neither expanded nor queued
// before are pushed on the frontier, worst priority first, so the best one is popped next.
// When the frontier cannot take a full batch the call is refused before anything changes.
// Expanding the same cell again only repeats the relaxation.
func (e *Explorer) Expand(p Point) error {
	if !p.InBounds() {
		return violation(ErrOutOfBounds)
	}
	cur := &e.cells[p.Y][p.X]
	if !cur.Flags.Has(FlagCostAvailable) {
		return violation(ErrCostUnavailable)
	}
	if e.frontier.Free() < neighborCount {
		return ErrFrontierFull
	}
	cost := cur.Cost + 1

	var batch [neighborCount]candidate
	n := 0
	for order, d := range neighborOrder {
		if !e.passable(p, d) {
			continue
		}
		target := p.Around(d)
		c := &e.cells[target.Y][target.X]
		c.UpdateCost(cost, p)
		if c.Flags.Has(FlagSearchAround) || c.Flags.Has(FlagFrontierQueued) {
			continue
		}
		c.Flags |= FlagFrontierQueued
		batch[n] = candidate{
			p:        target,
			priority: int(c.Cost) + target.Distance(e.goal),
			order:    order,
		}
		n++
	}

	queued := batch[:n]
	slices.SortFunc(queued, func(a, b candidate) int {
		if a.priority != b.priority {
			return cmp.Compare(b.priority, a.priority)
		}
		return cmp.Compare(b.order, a.order)
	})
	for _, c := range queued {
		e.frontier.Push(c.p)
	}

	cur.Flags |= FlagSearchAround
	return nil
}

// passable reports whether the robot can move from p to its neighbor in direction d.
// A diagonal move needs one of its two L-shaped detours to be fully open.
func (e *Explorer) passable(p Point, d Direction) bool {
	if !d.IsDiagonal() {
		return e.edgeOpen(p, d)
	}
	v, h := d.Split()
	if e.edgeOpen(p, v) && e.edgeOpen(p.Around(v), h) {
		return true
	}
	return e.edgeOpen(p, h) && e.edgeOpen(p.Around(h), v)
}

// edgeOpen reports whether the wall between p and its orthogonal neighbor in direction d
// is known to be open. Edges leading out of the grid are never open.
func (e *Explorer) edgeOpen(p Point, d Direction) bool {
	switch d {
	case Up:
		return p.Y < MazeHeight-1 && e.cells[p.Y][p.X].Wall(true) == WallOpen
	case Right:
		return p.X < MazeWidth-1 && e.cells[p.Y][p.X].Wall(false) == WallOpen
	case Down:
		return p.Y > 0 && e.cells[p.Y-1][p.X].Wall(true) == WallOpen
	case Left:
		return p.X > 0 && e.cells[p.Y][p.X-1].Wall(false) == WallOpen
	}
	return false
}
