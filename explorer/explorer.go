package explorer

// Explorer owns the whole knowledge of one maze run: every cell, the start and goal, and the
// frontier. It is not safe for concurrent use.
type Explorer struct {
	start    Point
	goal     Point
	cells    [MazeHeight][MazeWidth]Cell
	frontier Frontier
}

// New returns an explorer starting at the origin and heading for goal.
func New(goal Point) (*Explorer, error) {
	e := &Explorer{}
	if err := e.Reset(goal); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset forgets everything and starts a new run towards goal.
func (e *Explorer) Reset(goal Point) error {
	if !goal.InBounds() {
		return ErrOutOfBounds
	}

	e.start = Point{}
	e.goal = goal
	e.frontier.Clear()
	for y := range e.cells {
		for x := range e.cells[y] {
			e.cells[y][x] = newCell()
		}
	}

	// The outer walls are known from the start.
	for y := 0; y < MazeHeight; y++ {
		e.cells[y][MazeWidth-1].Flags |= FlagRightWallKnown | FlagRightWallExists
	}
	for x := 0; x < MazeWidth; x++ {
		e.cells[MazeHeight-1][x].Flags |= FlagUpWallKnown | FlagUpWallExists
	}

	origin := &e.cells[e.start.Y][e.start.X]
	origin.Cost = 0
	origin.Flags |= FlagCostAvailable | FlagFrontierQueued
	return nil
}

// Start returns the start cell, always the origin.
func (e *Explorer) Start() Point {
	return e.start
}

// Goal returns the goal cell.
func (e *Explorer) Goal() Point {
	return e.goal
}

// Next pops the most promising frontier cell. It returns false when nothing is left to explore.
func (e *Explorer) Next() (Point, bool) {
	return e.frontier.Pop()
}

// FrontierLen returns the number of cells waiting on the frontier.
func (e *Explorer) FrontierLen() int {
	return e.frontier.Count()
}

// CellAt returns a copy of the cell at p.
func (e *Explorer) CellAt(p Point) (Cell, error) {
	if !p.InBounds() {
		return Cell{}, ErrOutOfBounds
	}
	return e.cells[p.Y][p.X], nil
}

// Cells returns a copy of the whole grid, indexed [y][x].
func (e *Explorer) Cells() [MazeHeight][MazeWidth]Cell {
	return e.cells
}
