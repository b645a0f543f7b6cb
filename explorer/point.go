package explorer

import "fmt"

const (
	MazeWidth  = 32 // MazeWidth is the number of columns of the grid.
	MazeHeight = 32 // MazeHeight is the number of rows of the grid.
)

// Point is a cell coordinate. The origin is the bottom-left cell, Up grows Y and Right grows X.
type Point struct {
	X int
	Y int
}

// InBounds reports whether the point lies inside the grid.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < MazeWidth && p.Y >= 0 && p.Y < MazeHeight
}

// Distance returns the heuristic distance to other. It is only used to rank frontier
// candidates, never as a cost.
func (p Point) Distance(other Point) int {
	return metric(abs(p.X-other.X), abs(p.Y-other.Y))
}

// Around returns the point one step away in direction d.
// No bounds checking is done: the caller must know the result is inside the grid.
func (p Point) Around(d Direction) Point {
	dx, dy := d.offset()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
