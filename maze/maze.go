/*
Package maze provides the ground truth for an exploration run: a rectangular walled maze the
robot moves through and senses.

Mazes are generated with Wilson's loop-erased random walk, which yields a perfect maze (exactly
one path between any two cells). Braid removes some of the remaining walls to add loops. Rows
are indexed bottom to top so that North matches the explorer's Up.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-explorer/explorer"
)

const (
	maxMazeWidth  = explorer.MazeWidth
	maxMazeHeight = explorer.MazeHeight
)

// walkOrder fixes neighbor iteration so a seed always produces the same maze.
var walkOrder = [...]explorer.Direction{explorer.Up, explorer.Down, explorer.Right, explorer.Left}

var (
	ErrInvalidMove       = errors.New("invalid move request")
	ErrOutOfBounds       = errors.New("position is outside the maze")
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidRatio      = errors.New("braid ratio must be within [0, 1]")
)

// WillsonMaze represents a rectangular maze consisting of cells with walls.
type WillsonMaze struct {
	Width  int      // Width of the maze (number of columns)
	Height int      // Height of the maze (number of rows)
	Grid   [][]Cell // Grid[y][x], y grows upward
}

// New initializes a new maze of the given dimensions and carves it with Wilson's algorithm.
// The same seed always carves the same maze.
func New(width, height int, seed int64) (*WillsonMaze, error) {
	m, err := newWalled(width, height)
	if err != nil {
		return nil, err
	}
	m.generateMaze(rand.New(rand.NewSource(seed)))
	return m, nil
}

// NewOpen returns a maze with no interior walls, only the outer boundary.
func NewOpen(width, height int) (*WillsonMaze, error) {
	m, err := newWalled(width, height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, mv := range m.neighbors(explorer.Point{X: x, Y: y}) {
				m.openWall(mv)
			}
		}
	}
	return m, nil
}

func newWalled(width, height int) (*WillsonMaze, error) {
	if min(width, height) <= 0 || width > maxMazeWidth || height > maxMazeHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
		}
	}
	return &WillsonMaze{Width: width, Height: height, Grid: grid}, nil
}

// InBounds reports whether p lies inside the maze.
func (m *WillsonMaze) InBounds(p explorer.Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// randomCellPosition generates a random position within the maze.
func (m *WillsonMaze) randomCellPosition(rng *rand.Rand) explorer.Point {
	return explorer.Point{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
}

// randomUnvisitedCellPosition selects a random position that has not been visited.
func (m *WillsonMaze) randomUnvisitedCellPosition(rng *rand.Rand, visited map[explorer.Point]struct{}) explorer.Point {
	for {
		pos := m.randomCellPosition(rng)
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors finds all in-bounds orthogonal moves from a given cell position.
func (m *WillsonMaze) neighbors(pos explorer.Point) []Move {
	result := make([]Move, 0, len(walkOrder))
	for _, d := range walkOrder {
		to := pos.Around(d)
		if m.InBounds(to) {
			result = append(result, Move{From: pos, To: to, Direction: d})
		}
	}
	return result
}

// openWall removes the wall between two adjacent cells.
func (m *WillsonMaze) openWall(move Move) {
	m.Grid[move.From.Y][move.From.X].setWall(move.Direction, false)
	m.Grid[move.To.Y][move.To.X].setWall(move.Direction.Opposite(), false)
}

// randomWalk walks from an unvisited cell until it hits the visited tree. Only the last exit
// taken from each cell is remembered, which erases the loops of the walk.
func (m *WillsonMaze) randomWalk(rng *rand.Rand, visited map[explorer.Point]struct{}) (explorer.Point, map[explorer.Point]Move) {
	start := m.randomUnvisitedCellPosition(rng, visited)
	exits := make(map[explorer.Point]Move)
	cell := start

	for {
		neighbors := m.neighbors(cell)
		next := neighbors[rng.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next.To]; included {
			break
		}
		cell = next.To
	}

	return start, exits
}

// generateMaze carves a spanning tree into a fully walled grid.
func (m *WillsonMaze) generateMaze(rng *rand.Rand) {
	visited := make(map[explorer.Point]struct{}, m.Width*m.Height)
	visited[m.randomCellPosition(rng)] = struct{}{}

	for len(visited) < m.Width*m.Height {
		cell, exits := m.randomWalk(rng, visited)
		for {
			if _, done := visited[cell]; done {
				break
			}
			move := exits[cell]
			m.openWall(move)
			visited[cell] = struct{}{}
			cell = move.To
		}
	}
}

// Braid knocks down the given fraction of the remaining interior walls, turning dead ends into
// loops.
func (m *WillsonMaze) Braid(ratio float64, seed int64) error {
	if ratio < 0 || ratio > 1 {
		return ErrInvalidRatio
	}

	var walls []Move
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := explorer.Point{X: x, Y: y}
			if x < m.Width-1 && m.Grid[y][x].EastWall {
				walls = append(walls, Move{From: p, To: p.Around(explorer.Right), Direction: explorer.Right})
			}
			if y < m.Height-1 && m.Grid[y][x].NorthWall {
				walls = append(walls, Move{From: p, To: p.Around(explorer.Up), Direction: explorer.Up})
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })
	for _, w := range walls[:int(ratio*float64(len(walls)))] {
		m.openWall(w)
	}
	return nil
}

// IsValidMove checks if the robot can move from a cell in direction d. A diagonal move needs
// one of its two L-shaped detours to be open.
func (m *WillsonMaze) IsValidMove(from explorer.Point, d explorer.Direction) bool {
	if !m.InBounds(from) || !m.InBounds(from.Around(d)) {
		return false
	}
	if !d.IsDiagonal() {
		return !m.Grid[from.Y][from.X].HasWall(d)
	}

	v, h := d.Split()
	if m.IsValidMove(from, v) && m.IsValidMove(from.Around(v), h) {
		return true
	}
	return m.IsValidMove(from, h) && m.IsValidMove(from.Around(h), v)
}

// Move validates a move and returns its destination.
func (m *WillsonMaze) Move(from explorer.Point, d explorer.Direction) (explorer.Point, error) {
	if !m.IsValidMove(from, d) {
		return from, ErrInvalidMove
	}
	return from.Around(d), nil
}

// CenterGoal returns the cell nearest the middle of a width x height maze, the usual
// micromouse target.
func CenterGoal(width, height int) explorer.Point {
	return explorer.Point{X: width / 2, Y: height / 2}
}
