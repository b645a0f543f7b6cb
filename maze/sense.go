package maze

import (
	"fmt"

	"github.com/beka-birhanu/vinom-explorer/explorer"
)

// Sense returns the wall report the robot's sensors produce standing on p. Every side is
// known, so no wall is ever reported as unknown.
func (m *WillsonMaze) Sense(p explorer.Point) (explorer.SensorReport, error) {
	if !m.InBounds(p) {
		return explorer.SensorReport{}, fmt.Errorf("sense %s: %w", p, ErrOutOfBounds)
	}

	c := &m.Grid[p.Y][p.X]
	return explorer.SensorReport{
		P:     p,
		Up:    wallOf(c.NorthWall),
		Down:  wallOf(c.SouthWall),
		Left:  wallOf(c.WestWall),
		Right: wallOf(c.EastWall),
	}, nil
}

func wallOf(present bool) explorer.Wall {
	if present {
		return explorer.WallBlocked
	}
	return explorer.WallOpen
}
