package maze

import "github.com/beka-birhanu/vinom-explorer/explorer"

// Cell represents a single cell in a maze grid.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north (up) side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south (down) side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east (right) side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west (left) side of the cell.
}

// HasWall reports whether the side of the cell facing d is walled. Only orthogonal directions
// have a side; anything else reports a wall.
func (c *Cell) HasWall(d explorer.Direction) bool {
	switch d {
	case explorer.Up:
		return c.NorthWall
	case explorer.Down:
		return c.SouthWall
	case explorer.Right:
		return c.EastWall
	case explorer.Left:
		return c.WestWall
	}
	return true
}

func (c *Cell) setWall(d explorer.Direction, hasWall bool) {
	switch d {
	case explorer.Up:
		c.NorthWall = hasWall
	case explorer.Down:
		c.SouthWall = hasWall
	case explorer.Right:
		c.EastWall = hasWall
	case explorer.Left:
		c.WestWall = hasWall
	}
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      explorer.Point     // Starting cell
	To        explorer.Point     // Destination cell
	Direction explorer.Direction // Direction of the move
}
