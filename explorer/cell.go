package explorer

import "math"

// CellFlag is the status bitset of a cell. Every flag is an independent fact.
type CellFlag uint32

const (
	// FlagUpdated is set once the sensor report of the cell has been applied.
	FlagUpdated CellFlag = 1 << iota
	// FlagSearchAround is set once the neighbors of the cell have been expanded.
	FlagSearchAround
	// FlagFrontierQueued is set when the cell has been pushed to the frontier.
	FlagFrontierQueued
	// FlagCostAvailable is set when Cost and From hold a valid value.
	FlagCostAvailable
	// FlagCostDirty is set when a cheaper cost replaced the one first recorded, so cells
	// expanded from it may carry stale costs.
	FlagCostDirty
	// FlagAnswer is reserved for marking the cells of an extracted shortest path.
	FlagAnswer
	// FlagInvalidated is reserved for cells pruned because they cannot beat a known goal cost.
	FlagInvalidated
)

// Wall knowledge of the two edges a cell owns. The exists bits mean nothing unless the
// matching known bit is set.
const (
	FlagRightWallExists CellFlag = 0x10000000
	FlagRightWallKnown  CellFlag = 0x20000000
	FlagUpWallExists    CellFlag = 0x40000000
	FlagUpWallKnown     CellFlag = 0x80000000
)

// Has reports whether every bit of other is set.
func (f CellFlag) Has(other CellFlag) bool {
	return f&other == other
}

// Wall is the knowledge about a single wall.
type Wall uint8

const (
	WallUnknown Wall = iota // nothing reported yet
	WallOpen                // reported free
	WallBlocked             // reported present
)

func (w Wall) String() string {
	switch w {
	case WallUnknown:
		return "unknown"
	case WallOpen:
		return "open"
	case WallBlocked:
		return "blocked"
	}
	return "invalid"
}

func (w Wall) valid() bool {
	return w <= WallBlocked
}

const costUnavailable = math.MaxUint16

// Cell is the knowledge about one grid cell.
type Cell struct {
	Cost  uint16      // steps from the start, valid only with FlagCostAvailable
	From  PackedPoint // where Cost came from, NoPoint when none
	Flags CellFlag
}

func newCell() Cell {
	return Cell{Cost: costUnavailable, From: NoPoint}
}

// CostValue returns the cost and whether it is available.
func (c Cell) CostValue() (uint16, bool) {
	if !c.Flags.Has(FlagCostAvailable) {
		return 0, false
	}
	return c.Cost, true
}

// Predecessor returns the cell the current cost came from, if any.
func (c Cell) Predecessor() (Point, bool) {
	return c.From.Unpack()
}

// Wall returns what is known about the up wall (up == true) or the right wall of the cell.
func (c Cell) Wall(up bool) Wall {
	known, exists := FlagRightWallKnown, FlagRightWallExists
	if up {
		known, exists = FlagUpWallKnown, FlagUpWallExists
	}
	switch {
	case !c.Flags.Has(known):
		return WallUnknown
	case c.Flags.Has(exists):
		return WallBlocked
	default:
		return WallOpen
	}
}

// UpdateCost relaxes the cell with a candidate cost reached from a neighbor.
// The stored cost never increases. Ties keep the earlier path.
func (c *Cell) UpdateCost(cost uint16, from Point) {
	if !c.Flags.Has(FlagCostAvailable) {
		c.Cost = cost
		c.From = Pack(from)
		c.Flags |= FlagCostAvailable
		return
	}
	if cost < c.Cost {
		c.Cost = cost
		c.From = Pack(from)
		c.Flags |= FlagCostDirty
	}
}

// setWall records a reported wall. WallUnknown keeps the existing knowledge.
func (c *Cell) setWall(up bool, w Wall) {
	if w == WallUnknown {
		return
	}
	known, exists := FlagRightWallKnown, FlagRightWallExists
	if up {
		known, exists = FlagUpWallKnown, FlagUpWallExists
	}
	c.Flags |= known
	if w == WallBlocked {
		c.Flags |= exists
	} else {
		c.Flags &^= exists
	}
}
