// Package render draws what an explorer knows about the maze, for debugging runs by eye.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-explorer/explorer"
)

const (
	cellWidth  = 7
	cellHeight = 3

	unknownStr   = "?"
	noWallStr    = " "
	wallStr      = "+"
	intersectStr = "."
)

// Grid is the read access a dump needs. *explorer.Explorer implements it.
type Grid interface {
	Cells() [explorer.MazeHeight][explorer.MazeWidth]explorer.Cell
}

// Dump writes the grid top row first. Every cell is drawn as three lines framed by its walls:
// the cost, the predecessor once the cell was queued, and its flags.
func Dump(w io.Writer, g Grid, header string) error {
	cells := g.Cells()
	out := bufio.NewWriter(w)

	rule := strings.Repeat("=", (cellHeight+1)*explorer.MazeWidth)
	fmt.Fprintf(out, "%s\n%s\n%s\n", rule, header, rule)

	for y := explorer.MazeHeight - 1; y >= 0; y-- {
		row := &cells[y]
		for x := range row {
			out.WriteString(intersectStr)
			out.WriteString(strings.Repeat(wallChar(row[x].Wall(true)), cellWidth))
		}
		out.WriteString(intersectStr + "\n")

		for line := 0; line < cellHeight; line++ {
			out.WriteString(wallStr)
			for x := range row {
				out.WriteString(cellLine(row[x], line))
				out.WriteString(wallChar(row[x].Wall(false)))
			}
			out.WriteString("\n")
		}
	}

	for range explorer.MazeWidth {
		out.WriteString(intersectStr)
		out.WriteString(strings.Repeat(wallStr, cellWidth))
	}
	out.WriteString(intersectStr + "\n\n")

	return out.Flush()
}

// String returns the dump as a string.
func String(g Grid, header string) string {
	var b strings.Builder
	_ = Dump(&b, g, header)
	return b.String()
}

func wallChar(w explorer.Wall) string {
	switch w {
	case explorer.WallBlocked:
		return wallStr
	case explorer.WallOpen:
		return noWallStr
	}
	return unknownStr
}

func cellLine(c explorer.Cell, line int) string {
	switch line {
	case 0:
		if cost, ok := c.CostValue(); ok {
			return fmt.Sprintf("  %4d ", cost)
		}
	case 1:
		if from, ok := c.Predecessor(); ok && c.Flags.Has(explorer.FlagFrontierQueued) {
			return fmt.Sprintf("(%2d,%2d)", from.X, from.Y)
		}
	case 2:
		return " " +
			flagChar(c.Flags, explorer.FlagAnswer, "A") +
			flagChar(c.Flags, explorer.FlagInvalidated, "I") +
			flagChar(c.Flags, explorer.FlagCostDirty, "D") +
			flagChar(c.Flags, explorer.FlagFrontierQueued, "P") +
			flagChar(c.Flags, explorer.FlagSearchAround, "S") +
			flagChar(c.Flags, explorer.FlagUpdated, "U")
	}
	return strings.Repeat(noWallStr, cellWidth)
}

func flagChar(flags, flag explorer.CellFlag, letter string) string {
	if flags.Has(flag) {
		return letter
	}
	return noWallStr
}
