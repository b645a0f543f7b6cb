package maze

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformed = errors.New("malformed maze text")

// String provides a textual representation of the maze, top row first.
func (m *WillsonMaze) String() string {
	var output strings.Builder

	top := m.Height - 1
	output.WriteString("+")
	for x := 0; x < m.Width; x++ {
		output.WriteString(horizontal(m.Grid[top][x].NorthWall))
	}
	output.WriteString("\n")

	for y := top; y >= 0; y-- {
		// Cell row
		output.WriteString(vertical(m.Grid[y][0].WestWall))
		for x := 0; x < m.Width; x++ {
			output.WriteString("   ")
			output.WriteString(vertical(m.Grid[y][x].EastWall))
		}
		output.WriteString("\n")

		// Wall row
		output.WriteString("+")
		for x := 0; x < m.Width; x++ {
			output.WriteString(horizontal(m.Grid[y][x].SouthWall))
		}
		output.WriteString("\n")
	}

	return output.String()
}

func horizontal(wall bool) string {
	if wall {
		return "---+"
	}
	return "   +"
}

func vertical(wall bool) string {
	if wall {
		return "|"
	}
	return " "
}

// Parse reads a maze drawn the way String draws it. Each wall is drawn once and shared by the
// two cells it separates.
func Parse(text string) (*WillsonMaze, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) < 3 || len(lines)%2 == 0 {
		return nil, fmt.Errorf("%w: %d lines", ErrMalformed, len(lines))
	}
	width := (len(lines[0]) - 1) / 4
	height := (len(lines) - 1) / 2
	for i, line := range lines {
		if len(line) != 4*width+1 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrMalformed, i+1, len(line), 4*width+1)
		}
	}

	m, err := newWalled(width, height)
	if err != nil {
		return nil, err
	}

	for row := 0; row < height; row++ {
		y := height - 1 - row
		above, cells, below := lines[2*row], lines[2*row+1], lines[2*row+2]
		for x := 0; x < width; x++ {
			c := &m.Grid[y][x]
			c.NorthWall = above[4*x+1] == '-'
			c.SouthWall = below[4*x+1] == '-'
			c.WestWall = cells[4*x] == '|'
			c.EastWall = cells[4*x+4] == '|'
		}
	}
	return m, nil
}
