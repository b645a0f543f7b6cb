package render

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowLine returns the index of a line of the dump: line 0 is the wall line above row y.
func rowLine(y, line int) int {
	return 3 + (explorer.MazeHeight-1-y)*(cellHeight+1) + line
}

func TestDump(t *testing.T) {
	e, err := explorer.New(explorer.Point{X: 10, Y: 10})
	require.NoError(t, err)

	t.Run("Fresh explorer", func(t *testing.T) {
		lines := strings.Split(String(e, "fresh"), "\n")

		assert.Equal(t, "fresh", lines[1])
		assert.Equal(t, strings.Repeat("=", 128), lines[0])
		assert.Equal(t, strings.Repeat(".+++++++", explorer.MazeWidth)+".", lines[3], "top walls are known")
		assert.Equal(t, strings.Repeat(".???????", explorer.MazeWidth)+".", lines[rowLine(0, 0)])
		assert.Equal(t, strings.Repeat(".+++++++", explorer.MazeWidth)+".", lines[rowLine(0, 4)], "bottom frame")

		cost := lines[rowLine(0, 1)]
		assert.True(t, strings.HasPrefix(cost, "+     0 ?"), cost)
		assert.True(t, strings.HasSuffix(cost, "       +"), cost)
		assert.Len(t, cost, 1+explorer.MazeWidth*(cellWidth+1))

		assert.True(t, strings.HasPrefix(lines[rowLine(0, 2)], "+       ?"), "origin has no predecessor")
		assert.True(t, strings.HasPrefix(lines[rowLine(0, 3)], "+    P  ?"))
	})

	t.Run("After one expansion", func(t *testing.T) {
		require.NoError(t, e.Update(explorer.SensorReport{
			P:     explorer.Point{},
			Up:    explorer.WallOpen,
			Right: explorer.WallBlocked,
		}))
		require.NoError(t, e.Expand(explorer.Point{}))
		lines := strings.Split(String(e, "expanded"), "\n")

		assert.True(t, strings.HasPrefix(lines[rowLine(0, 0)], ".       .???????"))
		assert.True(t, strings.HasPrefix(lines[rowLine(0, 1)], "+     0 +"))
		assert.True(t, strings.HasPrefix(lines[rowLine(0, 3)], "+    PSU+"))

		assert.True(t, strings.HasPrefix(lines[rowLine(1, 1)], "+     1 ?"))
		assert.True(t, strings.HasPrefix(lines[rowLine(1, 2)], "+( 0, 0)?"))
		assert.True(t, strings.HasPrefix(lines[rowLine(1, 3)], "+    P  ?"))
	})
}
