//go:build !explorerdebug

package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontierOverflow(t *testing.T) {
	var f Frontier
	for i := 0; i < FrontierCapacity; i++ {
		assert.True(t, f.Push(Point{X: i % MazeWidth, Y: i / MazeWidth}))
	}
	assert.Zero(t, f.Free())
	assert.False(t, f.Push(Point{}))
	assert.Equal(t, FrontierCapacity, f.Count())

	p, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, Point{X: MazeWidth - 1, Y: MazeHeight - 1}, p)
}
