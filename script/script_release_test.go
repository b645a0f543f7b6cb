//go:build !explorerdebug

package script

import (
	"testing"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/stretchr/testify/assert"
)

func TestRunExplorerErrors(t *testing.T) {
	_, err := run(t, "report (0, 0) up=open\nreport (0, 0) up=open")
	assert.ErrorIs(t, err, explorer.ErrAlreadyUpdated)

	_, err = run(t, "expand (4, 4)")
	assert.ErrorIs(t, err, explorer.ErrCostUnavailable)

	_, err = run(t, "goal (40, 1)")
	assert.ErrorIs(t, err, explorer.ErrOutOfBounds)
}
