package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("APP", config.ColorGreen, &buf)
	require.NoError(t, err)

	t.Run("Levels carry prefix and level", func(t *testing.T) {
		buf.Reset()
		l.Info("started")
		l.Warn("slow")
		l.Error("broken")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		for n, level := range []string{"[INFO]", "[WARN]", "[ERROR]"} {
			assert.Contains(t, lines[n], "[APP]")
			assert.Contains(t, lines[n], level)
		}
		assert.True(t, strings.HasSuffix(lines[0], "started"))
	})

	t.Run("Debug lines are opt in", func(t *testing.T) {
		buf.Reset()
		l.Debug("hidden")
		assert.Empty(t, buf.String())

		l.SetDebug(true)
		l.Debug("shown")
		assert.Contains(t, buf.String(), "[DEBUG]")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("Invalid setup", func(t *testing.T) {
		_, err := New("APP", config.ColorGreen, nil)
		assert.Error(t, err)
		_, err = New("", config.ColorGreen, &buf)
		assert.Error(t, err)
	})
}
