package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRunMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RunCreated()
	m.RunCreated()
	m.RunFinished(true)
	m.Operation("expand", time.Millisecond, nil)
	m.Operation("expand", time.Millisecond, explorer.ErrFrontierFull)
	m.FrontierSize(12)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsFinished.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RunsFinished.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("expand", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("expand", "frontier_full")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.Frontier))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("load: %w", dmn.ErrRunNotFound), "not_found"},
		{explorer.ErrFrontierFull, "frontier_full"},
		{explorer.ErrAlreadyUpdated, "contract"},
		{explorer.ErrCostUnavailable, "contract"},
		{errors.New("redis down"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "%v", tt.err)
	}
}
