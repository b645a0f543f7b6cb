package i

import "time"

// RunMetrics records what happens to the hosted runs.
type RunMetrics interface {
	RunCreated()
	RunFinished(reachedGoal bool)
	Operation(op string, d time.Duration, err error)
	FrontierSize(size int)
}
