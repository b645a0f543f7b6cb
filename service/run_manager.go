package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/render"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
)

const subscriberBuffer = 8

var _ i.RunManager = (*RunManager)(nil)

// RunManager hosts independent exploration runs. Every mutation of a run happens under that
// run's lock: load the snapshot, apply, save, publish the new dump.
type RunManager struct {
	store       i.RunStore
	repo        i.RunRepo
	metrics     i.RunMetrics
	logger      i.Logger
	subscribers map[uuid.UUID]map[chan string]struct{}
	now         func() time.Time
	sync.RWMutex
}

type Config struct {
	Store   i.RunStore
	Repo    i.RunRepo    // optional, keeps finished runs
	Metrics i.RunMetrics // optional
	Logger  i.Logger
}

func NewRunManager(c *Config) (*RunManager, error) {
	if c.Store == nil {
		return nil, errors.New("run manager needs a store")
	}
	if c.Logger == nil {
		return nil, errors.New("run manager needs a logger")
	}
	metrics := c.Metrics
	if metrics == nil {
		metrics = noMetrics{}
	}
	return &RunManager{
		store:       c.Store,
		repo:        c.Repo,
		metrics:     metrics,
		logger:      c.Logger,
		subscribers: make(map[uuid.UUID]map[chan string]struct{}),
		now:         time.Now,
	}, nil
}

// Create starts a run towards goal.
func (m *RunManager) Create(ctx context.Context, goal explorer.Point) (*dmn.Run, error) {
	e, err := explorer.New(goal)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	run := &dmn.Run{
		ID:        uuid.New(),
		Goal:      goal,
		Position:  e.Start(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := run.Capture(e); err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("saving run %s: %w", run.ID, err)
	}

	m.metrics.RunCreated()
	m.logger.Info(fmt.Sprintf("created run %s towards %s", run.ID, goal))
	return run, nil
}

// Report applies a sensor report to the run.
func (m *RunManager) Report(ctx context.Context, id uuid.UUID, r explorer.SensorReport) (*dmn.Run, error) {
	return m.mutate(ctx, id, "report", func(run *dmn.Run, e *explorer.Explorer) error {
		return e.Update(r)
	})
}

// Expand expands p in the run.
func (m *RunManager) Expand(ctx context.Context, id uuid.UUID, p explorer.Point) (*dmn.Run, error) {
	return m.mutate(ctx, id, "expand", func(run *dmn.Run, e *explorer.Explorer) error {
		if err := e.Expand(p); err != nil {
			return err
		}
		run.Expansions++
		return nil
	})
}

// Next pops the next frontier cell and moves the robot there. It returns false when the
// frontier is empty.
func (m *RunManager) Next(ctx context.Context, id uuid.UUID) (explorer.Point, bool, error) {
	var (
		next explorer.Point
		ok   bool
	)
	_, err := m.mutate(ctx, id, "next", func(run *dmn.Run, e *explorer.Explorer) error {
		next, ok = e.Next()
		if ok {
			m.move(run, next)
		}
		return nil
	})
	return next, ok, err
}

// Step runs one turn of the control loop at the robot position: report the walls if the
// cell was never reported, expand it, pop the next cell and move there. r may be nil once the
// position was reported.
func (m *RunManager) Step(ctx context.Context, id uuid.UUID, r *explorer.SensorReport) (*dmn.StepResult, error) {
	res := &dmn.StepResult{}
	run, err := m.mutate(ctx, id, "step", func(run *dmn.Run, e *explorer.Explorer) error {
		at := run.Position
		c, err := e.CellAt(at)
		if err != nil {
			return err
		}
		if !c.Flags.Has(explorer.FlagUpdated) {
			if r == nil {
				return fmt.Errorf("%w: cell %s needs a report", dmn.ErrReportRequired, at)
			}
			if r.P != at {
				return fmt.Errorf("%w: report for %s while the robot is on %s", dmn.ErrReportRequired, r.P, at)
			}
			if err := e.Update(*r); err != nil {
				return err
			}
		}
		if err := e.Expand(at); err != nil {
			return err
		}
		run.Expansions++

		next, ok := e.Next()
		if !ok {
			res.Done = true
			res.Next = at
			return nil
		}
		m.move(run, next)
		res.Next = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Run = run
	return res, nil
}

func (m *RunManager) move(run *dmn.Run, to explorer.Point) {
	run.Position = to
	run.Steps++
	if to == run.Goal {
		run.ReachedGoal = true
	}
}

// Cell returns what the run knows about p.
func (m *RunManager) Cell(ctx context.Context, id uuid.UUID, p explorer.Point) (explorer.Cell, error) {
	e, _, err := m.load(ctx, id)
	if err != nil {
		return explorer.Cell{}, err
	}
	return e.CellAt(p)
}

// Dump renders the run's knowledge.
func (m *RunManager) Dump(ctx context.Context, id uuid.UUID) (string, error) {
	e, run, err := m.load(ctx, id)
	if err != nil {
		return "", err
	}
	return dump(run, e), nil
}

// Status returns the stored run.
func (m *RunManager) Status(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	return m.store.Load(ctx, id)
}

// FrontierLen returns the number of cells waiting on the run's frontier.
func (m *RunManager) FrontierLen(ctx context.Context, id uuid.UUID) (int, error) {
	e, _, err := m.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return e.FrontierLen(), nil
}

// List returns the live runs, most recently updated first.
func (m *RunManager) List(ctx context.Context) ([]*dmn.Run, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	runs := make([]*dmn.Run, 0, len(ids))
	for _, id := range ids {
		run, err := m.store.Load(ctx, id)
		if errors.Is(err, dmn.ErrRunNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sort.SliceStable(runs, func(a, b int) bool { return runs[a].UpdatedAt.After(runs[b].UpdatedAt) })
	return runs, nil
}

// Finish ends the run: it is written to the history repo, if any, removed from the store and
// its subscribers are closed.
func (m *RunManager) Finish(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	unlock, err := m.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	run, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Finished = true
	run.UpdatedAt = m.now().UTC()

	if m.repo != nil {
		if err := m.repo.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("archiving run %s: %w", id, err)
		}
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	m.closeSubscribers(id)
	m.metrics.RunFinished(run.ReachedGoal)
	m.logger.Info(fmt.Sprintf("finished run %s after %d steps, goal reached: %v", id, run.Steps, run.ReachedGoal))
	return run, nil
}

// mutate applies fn to the run under its lock. Nothing is saved when fn fails.
func (m *RunManager) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*dmn.Run, *explorer.Explorer) error) (run *dmn.Run, err error) {
	start := m.now()
	defer func() { m.metrics.Operation(op, m.now().Sub(start), err) }()

	unlock, err := m.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	e, run, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(run, e); err != nil {
		m.logger.Debug(fmt.Sprintf("%s on run %s refused: %v", op, id, err))
		return nil, err
	}

	run.UpdatedAt = m.now().UTC()
	if err := run.Capture(e); err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("saving run %s: %w", id, err)
	}

	m.metrics.FrontierSize(e.FrontierLen())
	m.publish(id, dump(run, e))
	return run, nil
}

func (m *RunManager) load(ctx context.Context, id uuid.UUID) (*explorer.Explorer, *dmn.Run, error) {
	run, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	e, err := run.Explorer()
	if err != nil {
		return nil, nil, fmt.Errorf("restoring run %s: %w", id, err)
	}
	return e, run, nil
}

func dump(run *dmn.Run, e *explorer.Explorer) string {
	header := fmt.Sprintf("run %s at %s, %d steps, goal %s", run.ID, run.Position, run.Steps, run.Goal)
	return render.String(e, header)
}

type noMetrics struct{}

func (noMetrics) RunCreated()                            {}
func (noMetrics) RunFinished(bool)                       {}
func (noMetrics) Operation(string, time.Duration, error) {}
func (noMetrics) FrontierSize(int)                       {}
