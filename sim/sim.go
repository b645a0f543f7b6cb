// Package sim drives an explorer through a known maze: sense the walls around the robot,
// report them, expand, pick the next cell and move there, until nothing is left to explore.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/service/i"
)

// Sensor reads the walls around a cell of the real maze.
type Sensor interface {
	Sense(p explorer.Point) (explorer.SensorReport, error)
}

// Options tunes a single run.
type Options struct {
	Goal       explorer.Point
	MaxSteps   int      // 0 means no limit
	StopAtGoal bool     // stop as soon as the robot stands on the goal
	Logger     i.Logger // optional
}

// Result summarises a finished run.
type Result struct {
	Seed        int64            `yaml:"seed"`
	Steps       int              `yaml:"steps"`      // cells popped from the frontier
	Travel      int              `yaml:"travel"`     // sum of metric distances between visited cells
	Expansions  int              `yaml:"expansions"` // successful Expand calls
	Rejected    int              `yaml:"rejected"`   // expansions refused for a full frontier
	ReachedGoal bool             `yaml:"reachedGoal"`
	GoalCost    int              `yaml:"goalCost"` // -1 when the goal never got a cost
	Final       explorer.Point   `yaml:"final"`
	Path        []explorer.Point `yaml:"-"`
}

// Runner owns one explorer and the sensor feeding it.
type Runner struct {
	sensor   Sensor
	opts     Options
	explorer *explorer.Explorer
}

// NewRunner returns a runner with a fresh explorer heading for opts.Goal.
func NewRunner(sensor Sensor, opts Options) (*Runner, error) {
	if sensor == nil {
		return nil, errors.New("sim: nil sensor")
	}
	e, err := explorer.New(opts.Goal)
	if err != nil {
		return nil, fmt.Errorf("sim: goal %s: %w", opts.Goal, err)
	}
	return &Runner{sensor: sensor, opts: opts, explorer: e}, nil
}

// Explorer exposes the explorer for inspection once Run returned.
func (r *Runner) Explorer() *explorer.Explorer {
	return r.explorer
}

// Run explores until the frontier is empty, ctx is done, MaxSteps is reached or, with
// StopAtGoal, the robot stands on the goal. The partial result is returned with ctx's error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	e := r.explorer
	at := e.Start()
	res := Result{Path: []explorer.Point{at}}

	finish := func(err error) (Result, error) {
		res.Final = at
		res.GoalCost = -1
		if c, cerr := e.CellAt(e.Goal()); cerr == nil {
			if cost, ok := c.CostValue(); ok {
				res.GoalCost = int(cost)
			}
		}
		return res, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		if err := r.sense(at); err != nil {
			return finish(err)
		}

		if at == e.Goal() {
			if !res.ReachedGoal {
				r.debug(fmt.Sprintf("goal %s reached after %d steps", at, res.Steps))
			}
			res.ReachedGoal = true
			if r.opts.StopAtGoal {
				return finish(nil)
			}
		}
		if r.opts.MaxSteps > 0 && res.Steps >= r.opts.MaxSteps {
			return finish(nil)
		}

		switch err := e.Expand(at); {
		case errors.Is(err, explorer.ErrFrontierFull):
			res.Rejected++
			r.warn(fmt.Sprintf("expansion of %s refused: %v", at, err))
		case err != nil:
			return finish(fmt.Errorf("expand %s: %w", at, err))
		default:
			res.Expansions++
		}

		next, ok := e.Next()
		if !ok {
			return finish(nil)
		}
		res.Travel += at.Distance(next)
		res.Steps++
		res.Path = append(res.Path, next)
		at = next
	}
}

// sense reports the walls around p the first time the robot stands there.
func (r *Runner) sense(p explorer.Point) error {
	c, err := r.explorer.CellAt(p)
	if err != nil {
		return err
	}
	if c.Flags.Has(explorer.FlagUpdated) {
		return nil
	}
	report, err := r.sensor.Sense(p)
	if err != nil {
		return fmt.Errorf("sense %s: %w", p, err)
	}
	if err := r.explorer.Update(report); err != nil {
		return fmt.Errorf("update %s: %w", p, err)
	}
	return nil
}

func (r *Runner) debug(msg string) {
	if r.opts.Logger != nil {
		r.opts.Logger.Debug(msg)
	}
}

func (r *Runner) warn(msg string) {
	if r.opts.Logger != nil {
		r.opts.Logger.Warn(msg)
	}
}
