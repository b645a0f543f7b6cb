package sim

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-explorer/maze"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"golang.org/x/sync/errgroup"
)

// Summary aggregates the results of a batch.
type Summary struct {
	Runs       int     `yaml:"runs"`
	Reached    int     `yaml:"reached"`
	MeanSteps  float64 `yaml:"meanSteps"`
	MeanTravel float64 `yaml:"meanTravel"`
	MaxSteps   int     `yaml:"maxSteps"`
	Rejected   int     `yaml:"rejected"`
}

// RunBatch runs p.Runs independent explorations, run k on the maze generated from p.Seed+k,
// at most p.Workers at a time. The first failing run cancels the rest.
func RunBatch(ctx context.Context, p Profile, logger i.Logger) ([]Result, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, p.Runs)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.Workers)

	for k := 0; k < p.Runs; k++ {
		seed := p.Seed + int64(k)
		group.Go(func() error {
			m, err := maze.New(p.Width, p.Height, seed)
			if err != nil {
				return err
			}
			if p.Braid > 0 {
				if err := m.Braid(p.Braid, seed); err != nil {
					return err
				}
			}

			runner, err := NewRunner(m, Options{Goal: *p.Goal, MaxSteps: p.MaxSteps, StopAtGoal: p.StopAtGoal})
			if err != nil {
				return err
			}
			res, err := runner.Run(groupCtx)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", k, seed, err)
			}
			res.Seed = seed
			results[k] = res

			if logger != nil {
				logger.Debug(fmt.Sprintf("run %d (seed %d): %d steps, goal reached %v", k, seed, res.Steps, res.ReachedGoal))
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize aggregates a batch.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	var steps, travel int
	for _, r := range results {
		steps += r.Steps
		travel += r.Travel
		s.Rejected += r.Rejected
		s.MaxSteps = max(s.MaxSteps, r.Steps)
		if r.ReachedGoal {
			s.Reached++
		}
	}
	s.MeanSteps = float64(steps) / float64(len(results))
	s.MeanTravel = float64(travel) / float64(len(results))
	return s
}
