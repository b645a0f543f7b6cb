package sim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/maze"
	. "github.com/smartystreets/goconvey/convey"
)

type brokenSensor struct{}

func (brokenSensor) Sense(explorer.Point) (explorer.SensorReport, error) {
	return explorer.SensorReport{}, errors.New("sensor offline")
}

func TestRun(t *testing.T) {
	Convey("Given an open 8x8 maze", t, func() {
		m, err := maze.NewOpen(8, 8)
		So(err, ShouldBeNil)
		runner, err := NewRunner(m, Options{Goal: maze.CenterGoal(8, 8)})
		So(err, ShouldBeNil)

		Convey("When the run explores until the frontier is empty", func() {
			res, err := runner.Run(context.Background())
			So(err, ShouldBeNil)

			Convey("Every cell is visited exactly once", func() {
				So(res.Steps, ShouldEqual, 63)
				So(res.Path, ShouldHaveLength, 64)
				seen := map[explorer.Point]bool{}
				for _, p := range res.Path {
					So(seen[p], ShouldBeFalse)
					seen[p] = true
				}
			})

			Convey("The goal is reached with a cost", func() {
				So(res.ReachedGoal, ShouldBeTrue)
				So(res.GoalCost, ShouldBeGreaterThanOrEqualTo, 4)
				So(res.Rejected, ShouldEqual, 0)
				So(res.Expansions, ShouldEqual, 64)
			})
		})

		Convey("When the run is capped", func() {
			runner.opts.MaxSteps = 10
			res, err := runner.Run(context.Background())
			So(err, ShouldBeNil)
			So(res.Steps, ShouldEqual, 10)
			So(res.Final, ShouldResemble, res.Path[10])
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err := runner.Run(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(res.Steps, ShouldEqual, 0)
			So(res.Final, ShouldResemble, explorer.Point{})
		})
	})

	Convey("Given a generated perfect maze", t, func() {
		m, err := maze.New(16, 16, 5)
		So(err, ShouldBeNil)
		goal := maze.CenterGoal(16, 16)

		Convey("A full run reaches every cell", func() {
			runner, err := NewRunner(m, Options{Goal: goal})
			So(err, ShouldBeNil)
			res, err := runner.Run(context.Background())
			So(err, ShouldBeNil)
			So(res.Steps, ShouldEqual, 255)
			So(res.ReachedGoal, ShouldBeTrue)
			So(runner.Explorer().FrontierLen(), ShouldEqual, 0)
		})

		Convey("A run stopping at the goal ends there", func() {
			runner, err := NewRunner(m, Options{Goal: goal, StopAtGoal: true})
			So(err, ShouldBeNil)
			res, err := runner.Run(context.Background())
			So(err, ShouldBeNil)
			So(res.Final, ShouldResemble, goal)
			So(res.ReachedGoal, ShouldBeTrue)
			So(res.Steps, ShouldBeLessThanOrEqualTo, 255)
		})
	})

	Convey("Given a straight corridor along the bottom row", t, func() {
		m, err := maze.Parse("+" + strings.Repeat("---+", 32) + "\n|" + strings.Repeat("    ", 31) + "   |\n+" + strings.Repeat("---+", 32) + "\n")
		So(err, ShouldBeNil)
		runner, err := NewRunner(m, Options{Goal: explorer.Point{X: 31, Y: 0}, StopAtGoal: true})
		So(err, ShouldBeNil)

		res, err := runner.Run(context.Background())
		So(err, ShouldBeNil)
		So(res.Steps, ShouldEqual, 31)
		So(res.Travel, ShouldEqual, 31)
		So(res.GoalCost, ShouldEqual, 31)
		So(res.Final, ShouldResemble, explorer.Point{X: 31, Y: 0})
	})

	Convey("Given a broken sensor", t, func() {
		runner, err := NewRunner(brokenSensor{}, Options{Goal: explorer.Point{X: 1, Y: 1}})
		So(err, ShouldBeNil)
		_, err = runner.Run(context.Background())
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "sensor offline")
	})

	Convey("A goal outside the grid is refused", t, func() {
		m, _ := maze.NewOpen(2, 2)
		_, err := NewRunner(m, Options{Goal: explorer.Point{X: 40, Y: 0}})
		So(errors.Is(err, explorer.ErrOutOfBounds), ShouldBeTrue)
	})
}

func TestRunBatch(t *testing.T) {
	Convey("When a batch of runs is executed in parallel", t, func() {
		results, err := RunBatch(context.Background(), Profile{Width: 8, Height: 8, Seed: 100, Runs: 6, Workers: 3}, nil)
		So(err, ShouldBeNil)
		So(results, ShouldHaveLength, 6)

		Convey("Each run explores its own maze completely", func() {
			for k, r := range results {
				So(r.Seed, ShouldEqual, int64(100+k))
				So(r.Steps, ShouldEqual, 63)
				So(r.ReachedGoal, ShouldBeTrue)
			}
		})

		Convey("The summary aggregates them", func() {
			s := Summarize(results)
			So(s.Runs, ShouldEqual, 6)
			So(s.Reached, ShouldEqual, 6)
			So(s.MeanSteps, ShouldEqual, 63.0)
			So(s.MaxSteps, ShouldEqual, 63)
		})
	})

	Convey("When the profile is invalid", t, func() {
		_, err := RunBatch(context.Background(), Profile{Width: 40}, nil)
		So(errors.Is(err, ErrInvalidProfile), ShouldBeTrue)
	})
}

func TestFromYaml(t *testing.T) {
	Convey("Given a profile file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "profile.yaml")

		Convey("A complete definition is read as written", func() {
			So(os.WriteFile(path, []byte(`kind: simulation
def:
  width: 12
  height: 10
  seed: 9
  runs: 4
  workers: 2
  braid: 0.25
  stopAtGoal: true
  maxSteps: 500
  goal:
    x: 3
    y: 7
`), 0o600), ShouldBeNil)

			p, err := FromYaml(path)
			So(err, ShouldBeNil)
			So(p.Width, ShouldEqual, 12)
			So(p.Height, ShouldEqual, 10)
			So(p.Seed, ShouldEqual, int64(9))
			So(p.Runs, ShouldEqual, 4)
			So(p.Workers, ShouldEqual, 2)
			So(p.Braid, ShouldEqual, 0.25)
			So(p.StopAtGoal, ShouldBeTrue)
			So(p.MaxSteps, ShouldEqual, 500)
			So(*p.Goal, ShouldResemble, explorer.Point{X: 3, Y: 7})
		})

		Convey("Missing fields fall back to defaults", func() {
			So(os.WriteFile(path, []byte("kind: simulation\ndef:\n  width: 8\n  height: 6\n"), 0o600), ShouldBeNil)

			p, err := FromYaml(path)
			So(err, ShouldBeNil)
			So(p.Runs, ShouldEqual, 1)
			So(p.Workers, ShouldBeGreaterThan, 0)
			So(*p.Goal, ShouldResemble, explorer.Point{X: 4, Y: 3})
		})

		Convey("Another kind is rejected", func() {
			So(os.WriteFile(path, []byte("kind: training\ndef:\n  width: 8\n"), 0o600), ShouldBeNil)
			_, err := FromYaml(path)
			So(errors.Is(err, ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("A goal outside the maze is rejected", func() {
			So(os.WriteFile(path, []byte("kind: simulation\ndef:\n  width: 4\n  height: 4\n  goal: {x: 5, y: 0}\n"), 0o600), ShouldBeNil)
			_, err := FromYaml(path)
			So(errors.Is(err, ErrInvalidProfile), ShouldBeTrue)
		})
	})
}
