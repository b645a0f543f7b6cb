package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	logger "github.com/beka-birhanu/vinom-explorer/infrastruture/log"
	"github.com/beka-birhanu/vinom-explorer/maze"
	"github.com/beka-birhanu/vinom-explorer/render"
	"github.com/beka-birhanu/vinom-explorer/sim"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	profilePath string
	mazePath    string
	simProfile  sim.Profile
	simGoal     []int
	simFormat   string
	simDump     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Explore generated mazes and report how the runs went",
	Long: `simulate generates mazes with Wilson's algorithm, lets the explorer discover them and
prints one line per run plus a summary. Flags override the values of --profile.
With --maze the robot explores a single maze drawn in a text file instead, in the
format the --dump output uses.`,
	Example: `  vinom-explorer simulate --width 16 --height 16 --runs 100 --braid 0.2
  vinom-explorer simulate --profile profiles/braided.yaml --format yaml
  vinom-explorer simulate --width 8 --height 8 --seed 3 --dump
  vinom-explorer simulate --maze mazes/spiral.txt --goal 2,2 --dump`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, drawn, err := simulationProfile(cmd)
		if err != nil {
			return err
		}
		simLogger, err := logger.New("SIM", config.ColorBlue, os.Stderr)
		if err != nil {
			return err
		}
		simLogger.SetDebug(verbose)

		if simDump || drawn != nil {
			return exploreOne(cmd.Context(), cmd.OutOrStdout(), p, drawn, simLogger)
		}

		appLogger.Info(fmt.Sprintf("simulating %d runs on %dx%d mazes with %d workers", p.Runs, p.Width, p.Height, p.Workers))
		results, err := sim.RunBatch(cmd.Context(), p, simLogger)
		if err != nil {
			return err
		}
		return writeResults(cmd.OutOrStdout(), simFormat, results)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&profilePath, "profile", "", "Simulation profile file (yaml)")
	f.StringVar(&mazePath, "maze", "", "Explore the maze drawn in this text file instead of generated ones")
	f.IntVar(&simProfile.Width, "width", explorer.MazeWidth, "Maze width")
	f.IntVar(&simProfile.Height, "height", explorer.MazeHeight, "Maze height")
	f.Int64Var(&simProfile.Seed, "seed", 1, "Seed of the first maze, run k uses seed+k")
	f.IntVar(&simProfile.Runs, "runs", 1, "Number of runs")
	f.IntVar(&simProfile.Workers, "workers", 0, "Runs simulated at once (default one per CPU)")
	f.Float64Var(&simProfile.Braid, "braid", 0, "Share of dead ends opened into loops (0..1)")
	f.BoolVar(&simProfile.StopAtGoal, "stop-at-goal", false, "Stop a run when the robot reaches the goal")
	f.IntVar(&simProfile.MaxSteps, "max-steps", 0, "Step limit per run (0 means none)")
	f.IntSliceVar(&simGoal, "goal", nil, "Goal cell as x,y (default the maze center)")
	f.StringVar(&simFormat, "format", "text", "Output format: text or yaml")
	f.BoolVar(&simDump, "dump", false, "Run once and print the maze and the explorer knowledge")
}

// simulationProfile merges the profile file with the flags set on the command line. With
// --maze it also returns the drawn maze, whose size replaces the profile's.
func simulationProfile(cmd *cobra.Command) (sim.Profile, *maze.WillsonMaze, error) {
	p := simProfile
	if profilePath != "" {
		fromFile, err := sim.FromYaml(profilePath)
		if err != nil {
			return sim.Profile{}, nil, fmt.Errorf("reading profile %s: %w", profilePath, err)
		}
		p = *fromFile

		flags := cmd.Flags()
		if flags.Changed("width") {
			p.Width = simProfile.Width
		}
		if flags.Changed("height") {
			p.Height = simProfile.Height
		}
		if flags.Changed("seed") {
			p.Seed = simProfile.Seed
		}
		if flags.Changed("runs") {
			p.Runs = simProfile.Runs
		}
		if flags.Changed("workers") {
			p.Workers = simProfile.Workers
		}
		if flags.Changed("braid") {
			p.Braid = simProfile.Braid
		}
		if flags.Changed("stop-at-goal") {
			p.StopAtGoal = simProfile.StopAtGoal
		}
		if flags.Changed("max-steps") {
			p.MaxSteps = simProfile.MaxSteps
		}
	}

	if simGoal != nil {
		if len(simGoal) != 2 {
			return sim.Profile{}, nil, fmt.Errorf("%w: --goal takes x,y", sim.ErrInvalidProfile)
		}
		p.Goal = &explorer.Point{X: simGoal[0], Y: simGoal[1]}
	}
	if simFormat != "text" && simFormat != "yaml" {
		return sim.Profile{}, nil, fmt.Errorf("unknown format %q", simFormat)
	}

	var drawn *maze.WillsonMaze
	if mazePath != "" {
		text, err := os.ReadFile(mazePath)
		if err != nil {
			return sim.Profile{}, nil, err
		}
		if drawn, err = maze.Parse(string(text)); err != nil {
			return sim.Profile{}, nil, fmt.Errorf("reading maze %s: %w", mazePath, err)
		}
		p.Width, p.Height, p.Runs = drawn.Width, drawn.Height, 1
	}

	p.Normalize()
	return p, drawn, p.Validate()
}

func writeResults(w io.Writer, format string, results []sim.Result) error {
	summary := sim.Summarize(results)
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(struct {
			Runs    []sim.Result `yaml:"runs"`
			Summary sim.Summary  `yaml:"summary"`
		}{results, summary})
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "seed\tsteps\ttravel\texpansions\trejected\tgoal\tgoal cost\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%v\t%d\t\n", r.Seed, r.Steps, r.Travel, r.Expansions, r.Rejected, r.ReachedGoal, r.GoalCost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d runs, goal reached %d times, mean steps %.1f, mean travel %.1f, max steps %d, rejected expansions %d\n",
		summary.Runs, summary.Reached, summary.MeanSteps, summary.MeanTravel, summary.MaxSteps, summary.Rejected)
	return err
}

// exploreOne explores a single maze: the drawn one when given, the first maze of p
// otherwise. With --dump it prints the maze and what the robot learnt about it, else the usual
// results.
func exploreOne(ctx context.Context, w io.Writer, p sim.Profile, m *maze.WillsonMaze, log *logger.Logger) error {
	if m == nil {
		var err error
		if m, err = maze.New(p.Width, p.Height, p.Seed); err != nil {
			return err
		}
	}
	if p.Braid > 0 {
		if err := m.Braid(p.Braid, p.Seed); err != nil {
			return err
		}
	}

	runner, err := sim.NewRunner(m, sim.Options{Goal: *p.Goal, MaxSteps: p.MaxSteps, StopAtGoal: p.StopAtGoal, Logger: log})
	if err != nil {
		return err
	}
	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	res.Seed = p.Seed

	if !simDump {
		return writeResults(w, simFormat, []sim.Result{res})
	}
	if _, err := fmt.Fprintf(w, "%s\n", m); err != nil {
		return err
	}
	header := fmt.Sprintf("seed %d, %d steps, robot at %s, goal %s reached %v", p.Seed, res.Steps, res.Final, *p.Goal, res.ReachedGoal)
	return render.Dump(w, runner.Explorer(), header)
}
