package sim

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/maze"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const profileKind = "simulation"

var ErrInvalidProfile = errors.New("invalid simulation profile")

// OuterConfig is the envelope of a profile file: a kind selector and its definition.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Profile describes a batch of runs over generated mazes. viper lowercases every key it reads,
// so the yaml tags are lowercase too and file keys match case-insensitively.
type Profile struct {
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	Seed       int64           `yaml:"seed"`
	Runs       int             `yaml:"runs"`
	Workers    int             `yaml:"workers"`
	Braid      float64         `yaml:"braid"`
	StopAtGoal bool            `yaml:"stopatgoal"`
	MaxSteps   int             `yaml:"maxsteps"`
	Goal       *explorer.Point `yaml:"goal"` // defaults to the maze center
}

// FromYaml reads a profile file of the form
//
//	kind: simulation
//	def:
//	  width: 16
//	  runs: 8
func FromYaml(path string) (*Profile, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	var err error
	if err = vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outerConfig := &OuterConfig{}
	if err = vp.Unmarshal(outerConfig); err != nil {
		return nil, err
	}
	if outerConfig.Kind != profileKind {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrInvalidProfile, outerConfig.Kind, profileKind)
	}

	var def []byte
	if def, err = yaml.Marshal(outerConfig.Def); err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err = yaml.Unmarshal(def, profile); err != nil {
		return nil, err
	}
	profile.Normalize()
	return profile, profile.Validate()
}

// Normalize fills unset fields with defaults: a full size maze, one run, one worker per CPU and
// the center goal.
func (p *Profile) Normalize() {
	if p.Width == 0 {
		p.Width = explorer.MazeWidth
	}
	if p.Height == 0 {
		p.Height = explorer.MazeHeight
	}
	if p.Runs == 0 {
		p.Runs = 1
	}
	if p.Workers == 0 {
		p.Workers = runtime.NumCPU()
	}
	if p.Goal == nil {
		goal := maze.CenterGoal(p.Width, p.Height)
		p.Goal = &goal
	}
}

// Validate reports the first problem with a normalized profile.
func (p *Profile) Validate() error {
	switch {
	case p.Width < 1 || p.Width > explorer.MazeWidth || p.Height < 1 || p.Height > explorer.MazeHeight:
		return fmt.Errorf("%w: maze %dx%d", ErrInvalidProfile, p.Width, p.Height)
	case p.Runs < 1 || p.Workers < 1:
		return fmt.Errorf("%w: %d runs on %d workers", ErrInvalidProfile, p.Runs, p.Workers)
	case p.Braid < 0 || p.Braid > 1:
		return fmt.Errorf("%w: braid %v", ErrInvalidProfile, p.Braid)
	case p.MaxSteps < 0:
		return fmt.Errorf("%w: max steps %d", ErrInvalidProfile, p.MaxSteps)
	case p.Goal == nil || p.Goal.X < 0 || p.Goal.X >= p.Width || p.Goal.Y < 0 || p.Goal.Y >= p.Height:
		return fmt.Errorf("%w: goal %v outside the maze", ErrInvalidProfile, p.Goal)
	}
	return nil
}
