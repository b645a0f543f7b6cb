// Package script runs scripted exploration sessions. A script drives a single explorer with
// wall reports, expansions and frontier pops, and checks what comes out:
//
//	// the robot only sees an open wall above the start
//	goal (10, 10)
//	report (0, 0) up=open left=wall right=wall
//	expand (0, 0)
//	next expect (0, 1)
//	next expect none
//	dump
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/beka-birhanu/vinom-explorer/explorer"
)

var ErrExpectation = errors.New("expectation failed")

// DefaultGoal is used until a goal statement says otherwise.
var DefaultGoal = explorer.Point{X: 10, Y: 10}

// Script is a parsed scenario.
type Script struct {
	Name       string
	Statements []*Statement
}

type program struct {
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Pos lexer.Position

	Goal     *Coord    `parser:"  'goal' @@"`
	Report   *Report   `parser:"| 'report' @@"`
	Expand   *Coord    `parser:"| 'expand' @@"`
	Next     *Next     `parser:"| 'next' @@"`
	Frontier *Frontier `parser:"| 'frontier' @@"`
	Cost     *Cost     `parser:"| 'cost' @@"`
	Dump     bool      `parser:"| @'dump'"`
}

type Coord struct {
	X int `parser:"'(' @Int"`
	Y int `parser:"',' @Int ')'"`
}

func (c *Coord) Point() explorer.Point {
	return explorer.Point{X: c.X, Y: c.Y}
}

type Report struct {
	At    *Coord      `parser:"@@"`
	Walls []*WallSpec `parser:"@@*"`
}

type WallSpec struct {
	Side  string `parser:"@('up' | 'down' | 'left' | 'right')"`
	State string `parser:"'=' @('open' | 'wall' | 'blocked' | 'unknown')"`
}

type Next struct {
	Expect *Expectation `parser:"('expect' @@)?"`
}

type Expectation struct {
	None bool   `parser:"  @'none'"`
	At   *Coord `parser:"| @@"`
}

type Frontier struct {
	Expect *int `parser:"('expect' @Int)?"`
}

type Cost struct {
	At     *Coord `parser:"@@"`
	Expect *int   `parser:"('expect' @Int)?"`
}

var parser = participle.MustBuild[program]()

// Parse parses a script. name only shows up in positions.
func Parse(name, src string) (*Script, error) {
	prog, err := parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return &Script{Name: name, Statements: prog.Statements}, nil
}

// Report converts the statement into a sensor report. Sides not mentioned stay unknown.
func (r *Report) Report() explorer.SensorReport {
	rep := explorer.SensorReport{P: r.At.Point()}
	for _, w := range r.Walls {
		var state explorer.Wall
		switch w.State {
		case "open":
			state = explorer.WallOpen
		case "wall", "blocked":
			state = explorer.WallBlocked
		}
		switch w.Side {
		case "up":
			rep.Up = state
		case "down":
			rep.Down = state
		case "left":
			rep.Left = state
		case "right":
			rep.Right = state
		}
	}
	return rep
}

// Run executes the script against a fresh explorer, writing pops and dumps to w. It stops at
// the first failing statement.
func (s *Script) Run(w io.Writer) error {
	ses, err := newSession(w)
	if err != nil {
		return err
	}
	for _, stmt := range s.Statements {
		if err := ses.exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt.Pos, err)
		}
	}
	return nil
}
