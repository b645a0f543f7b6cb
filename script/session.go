package script

import (
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/render"
)

type session struct {
	out      io.Writer
	explorer *explorer.Explorer
}

func newSession(out io.Writer) (*session, error) {
	e, err := explorer.New(DefaultGoal)
	if err != nil {
		return nil, err
	}
	return &session{out: out, explorer: e}, nil
}

func (s *session) exec(stmt *Statement) error {
	e := s.explorer
	switch {
	case stmt.Goal != nil:
		return e.Reset(stmt.Goal.Point())

	case stmt.Report != nil:
		return e.Update(stmt.Report.Report())

	case stmt.Expand != nil:
		return e.Expand(stmt.Expand.Point())

	case stmt.Next != nil:
		p, ok := e.Next()
		got := "none"
		if ok {
			got = p.String()
		}
		fmt.Fprintf(s.out, "next %s\n", got)

		if want := stmt.Next.Expect; want != nil {
			switch {
			case want.None && ok:
				return fmt.Errorf("%w: next is %s, want none", ErrExpectation, got)
			case !want.None && (!ok || p != want.At.Point()):
				return fmt.Errorf("%w: next is %s, want %s", ErrExpectation, got, want.At.Point())
			}
		}

	case stmt.Frontier != nil:
		n := e.FrontierLen()
		fmt.Fprintf(s.out, "frontier %d\n", n)
		if want := stmt.Frontier.Expect; want != nil && *want != n {
			return fmt.Errorf("%w: frontier holds %d, want %d", ErrExpectation, n, *want)
		}

	case stmt.Cost != nil:
		p := stmt.Cost.At.Point()
		c, err := e.CellAt(p)
		if err != nil {
			return err
		}
		cost, ok := c.CostValue()
		if !ok {
			fmt.Fprintf(s.out, "cost %s none\n", p)
		} else {
			fmt.Fprintf(s.out, "cost %s %d\n", p, cost)
		}
		if want := stmt.Cost.Expect; want != nil && (!ok || int(cost) != *want) {
			return fmt.Errorf("%w: cost of %s is %d (available %v), want %d", ErrExpectation, p, cost, ok, *want)
		}

	case stmt.Dump:
		return render.Dump(s.out, e, stmt.Pos.String())
	}
	return nil
}
