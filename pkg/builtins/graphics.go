package builtins

import (
	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

// rendered runs a turtle mutation and then synchronously renders the
// result, so a drawing builtin fully completes its render before
// returning. A render failure aborts the statement (as a
// RenderFailureError) without touching the turtle state already committed.
func rendered(s *memory.Stack, mutate func()) (value.Value, error) {
	mutate()
	if err := s.Turtle.Render(); err != nil {
		return value.Value{}, &logoerr.RenderFailureError{Err: err}
	}
	return value.Value{}, nil
}

func twoNumberList(a, b float64) value.Value {
	return value.NewList(value.NewNumber(a), value.NewNumber(b))
}

func asXY(v value.Value) (float64, float64, error) {
	items, err := v.AsList()
	if err != nil {
		return 0, 0, err
	}
	if len(items) != 2 {
		return 0, 0, &logoerr.TypeError{Expected: "2-element list", Got: "list of a different length"}
	}
	x, err := items[0].AsFloat()
	if err != nil {
		return 0, 0, err
	}
	y, err := items[1].AsFloat()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// registerGraphics installs the turtle commands. SETHEADING negates its
// argument before storing it, and HEADING negates and renormalizes what it
// reads back, so a round trip through SETHEADING/HEADING is consistent even
// though the turtle's own internal angle runs the opposite way around from
// the screen-facing convention.
func registerGraphics(s *memory.Stack) {
	alias(s, cmd("forward", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.Forward(n) })
	}), "fd")
	alias(s, cmd("back", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.Forward(-n) })
	}), "bk")
	alias(s, cmd("right", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.Right(n) })
	}), "rt")
	alias(s, cmd("left", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.Right(-n) })
	}), "lt")

	s.SetProcedure(cmd("home", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return rendered(s, s.Turtle.Home)
	}))
	s.SetProcedure(cmd("clean", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return rendered(s, s.Turtle.Clean)
	}))
	alias(s, cmd("clearscreen", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return rendered(s, s.Turtle.ClearScreen)
	}), "cs")

	s.SetProcedure(cmd("setpos", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, y, err := asXY(args[0])
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetPos(x, y) })
	}))
	s.SetProcedure(cmd("setxy", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		y, err := args[1].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetPos(x, y) })
	}))
	s.SetProcedure(cmd("setx", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetX(x) })
	}))
	s.SetProcedure(cmd("sety", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		y, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetY(y) })
	}))
	alias(s, cmd("setheading", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		a, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetHeading(-a) })
	}), "seth")

	s.SetProcedure(fn("pos", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, y := s.Turtle.Position()
		return twoNumberList(x, y), nil
	}))
	s.SetProcedure(fn("xcor", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.NewNumber(s.Turtle.X()), nil
	}))
	s.SetProcedure(fn("ycor", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.NewNumber(s.Turtle.Y()), nil
	}))
	s.SetProcedure(fn("heading", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		h := normalizeDegrees(-s.Turtle.Heading())
		return value.NewNumber(h), nil
	}))
	s.SetProcedure(fn("scrunch", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, y := s.Turtle.Scrunch()
		return twoNumberList(x, y), nil
	}))
	s.SetProcedure(cmd("setscrunch", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		y, err := args[1].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		return rendered(s, func() { s.Turtle.SetScrunch(x, y) })
	}))

	alias(s, cmd("showturtle", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return rendered(s, s.Turtle.ShowTurtle)
	}), "st")
	alias(s, cmd("hideturtle", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return rendered(s, s.Turtle.HideTurtle)
	}), "ht")

	s.SetProcedure(cmd("window", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		s.Turtle.SetWindowMode()
		return value.Value{}, nil
	}))
	s.SetProcedure(cmd("fence", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		s.Turtle.SetFenceMode()
		return value.Value{}, nil
	}))
	s.SetProcedure(cmd("wrap", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		s.Turtle.SetWrapMode()
		return value.Value{}, nil
	}))
	s.SetProcedure(fn("turtlemode", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.NewWord(s.Turtle.ModeName()), nil
	}))

	alias(s, fn("shownp", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(s.Turtle.Shown()), nil
	}), "shown?")

	alias(s, cmd("penup", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		s.Turtle.PenUp()
		return value.Value{}, nil
	}), "pu")
	alias(s, cmd("pendown", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		s.Turtle.PenDown()
		return value.Value{}, nil
	}), "pd")

	s.SetProcedure(fn("towards", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		x, y, err := asXY(args[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.NewNumber(normalizeDegrees(-s.Turtle.Towards(x, y))), nil
	}))
}

func normalizeDegrees(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
