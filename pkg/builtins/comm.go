package builtins

import (
	"fmt"

	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

func registerComm(s *memory.Stack) {
	print := cmd("print", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		fmt.Fprintln(s.Out, args[0].Raw())
		return value.Value{}, nil
	})
	alias(s, print, "pr")

	s.SetProcedure(cmd("type", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		fmt.Fprint(s.Out, args[0].Raw())
		return value.Value{}, nil
	}))

	s.SetProcedure(cmd("show", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		fmt.Fprintln(s.Out, args[0].Show())
		return value.Value{}, nil
	}))

	// Form prints num right-aligned in a field of the given width, at the
	// given number of significant digits (%g, not fixed decimals: form
	// 3.141516 10 3 prints "      3.14").
	s.SetProcedure(cmd("form", 3, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		num, err := args[0].AsFloat()
		if err != nil {
			return value.Value{}, err
		}
		width, err := args[1].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		precision, err := args[2].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		fmt.Fprintf(s.Out, "%*.*g\n", int(width), int(precision), num)
		return value.Value{}, nil
	}))

	// Format applies the word argument directly as a fmt verb string to
	// the integer argument; the usual integer verbs (%d, %x, %o, %b) all
	// work unchanged.
	s.SetProcedure(cmd("format", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		num, err := args[0].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		layout, err := args[1].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		fmt.Fprintf(s.Out, layout+"\n", num)
		return value.Value{}, nil
	}))
}
