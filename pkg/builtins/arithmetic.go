// Package builtins registers every native procedure the interpreter ships
// with into a memory.Stack, one file per group: arithmetic, data
// constructors and predicates, I/O, variable management, control flow and
// turtle graphics.
package builtins

import (
	"math"
	"math/rand"

	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

func numArg(args []value.Value, i int) (float64, error) {
	return args[i].AsFloat()
}

// binaryOp wraps a two-operand numeric function: both sides coerced to
// float64, result snapped to an integer string if it lands within epsilon
// of one, otherwise printed at 6 significant digits (value.NewNumber).
func binaryOp(name string, fn func(a, b float64) (float64, error)) *memory.Procedure {
	return &memory.Procedure{
		Name: name, NArgs: 2, IsFunction: true, Kind: memory.Builtin,
		Fn: func(s *memory.Stack, args []value.Value) (value.Value, error) {
			a, err := numArg(args, 0)
			if err != nil {
				return value.Value{}, err
			}
			b, err := numArg(args, 1)
			if err != nil {
				return value.Value{}, err
			}
			r, err := fn(a, b)
			if err != nil {
				return value.Value{}, err
			}
			return value.NewNumber(r), nil
		},
	}
}

// unaryOp is binaryOp for one operand, with the same snap-to-int rendering.
func unaryOp(name string, fn func(a float64) (float64, error)) *memory.Procedure {
	return &memory.Procedure{
		Name: name, NArgs: 1, IsFunction: true, Kind: memory.Builtin,
		Fn: func(s *memory.Stack, args []value.Value) (value.Value, error) {
			a, err := numArg(args, 0)
			if err != nil {
				return value.Value{}, err
			}
			r, err := fn(a)
			if err != nil {
				return value.Value{}, err
			}
			return value.NewNumber(r), nil
		},
	}
}

func registerArithmetic(s *memory.Stack) {
	s.SetProcedure(binaryOp("sum", func(a, b float64) (float64, error) { return a + b, nil }))
	s.SetProcedure(binaryOp("difference", func(a, b float64) (float64, error) { return a - b, nil }))
	s.SetProcedure(binaryOp("product", func(a, b float64) (float64, error) { return a * b, nil }))
	s.SetProcedure(binaryOp("quotient", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, &logoerr.TypeError{Expected: "non-zero divisor", Got: "0"}
		}
		return a / b, nil
	}))
	s.SetProcedure(binaryOp("power", func(a, b float64) (float64, error) { return math.Pow(a, b), nil }))

	// remainder and module are registered as distinct names over one
	// implementation: truncate both operands to int and apply Go's %.
	remainder := func(a, b float64) (float64, error) {
		ai, bi := int64(math.Trunc(a)), int64(math.Trunc(b))
		if bi == 0 {
			return 0, &logoerr.TypeError{Expected: "non-zero divisor", Got: "0"}
		}
		return float64(ai % bi), nil
	}
	s.SetProcedure(binaryOp("remainder", remainder))
	s.SetProcedure(binaryOp("module", remainder))

	s.SetProcedure(unaryOp("minus", func(a float64) (float64, error) { return -a, nil }))
	s.SetProcedure(unaryOp("int", func(a float64) (float64, error) { return math.Trunc(a), nil }))
	s.SetProcedure(unaryOp("round", func(a float64) (float64, error) { return math.Round(a), nil }))
	s.SetProcedure(unaryOp("sqrt", func(a float64) (float64, error) {
		if a < 0 {
			return 0, &logoerr.TypeError{Expected: "non-negative number", Got: "negative"}
		}
		return math.Sqrt(a), nil
	}))
	s.SetProcedure(unaryOp("exp", func(a float64) (float64, error) { return math.Exp(a), nil }))
	s.SetProcedure(unaryOp("log10", func(a float64) (float64, error) { return math.Log10(a), nil }))
	s.SetProcedure(unaryOp("ln", func(a float64) (float64, error) { return math.Log(a), nil }))

	// sin/cos/arctan take degrees; the rad* variants take radians directly.
	s.SetProcedure(unaryOp("sin", func(a float64) (float64, error) { return math.Sin(a * math.Pi / 180), nil }))
	s.SetProcedure(unaryOp("radsin", func(a float64) (float64, error) { return math.Sin(a), nil }))
	s.SetProcedure(unaryOp("cos", func(a float64) (float64, error) { return math.Cos(a * math.Pi / 180), nil }))
	s.SetProcedure(unaryOp("radcos", func(a float64) (float64, error) { return math.Cos(a), nil }))
	s.SetProcedure(unaryOp("arctan", func(a float64) (float64, error) { return math.Atan(a) * 180 / math.Pi, nil }))
	s.SetProcedure(unaryOp("radarctan", func(a float64) (float64, error) { return math.Atan(a), nil }))

	// random returns a uniformly distributed integer in [0, n], inclusive
	// on both ends.
	s.SetProcedure(unaryOp("random", func(a float64) (float64, error) {
		n := int64(math.Trunc(a))
		if n < 0 {
			return 0, &logoerr.TypeError{Expected: "non-negative number", Got: "negative"}
		}
		return float64(rand.Int63n(n + 1)), nil
	}))
}
