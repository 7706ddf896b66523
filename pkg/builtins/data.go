package builtins

import (
	"strings"

	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

func fn(name string, nargs int, f memory.BuiltinFunc) *memory.Procedure {
	return &memory.Procedure{Name: name, NArgs: nargs, IsFunction: true, Kind: memory.Builtin, Fn: f}
}

func cmd(name string, nargs int, f memory.BuiltinFunc) *memory.Procedure {
	return &memory.Procedure{Name: name, NArgs: nargs, IsFunction: false, Kind: memory.Builtin, Fn: f}
}

func alias(s *memory.Stack, p *memory.Procedure, names ...string) {
	s.SetProcedure(p)
	for _, n := range names {
		alt := *p
		alt.Name = n
		s.SetProcedure(&alt)
	}
}

func registerData(s *memory.Stack) {
	s.SetProcedure(fn("word", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Concat(args[0], args[1]), nil
	}))
	s.SetProcedure(fn("list", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.NewList(args[0], args[1]), nil
	}))
	// Sentence flattens: a list argument contributes its elements, a word
	// contributes itself.
	s.SetProcedure(fn("sentence", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		var out []value.Value
		for _, a := range args {
			if a.IsList() {
				items, _ := a.AsList()
				out = append(out, items...)
			} else {
				out = append(out, a)
			}
		}
		return value.NewList(out...), nil
	}))
	s.SetProcedure(fn("fput", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Fput(args[0], args[1]), nil
	}))
	s.SetProcedure(fn("lput", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Lput(args[0], args[1]), nil
	}))
	s.SetProcedure(fn("first", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return args[0].Front()
	}))
	s.SetProcedure(fn("last", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return args[0].Back()
	}))
	s.SetProcedure(fn("butfirst", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return args[0].ButFirst()
	}))
	s.SetProcedure(fn("butlast", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return args[0].ButLast()
	}))
	s.SetProcedure(fn("item", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		i, err := args[0].AsUint()
		if err != nil {
			return value.Value{}, err
		}
		return args[1].At(i)
	}))

	alias(s, cmd("setitem", 3, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		i, err := args[0].AsUint()
		if err != nil {
			return value.Value{}, err
		}
		return value.Value{}, args[1].Set(i, args[2])
	}), ".setitem")

	alias(s, cmd("setfirst", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Value{}, args[0].SetFirst(args[1])
	}), ".setfirst")

	alias(s, fn("wordp", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsWord()), nil
	}), "word?")
	alias(s, fn("listp", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsList()), nil
	}), "list?")
	alias(s, fn("emptyp", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsEmpty()), nil
	}), "empty?")
	alias(s, fn("equalp", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].Equal(args[1])), nil
	}), "equal?", ".eq")
	alias(s, fn("notequalp", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(!args[0].Equal(args[1])), nil
	}), "notequal?")
	alias(s, fn("beforep", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		less, err := args[0].Less(args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(less), nil
	}), "before?")
	alias(s, fn("memberp", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[1].In(args[0])), nil
	}), "member?")
	// substringp is a strict word-in-word test, not memberp: a list on
	// either side is never a substring of anything.
	s.SetProcedure(fn("substringp", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		if args[0].IsList() || args[1].IsList() {
			return value.Bool(false), nil
		}
		needle, err := args[0].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		haystack, err := args[1].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(strings.Contains(haystack, needle)), nil
	}))
	alias(s, fn("numberp", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsNumber()), nil
	}), "number?")
}
