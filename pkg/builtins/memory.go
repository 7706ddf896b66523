package builtins

import (
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

// registerMemory installs the variable-management builtins. MAKE and NAME
// always write into the global frame rather than scanning for an existing
// binding first (see DESIGN.md), unlike the scan-then-create rule
// Stack.SetVariable implements.
func registerMemory(s *memory.Stack) {
	s.SetProcedure(cmd("make", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		name, err := args[0].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		s.SetGlobal(name, args[1])
		return value.Value{}, nil
	}))

	// NAME takes its operands the other way around from MAKE: value first,
	// variable name second.
	s.SetProcedure(cmd("name", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		name, err := args[1].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		s.SetGlobal(name, args[0])
		return value.Value{}, nil
	}))

	s.SetProcedure(cmd("local", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		s.SetLocal(n, value.NewWord(""))
		return value.Value{}, nil
	}))

	s.SetProcedure(cmd("localmake", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		s.SetLocal(n, args[1])
		return value.Value{}, nil
	}))

	s.SetProcedure(fn("thing", 1, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsWord()
		if err != nil {
			return value.Value{}, err
		}
		return s.GetVariable(n)
	}))

	s.SetGlobal("startup", value.NewList())
}
