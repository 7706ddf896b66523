package builtins

import (
	"strconv"

	"github.com/mbianchi/mlogo/pkg/eval"
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/value"
)

const repCountVar = "__REPCOUNT__"

// registerControl installs the loop builtins. REPEAT takes the captured
// list's unbracketed text via Value.Raw and re-lexes/re-parses/re-evaluates
// it once per iteration, the same deferred reinterpretation eval uses for a
// procedure's stored body text.
func registerControl(s *memory.Stack) {
	s.SetProcedure(cmd("repeat", 2, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		n, err := args[0].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		body := args[1].Raw()
		for i := int64(0); i < n; i++ {
			// The counter lives on repeat's own frame, so a nested repeat
			// shadows the outer one's counter and repcount's scan finds the
			// innermost loop.
			s.SetLocal(repCountVar, value.NewWord(strconv.FormatInt(i, 10)))
			if err := eval.RunList(body, s); err != nil {
				return value.Value{}, err
			}
		}
		return value.Value{}, nil
	}))

	s.SetProcedure(fn("repcount", 0, func(s *memory.Stack, args []value.Value) (value.Value, error) {
		return s.GetVariable(repCountVar)
	}))
}
