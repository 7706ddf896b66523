// Package eval walks the AST pkg/parser builds, threading a memory.Stack
// through every call, and enforces the top-level rule that a statement
// whose value nobody asked for is a usage error, not a silent no-op.
package eval

import (
	"fmt"
	"strings"

	"github.com/mbianchi/mlogo/pkg/ast"
	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/parser"
	"github.com/mbianchi/mlogo/pkg/value"
)

// Eval evaluates a single node and returns its value. A ProcCall to a
// non-function procedure always yields the empty word: the result slot is
// only ever written when the callee is a function, so a direct empty return
// skips the slot round-trip without changing the outcome.
func Eval(node ast.Node, s *memory.Stack) (value.Value, error) {
	switch n := node.(type) {
	case ast.Const:
		return n.Value, nil
	case ast.VarRef:
		return s.GetVariable(n.Name)
	case *ast.ProcCall:
		return evalCall(n, s)
	default:
		return value.Value{}, fmt.Errorf("eval: unknown node type %T", node)
	}
}

func evalCall(n *ast.ProcCall, s *memory.Stack) (value.Value, error) {
	proc, err := s.GetProcedure(n.Name)
	if err != nil {
		return value.Value{}, err
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, s)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	// The caller registers its wait-for-value slot on its OWN frame before
	// opening the callee's, so the close-frame protocol finds the slot on
	// the parent.
	if proc.IsFunction {
		s.CurrentFrame().WaitForValueIn(memory.ResultSlot)
	}

	s.OpenFrame()
	for i, a := range args {
		s.SetLocal(memory.ArgumentName(i), a)
		if i < len(proc.Params) {
			s.SetLocal(proc.Params[i], a)
		}
	}

	var callErr error
	switch proc.Kind {
	case memory.Builtin:
		result, err := proc.Fn(s, args)
		if err != nil {
			callErr = err
		} else if proc.IsFunction {
			s.CurrentFrame().StoreResult(result)
		}
	case memory.UserDefined:
		callErr = runBody(proc.Body, s)
	}

	// The frame is closed whether or not the call itself errored, so a
	// runtime error inside a deeply nested call unwinds every open frame in
	// order rather than leaving the stack corrupted for whatever comes
	// next on the same line or at the prompt.
	closeErr := s.CloseFrame()

	if callErr != nil {
		return value.Value{}, callErr
	}
	if closeErr != nil {
		return value.Value{}, closeErr
	}
	if !proc.IsFunction {
		return value.Value{}, nil
	}
	return s.GetVariable(memory.ResultSlot)
}

// runBody re-lexes and re-parses a user-defined procedure's stored source
// text one line at a time and runs each line's statements in turn. Doing
// this lazily, on every call, lets a procedure forward-reference one defined
// later in the same session.
func runBody(body string, s *memory.Stack) error {
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nodes, err := parser.ParseLine(line, s)
		if err != nil {
			return err
		}
		if err := Run(nodes, s); err != nil {
			return err
		}
	}
	return nil
}

// Run evaluates a sequence of top-level statements (one parsed line's worth,
// or a procedure body's worth), raising UnusedResultError the moment one of
// them evaluates to a non-empty value: a bare expression at statement level
// has nowhere to go.
func Run(nodes []ast.Node, s *memory.Stack) error {
	for _, n := range nodes {
		v, err := Eval(n, s)
		if err != nil {
			return err
		}
		if !v.IsEmpty() {
			return &logoerr.UnusedResultError{Value: v.Show()}
		}
	}
	return nil
}

// RunList re-lexes and runs a captured list body (a REPEAT/loop body, for
// example) once, given its already-unbracketed source text.
func RunList(rawBody string, s *memory.Stack) error {
	return runBody(rawBody, s)
}
