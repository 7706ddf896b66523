// Package ast defines the tree of procedure calls, variable references and
// constants that pkg/eval walks. The tree itself is assembled by pkg/parser
// from the arity-driven statement grammar and the infix expression grammar;
// this package only knows the node shapes.
package ast

import (
	"fmt"
	"strings"

	"github.com/mbianchi/mlogo/pkg/value"
)

// Node is the tagged interface every AST node implements. The marker method
// keeps arbitrary types from satisfying it by accident.
type Node interface {
	astNode()
	String() string
}

// ProcCall is a call to a named procedure with its already-built argument
// nodes, evaluated left to right before the call itself runs. Infix
// operators (+, -, *, /, =) desugar to ProcCall nodes naming their
// arithmetic builtin (sum, difference, product, quotient, equalp) during
// parsing, so eval never needs to know an expression was written infix.
type ProcCall struct {
	Name string
	Args []Node
}

func (*ProcCall) astNode() {}
func (c *ProcCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s %s)", c.Name, strings.Join(parts, " "))
}

// VarRef is a `:name` variable read.
type VarRef struct {
	Name string
}

func (VarRef) astNode() {}
func (v VarRef) String() string { return ":" + v.Name }

// Const is a literal word or list value, already fully resolved — no
// further evaluation is needed to produce its value.
type Const struct {
	Value value.Value
}

func (Const) astNode() {}
func (c Const) String() string { return c.Value.Show() }

// ArityLookup is the dependency the parser needs from the procedure table:
// given a name, how many arguments does it take. memory.Stack satisfies this
// directly.
type ArityLookup interface {
	GetProcedureNArgs(name string) (int, error)
}
