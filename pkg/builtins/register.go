package builtins

import (
	"io"

	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/turtle"
)

// Register installs every native procedure onto s.
func Register(s *memory.Stack) {
	registerArithmetic(s)
	registerData(s)
	registerComm(s)
	registerMemory(s)
	registerControl(s)
	registerGraphics(s)
}

// NewStack builds a ready-to-run Stack: a fresh turtle attached to r (which
// may be nil for headless use), out/errOut wired up, and every builtin
// registered.
func NewStack(out, errOut io.Writer, r turtle.Renderer) *memory.Stack {
	s := memory.NewStack()
	s.Turtle = turtle.New(r)
	s.Out = out
	s.ErrOut = errOut
	Register(s)
	return s
}
