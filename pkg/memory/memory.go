// Package memory implements the frame/stack scoping model: a dynamically
// scoped variable space, lexically-bound procedure arguments, and the
// result-slot protocol a caller and callee use to pass a single value back
// up when the callee closes its frame.
package memory

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/turtle"
	"github.com/mbianchi/mlogo/pkg/value"
)

// ResultSlot is the name of the variable a caller waits on when it invokes
// a function: the frame-close protocol copies the function's output into
// it, and the caller reads it back afterwards. Calls to plain
// (non-function) procedures do not use it.
const ResultSlot = "__internal__returned__value__captured__"

// ArgumentName returns the bound name of the i-th positional argument
// inside a called procedure's frame.
func ArgumentName(i int) string {
	return fmt.Sprintf("_p%d", i)
}

func foldKey(name string) string {
	return strings.ToUpper(name)
}

// Kind distinguishes a built-in (Go-implemented) procedure from one defined
// in Logo source via TO/END.
type Kind int

const (
	Builtin Kind = iota
	UserDefined
)

// BuiltinFunc is the signature every native procedure implements. It
// receives the stack so it can read/write variables (e.g. REPCOUNT) and
// returns a Value only when the procedure IsFunction; otherwise the
// returned Value is ignored.
type BuiltinFunc func(s *Stack, args []value.Value) (value.Value, error)

// Procedure is either a builtin dispatching to a Go function, or a
// user-defined one whose body is kept as raw, unparsed source text and
// re-parsed on every call, so that a procedure may forward-reference one
// defined later in the session.
type Procedure struct {
	Name       string
	NArgs      int
	IsFunction bool
	Kind       Kind
	Fn         BuiltinFunc
	Body       string

	// Params names a TO/END definition's declared formal parameters
	// ("side", "size", ..., without the leading colon), in order. Builtins leave this nil: they
	// read their arguments straight out of the args slice, not by name.
	// A user-defined procedure's body text is free to refer to its
	// arguments by their declared name because pkg/eval binds each one as
	// a local alias of the corresponding positional _pN slot before the
	// body runs.
	Params []string
}

// Frame is one level of the dynamic-scope stack: a set of variables, a set
// of locally-defined procedures (in practice only the global frame ever
// populates this, since TO/END definitions are always global), and the
// bookkeeping for the result-slot protocol.
type Frame struct {
	variables  map[string]value.Value
	procedures map[string]*Procedure
	waitFor    string
	result     value.Value
	hasResult  bool
}

func newFrame() *Frame {
	return &Frame{
		variables:  make(map[string]value.Value),
		procedures: make(map[string]*Procedure),
	}
}

func (f *Frame) HasVariable(name string) bool {
	_, ok := f.variables[foldKey(name)]
	return ok
}

func (f *Frame) GetVariable(name string) (value.Value, bool) {
	v, ok := f.variables[foldKey(name)]
	return v, ok
}

func (f *Frame) SetVariable(name string, v value.Value) {
	f.variables[foldKey(name)] = v
}

func (f *Frame) GetProcedure(name string) (*Procedure, bool) {
	p, ok := f.procedures[foldKey(name)]
	return p, ok
}

func (f *Frame) SetProcedure(p *Procedure) {
	f.procedures[foldKey(p.Name)] = p
}

// WaitForValueIn records that this frame expects a value to show up in
// variable name once the frame it's about to open closes.
func (f *Frame) WaitForValueIn(name string) {
	f.waitFor = name
}

func (f *Frame) ClearWaitForValue() {
	f.waitFor = ""
}

// StoreResult is how a function-returning procedure hands back its value
// (the OUTPUT equivalent): it sets the result on the currently open frame,
// to be collected by CloseFrame.
func (f *Frame) StoreResult(v value.Value) {
	f.result = v
	f.hasResult = true
}

// String returns a deterministically ordered dump of the frame's variables
// and locally-defined procedures, for debugging.
func (f *Frame) String() string {
	var sb strings.Builder
	names := make([]string, 0, len(f.variables))
	for name := range f.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	sb.WriteString("Variables:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-20s = %s\n", name, f.variables[name].Show())
	}
	if len(f.procedures) > 0 {
		procNames := make([]string, 0, len(f.procedures))
		for name := range f.procedures {
			procNames = append(procNames, name)
		}
		sort.Strings(procNames)
		sb.WriteString("Procedures:\n")
		for _, name := range procNames {
			p := f.procedures[name]
			fmt.Fprintf(&sb, "  %-20s (nargs=%d function=%v)\n", name, p.NArgs, p.IsFunction)
		}
	}
	return sb.String()
}

// Stack is the full call stack: a slice of frames, frame 0 is global and
// can never be closed. It also carries the handles every builtin needs
// besides the variable/procedure tables — the turtle and the interpreter's
// output streams — bundled onto the one value already threaded through
// every BuiltinFunc call.
type Stack struct {
	frames []*Frame

	Turtle *turtle.Turtle
	Out    io.Writer
	ErrOut io.Writer
}

// NewStack returns a stack with a single, empty global frame.
func NewStack() *Stack {
	return &Stack{frames: []*Frame{newFrame()}}
}

func (s *Stack) CurrentFrame() *Frame { return s.frames[len(s.frames)-1] }
func (s *Stack) GlobalFrame() *Frame  { return s.frames[0] }
func (s *Stack) NFrames() int         { return len(s.frames) }

// OpenFrame pushes a fresh frame, used when entering a procedure call.
func (s *Stack) OpenFrame() {
	s.frames = append(s.frames, newFrame())
}

// CloseFrame pops the current frame and, if its parent registered a result
// slot, copies the closed frame's stored result into it. It fails with
// MissingReturnValueError when the parent waits for a result the child never
// stored, and with NoReturnTargetError when the child stored a result nobody
// waits for.
func (s *Stack) CloseFrame() error {
	if len(s.frames) <= 1 {
		return &logoerr.UnclosableFrameError{}
	}
	child := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	parent := s.CurrentFrame()

	if parent.waitFor != "" {
		slot := parent.waitFor
		parent.ClearWaitForValue()
		if !child.hasResult {
			return &logoerr.MissingReturnValueError{Name: slot}
		}
		parent.SetVariable(slot, child.result)
		return nil
	}
	if child.hasResult {
		return &logoerr.NoReturnTargetError{}
	}
	return nil
}

// GetVariable scans frames from innermost to the global frame.
func (s *Stack) GetVariable(name string) (value.Value, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].GetVariable(name); ok {
			return v, nil
		}
	}
	return value.Value{}, &logoerr.UndefinedVariableError{Name: name}
}

// SetVariable updates the nearest enclosing frame that already defines
// name, or creates it in the global frame if no frame does. MAKE and NAME
// deliberately bypass this (see pkg/builtins/memory.go) and call SetGlobal
// directly instead.
func (s *Stack) SetVariable(name string, v value.Value) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].HasVariable(name) {
			s.frames[i].SetVariable(name, v)
			return
		}
	}
	s.GlobalFrame().SetVariable(name, v)
}

// SetGlobal always writes into the global frame, regardless of shadowing.
func (s *Stack) SetGlobal(name string, v value.Value) {
	s.GlobalFrame().SetVariable(name, v)
}

// SetLocal always writes into the current frame.
func (s *Stack) SetLocal(name string, v value.Value) {
	s.CurrentFrame().SetVariable(name, v)
}

// GetProcedure scans frames from innermost to the global frame. In
// practice only the global frame ever holds a procedure, since TO/END
// definitions are always registered there.
func (s *Stack) GetProcedure(name string) (*Procedure, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if p, ok := s.frames[i].GetProcedure(name); ok {
			return p, nil
		}
	}
	return nil, &logoerr.UndefinedProcedureError{Name: name}
}

// GetProcedureNArgs is a convenience used by the parser/AST builder, which
// needs a procedure's arity before it can know how many following tokens to
// attach as its arguments.
func (s *Stack) GetProcedureNArgs(name string) (int, error) {
	p, err := s.GetProcedure(name)
	if err != nil {
		return 0, err
	}
	return p.NArgs, nil
}

// SetProcedure registers p in the global frame.
func (s *Stack) SetProcedure(p *Procedure) {
	s.GlobalFrame().SetProcedure(p)
}
