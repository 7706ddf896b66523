// Package interpreter is the line-oriented front end: it reads one line at
// a time, captures a multi-line TO/END procedure definition across as many
// calls as it takes, and otherwise parses and evaluates the line
// immediately. Errors abandon the offending line, print a diagnostic to
// the error stream and let the loop continue.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mbianchi/mlogo/pkg/eval"
	"github.com/mbianchi/mlogo/pkg/logoerr"
	"github.com/mbianchi/mlogo/pkg/memory"
	"github.com/mbianchi/mlogo/pkg/parser"
)

// pendingProc accumulates a TO/END definition's header and body lines as
// they arrive, one Feed call at a time.
type pendingProc struct {
	name   string
	params []string
	lines  []string
}

func (p *pendingProc) addLine(line string) (done bool) {
	if strings.EqualFold(strings.TrimSpace(line), "end") {
		return true
	}
	p.lines = append(p.lines, line)
	return false
}

// Interpreter owns the input/output streams and the stack every statement
// runs against.
type Interpreter struct {
	Stack      *memory.Stack
	In         io.Reader
	Out        io.Writer
	ErrOut     io.Writer
	ShowPrompt bool

	current *pendingProc
}

// New builds an Interpreter over the given stack and input stream. Out/ErrOut
// default to stack.Out/stack.ErrOut if left unset by the caller afterwards.
func New(stack *memory.Stack, in io.Reader) *Interpreter {
	return &Interpreter{
		Stack:  stack,
		In:     in,
		Out:    stack.Out,
		ErrOut: stack.ErrOut,
	}
}

// Run reads lines from In until EOF or a line that is exactly "bye"
// (case-insensitive), feeding each one to Feed.
func (ip *Interpreter) Run() error {
	scanner := bufio.NewScanner(ip.In)
	ip.prompt()
	for scanner.Scan() {
		done, err := ip.Feed(scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		ip.prompt()
	}
	return scanner.Err()
}

func (ip *Interpreter) prompt() {
	if ip.ShowPrompt {
		fmt.Fprint(ip.ErrOut, "? ")
	}
}

// Feed processes a single line. done is true once the line was a bare "bye",
// the interpreter's exit command.
func (ip *Interpreter) Feed(line string) (done bool, err error) {
	trimmed := strings.TrimSpace(line)
	if strings.EqualFold(trimmed, "bye") {
		return true, nil
	}

	if ip.current != nil {
		if ip.current.addLine(line) {
			if existing, err := ip.Stack.GetProcedure(ip.current.name); err == nil && existing.Kind == memory.Builtin {
				fmt.Fprintf(ip.ErrOut, "%v\n", &logoerr.InvalidProcedureBodyError{Name: ip.current.name})
				ip.current = nil
				return false, nil
			}
			ip.Stack.SetProcedure(&memory.Procedure{
				Name:   ip.current.name,
				NArgs:  len(ip.current.params),
				Kind:   memory.UserDefined,
				Params: ip.current.params,
				Body:   strings.Join(ip.current.lines, "\n"),
			})
			ip.current = nil
			fmt.Fprintln(ip.ErrOut, "Procedure recorded.")
		}
		return false, nil
	}

	if isToKeyword(trimmed) {
		header, ok := parseToHeader(trimmed)
		if !ok {
			fmt.Fprintf(ip.ErrOut, "%v\n", &logoerr.InvalidStatementError{Msg: "TO requires a procedure name"})
			return false, nil
		}
		ip.current = header
		return false, nil
	}
	if strings.EqualFold(trimmed, "end") {
		fmt.Fprintf(ip.ErrOut, "%v\n", &logoerr.SyntaxError{Line: line, Pos: 0})
		return false, nil
	}

	nodes, perr := parser.ParseLine(line, ip.Stack)
	if perr != nil {
		fmt.Fprintf(ip.ErrOut, "I don't know how to %s (%s)\n", line, perr.Error())
		return false, nil
	}
	if rerr := eval.Run(nodes, ip.Stack); rerr != nil {
		fmt.Fprintf(ip.ErrOut, "I don't know how to %s (%s)\n", line, rerr.Error())
	}
	return false, nil
}

// isToKeyword reports whether line's first word is the reserved TO
// keyword, regardless of whether a procedure name follows it.
func isToKeyword(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 1 && strings.EqualFold(fields[0], "to")
}

// parseToHeader recognizes `to name :param1 :param2 ...` and returns the
// pendingProc it starts, or ok=false if line isn't a well-formed TO header
// (i.e. TO with no following procedure name).
func parseToHeader(line string) (*pendingProc, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "to") {
		return nil, false
	}
	p := &pendingProc{name: fields[1]}
	for _, f := range fields[2:] {
		if strings.HasPrefix(f, ":") {
			p.params = append(p.params, f[1:])
		}
	}
	return p, true
}
