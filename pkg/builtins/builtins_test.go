package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mbianchi/mlogo/pkg/eval"
	"github.com/mbianchi/mlogo/pkg/parser"
	"github.com/mbianchi/mlogo/pkg/value"
)

func TestPrintInfixSum(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine("pr :x + 5", s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	s.SetGlobal("x", value.NewWord("10"))
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "15" {
		t.Errorf("got %q, want 15", got)
	}
}

func TestForwardMovesTurtle(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine("fd 100", s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	x, y := s.Turtle.Position()
	if x != 0 || y != 100 {
		t.Errorf("got (%v, %v), want (0, 100)", x, y)
	}
}

func TestRepeatRunsBodyNTimes(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine(`repeat 4 [fd 10 rt 90]`, s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	x, y := s.Turtle.Position()
	if x > 0.01 || y > 0.01 {
		t.Errorf("square should return near origin, got (%v, %v)", x, y)
	}
}

func TestRepcountIsZeroBased(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine(`repeat 4 [make "i repcount]`, s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	v, err := s.GetVariable("i")
	if err != nil {
		t.Fatalf("GetVariable: %v", err)
	}
	if w, _ := v.AsWord(); w != "3" {
		t.Errorf("last repcount = %q, want 3 (0-based, last of 4 iterations)", w)
	}
}

func TestRepeatZeroRunsBodyZeroTimes(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine(`repeat 0 [fd 10]`, s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if x, y := s.Turtle.Position(); x != 0 || y != 0 {
		t.Errorf("turtle moved on repeat 0, got (%v, %v)", x, y)
	}
}

func TestRandomStaysInBounds(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	for i := 0; i < 200; i++ {
		nodes, err := parser.ParseLine("pr random 100", s)
		if err != nil {
			t.Fatalf("ParseLine: %v", err)
		}
		out.Reset()
		if err := eval.Run(nodes, s); err != nil {
			t.Fatalf("Run: %v", err)
		}
		got := strings.TrimSpace(out.String())
		n, err := value.NewWord(got).AsInt()
		if err != nil {
			t.Fatalf("non-numeric random output %q", got)
		}
		if n < 0 || n > 100 {
			t.Errorf("random 100 = %d, want in [0, 100]", n)
		}
	}
}

func TestModuleMatchesRemainder(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine("pr module 7 3", s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1" {
		t.Errorf("got %q, want 1", got)
	}
}

func TestMakeIsAlwaysGlobal(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine(`make "x 5`, s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s.OpenFrame()
	v, err := s.GetVariable("x")
	if err != nil {
		t.Fatalf("GetVariable: %v", err)
	}
	if w, _ := v.AsWord(); w != "5" {
		t.Errorf("got %q", w)
	}
	s.CloseFrame()
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"substringp word in word", `pr substringp "ell "hello`, "TRUE"},
		{"substringp word not in word", `pr substringp "xyz "hello`, "FALSE"},
		// substringp is not memberp: a list operand is never a substring.
		{"substringp word in list", `pr substringp "a [a b c]`, "FALSE"},
		{"substringp list haystack", `pr substringp [a] [a b c]`, "FALSE"},
		{"memberp word in list", `pr memberp "a [a b c]`, "TRUE"},
		{"memberp word not in list", `pr memberp "d [a b c]`, "FALSE"},
		{"memberp word in word", `pr memberp "ell "hello`, "TRUE"},
		{"beforep numeric", `pr beforep 2 10`, "TRUE"},
		{"beforep lexicographic", `pr beforep "abc "abd`, "TRUE"},
		{"notequalp", `pr notequalp 1 2`, "TRUE"},
		{"numberp number", `pr numberp 3.5`, "TRUE"},
		{"numberp word", `pr numberp "hello`, "FALSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := NewStack(&out, &out, nil)
			nodes, err := parser.ParseLine(tt.line, s)
			if err != nil {
				t.Fatalf("ParseLine: %v", err)
			}
			if err := eval.Run(nodes, s); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataListOperations(t *testing.T) {
	var out bytes.Buffer
	s := NewStack(&out, &out, nil)
	nodes, err := parser.ParseLine(`show fput 1 list 2 3`, s)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := eval.Run(nodes, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[1 2 3]" {
		t.Errorf("got %q", got)
	}
}
