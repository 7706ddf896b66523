package memory

import (
	"testing"

	"github.com/mbianchi/mlogo/pkg/value"
)

func TestSetGetVariableScanThenGlobal(t *testing.T) {
	s := NewStack()
	s.SetVariable("x", value.NewWord("1"))
	s.OpenFrame()
	s.SetVariable("x", value.NewWord("2")) // x not local, scans up and updates global
	if v, err := s.GetVariable("x"); err != nil || v.Raw() != "2" {
		t.Fatalf("got %v, %v", v, err)
	}
	if err := s.CloseFrame(); err != nil {
		t.Fatalf("CloseFrame: %v", err)
	}
	if v, _ := s.GetVariable("x"); v.Raw() != "2" {
		t.Errorf("global x should have been updated, got %v", v)
	}
}

func TestSetLocalShadowsGlobal(t *testing.T) {
	s := NewStack()
	s.SetVariable("y", value.NewWord("outer"))
	s.OpenFrame()
	s.SetLocal("y", value.NewWord("inner"))
	if v, _ := s.GetVariable("y"); v.Raw() != "inner" {
		t.Errorf("expected shadowed local, got %v", v)
	}
	s.CloseFrame()
	if v, _ := s.GetVariable("y"); v.Raw() != "outer" {
		t.Errorf("expected outer restored, got %v", v)
	}
}

func TestCaseInsensitiveVariableNames(t *testing.T) {
	s := NewStack()
	s.SetVariable("Size", value.NewWord("10"))
	if v, err := s.GetVariable("SIZE"); err != nil || v.Raw() != "10" {
		t.Errorf("case-insensitive lookup failed: %v %v", v, err)
	}
}

func TestUndefinedVariable(t *testing.T) {
	s := NewStack()
	if _, err := s.GetVariable("nope"); err == nil {
		t.Error("expected error for undefined variable")
	}
}

func TestCloseFrameResultProtocolFunction(t *testing.T) {
	s := NewStack()
	s.CurrentFrame().WaitForValueIn(ResultSlot)
	s.OpenFrame()
	s.CurrentFrame().StoreResult(value.NewWord("42"))
	if err := s.CloseFrame(); err != nil {
		t.Fatalf("CloseFrame: %v", err)
	}
	v, err := s.GetVariable(ResultSlot)
	if err != nil || v.Raw() != "42" {
		t.Errorf("result slot not populated: %v %v", v, err)
	}
}

func TestCloseFrameMissingReturnValue(t *testing.T) {
	s := NewStack()
	s.CurrentFrame().WaitForValueIn(ResultSlot)
	s.OpenFrame()
	// body never calls StoreResult
	if err := s.CloseFrame(); err == nil {
		t.Error("expected MissingReturnValueError")
	}
}

func TestCloseFrameNoReturnTarget(t *testing.T) {
	s := NewStack()
	s.OpenFrame()
	s.CurrentFrame().StoreResult(value.NewWord("oops"))
	if err := s.CloseFrame(); err == nil {
		t.Error("expected NoReturnTargetError")
	}
}

func TestCannotCloseGlobalFrame(t *testing.T) {
	s := NewStack()
	if err := s.CloseFrame(); err == nil {
		t.Error("expected UnclosableFrameError")
	}
}

func TestProcedureLookup(t *testing.T) {
	s := NewStack()
	s.SetProcedure(&Procedure{Name: "fd", NArgs: 1, Kind: Builtin})
	p, err := s.GetProcedure("FD")
	if err != nil || p.NArgs != 1 {
		t.Errorf("got %v %v", p, err)
	}
	if _, err := s.GetProcedure("missing"); err == nil {
		t.Error("expected UndefinedProcedureError")
	}
}

func TestArgumentName(t *testing.T) {
	if ArgumentName(0) != "_p0" || ArgumentName(3) != "_p3" {
		t.Errorf("unexpected argument names: %q %q", ArgumentName(0), ArgumentName(3))
	}
}
