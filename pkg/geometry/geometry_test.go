package geometry

import (
	"math"
	"testing"
)

func TestAngleNormalization(t *testing.T) {
	a := Degrees(370)
	if math.Abs(a.Degrees()-10) > Epsilon {
		t.Errorf("Degrees(370) = %v, want ~10", a.Degrees())
	}
	b := Degrees(-10)
	if math.Abs(b.Degrees()-350) > Epsilon {
		t.Errorf("Degrees(-10) = %v, want ~350", b.Degrees())
	}
}

func TestAngleFullTurnsAreEqual(t *testing.T) {
	a := Degrees(37)
	for k := -3; k <= 3; k++ {
		b := Degrees(37 + float64(k)*360)
		if !a.Equal(b) {
			t.Errorf("Degrees(37) != Degrees(%d)", 37+k*360)
		}
	}
}

func TestAngleScalarArithmetic(t *testing.T) {
	a := Degrees(30)
	if got := a.Mul(3).Degrees(); math.Abs(got-90) > Epsilon {
		t.Errorf("30deg * 3 = %v, want 90", got)
	}
	if got := a.Div(2).Degrees(); math.Abs(got-15) > Epsilon {
		t.Errorf("30deg / 2 = %v, want 15", got)
	}
}

func TestTanRightAngleUndefined(t *testing.T) {
	if _, err := Degrees(90).Tan(); err == nil {
		t.Error("expected error for tan(90)")
	}
}

func TestSinCosSnapToZero(t *testing.T) {
	if Degrees(180).Sin() != 0 {
		t.Errorf("sin(180) = %v, want 0", Degrees(180).Sin())
	}
	if Degrees(90).Cos() != 0 {
		t.Errorf("cos(90) = %v, want 0", Degrees(90).Cos())
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	ref := Reference{Kx: 1, Ox: 320, Ky: -1, Oy: 240}
	local := Point{X: 10, Y: 20, System: ref}
	gps := ref.ToGPS(local)
	back := ref.FromGPS(gps)
	if math.Abs(back.X-local.X) > Epsilon || math.Abs(back.Y-local.Y) > Epsilon {
		t.Errorf("round trip mismatch: got %v, want %v", back, local)
	}
}

func TestPathEmptyNeedsTwoPoints(t *testing.T) {
	p := NewPath(Global(), 0, 0)
	if !p.Empty() {
		t.Error("single-point path should be empty")
	}
	p.PushBack(1, 1)
	if p.Empty() {
		t.Error("two-point path should not be empty")
	}
}

func TestStraightLineVertical(t *testing.T) {
	a := Point{X: 5, Y: 0, System: Global()}
	b := Point{X: 5, Y: 10, System: Global()}
	line, err := NewStraightLineTwoPoints(a, b)
	if err != nil {
		t.Fatalf("NewStraightLineTwoPoints: %v", err)
	}
	if !line.IsVertical() {
		t.Error("expected vertical line")
	}
	if _, err := line.WhenX(1); err == nil {
		t.Error("WhenX on vertical line should error")
	}
	p, err := line.WhenY(7)
	if err != nil {
		t.Fatalf("WhenY: %v", err)
	}
	if p.X != 5 {
		t.Errorf("WhenY on vertical line = %v, want x=5", p)
	}
}

func TestStraightLineIntersection(t *testing.T) {
	l1 := NewStraightLineMQ(1, 0, Global())
	l2 := NewStraightLineMQ(-1, 4, Global())
	p, err := l1.Where(l2)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	if math.Abs(p.X-2) > Epsilon || math.Abs(p.Y-2) > Epsilon {
		t.Errorf("intersection = %v, want (2,2)", p)
	}
}

func TestParallelLinesDoNotIntersect(t *testing.T) {
	l1 := NewStraightLineMQ(2, 0, Global())
	l2 := NewStraightLineMQ(2, 5, Global())
	if _, err := l1.Where(l2); err == nil {
		t.Error("expected error intersecting parallel lines")
	}
}

func TestPointRotate(t *testing.T) {
	p := Point{X: 1, Y: 0, System: Global()}
	r := p.Rotate(Degrees(90))
	if math.Abs(r.X) > Epsilon || math.Abs(r.Y-1) > Epsilon {
		t.Errorf("rotate(1,0, 90deg) = %v, want (0,1)", r)
	}
}
