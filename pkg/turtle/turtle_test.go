package turtle

import "testing"

func TestNewTurtleStartsAtOrigin(t *testing.T) {
	tu := New(nil)
	x, y := tu.Position()
	if x != 0 || y != 0 {
		t.Errorf("got (%v, %v), want (0, 0)", x, y)
	}
	if tu.Heading() != 0 {
		t.Errorf("heading = %v, want 0", tu.Heading())
	}
	if tu.ModeName() != "wrap" {
		t.Errorf("mode = %s, want wrap", tu.ModeName())
	}
}

func TestForwardMovesAlongHeading(t *testing.T) {
	tu := New(nil)
	tu.Forward(100)
	x, y := tu.Position()
	if absDiff(x, 0) > 0.001 || absDiff(y, 100) > 0.001 {
		t.Errorf("got (%v, %v), want (0, 100)", x, y)
	}
}

func TestRightTurnsClockwise(t *testing.T) {
	tu := New(nil)
	tu.Right(90)
	tu.Forward(50)
	x, y := tu.Position()
	if absDiff(x, 50) > 0.001 || absDiff(y, 0) > 0.001 {
		t.Errorf("got (%v, %v), want (50, 0)", x, y)
	}
}

func TestHomeResetsPositionAndHeading(t *testing.T) {
	tu := New(nil)
	tu.Forward(100)
	tu.Right(45)
	tu.Home()
	x, y := tu.Position()
	if x != 0 || y != 0 || tu.Heading() != 0 {
		t.Errorf("Home left turtle at (%v, %v) heading %v", x, y, tu.Heading())
	}
}

func TestWindowModeNeverClamps(t *testing.T) {
	tu := New(nil)
	tu.SetWindowMode()
	tu.SetPos(10000, 10000)
	x, y := tu.Position()
	if x != 10000 || y != 10000 {
		t.Errorf("got (%v, %v), want (10000, 10000)", x, y)
	}
}

func TestFenceModeClampsAtEdge(t *testing.T) {
	tu := New(nil)
	tu.SetFenceMode()
	tu.Forward(10000)
	x, y := tu.Position()
	if y > ScreenHeight/2+1 {
		t.Errorf("fence mode let the turtle leave the canvas: (%v, %v)", x, y)
	}
}

func TestWrapModeTeleportsToOppositeEdge(t *testing.T) {
	tu := New(nil)
	tu.Forward(float64(ScreenHeight)/2 + 50)
	_, y := tu.Position()
	if y > 0 {
		t.Errorf("wrap mode should land the turtle back near the bottom edge, got y=%v", y)
	}
}

func TestPenUpDoesNotExtendPath(t *testing.T) {
	tu := New(nil)
	tu.PenUp()
	tu.Forward(50)
	last := tu.paths[len(tu.paths)-1]
	if !last.Empty() {
		t.Errorf("expected a fresh single-point path after a pen-up move")
	}
}

func TestScrunchScalesMovement(t *testing.T) {
	tu := New(nil)
	tu.SetScrunch(2, 1)
	tu.Forward(10)
	x, y := tu.Position()
	if absDiff(x, 0) > 0.001 || absDiff(y, 10) > 0.001 {
		t.Errorf("got (%v, %v)", x, y)
	}
}

func TestTowardsMatchesHeadingAfterTurn(t *testing.T) {
	// Turning to face a point and asking for the bearing to it must agree:
	// after Right(90) the turtle faces +x, so Towards a point on +x equals
	// the current internal angle.
	tu := New(nil)
	tu.Right(90)
	if got, want := tu.Towards(100, 0), tu.Heading(); absDiff(got, want) > 0.001 {
		t.Errorf("Towards(100,0) = %v, want heading %v", got, want)
	}
}

func TestTowardsAllQuadrants(t *testing.T) {
	tu := New(nil)
	tests := []struct {
		x, y float64
		want float64 // internal angle, degrees
	}{
		{0, 100, 0},    // straight up
		{100, 0, 270},  // east is a clockwise quarter turn, internally -90
		{0, -100, 180}, // straight down
		{-100, 0, 90},  // west
	}
	for _, tt := range tests {
		if got := tu.Towards(tt.x, tt.y); absDiff(got, tt.want) > 0.001 {
			t.Errorf("Towards(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHomeStartsFreshPath(t *testing.T) {
	tu := New(nil)
	tu.Forward(50)
	before := len(tu.paths)
	tu.Home()
	if len(tu.paths) != before+1 {
		t.Errorf("Home should start a new path, got %d paths (was %d)", len(tu.paths), before)
	}
	last := tu.paths[len(tu.paths)-1]
	if !last.Empty() {
		t.Error("Home should not draw a line back to the origin")
	}
}

func TestWrapPreservesTotalSegmentLength(t *testing.T) {
	// The drawn segments of a wrapped move must add up to the requested
	// step magnitude.
	tu := New(nil)
	step := float64(ScreenHeight) + 100
	tu.Forward(step)
	total := 0.0
	for _, p := range tu.paths {
		for i := 0; i+1 < len(p.Points); i++ {
			total += p.Points[i].Distance(p.Points[i+1])
		}
	}
	if absDiff(total, step) > 2 {
		t.Errorf("drawn length = %v, want ~%v", total, step)
	}
}

func TestShowHideTurtle(t *testing.T) {
	tu := New(nil)
	if !tu.Shown() {
		t.Error("new turtle should be shown")
	}
	tu.HideTurtle()
	if tu.Shown() {
		t.Error("HideTurtle should hide the turtle")
	}
	tu.ShowTurtle()
	if !tu.Shown() {
		t.Error("ShowTurtle should show the turtle")
	}
}
