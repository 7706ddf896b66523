// Package turtle implements the turtle graphics state machine: position,
// heading, pen state, visibility and the three boundary behaviors (window,
// fence, wrap) a forward move can hit. Rendering sits behind a small
// Renderer interface so the state machine stays independent of whatever
// draws the pixels.
package turtle

import (
	"math"

	"github.com/mbianchi/mlogo/pkg/geometry"
)

// ScreenWidth and ScreenHeight are the logical canvas dimensions every
// Turtle is centered in.
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Mode selects what happens when a forward move would leave the canvas.
type Mode int

const (
	Wrap Mode = iota
	Fence
	Window
)

func (m Mode) String() string {
	switch m {
	case Fence:
		return "fence"
	case Window:
		return "window"
	default:
		return "wrap"
	}
}

// Pen tracks whether motion draws a line or just repositions.
type Pen int

const (
	PenDown Pen = iota
	PenUp
)

// Color is a back-end-agnostic RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Renderer is the abstract drawing surface a Turtle paints onto. Nothing in
// this package requires one: a Turtle with a nil Renderer tracks state
// without drawing, which is what the headless console front end uses when it
// only needs final position/heading queries. Present is the one operation
// that can fail (a back end rejecting the frame, a surface that went away)
// so it alone returns an error; Clear/SetColor/DrawPolyline are assumed to
// always succeed against an in-memory or GPU surface already known to exist.
type Renderer interface {
	Clear()
	SetColor(Color)
	DrawPolyline(points []geometry.Point)
	Present() error
}

// Turtle is the full mutable state of one cursor: its local coordinate
// system (origin at screen center, y flipped so "forward" moves toward
// positive y on screen the way a compass heading expects), its path
// history, and its current drawing mode.
type Turtle struct {
	system      geometry.Reference
	angle       geometry.Angle
	position    geometry.Point
	paths       []geometry.Path
	xScrunch    float64
	yScrunch    float64
	shown       bool
	mode        Mode
	pen         Pen
	topLeft     geometry.Point
	bottomRight geometry.Point
	offsets     geometry.Point

	renderer Renderer
	color    Color
}

// New builds a turtle centered on a ScreenWidth x ScreenHeight canvas,
// heading 0, pen down, mode wrap, attached to the given renderer (which may
// be nil).
func New(r Renderer) *Turtle {
	system := geometry.Reference{Kx: 1, Ox: ScreenWidth / 2, Ky: -1, Oy: ScreenHeight / 2}
	t := &Turtle{
		system:   system,
		angle:    geometry.Degrees(0),
		position: geometry.NewPoint(0, 0, system),
		xScrunch: 1,
		yScrunch: 1,
		shown:    true,
		mode:     Wrap,
		pen:      PenDown,
		renderer: r,
		color:    Color{0, 0, 0, 255},
	}
	t.computeBounds()
	t.startPath(t.position)
	return t
}

func (t *Turtle) computeBounds() {
	corners := []geometry.Point{
		t.system.FromGPS(geometry.NewPoint(0, 0, geometry.Global())),
		t.system.FromGPS(geometry.NewPoint(ScreenWidth, 0, geometry.Global())),
		t.system.FromGPS(geometry.NewPoint(0, ScreenHeight, geometry.Global())),
		t.system.FromGPS(geometry.NewPoint(ScreenWidth, ScreenHeight, geometry.Global())),
	}
	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	t.topLeft = geometry.NewPoint(minX, minY, t.system)
	t.bottomRight = geometry.NewPoint(maxX, maxY, t.system)
	t.offsets = geometry.NewPoint(maxX-minX, maxY-minY, t.system)
}

func (t *Turtle) startPath(p geometry.Point) {
	t.paths = append(t.paths, geometry.NewPathFromPoint(p))
}

func (t *Turtle) addToCurrentPath(p geometry.Point) {
	if t.pen == PenUp {
		t.startPath(p)
		return
	}
	if len(t.paths) == 0 {
		t.startPath(p)
		return
	}
	t.paths[len(t.paths)-1].PushPoint(p)
}

// Forward moves the turtle steps units along its current heading, scaled by
// the active x/y scrunch, handling the active boundary mode.
func (t *Turtle) Forward(steps float64) {
	delta := geometry.NewPoint(0, steps, t.system).Rotate(t.angle).Scale(t.xScrunch, t.yScrunch)
	target := t.position.Add(delta)
	t.walkTo(target)
}

// Right turns the turtle deg degrees clockwise on screen. The turtle frame's
// y-axis is already flipped relative to the screen, so subtracting here
// produces a visual clockwise turn.
func (t *Turtle) Right(deg float64) {
	t.angle = t.angle.Sub(geometry.Degrees(deg))
}

func (t *Turtle) walkTo(target geometry.Point) {
	switch t.mode {
	case Window:
		t.addToCurrentPath(target)
		t.position = target
	case Fence:
		if mid, ok := t.outOfBounds(target); ok {
			t.addToCurrentPath(mid)
			t.position = mid
			return
		}
		t.addToCurrentPath(target)
		t.position = target
	default: // Wrap
		t.wrapTo(target)
	}
}

// wrapTo walks toward target, and whenever the straight segment from the
// current position would cross a canvas edge, draws up to the crossing
// point, teleports the turtle to the mirror point on the opposite edge
// (offsetting the remainder of the motion by the canvas size so the
// direction of travel is preserved), and recurses with whatever's left of
// the original move.
func (t *Turtle) wrapTo(target geometry.Point) {
	mid, ok := t.outOfBounds(target)
	if !ok {
		t.addToCurrentPath(target)
		t.position = target
		return
	}
	t.addToCurrentPath(mid)

	rest := target
	if geometry.Epsilon > absDiff(mid.X, t.topLeft.X) {
		t.position = geometry.NewPoint(t.bottomRight.X, mid.Y, t.system)
		rest.X += t.offsets.X
	} else if geometry.Epsilon > absDiff(mid.X, t.bottomRight.X) {
		t.position = geometry.NewPoint(t.topLeft.X, mid.Y, t.system)
		rest.X -= t.offsets.X
	} else {
		t.position = mid
	}
	if geometry.Epsilon > absDiff(mid.Y, t.topLeft.Y) {
		t.position.Y = t.bottomRight.Y
		rest.Y += t.offsets.Y
	} else if geometry.Epsilon > absDiff(mid.Y, t.bottomRight.Y) {
		t.position.Y = t.topLeft.Y
		rest.Y -= t.offsets.Y
	}

	t.startPath(t.position)
	t.wrapTo(rest)
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// outOfBounds reports the point on the segment from the turtle's current
// position to target where it first crosses a canvas edge, if any.
func (t *Turtle) outOfBounds(target geometry.Point) (geometry.Point, bool) {
	line, err := geometry.NewStraightLineTwoPoints(t.position, target)
	if err != nil {
		return geometry.Point{}, false
	}

	var candidates []geometry.Point
	switch {
	case target.X < t.topLeft.X:
		if p, err := line.WhenX(t.topLeft.X); err == nil && inRange(p.Y, t.topLeft.Y, t.bottomRight.Y) {
			candidates = append(candidates, p)
		}
	case target.X > t.bottomRight.X:
		if p, err := line.WhenX(t.bottomRight.X); err == nil && inRange(p.Y, t.topLeft.Y, t.bottomRight.Y) {
			candidates = append(candidates, p)
		}
	}
	switch {
	case target.Y < t.topLeft.Y:
		if p, err := line.WhenY(t.topLeft.Y); err == nil && inRange(p.X, t.topLeft.X, t.bottomRight.X) {
			candidates = append(candidates, p)
		}
	case target.Y > t.bottomRight.Y:
		if p, err := line.WhenY(t.bottomRight.Y); err == nil && inRange(p.X, t.topLeft.X, t.bottomRight.X) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return geometry.Point{}, false
	}
	best := candidates[0]
	bestDist := t.position.Distance(best)
	for _, c := range candidates[1:] {
		if d := t.position.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

func inRange(v, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return v >= lo-geometry.Epsilon && v <= hi+geometry.Epsilon
}

// Home sends the turtle back to the origin, heading 0, starting a fresh path
// there rather than drawing a line back.
func (t *Turtle) Home() {
	t.angle = geometry.Degrees(0)
	t.position = geometry.NewPoint(0, 0, t.system)
	t.startPath(t.position)
}

// Clean erases the path history without moving the turtle.
func (t *Turtle) Clean() {
	t.paths = nil
	t.startPath(t.position)
}

// ClearScreen is Home followed by Clean.
func (t *Turtle) ClearScreen() {
	t.Home()
	t.Clean()
}

// SetPos jumps directly to (x, y) in local coordinates, drawing a line there
// if the pen is down. Unlike Forward, a direct jump is never subject to
// wrap/fence reflection: the caller asked for that exact point.
func (t *Turtle) SetPos(x, y float64) {
	target := geometry.NewPoint(x, y, t.system)
	t.addToCurrentPath(target)
	t.position = target
}

func (t *Turtle) SetX(x float64) { t.SetPos(x, t.position.Y) }
func (t *Turtle) SetY(y float64) { t.SetPos(t.position.X, y) }

// Position returns the current local coordinates.
func (t *Turtle) Position() (float64, float64) { return t.position.X, t.position.Y }
func (t *Turtle) X() float64 { return t.position.X }
func (t *Turtle) Y() float64 { return t.position.Y }

// SetHeading and Heading store/report the raw internal angle in degrees.
// The sign flip that makes a screen-clockwise heading increase is applied
// by the SETHEADING/HEADING builtins, not here, so this type stays a plain
// angle store.
func (t *Turtle) SetHeading(deg float64) { t.angle = geometry.Degrees(deg) }
func (t *Turtle) Heading() float64 { return t.angle.Degrees() }

func (t *Turtle) Scrunch() (float64, float64) { return t.xScrunch, t.yScrunch }
func (t *Turtle) SetScrunch(x, y float64) { t.xScrunch, t.yScrunch = x, y }

func (t *Turtle) ShowTurtle() { t.shown = true }
func (t *Turtle) HideTurtle() { t.shown = false }
func (t *Turtle) Shown() bool { return t.shown }

func (t *Turtle) SetWindowMode() { t.mode = Window }
func (t *Turtle) SetFenceMode() { t.mode = Fence }
func (t *Turtle) SetWrapMode() { t.mode = Wrap }
func (t *Turtle) ModeName() string { return t.mode.String() }

func (t *Turtle) PenUp() { t.pen = PenUp }
func (t *Turtle) PenDown() { t.pen = PenDown }

// Towards returns the heading (in the same raw convention as Heading) from
// the turtle's current position to the given local point, without moving.
// Forward's displacement for internal angle a is (-sin(a), cos(a))*steps, so
// the angle whose forward step points at (dx, dy) is atan2(-dx, dy).
func (t *Turtle) Towards(x, y float64) float64 {
	dx := x - t.position.X
	dy := y - t.position.Y
	if dx == 0 && dy == 0 {
		return t.angle.Degrees()
	}
	return geometry.Rad(math.Atan2(-dx, dy)).Degrees()
}

// SetColor sets the pen color used for subsequent rendering.
func (t *Turtle) SetColor(c Color) { t.color = c }

// shapePath returns the turtle's triangular cursor shape, translated to its
// current position and rotated to its current heading, in its own frame.
// The shape is a small isosceles triangle pointing along heading 0 (up).
func (t *Turtle) shapePath() geometry.Path {
	const size = 8.0
	local := []geometry.Point{
		geometry.NewPoint(0, size, t.system),
		geometry.NewPoint(-size/2, -size/2, t.system),
		geometry.NewPoint(size/2, -size/2, t.system),
		geometry.NewPoint(0, size, t.system),
	}
	p := geometry.Path{System: t.system, Points: local}
	p.Rotate(t.angle)
	p.Translate(t.position)
	return p
}

// Render clears the renderer, draws every accumulated path, then — if the
// turtle is shown — its cursor shape translated and rotated to its current
// position and heading, then presents the frame. A nil renderer makes this a
// no-op, so headless use of Turtle never needs to care whether a back end is
// attached. A non-nil error is the back end rejecting the frame; the caller
// (an interpreter front end) is expected to report it and move on rather
// than treat it as fatal.
func (t *Turtle) Render() error {
	if t.renderer == nil {
		return nil
	}
	t.renderer.Clear()
	t.renderer.SetColor(t.color)
	for _, p := range t.paths {
		if !p.Empty() {
			t.renderer.DrawPolyline(p.Points)
		}
	}
	if t.shown {
		t.renderer.DrawPolyline(t.shapePath().Points)
	}
	return t.renderer.Present()
}
