// Package geometry implements the turtle's coordinate model: angles
// normalized to [0, 2*pi), affine reference frames, points, polylines and
// straight lines with explicit vertical-line support. Coordinates round
// half-away-from-zero and float comparisons share a single epsilon.
package geometry

import (
	"math"

	"github.com/mbianchi/mlogo/pkg/logoerr"
)

// Epsilon is the tolerance used throughout for float comparisons.
const Epsilon = 1e-5

// infThreshold is the magnitude past which a slope is treated as vertical.
const infThreshold = 1e4

// VerticalSlope is the sentinel slope value used by StraightLine for
// vertical lines. tan(pi/2) is not a true infinity in floating point, just a
// very large finite number, which is exactly why isInf needs a threshold
// rather than an equality check.
var VerticalSlope = math.Tan(math.Pi / 2)

func isZero(v float64) bool { return math.Abs(v) < Epsilon }
func isInf(v float64) bool  { return math.Abs(v) > infThreshold }

// myround rounds half away from zero, applying math.Round to the magnitude
// so negative inputs round symmetrically with positive ones.
func myround(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	return sign * math.Round(math.Abs(v))
}

func radNormalize(r float64) float64 {
	for r < 0 {
		r += 2 * math.Pi
	}
	for r >= 2*math.Pi {
		r -= 2 * math.Pi
	}
	return r
}

// Angle is always stored normalized to [0, 2*pi) radians.
type Angle struct {
	rad float64
}

// Degrees builds a normalized Angle from a degree value.
func Degrees(d float64) Angle {
	return Angle{rad: radNormalize(d * math.Pi / 180)}
}

// Rad builds a normalized Angle from a radian value.
func Rad(r float64) Angle {
	return Angle{rad: radNormalize(r)}
}

func (a Angle) Degrees() float64 { return a.rad * 180 / math.Pi }
func (a Angle) Radians() float64 { return a.rad }

func (a Angle) Equal(b Angle) bool { return math.Abs(a.rad-b.rad) < Epsilon }

func (a Angle) Add(b Angle) Angle { return Rad(a.rad + b.rad) }
func (a Angle) Sub(b Angle) Angle { return Rad(a.rad - b.rad) }
func (a Angle) Neg() Angle { return Rad(-a.rad) }
func (a Angle) Mul(k float64) Angle { return Rad(a.rad * k) }
func (a Angle) Div(k float64) Angle { return Rad(a.rad / k) }

// Sin snaps near-zero results to exactly 0.
func (a Angle) Sin() float64 {
	s := math.Sin(a.rad)
	if isZero(s) {
		return 0
	}
	return s
}

// Cos snaps near-zero results to exactly 0.
func (a Angle) Cos() float64 {
	c := math.Cos(a.rad)
	if isZero(c) {
		return 0
	}
	return c
}

// Tan returns an error for angles whose tangent is effectively infinite
// (i.e. the right angle and its normalized-circle equivalents).
func (a Angle) Tan() (float64, error) {
	t := math.Tan(a.rad)
	if isInf(t) {
		return 0, &logoerr.GeometryError{Msg: "Tangent for right angle is undefined."}
	}
	if isZero(t) {
		return 0, nil
	}
	return t, nil
}

// ArcTan is the inverse of Tan, returned as a normalized Angle.
func ArcTan(t float64) Angle {
	return Rad(math.Atan(t))
}

// Reference is an affine transform between the turtle's local coordinate
// system and the global (GPS) one: global = (local/k) + o.
type Reference struct {
	Kx, Ox, Ky, Oy float64
}

// Global is the identity reference frame.
func Global() Reference {
	return Reference{Kx: 1, Ox: 0, Ky: 1, Oy: 0}
}

func (r Reference) Equal(o Reference) bool {
	return r.Kx == o.Kx && r.Ox == o.Ox && r.Ky == o.Ky && r.Oy == o.Oy
}

func (r Reference) IsGlobal() bool { return r.Equal(Global()) }

// ToGPS maps a point in this reference frame into the global one.
func (r Reference) ToGPS(p Point) Point {
	return Point{X: p.X/r.Kx + r.Ox, Y: p.Y/r.Ky + r.Oy, System: Global()}
}

// FromGPS maps a global point into this reference frame.
func (r Reference) FromGPS(p Point) Point {
	return Point{X: r.Kx * (p.X - r.Ox), Y: r.Ky * (p.Y - r.Oy), System: r}
}

// Point is a 2D coordinate tagged with the reference frame it was expressed
// in. Two points only compare equal (or order) within the same frame.
type Point struct {
	X, Y   float64
	System Reference
}

// NewPoint builds a point in the given reference frame.
func NewPoint(x, y float64, system Reference) Point {
	return Point{X: x, Y: y, System: system}
}

// Same compares two points after mapping both to the global frame.
func (p Point) Same(o Point) bool {
	pg, og := p.System.ToGPS(p), o.System.ToGPS(o)
	return pg.X == og.X && pg.Y == og.Y
}

// Equal requires identical coordinates and identical reference frame.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y && p.System.Equal(o.System)
}

// Less orders points lexicographically by (x, y), within the same frame
// only.
func (p Point) Less(o Point) bool {
	if !p.System.Equal(o.System) {
		return false
	}
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y, System: p.System}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y, System: p.System}
}

func (p Point) Scale(a, b float64) Point {
	return Point{X: p.X * a, Y: p.Y * b, System: p.System}
}

// Rotate rotates the point about its frame's origin by the given angle,
// rounding the result to integer coordinates.
func (p Point) Rotate(a Angle) Point {
	sin, cos := a.Sin(), a.Cos()
	return Point{
		X:      myround(p.X*cos - p.Y*sin),
		Y:      myround(p.X*sin + p.Y*cos),
		System: p.System,
	}
}

// Distance is the Euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Path is a connected polyline in a single reference frame.
type Path struct {
	System Reference
	Points []Point
}

// NewPath starts a single-point path at (x, y) in system.
func NewPath(system Reference, x, y float64) Path {
	return Path{System: system, Points: []Point{{X: x, Y: y, System: system}}}
}

// NewPathFromPoint starts a single-point path at p.
func NewPathFromPoint(p Point) Path {
	return Path{System: p.System, Points: []Point{p}}
}

// PushBack appends a new point built from raw coordinates in the path's
// frame.
func (p *Path) PushBack(x, y float64) {
	p.Points = append(p.Points, Point{X: x, Y: y, System: p.System})
}

// PushPoint appends an already-constructed point.
func (p *Path) PushPoint(pt Point) {
	p.Points = append(p.Points, pt)
}

// PushFromLast appends a point offset from the current last point.
func (p *Path) PushFromLast(dx, dy float64) {
	last := p.Last()
	p.PushBack(last.X+dx, last.Y+dy)
}

// Translate shifts every point in the path by offset.
func (p *Path) Translate(offset Point) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(offset)
	}
}

// Rotate rotates every point in the path about the frame origin.
func (p *Path) Rotate(a Angle) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Rotate(a)
	}
}

// Last returns the most recently added point.
func (p Path) Last() Point {
	return p.Points[len(p.Points)-1]
}

// Empty reports whether the path is too short to draw: a path needs at
// least two points to make a segment.
func (p Path) Empty() bool {
	return len(p.Points) < 2
}

// StraightLine is y = m*x + q in its reference frame, with M set to
// VerticalSlope representing a vertical line x = q.
type StraightLine struct {
	M, Q   float64
	System Reference
}

// NewStraightLineMQ builds a line directly from slope and intercept.
func NewStraightLineMQ(m, q float64, system Reference) StraightLine {
	return StraightLine{M: m, Q: q, System: system}
}

// NewStraightLineAngle builds a line through q at the given heading angle.
func NewStraightLineAngle(a Angle, q float64, system Reference) StraightLine {
	if a.Equal(Degrees(90)) || a.Equal(Degrees(270)) {
		return StraightLine{M: VerticalSlope, Q: q, System: system}
	}
	m, err := a.Tan()
	if err != nil {
		m = VerticalSlope
	}
	return StraightLine{M: m, Q: q, System: system}
}

// NewStraightLinePointSlope builds the line of slope m through point a.
func NewStraightLinePointSlope(m float64, a Point) StraightLine {
	return StraightLine{M: m, Q: a.Y - m*a.X, System: a.System}
}

// NewStraightLineTwoPoints builds the line through a and b, which must share
// a reference frame.
func NewStraightLineTwoPoints(a, b Point) (StraightLine, error) {
	if !a.System.Equal(b.System) {
		return StraightLine{}, &logoerr.GeometryError{Msg: "points belong to different reference frames"}
	}
	dx := b.X - a.X
	if dx == 0 {
		return StraightLine{M: VerticalSlope, Q: b.X, System: a.System}, nil
	}
	m := (b.Y - a.Y) / dx
	return StraightLine{M: m, Q: b.Y - m*b.X, System: a.System}, nil
}

// IsVertical reports whether the line is the vertical sentinel.
func (l StraightLine) IsVertical() bool { return isInf(l.M) }

// IsHorizontal reports whether the line has zero slope.
func (l StraightLine) IsHorizontal() bool { return isZero(l.M) }

// Angle returns the line's inclination.
func (l StraightLine) Angle() Angle {
	if l.IsVertical() {
		return Degrees(90)
	}
	return ArcTan(l.M)
}

// WhenX returns the point on the line at the given x.
func (l StraightLine) WhenX(x float64) (Point, error) {
	if l.IsVertical() {
		return Point{}, &logoerr.GeometryError{Msg: "vertical line has no single y for a given x"}
	}
	return Point{X: x, Y: myround(l.M*x + l.Q), System: l.System}, nil
}

// WhenY returns the point on the line at the given y.
func (l StraightLine) WhenY(y float64) (Point, error) {
	if l.IsHorizontal() {
		return Point{}, &logoerr.GeometryError{Msg: "horizontal line has no single x for a given y"}
	}
	if l.IsVertical() {
		return Point{X: myround(l.Q), Y: y, System: l.System}, nil
	}
	return Point{X: myround((y - l.Q) / l.M), Y: y, System: l.System}, nil
}

// Parallel reports whether two lines have the same slope within epsilon.
func (l StraightLine) Parallel(o StraightLine) bool {
	if l.IsVertical() && o.IsVertical() {
		return true
	}
	if l.IsVertical() != o.IsVertical() {
		return false
	}
	return math.Abs(l.M-o.M) < Epsilon
}

// Where returns the intersection of two lines in the same reference frame.
func (l StraightLine) Where(o StraightLine) (Point, error) {
	if !l.System.Equal(o.System) {
		return Point{}, &logoerr.GeometryError{Msg: "lines belong to different reference frames"}
	}
	if l.Parallel(o) {
		return Point{}, &logoerr.GeometryError{Msg: "parallel lines do not intersect"}
	}
	if l.IsVertical() {
		return o.WhenX(l.Q)
	}
	if o.IsVertical() {
		return l.WhenX(o.Q)
	}
	return l.WhenX(myround((o.Q - l.Q) / (l.M - o.M)))
}

// BelongTo reports whether p lies on the line, transforming p into the
// line's frame first.
func (l StraightLine) BelongTo(p Point) bool {
	local := l.System.FromGPS(p.System.ToGPS(p))
	if l.IsVertical() {
		return l.Q == local.X
	}
	return isZero(local.Y - myround(l.M*local.X+l.Q))
}

// Equal compares slope and intercept within epsilon, and the frame exactly.
func (l StraightLine) Equal(o StraightLine) bool {
	return math.Abs(l.M-o.M) < Epsilon && math.Abs(l.Q-o.Q) < Epsilon && l.System.Equal(o.System)
}
