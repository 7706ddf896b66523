package turtle

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/mbianchi/mlogo/pkg/geometry"
)

// RasterRenderer rasterizes the turtle's accumulated paths into an
// image.RGBA using golang.org/x/image/vector, the same anti-aliased
// software rasterization path x/image's own font/vector packages use. It
// implements Renderer, so a Turtle can be driven headlessly in tests and
// attached to one of these only when something needs to actually look at
// the picture.
type RasterRenderer struct {
	img   *image.RGBA
	color Color
	w, h  int
}

// NewRasterRenderer allocates a w x h canvas, cleared to white.
func NewRasterRenderer(w, h int) *RasterRenderer {
	r := &RasterRenderer{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
	r.Clear()
	return r
}

func (r *RasterRenderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
}

func (r *RasterRenderer) SetColor(c Color) { r.color = c }

// DrawPolyline rasterizes a thin polyline through the given points (in the
// turtle's own local coordinate system) by stroking each segment as a thin
// quadrilateral, since vector.Rasterizer fills closed paths rather than
// stroking open ones. Each point carries its own reference frame, so it is
// mapped to screen space via System.ToGPS before rasterizing.
func (r *RasterRenderer) DrawPolyline(points []geometry.Point) {
	if len(points) < 2 {
		return
	}
	const halfWidth = 0.75
	ras := vector.NewRasterizer(r.w, r.h)
	for i := 0; i < len(points)-1; i++ {
		a := points[i].System.ToGPS(points[i])
		b := points[i+1].System.ToGPS(points[i+1])
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*halfWidth, dx/length*halfWidth
		ras.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		ras.LineTo(float32(b.X+nx), float32(b.Y+ny))
		ras.LineTo(float32(b.X-nx), float32(b.Y-ny))
		ras.LineTo(float32(a.X-nx), float32(a.Y-ny))
		ras.ClosePath()
	}
	alpha := image.NewAlpha(image.Rect(0, 0, r.w, r.h))
	ras.Draw(alpha, alpha.Bounds(), image.NewUniform(color.Opaque), image.Point{})
	draw.DrawMask(r.img, r.img.Bounds(), image.NewUniform(color.RGBA{r.color.R, r.color.G, r.color.B, r.color.A}), image.Point{}, alpha, image.Point{}, draw.Over)
}

// Present is always successful: an in-memory raster has no surface to lose.
func (r *RasterRenderer) Present() error { return nil }

// Image returns the current raster, for a front end to blit.
func (r *RasterRenderer) Image() *image.RGBA { return r.img }
