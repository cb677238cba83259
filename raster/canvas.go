// Package raster strokes rendered connections onto an alpha mask. It is
// the reference rasterizer for bendpoint instructions.
package raster

import (
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/vasalvit/bendpoint"
)

// Canvas is a bendpoint.Graphics drawing into an image.Alpha.
//
// Lines and arcs are stroked with round caps: every primitive becomes a
// closed outline of the stroke width plus a disk at each end, so
// consecutive primitives overlap at the joints even when their end points
// differ by the arc rounding. Outlines are built as seehuhn.de/go/geom
// paths with arcs as cubic Bézier curves; flattening and coverage are
// left to golang.org/x/image/vector.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// StrokeWidth is the width of the drawn lines. Must be positive.
	StrokeWidth float64

	z   *vector.Rasterizer
	img *image.Alpha
}

// NewCanvas returns an empty canvas of w×h pixels.
func NewCanvas(w, h int, strokeWidth float64) *Canvas {
	return &Canvas{
		StrokeWidth: strokeWidth,
		z:           vector.NewRasterizer(w, h),
	}
}

// DrawLine implements the bendpoint.Graphics interface
func (c *Canvas) DrawLine(p1, p2 bendpoint.Point) {
	hw := c.StrokeWidth / 2
	c.fill(band(p1, p2, hw))
	c.fill(disk(p1, hw))
	c.fill(disk(p2, hw))
}

// DrawArc implements the bendpoint.Graphics interface
func (c *Canvas) DrawArc(x, y, w, h, startAngle, sweepAngle int) {
	if w <= 0 || h <= 0 || sweepAngle == 0 {
		return
	}
	hw := c.StrokeWidth / 2
	center := vec.Vec2{X: float64(x) + float64(w)/2, Y: float64(y) + float64(h)/2}
	r := vec.Vec2{X: float64(w) / 2, Y: float64(h) / 2}
	start := float64(startAngle) * math.Pi / 180
	end := start + float64(sweepAngle)*math.Pi/180

	c.fill(sector(center, r, hw, start, end))
	from, to := bendpoint.ArcEndpoints(x, y, w, h, startAngle, sweepAngle)
	c.fill(disk(from, hw))
	c.fill(disk(to, hw))
}

// fill adds the closed outline p to the rasterizer.
//
// The rasterizer accumulates signed area, so every outline handed to it
// must wind the same way or overlapping outlines cancel. All outlines
// built in this file wind clockwise in a y-up frame.
func (c *Canvas) fill(p path.Path) {
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdLineTo:
			c.z.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdQuadTo:
			c.z.QuadTo(float32(pts[0].X), float32(pts[0].Y), float32(pts[1].X), float32(pts[1].Y))
		case path.CmdCubeTo:
			c.z.CubeTo(float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y))
		case path.CmdClose:
			c.z.ClosePath()
		}
	}
	c.img = nil
}

// band is the rectangle of half width hw around the segment a-b.
func band(a, b vec.Vec2, hw float64) path.Path {
	t := b.Sub(a).Normalize()
	if t == (vec.Vec2{}) {
		t = vec.Vec2{X: 1, Y: 0}
	}
	n := t.Rot90().Mul(hw)

	return func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{a.Add(n)}) &&
			yield(path.CmdLineTo, []vec.Vec2{b.Add(n)}) &&
			yield(path.CmdLineTo, []vec.Vec2{b.Sub(n)}) &&
			yield(path.CmdLineTo, []vec.Vec2{a.Sub(n)}) &&
			yield(path.CmdClose, nil)
	}
}

func disk(center vec.Vec2, radius float64) path.Path {
	r := vec.Vec2{X: radius, Y: radius}
	return ring(center, r, 0, r.X, 0, 2*math.Pi)
}

// sector is the part of the elliptical arc with radii r between the
// angles a0 and a1, widened by hw on both sides.
func sector(center, r vec.Vec2, hw, a0, a1 float64) path.Path {
	return ring(center, r, max(1-hw/min(r.X, r.Y), 0), 1+hw/min(r.X, r.Y), a0, a1)
}

// ring is the region between the ellipses with radii r scaled by inner
// and outer, restricted to the angles between a0 and a1. The outer
// boundary is traced with decreasing, the inner one with increasing
// angle.
func ring(center, r vec.Vec2, inner, outer, a0, a1 float64) path.Path {
	lo, hi := min(a0, a1), max(a0, a1)
	at := func(s, a float64) vec.Vec2 {
		return center.Add(vec.Vec2{X: s * r.X * math.Cos(a), Y: s * r.Y * math.Sin(a)})
	}

	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{at(outer, hi)}) {
			return
		}
		if !arcTo(yield, center, r.Mul(outer), hi, lo) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{at(inner, lo)}) {
			return
		}
		if inner > 0 && !arcTo(yield, center, r.Mul(inner), lo, hi) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// arcTo emits cubic Bézier curves approximating the elliptical arc from
// angle a0 to a1, at most a quarter turn per curve.
func arcTo(yield func(path.Command, []vec.Vec2) bool, center, r vec.Vec2, a0, a1 float64) bool {
	n := max(int(math.Ceil(math.Abs(a1-a0)/(math.Pi/2))), 1)
	step := (a1 - a0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	point := func(a float64) vec.Vec2 {
		return center.Add(vec.Vec2{X: r.X * math.Cos(a), Y: r.Y * math.Sin(a)})
	}
	tangent := func(a float64) vec.Vec2 {
		return vec.Vec2{X: -r.X * math.Sin(a), Y: r.Y * math.Cos(a)}.Mul(k)
	}

	for i := range n {
		s := a0 + float64(i)*step
		e := s + step
		p0, p3 := point(s), point(e)
		if !yield(path.CmdCubeTo, []vec.Vec2{p0.Add(tangent(s)), p3.Sub(tangent(e)), p3}) {
			return false
		}
	}
	return true
}

// Image returns the coverage of everything drawn so far.
func (c *Canvas) Image() *image.Alpha {
	if c.img == nil {
		c.img = image.NewAlpha(c.z.Bounds())
		c.z.Draw(c.img, c.img.Bounds(), image.Opaque, image.Point{})
	}
	return c.img
}

// Covered reports whether the pixel containing p is at least half
// covered.
func (c *Canvas) Covered(p bendpoint.Point) bool {
	x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
	return c.Image().AlphaAt(x, y).A >= 0x80
}

// EncodePNG writes the coverage as a black on white PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	mask := c.Image()
	b := mask.Bounds()
	img := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Pix[img.PixOffset(x, y)] = 0xff - mask.Pix[mask.PixOffset(x, y)]
		}
	}
	return png.Encode(w, img)
}
