package bendpoint

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is an X,Y coordinate
type Point = vec.Vec2

// Path is the ordered list of points of a connection: the source point,
// the bend points and the target point.
type Path []Point

// PolarPoint is a point given by its distance R from an origin and the
// angle Theta (radians) of the ray from the origin to the point.
type PolarPoint struct {
	R     float64
	Theta float64
}

// Polar returns p in polar coordinates centered at origin. Theta is
// measured from the positive x-axis towards the positive y-axis.
func Polar(origin, p Point) PolarPoint {
	d := p.Sub(origin)
	return PolarPoint{
		R:     d.Length(),
		Theta: math.Atan2(d.Y, d.X),
	}
}

// ToPoint returns the Cartesian offset of pp from its origin.
func (pp PolarPoint) ToPoint() Point {
	return Point{
		X: pp.R * math.Cos(pp.Theta),
		Y: pp.R * math.Sin(pp.Theta),
	}
}

// Translate returns pp as an absolute point, using origin as the center
// of the polar coordinate system.
func (pp PolarPoint) Translate(origin Point) Point {
	return origin.Add(pp.ToPoint())
}

// round rounds half-way cases towards positive infinity, the usual
// convention for snapping to the pixel grid.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
