package bendpoint

import "math"

// DefaultRadius is the bend radius used when nothing else is configured.
const DefaultRadius = 20

// Config controls how a connection is outlined.
type Config struct {
	// Rounded enables rounded bend points. When false, connections are
	// drawn as plain polylines.
	Rounded bool

	// Radius is the largest distance from a bend point at which the
	// rounding arc meets the adjacent segments. Non-positive and NaN
	// values are treated as 0, which leaves the corners sharp.
	Radius float64
}

// DefaultConfig returns rounding enabled with DefaultRadius.
func DefaultConfig() Config {
	return Config{Rounded: true, Radius: DefaultRadius}
}

func (c Config) radius() float64 {
	if !(c.Radius > 0) {
		return 0
	}
	return c.Radius
}

// corner is the rounding of a single bend point.
type corner struct {
	In, Out Point // tangent points on the incoming and outgoing segment
	Center  Point
	Reach   float64 // distance from the bend point to the arc center
	Radius  float64
	Start   float64 // radians
	Sweep   float64 // radians
}

// roundCorner computes the arc replacing the bend at bp between the
// segments prev-bp and bp-next.
func roundCorner(prev, bp, next Point, radius float64) corner {
	srcP := Polar(bp, prev)
	tgtP := Polar(bp, next)

	// angle from source to target, normalized into [0, 2π)
	arc := math.Mod(tgtP.Theta-srcP.Theta+4*math.Pi, 2*math.Pi)

	// always use the minor angle, walking from whichever side comes first
	src2tgt := arc < math.Pi
	if !src2tgt {
		arc = 2*math.Pi - arc
	}

	reach := min(radius, srcP.R/2, tgtP.R/2)

	sP := tgtP
	if src2tgt {
		sP = srcP
	}

	centerP := PolarPoint{R: reach, Theta: sP.Theta + arc/2}
	tangent := reach * math.Cos(arc/2)
	inP := PolarPoint{R: tangent, Theta: srcP.Theta}
	outP := PolarPoint{R: tangent, Theta: tgtP.Theta}

	return corner{
		In:     inP.Translate(bp),
		Out:    outP.Translate(bp),
		Center: centerP.Translate(bp),
		Reach:  reach,
		Radius: reach * math.Sin(arc/2),
		Start:  (math.Pi+arc)/2 + centerP.Theta,
		Sweep:  math.Pi - arc,
	}
}

// Render computes the draw instructions for path.
//
// With rounding disabled, the result is one line per segment. With
// rounding enabled, every bend point is replaced by a line up to the
// incoming tangent point followed by an arc, and the final line ends at
// the last point of path. Paths with fewer than two points produce no
// instructions.
//
// Render does not modify path and keeps no state between calls.
func Render(path Path, cfg Config) []Instruction {
	if len(path) < 2 {
		return nil
	}

	if !cfg.Rounded {
		res := make([]Instruction, 0, len(path)-1)
		for i := 1; i < len(path); i++ {
			res = append(res, Line(path[i-1], path[i]))
		}
		return res
	}

	radius := cfg.radius()
	res := make([]Instruction, 0, 2*len(path)-3)
	src := path[0]
	for i := 1; i < len(path); i++ {
		bp := path[i]
		if i == len(path)-1 {
			res = append(res, Line(src, bp))
			break
		}

		c := roundCorner(src, bp, path[i+1], radius)
		if c.Reach == 0 {
			Logger().Debug("sharp bend point", "index", i, "x", bp.X, "y", bp.Y)
		}

		res = append(res,
			Line(src, c.In),
			Arc(c.Center, c.Radius, c.Start, c.Sweep))
		src = c.Out
	}
	return res
}

// Outline renders path and replays the instructions into g.
func Outline(g Graphics, path Path, cfg Config) {
	for _, in := range Render(path, cfg) {
		in.Draw(g)
	}
}
