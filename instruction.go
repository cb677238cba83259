package bendpoint

import (
	"fmt"
	"math"
)

// InstructionType tells a Graphics context which primitive it has to
// call
type InstructionType int

// These are the instruction types produced by Render
const (
	LineInstruction InstructionType = iota
	ArcInstruction
)

func (k InstructionType) String() string {
	switch k {
	case LineInstruction:
		return "line"
	case ArcInstruction:
		return "arc"
	}
	return fmt.Sprintf("InstructionType(%d)", int(k))
}

// Instruction is a single draw operation. Kind selects which of the
// fields are meaningful:
//
//   - LineInstruction: From and To.
//   - ArcInstruction: the bounding box X, Y, Width, Height of the arc's
//     circle, and StartAngle and SweepAngle in degrees. Angles are
//     measured from the positive x-axis towards the positive y-axis,
//     the same orientation as [Polar].
//
// Arc fields are snapped to the integer grid; line end points are not.
type Instruction struct {
	Kind InstructionType

	From, To Point

	X, Y          int
	Width, Height int
	StartAngle    int
	SweepAngle    int
}

// Line returns a line instruction from p1 to p2.
func Line(p1, p2 Point) Instruction {
	return Instruction{Kind: LineInstruction, From: p1, To: p2}
}

// Arc returns an arc instruction for the circle centered at center with
// the given radius. The box and the angles (radians) are rounded to the
// integer grid here and nowhere earlier.
func Arc(center Point, radius, start, sweep float64) Instruction {
	return Instruction{
		Kind:       ArcInstruction,
		X:          round(center.X - radius),
		Y:          round(center.Y - radius),
		Width:      round(2 * radius),
		Height:     round(2 * radius),
		StartAngle: round(toDeg(start)),
		SweepAngle: round(toDeg(sweep)),
	}
}

// Draw replays the instruction into g.
func (in Instruction) Draw(g Graphics) {
	switch in.Kind {
	case LineInstruction:
		g.DrawLine(in.From, in.To)
	case ArcInstruction:
		g.DrawArc(in.X, in.Y, in.Width, in.Height, in.StartAngle, in.SweepAngle)
	}
}

// Endpoints returns the first and the last point traced by the
// instruction. For arcs these are computed from the rounded box and
// angles, so they may be up to about one unit away from the tangent
// points Render computed.
func (in Instruction) Endpoints() (start, end Point) {
	if in.Kind == LineInstruction {
		return in.From, in.To
	}
	return ArcEndpoints(in.X, in.Y, in.Width, in.Height, in.StartAngle, in.SweepAngle)
}

// ArcEndpoints returns the start and end point of the arc inscribed in the
// box (x, y, w, h), starting at angle start and sweeping sweep degrees.
func ArcEndpoints(x, y, w, h, start, sweep int) (Point, Point) {
	c := Point{X: float64(x) + float64(w)/2, Y: float64(y) + float64(h)/2}
	rx, ry := float64(w)/2, float64(h)/2
	at := func(deg int) Point {
		a := float64(deg) * math.Pi / 180
		return Point{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}
	return at(start), at(start + sweep)
}

func (in Instruction) String() string {
	switch in.Kind {
	case LineInstruction:
		return fmt.Sprintf("line (%g,%g) (%g,%g)", in.From.X, in.From.Y, in.To.X, in.To.Y)
	case ArcInstruction:
		return fmt.Sprintf("arc [%d %d %d %d] %d %d",
			in.X, in.Y, in.Width, in.Height, in.StartAngle, in.SweepAngle)
	}
	return in.Kind.String()
}
