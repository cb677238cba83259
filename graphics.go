package bendpoint

import "fmt"

// Graphics is the drawing context instructions are replayed into. Arc
// angles are in degrees, measured from the positive x-axis towards the
// positive y-axis, and the arc is inscribed in the box (x, y, w, h).
type Graphics interface {
	DrawLine(p1, p2 Point)
	DrawArc(x, y, w, h, startAngle, sweepAngle int)
}

// Recorder is a Graphics that keeps every call as an Instruction.
type Recorder struct {
	Instructions []Instruction
}

// DrawLine implements the Graphics interface
func (r *Recorder) DrawLine(p1, p2 Point) {
	r.Instructions = append(r.Instructions, Line(p1, p2))
}

// DrawArc implements the Graphics interface
func (r *Recorder) DrawArc(x, y, w, h, startAngle, sweepAngle int) {
	r.Instructions = append(r.Instructions, Instruction{
		Kind:       ArcInstruction,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
	})
}

// Reset discards the recorded instructions.
func (r *Recorder) Reset() {
	r.Instructions = r.Instructions[:0]
}

// GapError reports two consecutive instructions that do not meet.
type GapError struct {
	Index int   // index of the instruction that does not start at the pen
	Pen   Point // where the previous instruction ended
	Start Point // the nearest end of instruction Index
}

func (e *GapError) Error() string {
	return fmt.Sprintf("gap before instruction %d: pen at (%g,%g), next starts at (%g,%g)",
		e.Index, e.Pen.X, e.Pen.Y, e.Start.X, e.Start.Y)
}

// Connected checks that instrs trace one continuous curve, up to a
// distance of tol between the end of one instruction and the start of the
// next. Lines are traced forwards. An arc may be traced either way round;
// the direction that best joins the neighbouring instructions is used.
func Connected(instrs []Instruction, tol float64) error {
	if len(instrs) == 0 {
		return nil
	}
	var pen Point
	for i, in := range instrs {
		a, b := in.Endpoints()
		if in.Kind == ArcInstruction && arcReversed(instrs, i, pen, a, b) {
			a, b = b, a
		}
		if i > 0 && a.Sub(pen).Length() > tol {
			return &GapError{Index: i, Pen: pen, Start: a}
		}
		pen = b
	}
	return nil
}

// arcReversed reports whether arc i, with endpoints a and b, is better
// traced from b to a.
func arcReversed(instrs []Instruction, i int, pen, a, b Point) bool {
	var next *Point
	if i+1 < len(instrs) && instrs[i+1].Kind == LineInstruction {
		next = &instrs[i+1].From
	}
	switch {
	case i == 0 && next == nil:
		return false
	case i == 0:
		return a.Sub(*next).Length() < b.Sub(*next).Length()
	case next == nil:
		return b.Sub(pen).Length() < a.Sub(pen).Length()
	}
	fwd := max(a.Sub(pen).Length(), b.Sub(*next).Length())
	rev := max(b.Sub(pen).Length(), a.Sub(*next).Length())
	return rev < fwd
}
