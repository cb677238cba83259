package svg

import (
	"math"
	"strconv"
	"strings"
)

// InstructionType tells which SVG path data command a DrawingInstruction
// is written as
type InstructionType int

// These are the instruction types the Writer produces
const (
	MoveInstruction InstructionType = iota
	LineInstruction
	ArcInstruction
)

// DrawingInstruction is a single absolute SVG path data command.
type DrawingInstruction struct {
	Kind InstructionType
	M    Tuple // end point of the command

	// arc parameters
	R        Tuple // radii
	LargeArc bool
	Sweep    bool // true for increasing angles
}

func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (di DrawingInstruction) String() string {
	var b strings.Builder
	switch di.Kind {
	case MoveInstruction:
		b.WriteString("M")
	case LineInstruction:
		b.WriteString("L")
	case ArcInstruction:
		b.WriteString("A")
		b.WriteString(formatNumber(di.R[0]))
		b.WriteString(" ")
		b.WriteString(formatNumber(di.R[1]))
		b.WriteString(" 0 ")
		b.WriteString(flag(di.LargeArc))
		b.WriteString(" ")
		b.WriteString(flag(di.Sweep))
		b.WriteString(" ")
	}
	b.WriteString(formatNumber(di.M[0]))
	b.WriteString(" ")
	b.WriteString(formatNumber(di.M[1]))
	return b.String()
}
