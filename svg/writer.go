package svg

import (
	"encoding/xml"
	"io"
	"math"
	"strings"

	"github.com/vasalvit/bendpoint"
)

// DefaultJoinTolerance is the largest gap the Writer bridges with a line
// instead of starting a new subpath. Arc boxes and angles are snapped to
// the integer grid, so arc ends can be up to about 1.3 units away from
// the adjacent lines.
const DefaultJoinTolerance = 1.5

// Writer is a bendpoint.Graphics that builds SVG path data.
type Writer struct {
	// JoinTolerance overrides DefaultJoinTolerance when positive.
	JoinTolerance float64

	instructions []DrawingInstruction
	pen          Tuple
	hasPen       bool
}

func dist(a, b Tuple) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

func (w *Writer) tolerance() float64 {
	if w.JoinTolerance > 0 {
		return w.JoinTolerance
	}
	return DefaultJoinTolerance
}

// moveTo makes p the pen position, bridging small gaps with a line.
func (w *Writer) moveTo(p Tuple) {
	switch {
	case !w.hasPen || dist(w.pen, p) > w.tolerance():
		w.instructions = append(w.instructions, DrawingInstruction{Kind: MoveInstruction, M: p})
	case p != w.pen:
		w.instructions = append(w.instructions, DrawingInstruction{Kind: LineInstruction, M: p})
	}
	w.pen = p
	w.hasPen = true
}

// DrawLine implements the bendpoint.Graphics interface
func (w *Writer) DrawLine(p1, p2 bendpoint.Point) {
	w.moveTo(Tuple{p1.X, p1.Y})
	end := Tuple{p2.X, p2.Y}
	w.instructions = append(w.instructions, DrawingInstruction{Kind: LineInstruction, M: end})
	w.pen = end
}

// DrawArc implements the bendpoint.Graphics interface. The arc is traced
// from whichever end is closer to the pen. Empty arcs draw nothing.
func (w *Writer) DrawArc(x, y, width, height, startAngle, sweepAngle int) {
	if width == 0 || height == 0 || sweepAngle == 0 {
		return
	}
	s, e := bendpoint.ArcEndpoints(x, y, width, height, startAngle, sweepAngle)
	a, b := Tuple{s.X, s.Y}, Tuple{e.X, e.Y}
	increasing := sweepAngle > 0
	if w.hasPen && dist(w.pen, b) < dist(w.pen, a) {
		a, b = b, a
		increasing = !increasing
	}

	w.moveTo(a)
	w.instructions = append(w.instructions, DrawingInstruction{
		Kind:     ArcInstruction,
		M:        b,
		R:        Tuple{float64(width) / 2, float64(height) / 2},
		LargeArc: abs(sweepAngle) > 180,
		Sweep:    increasing,
	})
	w.pen = b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Instructions returns the path data commands written so far.
func (w *Writer) Instructions() []DrawingInstruction {
	return w.instructions
}

// PathData returns the commands written so far as the value of a path
// element's d attribute.
func (w *Writer) PathData() string {
	parts := make([]string, len(w.instructions))
	for i, di := range w.instructions {
		parts[i] = di.String()
	}
	return strings.Join(parts, " ")
}

// Reset clears the writer so it can be used for the next connection.
func (w *Writer) Reset() {
	w.instructions = w.instructions[:0]
	w.hasPen = false
}

// Document is an SVG document holding rendered connections.
type Document struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	Width   float64  `xml:"width,attr"`
	Height  float64  `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr,omitempty"`
	Title   string   `xml:"title,omitempty"`
	Paths   []Path   `xml:"path"`
}

// NewDocument returns an empty document of the given size.
func NewDocument(width, height float64) *Document {
	return &Document{
		Xmlns:  "http://www.w3.org/2000/svg",
		Width:  width,
		Height: height,
	}
}

// Add appends a path element drawing the commands of w. Empty writers
// are ignored.
func (d *Document) Add(id string, w *Writer, stroke string, strokeWidth float64) {
	if len(w.instructions) == 0 {
		return
	}
	if stroke == "" {
		stroke = "#000000"
	}
	d.Paths = append(d.Paths, Path{
		shape: shape{
			ID:          id,
			Fill:        "none",
			Stroke:      stroke,
			StrokeWidth: strokeWidth,
		},
		D: w.PathData(),
	})
}

// Encode writes the document as indented XML.
func (d *Document) Encode(out io.Writer) error {
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}
