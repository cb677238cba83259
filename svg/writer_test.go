package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasalvit/bendpoint"
)

func TestWriterRoundedCorner(t *testing.T) {
	cfg := bendpoint.Config{Rounded: true, Radius: 5}

	var w Writer
	bendpoint.Outline(&w, bendpoint.Path{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, cfg)
	require.Equal(t, "M0 0 L6.464 0 L6.5 0 A3.5 3.5 0 0 1 10 3.5 L10 3.536 L10 10", w.PathData())

	// this corner turns the other way, so its arc is traced backwards
	w.Reset()
	bendpoint.Outline(&w, bendpoint.Path{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: -10}}, cfg)
	require.Equal(t, "M0 0 L6.464 0 L6.5 0 A3.5 3.5 0 0 0 10 -3.5 L10 -3.536 L10 -10", w.PathData())
}

func TestWriterSquare(t *testing.T) {
	var w Writer
	bendpoint.Outline(&w, bendpoint.Path{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, bendpoint.Config{})
	require.Equal(t, "M0 0 L10 0 L10 10", w.PathData())

	kinds := []InstructionType{}
	for _, di := range w.Instructions() {
		kinds = append(kinds, di.Kind)
	}
	require.Equal(t, []InstructionType{MoveInstruction, LineInstruction, LineInstruction}, kinds)
}

func TestWriterGaps(t *testing.T) {
	w := Writer{JoinTolerance: 1}
	w.DrawLine(bendpoint.Point{X: 0, Y: 0}, bendpoint.Point{X: 10, Y: 0})
	w.DrawLine(bendpoint.Point{X: 10.5, Y: 0}, bendpoint.Point{X: 20, Y: 0})
	w.DrawLine(bendpoint.Point{X: 30, Y: 0}, bendpoint.Point{X: 40, Y: 0})
	// empty arcs draw nothing
	w.DrawArc(40, 0, 0, 0, 90, 90)
	w.DrawArc(35, -5, 10, 10, 0, 0)
	require.Equal(t, "M0 0 L10 0 L10.5 0 L20 0 M30 0 L40 0", w.PathData())
}

func TestWriterLargeArc(t *testing.T) {
	var w Writer
	w.DrawArc(0, 0, 20, 20, 0, 270)
	require.Equal(t, "M20 10 A10 10 0 1 1 10 0", w.PathData())
}

func TestDocumentEncode(t *testing.T) {
	doc := NewDocument(100, 50)
	doc.ViewBox = "0 0 100 50"

	var w Writer
	bendpoint.Outline(&w, bendpoint.Path{{X: 0, Y: 0}, {X: 10, Y: 0}}, bendpoint.DefaultConfig())
	doc.Add("c1", &w, "", 1.5)

	var empty Writer
	doc.Add("c2", &empty, "#ff0000", 1)
	require.Len(t, doc.Paths, 1)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">`)
	require.Contains(t, out, `id="c1"`)
	require.Contains(t, out, `fill="none"`)
	require.Contains(t, out, `stroke="#000000"`)
	require.Contains(t, out, `stroke-width="1.5"`)
	require.Contains(t, out, `d="M0 0 L10 0"`)

	// the output parses back into the same connection
	svg, err := ParseSvgFromReader(&buf, "roundtrip", 0)
	require.NoError(t, err)
	conns, err := svg.Connections()
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.Equal(t, bendpoint.Path{{X: 0, Y: 0}, {X: 10, Y: 0}}, conns[0].Points)
}

func TestParseTransform(t *testing.T) {
	tr, err := parseTransform("translate(3, 4)")
	require.NoError(t, err)
	x, y := tr.Apply(1, 1)
	require.Equal(t, 4.0, x)
	require.Equal(t, 5.0, y)

	tr, err = parseTransform("matrix(1 0 0 1 7 8)")
	require.NoError(t, err)
	x, y = tr.Apply(0, 0)
	require.Equal(t, 7.0, x)
	require.Equal(t, 8.0, y)

	tr, err = parseTransform("rotate(90)")
	require.NoError(t, err)
	x, y = tr.Apply(1, 0)
	require.InDelta(t, 0, x, 1e-12)
	require.InDelta(t, 1, y, 1e-12)

	_, err = parseTransform("translate(1")
	require.Error(t, err)
	_, err = parseTransform("scale(a)")
	require.Error(t, err)
}
