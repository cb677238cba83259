package svg

import (
	"fmt"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/bendpoint"
)

// shape holds the attributes shared by all connection elements.
type shape struct {
	ID              string  `xml:"id,attr,omitempty"`
	TransformString string  `xml:"transform,attr,omitempty"`
	Style           string  `xml:"style,attr,omitempty"`
	Fill            string  `xml:"fill,attr,omitempty"`
	Stroke          string  `xml:"stroke,attr,omitempty"`
	StrokeWidth     float64 `xml:"stroke-width,attr,omitempty"`

	group *Group
}

// transform returns the mapping from the element's user space to
// document coordinates.
func (s *shape) transform() (mt.Transform, error) {
	t := s.group.worldTransform()
	if s.TransformString == "" {
		return t, nil
	}
	own, err := parseTransform(s.TransformString)
	if err != nil {
		return t, err
	}
	return mt.MultiplyTransforms(t, own), nil
}

// parseStyle applies the stroke properties of the style attribute.
func (s *shape) parseStyle() {
	for key, val := range splitStyle(s.Style) {
		switch key {
		case "stroke-width":
			sw, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
			if err == nil {
				s.StrokeWidth = sw
			}
		case "stroke":
			s.Stroke = val
		}
	}
}

func (s *shape) connection(points bendpoint.Path) Connection {
	return Connection{
		ID:          s.ID,
		Points:      points,
		Stroke:      s.Stroke,
		StrokeWidth: s.StrokeWidth * s.group.scale(),
	}
}

// apply maps raw user space points through t.
func apply(t mt.Transform, raw []Tuple) bendpoint.Path {
	res := make(bendpoint.Path, len(raw))
	for i, r := range raw {
		x, y := t.Apply(r[0], r[1])
		res[i] = bendpoint.Point{X: x, Y: y}
	}
	return res
}

// splitStyle splits a CSS declaration list such as
// "stroke:#000;stroke-width:2" into its properties.
func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return props
}

// parseFloatList parses numbers separated by white space and/or commas.
func parseFloatList(s string) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	res := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Polyline is an SVG polyline element: a set of connected line
// segments.
type Polyline struct {
	shape
	Points string `xml:"points,attr"`
}

// Connections implements the Element interface
func (p *Polyline) Connections() ([]Connection, error) {
	p.parseStyle()
	nums, err := parseFloatList(p.Points)
	if err != nil {
		return nil, fmt.Errorf("polyline %q: %w", p.ID, err)
	}
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("polyline %q: odd number of coordinates", p.ID)
	}
	raw := make([]Tuple, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		raw = append(raw, Tuple{nums[i], nums[i+1]})
	}

	t, err := p.transform()
	if err != nil {
		return nil, fmt.Errorf("polyline %q: %w", p.ID, err)
	}
	return []Connection{p.connection(apply(t, raw))}, nil
}

// Line is an SVG line element, a connection without bend points.
type Line struct {
	shape
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

// Connections implements the Element interface
func (l *Line) Connections() ([]Connection, error) {
	l.parseStyle()
	t, err := l.transform()
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	raw := []Tuple{{l.X1, l.Y1}, {l.X2, l.Y2}}
	return []Connection{l.connection(apply(t, raw))}, nil
}
