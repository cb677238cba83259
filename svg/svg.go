package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/bendpoint"
)

// Element is an SVG element connections can be read from. Groups are
// elements too.
type Element interface {
	Connections() ([]Connection, error)
}

// Connection is the polyline of a single connection in document
// coordinates, together with the stroke it was drawn with.
type Connection struct {
	ID          string
	Points      bendpoint.Path
	Stroke      string
	StrokeWidth float64
}

// Tuple is an X,Y coordinate
type Tuple [2]float64

// Svg represents an SVG file containing groups and connection elements
type Svg struct {
	Title     string
	Width     float64
	Height    float64
	ViewBox   []float64 // min-x, min-y, width, height; nil if absent
	Groups    []*Group  // top level groups, also listed in Elements
	Elements  []Element // top level elements in document order
	Name      string
	Transform *mt.Transform
	scale     float64
	root      *Group
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID              string
	Stroke          string
	StrokeWidth     float64
	Elements        []Element
	TransformString string
	Transform       *mt.Transform // row, column
	Parent          *Group
	Owner           *Svg
}

// Connections implements the Element interface
func (g *Group) Connections() ([]Connection, error) {
	var res []Connection
	for _, e := range g.Elements {
		cs, err := e.Connections()
		if err != nil {
			return nil, err
		}
		res = append(res, cs...)
	}
	return res, nil
}

// worldTransform maps the group's user space to document coordinates.
func (g *Group) worldTransform() mt.Transform {
	if g == nil {
		return mt.Identity()
	}
	own := mt.Identity()
	if g.Transform != nil {
		own = *g.Transform
	}

	base := mt.Identity()
	switch {
	case g.Parent != nil:
		base = g.Parent.worldTransform()
	case g.Owner != nil && g.Owner.Transform != nil:
		base = *g.Owner.Transform
	}
	return mt.MultiplyTransforms(base, own)
}

func (g *Group) scale() float64 {
	if g == nil || g.Owner == nil || g.Owner.scale == 0 {
		return 1
	}
	return g.Owner.scale
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "stroke":
			g.Stroke = attr.Value
		case "stroke-width":
			w, err := strconv.ParseFloat(strings.TrimSuffix(attr.Value, "px"), 64)
			if err != nil {
				return fmt.Errorf("group %q: stroke-width: %w", g.ID, err)
			}
			g.StrokeWidth = w
		case "transform":
			g.TransformString = attr.Value
			t, err := parseTransform(g.TransformString)
			if err != nil {
				return fmt.Errorf("group %q: %w", g.ID, err)
			}
			g.Transform = &t
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			el, err := decodeElement(decoder, tok, g)
			if err != nil {
				return fmt.Errorf("error decoding element of Group: %w", err)
			}
			if el != nil {
				g.Elements = append(g.Elements, el)
			}

		case xml.EndElement:
			return nil
		}
	}
}

// decodeElement decodes the element started by tok as a child of parent.
// Elements that cannot carry a connection are skipped and yield nil.
func decodeElement(decoder *xml.Decoder, tok xml.StartElement, parent *Group) (Element, error) {
	inherited := shape{group: parent, Stroke: parent.Stroke, StrokeWidth: parent.StrokeWidth}

	var el Element
	switch tok.Name.Local {
	case "g":
		el = &Group{
			Parent:      parent,
			Owner:       parent.Owner,
			Stroke:      parent.Stroke,
			StrokeWidth: parent.StrokeWidth,
		}
	case "polyline":
		el = &Polyline{shape: inherited}
	case "line":
		el = &Line{shape: inherited}
	case "path":
		el = &Path{shape: inherited}
	default:
		bendpoint.Logger().Debug("skipping svg element", "element", tok.Name.Local)
		return nil, decoder.Skip()
	}

	if err := decoder.DecodeElement(el, &tok); err != nil {
		return nil, fmt.Errorf("%s: %w", tok.Name.Local, err)
	}
	return el, nil
}

// Connections returns the connections of all elements in document order.
func (s *Svg) Connections() ([]Connection, error) {
	var res []Connection
	for _, e := range s.Elements {
		cs, err := e.Connections()
		if err != nil {
			return nil, err
		}
		res = append(res, cs...)
	}
	return res, nil
}

func (s *Svg) rootGroup() *Group {
	if s.root == nil {
		s.root = &Group{Owner: s}
	}
	return s.root
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "width":
			s.Width = parseLength(attr.Value)
		case "height":
			s.Height = parseLength(attr.Value)
		case "viewBox":
			vb, err := parseFloatList(attr.Value)
			if err != nil || len(vb) != 4 {
				return fmt.Errorf("malformed viewBox %q", attr.Value)
			}
			s.ViewBox = vb
		}
	}
	if s.Width == 0 && s.ViewBox != nil {
		s.Width = s.ViewBox[2]
	}
	if s.Height == 0 && s.ViewBox != nil {
		s.Height = s.ViewBox[3]
	}

	root := s.rootGroup()
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "title" {
				if err := decoder.DecodeElement(&s.Title, &tok); err != nil {
					return fmt.Errorf("error decoding title: %w", err)
				}
				continue
			}

			el, err := decodeElement(decoder, tok, root)
			if err != nil {
				return fmt.Errorf("error decoding element of SVG struct: %w", err)
			}
			if el == nil {
				continue
			}
			if g, ok := el.(*Group); ok {
				s.Groups = append(s.Groups, g)
			}
			s.Elements = append(s.Elements, el)

		case xml.EndElement:
			return nil
		}
	}
}

// parseLength parses an absolute length such as "595.2px". Lengths in
// other units are not supported and yield 0.
func parseLength(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		bendpoint.Logger().Debug("ignoring svg length", "value", v)
		return 0
	}
	return f
}

func newSvg(name string, scale float64) *Svg {
	svg := &Svg{Name: name, Transform: mt.NewTransform()}
	if scale > 0 {
		svg.Transform.Scale(scale, scale)
		svg.scale = scale
	}
	if scale < 0 {
		svg.Transform.Scale(1.0/-scale, 1.0/-scale)
		svg.scale = 1.0 / -scale
	}
	return svg
}

// ParseSvg parses an SVG string into an SVG struct. A positive scale
// enlarges the document by that factor, a negative one shrinks it by
// -scale, and 0 leaves it unchanged.
func ParseSvg(str string, name string, scale float64) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, scale)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string, scale float64) (*Svg, error) {
	svg := newSvg(name, scale)
	if err := xml.NewDecoder(r).Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %w", err)
	}

	bendpoint.Logger().Debug("parsed svg", "name", name, "groups", len(svg.Groups), "elements", len(svg.Elements))

	for _, g := range svg.Groups {
		g.SetOwner(svg)
	}
	return svg, nil
}

// SetOwner sets the owner of a SVG Group and of all groups nested in it
func (g *Group) SetOwner(svg *Svg) {
	g.Owner = svg
	for _, gn := range g.Elements {
		switch e := gn.(type) {
		case *Group:
			e.Parent = g
			e.SetOwner(svg)
		case *Path:
			e.group = g
		case *Polyline:
			e.group = g
		case *Line:
			e.group = g
		}
	}
}
