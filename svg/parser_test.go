package svg

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"

	"github.com/vasalvit/bendpoint"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(testSvg, "test", 0)
	is.NoErr(err)
	is.NotNil(svg)
	is.Equal(svg.Width, 595.201)
	is.Equal(svg.Height, 841.922)
	is.Equal(len(svg.ViewBox), 4)

	svg, err = ParseSvgFromReader(strings.NewReader(testSvg), "test", 0)
	is.NoErr(err)
	is.NotNil(svg)

	conns, err := svg.Connections()
	is.NoErr(err)
	is.Equal(len(conns), 0)
}

func TestParseInvalid(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(`<svg><polyline points="0 0 1 1"></svg>`, "broken", 0)
	is.Err(err)

	_, err = ParseSvg(`<svg viewBox="0 0 10"></svg>`, "viewbox", 0)
	is.Err(err)

	_, err = ParseSvg(`<svg><g transform="skewX(10)"></g></svg>`, "transform", 0)
	is.Err(err)
}

const connectionsSvg = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
<title>connections</title>
<polyline id="a" points="0,0 40,0 40,30" stroke="#ff0000"/>
<g id="outer" stroke="#00ff00" stroke-width="3" transform="translate(10 20)">
	<line id="b" x1="0" y1="0" x2="5" y2="5"/>
	<g id="inner" transform="translate(1,1)">
		<polyline id="c" points="0 0 10 0" style="stroke:blue;stroke-width:5"/>
	</g>
</g>
<circle cx="5" cy="5" r="4"/>
</svg>`

func TestConnections(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(connectionsSvg, "connections", 0)
	is.NoErr(err)
	is.Equal(svg.Title, "connections")
	is.Equal(svg.Width, 200.0)
	is.Equal(svg.Height, 100.0)
	is.Equal(len(svg.Groups), 1)
	is.Equal(len(svg.Elements), 2)

	conns, err := svg.Connections()
	is.NoErr(err)
	is.Equal(len(conns), 3)

	is.Equal(conns[0].ID, "a")
	is.Equal(conns[0].Stroke, "#ff0000")
	is.Equal(conns[0].Points, bendpoint.Path{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 30}})

	is.Equal(conns[1].ID, "b")
	is.Equal(conns[1].Stroke, "#00ff00")
	is.Equal(conns[1].StrokeWidth, 3.0)
	is.Equal(conns[1].Points, bendpoint.Path{{X: 10, Y: 20}, {X: 15, Y: 25}})

	is.Equal(conns[2].ID, "c")
	is.Equal(conns[2].Stroke, "blue")
	is.Equal(conns[2].StrokeWidth, 5.0)
	is.Equal(conns[2].Points, bendpoint.Path{{X: 11, Y: 21}, {X: 21, Y: 21}})
}

func TestScale(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(`<svg><polyline points="1 2 3 4" stroke-width="2"/></svg>`, "scaled", 2)
	is.NoErr(err)

	conns, err := svg.Connections()
	is.NoErr(err)
	is.Equal(len(conns), 1)
	is.Equal(conns[0].Points, bendpoint.Path{{X: 2, Y: 4}, {X: 6, Y: 8}})
	is.Equal(conns[0].StrokeWidth, 4.0)
}

func TestPolylineErrors(t *testing.T) {
	is := is.New(t)

	_, err := (&Polyline{Points: "0 0 1"}).Connections()
	is.Err(err)

	_, err = (&Polyline{Points: "0 0 x 1"}).Connections()
	is.Err(err)
}
