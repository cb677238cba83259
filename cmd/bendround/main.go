// Command bendround redraws the polylines of an SVG file with rounded
// bend points.
//
// Usage:
//
//	bendround -in diagram.svg -out rounded.svg -radius 12
//	bendround -in diagram.svg -out rounded.png -format png -stroke 2
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/vasalvit/bendpoint"
	"github.com/vasalvit/bendpoint/raster"
	"github.com/vasalvit/bendpoint/svg"
)

type options struct {
	in, out       string
	format        string
	width, height int
	stroke        float64
	config        bendpoint.Config
}

func main() {
	var (
		opts    options
		square  bool
		verbose bool
	)
	flag.StringVar(&opts.in, "in", "", "input SVG file (default stdin)")
	flag.StringVar(&opts.out, "out", "", "output file (default stdout)")
	flag.Float64Var(&opts.config.Radius, "radius", bendpoint.DefaultRadius, "corner radius")
	flag.BoolVar(&square, "square", false, "draw sharp corners")
	flag.StringVar(&opts.format, "format", "svg", "output format: svg or png")
	flag.IntVar(&opts.width, "width", 0, "output width (default from input)")
	flag.IntVar(&opts.height, "height", 0, "output height (default from input)")
	flag.Float64Var(&opts.stroke, "stroke", 0, "stroke width (default from input)")
	flag.BoolVar(&verbose, "v", false, "log degenerate corners")
	flag.Parse()
	opts.config.Rounded = !square

	if verbose {
		bendpoint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run renders the connections of the input document. The output file,
// if any, is closed before run returns, also on error.
func run(opts options, stdin io.Reader, stdout io.Writer) (err error) {
	if opts.format != "svg" && opts.format != "png" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	prefs := bendpoint.NewPreferences(opts.config)

	doc, err := readSvg(opts.in, stdin)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name(opts.in, "stdin"), err)
	}
	conns, err := doc.Connections()
	if err != nil {
		return fmt.Errorf("failed to collect connections: %w", err)
	}

	w, h := size(doc, opts.width, opts.height)

	dst := stdout
	if opts.out != "" {
		f, cerr := os.Create(opts.out)
		if cerr != nil {
			return fmt.Errorf("failed to create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to close %s: %w", opts.out, cerr)
			}
		}()
		dst = f
	}

	if opts.format == "svg" {
		err = writeSvg(dst, doc, conns, prefs, w, h, opts.stroke)
	} else {
		err = writePNG(dst, conns, prefs, w, h, opts.stroke)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name(opts.out, "stdout"), err)
	}

	log.Printf("Rendered %d connections to %s (%dx%d)\n", len(conns), name(opts.out, "stdout"), w, h)
	return nil
}

func name(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

func readSvg(path string, stdin io.Reader) (*svg.Svg, error) {
	if path == "" {
		return svg.ParseSvgFromReader(stdin, "stdin", 0)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return svg.ParseSvgFromReader(f, path, 0)
}

// size picks the output size: explicit flags first, then the document
// size, then its view box.
func size(doc *svg.Svg, w, h int) (int, int) {
	dw, dh := doc.Width, doc.Height
	if (dw == 0 || dh == 0) && len(doc.ViewBox) == 4 {
		dw, dh = doc.ViewBox[2], doc.ViewBox[3]
	}
	if w <= 0 {
		w = int(math.Ceil(dw))
	}
	if h <= 0 {
		h = int(math.Ceil(dh))
	}
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

func strokeWidth(c svg.Connection, override float64) float64 {
	switch {
	case override > 0:
		return override
	case c.StrokeWidth > 0:
		return c.StrokeWidth
	}
	return 1
}

func writeSvg(dst io.Writer, doc *svg.Svg, conns []svg.Connection, prefs *bendpoint.Preferences, w, h int, stroke float64) error {
	out := svg.NewDocument(float64(w), float64(h))
	out.Title = doc.Title
	if len(doc.ViewBox) == 4 {
		out.ViewBox = fmt.Sprintf("%g %g %g %g", doc.ViewBox[0], doc.ViewBox[1], doc.ViewBox[2], doc.ViewBox[3])
	}

	for i, c := range conns {
		var pw svg.Writer
		conn := bendpoint.Connection{Points: c.Points, Prefs: prefs}
		conn.Outline(&pw)

		id := c.ID
		if id == "" {
			id = fmt.Sprintf("connection%d", i)
		}
		out.Add(id, &pw, c.Stroke, strokeWidth(c, stroke))
	}
	return out.Encode(dst)
}

func writePNG(dst io.Writer, conns []svg.Connection, prefs *bendpoint.Preferences, w, h int, stroke float64) error {
	canvas := raster.NewCanvas(w, h, 1)
	for _, c := range conns {
		canvas.StrokeWidth = strokeWidth(c, stroke)
		conn := bendpoint.Connection{Points: c.Points, Prefs: prefs}
		conn.Outline(canvas)
	}
	return canvas.EncodePNG(dst)
}
