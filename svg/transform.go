package svg

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// matrix returns the transform of the SVG matrix(a b c d e f).
func matrix(a, b, c, d, e, f float64) mt.Transform {
	t := mt.Identity()
	t[0][0], t[0][1], t[0][2] = a, c, e
	t[1][0], t[1][1], t[1][2] = b, d, f
	return t
}

// parseTransform parses the value of a transform attribute. The
// supported functions are matrix, translate, scale and rotate; a list
// of them is applied right to left.
func parseTransform(s string) (mt.Transform, error) {
	t := mt.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return t, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseFloatList(rest[open+1 : end])
		if err != nil {
			return t, fmt.Errorf("transform %q: %w", s, err)
		}

		m, err := transformFunc(name, args)
		if err != nil {
			return t, fmt.Errorf("transform %q: %w", s, err)
		}
		t = mt.MultiplyTransforms(t, m)
		rest = strings.TrimLeft(rest[end+1:], " ,\t\r\n")
	}
	return t, nil
}

func transformFunc(name string, args []float64) (mt.Transform, error) {
	switch {
	case name == "matrix" && len(args) == 6:
		return matrix(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case name == "translate" && len(args) == 1:
		return matrix(1, 0, 0, 1, args[0], 0), nil
	case name == "translate" && len(args) == 2:
		return matrix(1, 0, 0, 1, args[0], args[1]), nil
	case name == "scale" && len(args) == 1:
		return matrix(args[0], 0, 0, args[0], 0, 0), nil
	case name == "scale" && len(args) == 2:
		return matrix(args[0], 0, 0, args[1], 0, 0), nil
	case name == "rotate" && (len(args) == 1 || len(args) == 3):
		a := args[0] * math.Pi / 180
		sin, cos := math.Sin(a), math.Cos(a)
		r := matrix(cos, sin, -sin, cos, 0, 0)
		if len(args) == 1 {
			return r, nil
		}
		cx, cy := args[1], args[2]
		r = mt.MultiplyTransforms(matrix(1, 0, 0, 1, cx, cy), r)
		return mt.MultiplyTransforms(r, matrix(1, 0, 0, 1, -cx, -cy)), nil
	}
	return mt.Identity(), fmt.Errorf("unsupported transform %s with %d arguments", name, len(args))
}
