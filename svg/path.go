package svg

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"

	"github.com/vasalvit/bendpoint"
)

// Path is an SVG XML path element. Only straight segments are
// supported: M, L, H, V and Z in absolute and relative form.
type Path struct {
	shape
	D string `xml:"d,attr"`
}

type pathDescriptionParser struct {
	p              *Path
	lex            *gl.Lexer
	x, y           float64
	startX, startY float64
	transform      mt.Transform
	current        []Tuple
	subpaths       [][]Tuple
}

// Connections implements the Element interface. Every subpath of the
// path description becomes one connection; subpaths consisting of a
// single point are dropped.
func (p *Path) Connections() ([]Connection, error) {
	p.parseStyle()
	t, err := p.transform()
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}

	d, err := normalizePathData(p.D)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}

	pdp := &pathDescriptionParser{p: p, transform: t}
	l, _ := gl.Lex(fmt.Sprint(p.ID), d)
	pdp.lex = l
	// the lexer goroutine only exits once all of its items are read
	defer func() {
		for range l.Items {
		}
	}()

	for {
		i := pdp.lex.NextItem()
		switch i.Type {
		case gl.ItemError:
			return nil, fmt.Errorf("path %q: %s", p.ID, i.Value)
		case gl.ItemEOS:
			pdp.endSubpath()
			return pdp.connections(), nil
		case gl.ItemLetter:
			if err := pdp.parseCommand(i); err != nil {
				return nil, fmt.Errorf("path %q: %w", p.ID, err)
			}
		case gl.ItemNumber, gl.ItemWord:
			return nil, fmt.Errorf("path %q: unexpected %q", p.ID, i.Value)
		}
	}
}

// The lexer's letter set has no v, so vertical line commands are passed
// through it as j and J.
var lexerCommand = map[rune]rune{'V': 'J', 'v': 'j'}

// normalizePathData rewrites d into the form the lexer reads without
// losing input: every command letter stands alone, every number starts
// with a digit or a sign, exponents are lower case and all white space
// is a plain space. Characters that cannot appear in a path of straight
// segments are an error.
func normalizePathData(d string) (string, error) {
	var b strings.Builder
	var inNum, digits, dot, exp bool
	var prev rune

	for _, r := range d {
		switch {
		case r >= '0' && r <= '9':
			if !inNum {
				inNum, dot, exp = true, false, false
			}
			digits = true
			b.WriteRune(r)

		case r == '.':
			if inNum && (dot || exp) {
				b.WriteByte(' ')
				inNum = false
			}
			if !inNum {
				inNum, digits, exp = true, false, false
			}
			if !digits {
				b.WriteByte('0')
				digits = true
			}
			dot = true
			b.WriteRune(r)

		case r == '+' || r == '-':
			if inNum && exp && (prev == 'e' || prev == 'E') {
				b.WriteRune(r)
				break
			}
			b.WriteByte(' ')
			inNum, digits, dot, exp = true, false, false, false
			b.WriteRune(r)

		case (r == 'e' || r == 'E') && inNum && digits && !exp:
			exp = true
			b.WriteByte('e')

		case strings.ContainsRune("MmLlHhVvZz", r):
			inNum = false
			if m, ok := lexerCommand[r]; ok {
				r = m
			}
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')

		case unicode.IsLetter(r):
			return "", fmt.Errorf("unsupported path command %q", r)

		case r == ',':
			inNum = false
			b.WriteRune(r)

		case unicode.IsSpace(r):
			inNum = false
			b.WriteByte(' ')

		default:
			return "", fmt.Errorf("invalid character %q in path data", r)
		}
		prev = r
	}
	return b.String(), nil
}

func (pdp *pathDescriptionParser) connections() []Connection {
	res := make([]Connection, 0, len(pdp.subpaths))
	for _, sp := range pdp.subpaths {
		res = append(res, pdp.p.connection(apply(pdp.transform, sp)))
	}
	return res
}

func (pdp *pathDescriptionParser) parseCommand(i gl.Item) error {
	var err error

	switch i.Value {
	case "M":
		err = pdp.parseMoveTo(false)
	case "m":
		err = pdp.parseMoveTo(true)
	case "L":
		err = pdp.parseLineTo(false)
	case "l":
		err = pdp.parseLineTo(true)
	case "H":
		err = pdp.parseHLineTo(false)
	case "h":
		err = pdp.parseHLineTo(true)
	case "J":
		err = pdp.parseVLineTo(false)
	case "j":
		err = pdp.parseVLineTo(true)
	case "z", "Z":
		pdp.parseClose()
	default:
		err = fmt.Errorf("unsupported path command %q", i.Value)
	}

	return err
}

func (pdp *pathDescriptionParser) skipSeparators() {
	pdp.lex.ConsumeWhiteSpace()
	pdp.lex.ConsumeComma()
	pdp.lex.ConsumeWhiteSpace()
}

// parseNumbers reads the numbers following a command letter.
func (pdp *pathDescriptionParser) parseNumbers() ([]float64, error) {
	var res []float64
	pdp.skipSeparators()
	for pdp.lex.PeekItem().Type == gl.ItemNumber {
		n, err := parseNumber(pdp.lex.NextItem())
		if err != nil {
			return nil, err
		}
		res = append(res, n)
		pdp.skipSeparators()
	}
	return res, nil
}

func (pdp *pathDescriptionParser) parseTuples(cmd string) ([]Tuple, error) {
	nums, err := pdp.parseNumbers()
	if err != nil {
		return nil, fmt.Errorf("Error Passing %s\n%w", cmd, err)
	}
	if len(nums) == 0 || len(nums)%2 != 0 {
		return nil, fmt.Errorf("Error Passing %s Expected Tuple", cmd)
	}
	tuples := make([]Tuple, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		tuples = append(tuples, Tuple{nums[i], nums[i+1]})
	}
	return tuples, nil
}

func (pdp *pathDescriptionParser) addPoint() {
	pdp.current = append(pdp.current, Tuple{pdp.x, pdp.y})
}

func (pdp *pathDescriptionParser) endSubpath() {
	if len(pdp.current) > 1 {
		pdp.subpaths = append(pdp.subpaths, pdp.current)
	} else if len(pdp.current) == 1 {
		bendpoint.Logger().Debug("dropping single point subpath", "path", pdp.p.ID)
	}
	pdp.current = nil
}

// parseMoveTo starts a new subpath. Further coordinate pairs after the
// first are implicit line-to commands.
func (pdp *pathDescriptionParser) parseMoveTo(rel bool) error {
	tuples, err := pdp.parseTuples("MoveTo")
	if err != nil {
		return err
	}

	pdp.endSubpath()
	for i, t := range tuples {
		if rel {
			pdp.x += t[0]
			pdp.y += t[1]
		} else {
			pdp.x = t[0]
			pdp.y = t[1]
		}
		if i == 0 {
			pdp.startX, pdp.startY = pdp.x, pdp.y
		}
		pdp.addPoint()
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(rel bool) error {
	tuples, err := pdp.parseTuples("LineTo")
	if err != nil {
		return err
	}
	if len(pdp.current) == 0 {
		pdp.addPoint()
	}
	for _, t := range tuples {
		if rel {
			pdp.x += t[0]
			pdp.y += t[1]
		} else {
			pdp.x = t[0]
			pdp.y = t[1]
		}
		pdp.addPoint()
	}
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo(rel bool) error {
	nums, err := pdp.parseNumbers()
	if err != nil {
		return fmt.Errorf("Error Passing HLineTo\n%w", err)
	}
	if len(nums) == 0 {
		return fmt.Errorf("Error Passing HLineTo Expected Number")
	}
	if len(pdp.current) == 0 {
		pdp.addPoint()
	}
	for _, n := range nums {
		if rel {
			pdp.x += n
		} else {
			pdp.x = n
		}
		pdp.addPoint()
	}
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo(rel bool) error {
	nums, err := pdp.parseNumbers()
	if err != nil {
		return fmt.Errorf("Error Passing VLineTo\n%w", err)
	}
	if len(nums) == 0 {
		return fmt.Errorf("Error Passing VLineTo Expected Number")
	}
	if len(pdp.current) == 0 {
		pdp.addPoint()
	}
	for _, n := range nums {
		if rel {
			pdp.y += n
		} else {
			pdp.y = n
		}
		pdp.addPoint()
	}
	return nil
}

// parseClose returns to the start of the subpath and ends it.
func (pdp *pathDescriptionParser) parseClose() {
	pdp.lex.ConsumeWhiteSpace()

	if len(pdp.current) > 0 {
		pdp.x, pdp.y = pdp.startX, pdp.startY
		pdp.addPoint()
	}
	pdp.endSubpath()
}

func parseNumber(i gl.Item) (float64, error) {
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("Error parsing number %q: %w", i.Value, err)
	}
	return n, nil
}
