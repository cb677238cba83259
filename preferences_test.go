package bendpoint

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreferencesZeroValue(t *testing.T) {
	var p Preferences
	require.Equal(t, DefaultConfig(), p.Load())

	p.SetRadius(7)
	require.Equal(t, Config{Rounded: true, Radius: 7}, p.Load())

	p.SetRounded(false)
	require.Equal(t, Config{Rounded: false, Radius: 7}, p.Load())
}

func TestPreferencesSnapshot(t *testing.T) {
	a := Config{Rounded: true, Radius: 10}
	b := Config{Rounded: false, Radius: 30}
	p := NewPreferences(a)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 1000 {
				if (i+j)%2 == 0 {
					p.Store(a)
				} else {
					p.Store(b)
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				c := p.Load()
				if c != a && c != b {
					t.Errorf("torn config %+v", c)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestConnectionFollowsPreferences(t *testing.T) {
	prefs := NewPreferences(Config{Rounded: false, Radius: 10})
	conn := &Connection{
		Points: Path{pt(0, 0), pt(50, 0), pt(50, 50)},
		Prefs:  prefs,
	}

	var rec Recorder
	conn.Outline(&rec)
	require.Len(t, rec.Instructions, 2)

	prefs.SetRounded(true)
	rec.Reset()
	conn.Outline(&rec)
	require.Len(t, rec.Instructions, 3)
	require.Equal(t, ArcInstruction, rec.Instructions[1].Kind)

	require.Equal(t, DefaultConfig(), (&Connection{}).Config())
}

func TestPolar(t *testing.T) {
	origin := pt(10, 10)
	pp := Polar(origin, pt(10, 20))
	require.InDelta(t, 10, pp.R, 1e-12)
	require.InDelta(t, math.Pi/2, pp.Theta, 1e-12)

	pp = Polar(origin, pt(0, 10))
	require.InDelta(t, math.Pi, pp.Theta, 1e-12)

	for _, p := range []Point{pt(13, -4), pt(-7, 2), pt(10, 10), pt(0.5, 99)} {
		back := Polar(origin, p).Translate(origin)
		require.InDelta(t, p.X, back.X, 1e-9)
		require.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestRoundHalfUp(t *testing.T) {
	require.Equal(t, 3, round(2.5))
	require.Equal(t, -2, round(-2.5))
	require.Equal(t, 0, round(-0.4))
	require.Equal(t, 7, round(7.0710678))
}

func TestInstructionEndpoints(t *testing.T) {
	arc := Instruction{Kind: ArcInstruction, X: 0, Y: 0, Width: 10, Height: 10, StartAngle: 0, SweepAngle: 90}
	a, b := arc.Endpoints()
	require.InDelta(t, 10, a.X, 1e-9)
	require.InDelta(t, 5, a.Y, 1e-9)
	require.InDelta(t, 5, b.X, 1e-9)
	require.InDelta(t, 10, b.Y, 1e-9)

	a, b = Line(pt(1, 2), pt(3, 4)).Endpoints()
	require.Equal(t, pt(1, 2), a)
	require.Equal(t, pt(3, 4), b)

	require.Equal(t, "arc [0 0 10 10] 0 90", arc.String())
	require.Equal(t, "line (1,2) (3,4)", Line(pt(1, 2), pt(3, 4)).String())
	require.Equal(t, "InstructionType(7)", InstructionType(7).String())
}

func TestConnectedReportsGap(t *testing.T) {
	instrs := []Instruction{
		Line(pt(0, 0), pt(10, 0)),
		Line(pt(10, 0), pt(10, 10)),
		Line(pt(20, 10), pt(20, 30)),
	}
	err := Connected(instrs, 1)

	var gap *GapError
	require.True(t, errors.As(err, &gap))
	require.Equal(t, 2, gap.Index)
	require.Equal(t, pt(10, 10), gap.Pen)
	require.Equal(t, pt(20, 10), gap.Start)

	require.NoError(t, Connected(instrs[:2], 0))
	require.NoError(t, Connected(nil, 0))
}

func TestConnectedReversedArc(t *testing.T) {
	// quarter circle from (10,5) to (5,10), traced backwards
	instrs := []Instruction{
		Line(pt(0, 20), pt(5, 10)),
		{Kind: ArcInstruction, X: 0, Y: 0, Width: 10, Height: 10, StartAngle: 0, SweepAngle: 90},
		Line(pt(10, 5), pt(30, 5)),
	}
	require.NoError(t, Connected(instrs, 1e-6))
}
