// Package bendpoint renders polyline connections with rounded bend points.
//
// A connection is a source point, zero or more bend points and a target
// point. [Render] replaces every bend with a circular arc tangent to the
// two adjacent segments and returns the result as a list of line and arc
// [Instruction] values, ready to be replayed into any [Graphics] context.
//
// The arc radius at each bend is the configured radius, reduced so that
// an arc never reaches past the middle of either adjacent segment.
//
// Example:
//
//	path := bendpoint.Path{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 80}}
//	for _, in := range bendpoint.Render(path, bendpoint.DefaultConfig()) {
//	    fmt.Println(in)
//	}
package bendpoint
