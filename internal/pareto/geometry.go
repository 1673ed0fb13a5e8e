package pareto

import "sort"

// Vertex is a bare chart coordinate.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rendering margins: the dominance region extends 15% past the data's right
// edge and, when both axes minimize, 10% past its top.
const (
	xMarginFactor = 1.15
	yMarginFactor = 1.10
)

// StepCurve traces a right-angle staircase through the frontier: Pareto
// improvements are discrete, so consecutive points connect with a horizontal
// run followed by a vertical drop rather than an interpolated slope.
//
// Fewer than two points cannot form a curve and yield an empty sequence.
// For n points the curve has 4·(n−1)+1 vertices.
func StepCurve(frontier []Point) []Vertex {
	if len(frontier) < 2 {
		return []Vertex{}
	}

	sorted := make([]Point, len(frontier))
	copy(sorted, frontier)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	curve := make([]Vertex, 0, 4*(len(sorted)-1)+1)
	curve = append(curve, Vertex{X: sorted[0].X, Y: sorted[0].Y})
	for i := 1; i < len(sorted); i++ {
		p, q := sorted[i-1], sorted[i]
		curve = append(curve,
			Vertex{X: p.X, Y: p.Y},
			Vertex{X: q.X, Y: p.Y},
			Vertex{X: q.X, Y: q.Y},
			Vertex{X: q.X, Y: q.Y},
		)
	}
	return curve
}

// Region builds the open polygon boundary of the dominated region for a
// frontier. all is the full point set — the region spans the whole visible
// data extent, not just the frontier's span. extentX and extentY are the
// data maxima on each axis.
//
// When minimizeY is true (accuracy-style charts, smaller is better on both
// axes) the region sits above the frontier, capped at extentY·1.10. Otherwise
// (robustness-style, larger y is better) it sits below, down to y = 0. The
// renderer closes and fills the returned boundary.
func Region(frontier, all []Point, extentX, extentY float64, minimizeY bool) []Vertex {
	if len(frontier) == 0 {
		return nil
	}
	if len(all) == 0 {
		all = frontier
	}

	minX := all[0].X
	for _, p := range all[1:] {
		if p.X < minX {
			minX = p.X
		}
	}

	maxX := extentX * xMarginFactor
	baseY := 0.0
	if minimizeY {
		baseY = extentY * yMarginFactor
	}

	boundary := make([]Vertex, 0, len(frontier)+4)
	boundary = append(boundary, Vertex{X: minX, Y: frontier[0].Y})
	for _, p := range frontier {
		boundary = append(boundary, Vertex{X: p.X, Y: p.Y})
	}
	last := frontier[len(frontier)-1]
	boundary = append(boundary,
		Vertex{X: maxX, Y: last.Y},
		Vertex{X: maxX, Y: baseY},
		Vertex{X: minX, Y: baseY},
	)
	return boundary
}
