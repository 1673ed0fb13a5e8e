// Package pareto computes multi-objective Pareto frontiers over normalized
// model records and derives the step curves and dominance-region polygons
// used to chart trade-offs such as accuracy versus speed.
package pareto

import (
	"sort"

	"github.com/catbench/leaderboard/internal/models"
)

// Direction is a per-axis optimization direction.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Point is one model positioned on a two-objective plane. Record carries the
// full normalized record for tooltips and drill-down.
type Point struct {
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	Record models.ModelRecord `json:"record"`
}

// PointsFromRecords projects records onto the (x, y) metric plane. Records
// missing either coordinate are excluded — only fully positioned models can
// participate in dominance testing.
func PointsFromRecords(records []models.ModelRecord, x, y Metric) []Point {
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		xv := x.Select(rec)
		yv := y.Select(rec)
		if xv == nil || yv == nil {
			continue
		}
		points = append(points, Point{X: *xv, Y: *yv, Record: rec})
	}
	return points
}

// Frontier returns the non-dominated subset of points under the given
// per-axis directions, sorted ascending by X. Points sharing an X keep their
// input order (stable sort). Zero or one point is returned unchanged — a
// single point cannot be dominated.
//
// All-pairs comparison is O(n²); n is the number of benchmarked models, so
// tens at most.
func Frontier(points []Point, dx, dy Direction) []Point {
	if len(points) <= 1 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	frontier := make([]Point, 0, len(points))
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i == j {
				continue
			}
			if dominates(q, p, dx, dy) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, p)
		}
	}

	sort.SliceStable(frontier, func(i, j int) bool {
		return frontier[i].X < frontier[j].X
	})
	return frontier
}

// dominates reports whether a dominates b: a is at least as good on both
// axes and strictly better on at least one.
func dominates(a, b Point, dx, dy Direction) bool {
	if worse(a.X, b.X, dx) || worse(a.Y, b.Y, dy) {
		return false
	}
	return better(a.X, b.X, dx) || better(a.Y, b.Y, dy)
}

func better(v, w float64, d Direction) bool {
	if d == Maximize {
		return v > w
	}
	return v < w
}

func worse(v, w float64, d Direction) bool {
	return better(w, v, d)
}
