// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"fmt"
	"sort"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
)

// forceCollinear installs rule G1: merge every formal line reachable
// from the given points through shared membership, verify the union is
// numerically collinear, and emit the additive-distance and
// direction-equality constraints that glue the merged line together.
func (e *Engine) forceCollinear(points []*geodb.Point) (bool, error) {
	seed := dedupePoints(resolveAll(e.db, points))
	if len(seed) < 2 {
		return false, fmt.Errorf("%w: coll needs at least 2 distinct points", ErrDegenerateInput)
	}

	union, oldLines := e.reachableLines(seed)
	union = dedupePoints(union)

	a, b := farthestPair(union)
	line := numeric.LineThrough(a.Pos, b.Pos)
	for _, p := range union {
		if !line.Contains(p.Pos) {
			return false, fmt.Errorf("%w: points not collinear", ErrGeometricInconsistency)
		}
	}

	sorted := sortAlongLine(union, line)
	newLine := &geodb.Line{
		Points:   sorted,
		MainPair: [2]*geodb.Point{a, b},
		Dir:      e.dirOf(a, b),
		Num:      line,
	}

	changed := len(oldLines) != 1 || len(oldLines[0].Points) != len(sorted)

	for _, old := range oldLines {
		if geodb.MakePairKey(old.MainPair[0], old.MainPair[1]) == geodb.MakePairKey(a, b) {
			continue
		}
		diff := e.dirOf(old.MainPair[0], old.MainPair[1]).Sub(newLine.Dir)
		if e.dirCore.AddConstraint(diff.C) {
			changed = true
		}
	}

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			for k := j + 1; k < len(sorted); k++ {
				pi, pj, pk := sorted[i], sorted[j], sorted[k]
				eq := e.distAddOf(pi, pj).Add(e.distAddOf(pj, pk)).Sub(e.distAddOf(pi, pk))
				if e.addCore.AddConstraint(eq.C) {
					changed = true
				}
			}
		}
	}

	e.db.ReplaceLines(oldLines, newLine)
	return changed, nil
}

// checkCollinear reports whether the given points are known collinear:
// trivially true for fewer than two distinct points, otherwise every
// point's direction against the first must match in dirCore.
func (e *Engine) checkCollinear(points []*geodb.Point) bool {
	pts := dedupePoints(resolveAll(e.db, points))
	if len(pts) < 2 {
		return true
	}
	base := e.dirOf(pts[0], pts[1])
	baseSimplified := e.dirCore.Simplify(base.C)
	for _, p := range pts[2:] {
		other := e.dirOf(pts[0], p)
		if !baseSimplified.Equal(e.dirCore.Simplify(other.C)) {
			return false
		}
	}
	return true
}

// reachableLines returns the union of points and the set of formal
// lines transitively connected to seed through shared membership
// (spec.md section 4.G, G1's "transitive closure of lines reachable by
// sharing a point").
func (e *Engine) reachableLines(seed []*geodb.Point) ([]*geodb.Point, []*geodb.Line) {
	pointSeen := make(map[*geodb.Point]bool)
	lineSeen := make(map[*geodb.Line]bool)
	union := append([]*geodb.Point(nil), seed...)
	queue := append([]*geodb.Point(nil), seed...)
	for _, p := range seed {
		pointSeen[p] = true
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for l := range e.db.Lines {
			if lineSeen[l] || !l.Has(p) {
				continue
			}
			lineSeen[l] = true
			for _, q := range l.Points {
				if !pointSeen[q] {
					pointSeen[q] = true
					union = append(union, q)
					queue = append(queue, q)
				}
			}
		}
	}

	lines := make([]*geodb.Line, 0, len(lineSeen))
	for l := range lineSeen {
		lines = append(lines, l)
	}
	return union, lines
}

func farthestPair(points []*geodb.Point) (*geodb.Point, *geodb.Point) {
	var a, b *geodb.Point
	best := -1.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := numeric.Distance(points[i].Pos, points[j].Pos)
			if d > best {
				best, a, b = d, points[i], points[j]
			}
		}
	}
	return a, b
}

func sortAlongLine(points []*geodb.Point, line numeric.Line) []*geodb.Point {
	dirVec := line.N.Perp()
	out := append([]*geodb.Point(nil), points...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos.Dot(dirVec) < out[j].Pos.Dot(dirVec)
	})
	return out
}

func dedupePoints(points []*geodb.Point) []*geodb.Point {
	seen := make(map[*geodb.Point]bool, len(points))
	out := make([]*geodb.Point, 0, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func resolveAll(db *geodb.Database, points []*geodb.Point) []*geodb.Point {
	out := make([]*geodb.Point, len(points))
	for i, p := range points {
		out[i] = db.Resolve(p)
	}
	return out
}
