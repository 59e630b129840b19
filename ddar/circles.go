// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"fmt"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
)

// forceConcyclic installs rule G2: merge every formal circle reachable
// from members through shared membership, verify the union lies on one
// numeric circle, and emit the inscribed-angle and (if centers are
// known) equal-radius constraints.
func (e *Engine) forceConcyclic(members []*geodb.Point, centers []*geodb.Point) (bool, error) {
	members = dedupePoints(resolveAll(e.db, members))
	centers = dedupePoints(resolveAll(e.db, centers))

	if len(members) < 3 {
		if len(centers) == 0 {
			return false, fmt.Errorf("%w: cyclic needs at least 3 distinct points", ErrDegenerateInput)
		}
		// Too few non-center members to pin down a circle directly:
		// express the constraint as equal distances from the known
		// center instead (spec.md section 4.E, cyclic_with_centers).
		return e.forceEqualDistancesToCenter(centers[0], members)
	}

	union, oldCircles := e.reachableCircles(members)
	union = dedupePoints(union)

	defining, ok := firstNonCollinearTriple(union)
	if !ok {
		return false, fmt.Errorf("%w: members are collinear, not concyclic", ErrGeometricInconsistency)
	}
	circ, ok := numeric.CircleThrough3(defining[0].Pos, defining[1].Pos, defining[2].Pos)
	if !ok {
		return false, fmt.Errorf("%w: defining points are collinear", ErrGeometricInconsistency)
	}
	for _, p := range union {
		if !circ.Contains(p.Pos) {
			return false, fmt.Errorf("%w: points not concyclic", ErrGeometricInconsistency)
		}
	}

	allCenters := dedupePoints(append(append([]*geodb.Point(nil), centers...), mergeCenters(oldCircles)...))

	newCircle := &geodb.Circle{
		Defining: [3]*geodb.Point{defining[0], defining[1], defining[2]},
		Points:   union,
		Centers:  allCenters,
		Num:      circ,
	}

	changed := len(oldCircles) != 1 || len(oldCircles[0].Points) != len(union)

	others := otherMembers(union, defining)
	if len(others) > 0 {
		ref := others[0]
		for _, x := range others[1:] {
			eq := e.dirOf(x, defining[0]).Sub(e.dirOf(x, defining[1])).
				Sub(e.dirOf(ref, defining[0]).Sub(e.dirOf(ref, defining[1])))
			if e.dirCore.AddConstraint(eq.C) {
				changed = true
			}
		}
	}

	if len(allCenters) > 0 {
		center := allCenters[0]
		nonCenterMembers := otherMembers(union, [3]*geodb.Point{center, center, center})
		if len(nonCenterMembers) > 0 {
			ref := nonCenterMembers[0]
			for _, m := range nonCenterMembers[1:] {
				eq := e.distMulOf(center, m).Div(e.distMulOf(center, ref))
				if e.mulCore.AddConstraint(eq.C) {
					changed = true
				}
			}
		}
	}

	e.db.ReplaceCircles(oldCircles, newCircle)
	return changed, nil
}

// forceEqualDistancesToCenter handles G2's fallback for cyclic_with_centers
// when fewer than three non-center members are given: it cannot pin
// down a formal circle, so it installs pairwise equal-distance
// constraints from center to every member directly.
func (e *Engine) forceEqualDistancesToCenter(center *geodb.Point, members []*geodb.Point) (bool, error) {
	if len(members) == 0 {
		return false, nil
	}
	changed := false
	ref := members[0]
	for _, m := range members[1:] {
		eq := e.distMulOf(center, m).Div(e.distMulOf(center, ref))
		if e.mulCore.AddConstraint(eq.C) {
			changed = true
		}
	}
	return changed, nil
}

// checkConcyclic reports whether points are known concyclic: trivially
// true for fewer than three distinct points, otherwise true if any
// known circle's member set covers every point in pts. This scans
// e.db.Circles rather than trusting a single triple_to_circle lookup,
// so the result does not depend on which three points happen to come
// first in pts (mirrors checkCollinear's exhaustive, order-independent
// check).
func (e *Engine) checkConcyclic(points []*geodb.Point) bool {
	pts := dedupePoints(resolveAll(e.db, points))
	if len(pts) < 3 {
		return true
	}
	for circ := range e.db.Circles {
		all := true
		for _, p := range pts {
			if !circ.Has(p) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func (e *Engine) reachableCircles(seed []*geodb.Point) ([]*geodb.Point, []*geodb.Circle) {
	pointSeen := make(map[*geodb.Point]bool)
	circleSeen := make(map[*geodb.Circle]bool)
	union := append([]*geodb.Point(nil), seed...)
	queue := append([]*geodb.Point(nil), seed...)
	for _, p := range seed {
		pointSeen[p] = true
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for c := range e.db.Circles {
			if circleSeen[c] || !c.Has(p) {
				continue
			}
			circleSeen[c] = true
			for _, q := range c.Points {
				if !pointSeen[q] {
					pointSeen[q] = true
					union = append(union, q)
					queue = append(queue, q)
				}
			}
		}
	}

	circles := make([]*geodb.Circle, 0, len(circleSeen))
	for c := range circleSeen {
		circles = append(circles, c)
	}
	return union, circles
}

func mergeCenters(circles []*geodb.Circle) []*geodb.Point {
	var out []*geodb.Point
	for _, c := range circles {
		out = append(out, c.Centers...)
	}
	return out
}

func firstNonCollinearTriple(points []*geodb.Point) ([3]*geodb.Point, bool) {
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			for k := j + 1; k < len(points); k++ {
				if numeric.Orientation(points[i].Pos, points[j].Pos, points[k].Pos) != 0 {
					return [3]*geodb.Point{points[i], points[j], points[k]}, true
				}
			}
		}
	}
	return [3]*geodb.Point{}, false
}

func otherMembers(points []*geodb.Point, exclude [3]*geodb.Point) []*geodb.Point {
	out := make([]*geodb.Point, 0, len(points))
	for _, p := range points {
		if p != exclude[0] && p != exclude[1] && p != exclude[2] {
			out = append(out, p)
		}
	}
	return out
}
