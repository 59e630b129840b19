// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import "github.com/geoddar/ddar/geodb"

// forceEqualPoints installs rule G3: unify a and b into a single point
// identity. Any formal line or circle containing exactly one of them is
// first extended to contain both via G1/G2; every formal line/circle
// that then contains the merged-away point is rebuilt without it; every
// third live point gets an equal-distance constraint to both; finally
// point_subst redirects b to a and b leaves the live set.
func (e *Engine) forceEqualPoints(a, b *geodb.Point) error {
	a, b = e.db.Resolve(a), e.db.Resolve(b)
	if a == b {
		return nil
	}

	for _, l := range snapshotLines(e.db) {
		hasA, hasB := l.Has(a), l.Has(b)
		if hasA != hasB {
			if _, err := e.forceCollinear(append(append([]*geodb.Point(nil), l.Points...), a, b)); err != nil {
				return err
			}
		}
	}
	for _, c := range snapshotCircles(e.db) {
		hasA, hasB := c.Has(a), c.Has(b)
		if hasA != hasB {
			if _, err := e.forceConcyclic(append(append([]*geodb.Point(nil), c.Points...), a, b), c.Centers); err != nil {
				return err
			}
		}
	}

	for l := range e.db.Lines {
		if !l.Has(b) {
			continue
		}
		rebuilt := l.WithoutPoint(b)
		if rebuilt.MainPair[0] == b || rebuilt.MainPair[1] == b {
			rebuilt.MainPair = swapPoint(rebuilt.MainPair, b, a)
		}
		e.db.ReplaceLines([]*geodb.Line{l}, rebuilt)
	}
	for c := range e.db.Circles {
		if !c.Has(b) {
			continue
		}
		rebuilt := c.WithoutPoint(b)
		e.db.ReplaceCircles([]*geodb.Circle{c}, rebuilt)
	}

	for _, x := range e.livePoints() {
		if x == a || x == b {
			continue
		}
		eq := e.distMulOf(x, a).Div(e.distMulOf(x, b))
		e.mulCore.AddConstraint(eq.C)
	}

	e.db.PointSubst[b] = a
	e.removeLivePoint(b)
	return nil
}

func snapshotLines(db *geodb.Database) []*geodb.Line {
	out := make([]*geodb.Line, 0, len(db.Lines))
	for l := range db.Lines {
		out = append(out, l)
	}
	return out
}

func snapshotCircles(db *geodb.Database) []*geodb.Circle {
	out := make([]*geodb.Circle, 0, len(db.Circles))
	for c := range db.Circles {
		out = append(out, c)
	}
	return out
}

func swapPoint(pair [2]*geodb.Point, from, to *geodb.Point) [2]*geodb.Point {
	if pair[0] == from {
		pair[0] = to
	}
	if pair[1] == from {
		pair[1] = to
	}
	return pair
}
