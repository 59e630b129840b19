// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package numeric

import "math"

// Line is a numeric line stored as a unit normal n and scalar c such that
// a point x lies on the line iff x.Dot(n) == c.
type Line struct {
	N Vec2
	C float64
}

// LineThrough builds the numeric line through two distinct points.
func LineThrough(a, b Vec2) Line {
	d := b.Sub(a)
	n := d.Perp().Unit()
	return Line{N: n, C: n.Dot(a)}
}

// Contains reports whether p lies on the line within ATOM.
func (l Line) Contains(p Vec2) bool {
	return NearZero(l.N.Dot(p) - l.C)
}

// Direction returns the undirected line direction in [0,1), representing
// atan2(n.Y, n.X)/pi shifted into the principal half-turn.
func (l Line) Direction() float64 {
	d := math.Atan2(l.N.Y, l.N.X)/math.Pi + 0.5
	d = math.Mod(d, 1)
	if d < 0 {
		d += 1
	}
	return d
}

// Intersect solves the 2x2 system for the intersection of two lines.
// ok is false if the lines are numerically parallel (determinant below
// ATOM).
func Intersect(l1, l2 Line) (p Vec2, ok bool) {
	det := l1.N.X*l2.N.Y - l1.N.Y*l2.N.X
	if math.Abs(det) < ATOM {
		return Vec2{}, false
	}
	x := (l1.C*l2.N.Y - l2.C*l1.N.Y) / det
	y := (l2.C*l1.N.X - l1.C*l2.N.X) / det
	return Vec2{X: x, Y: y}, true
}

// Circle is a numeric circle stored as center and radius.
type Circle struct {
	Center Vec2
	Radius float64
}

// Contains reports whether p lies on the circle within ATOM^2 (squared
// tolerance, matching spec.md's "all numeric tests use squared-tolerance
// comparisons to the constant ATOM").
func (c Circle) Contains(p Vec2) bool {
	d := Distance(p, c.Center)
	diff := d*d - c.Radius*c.Radius
	return math.Abs(diff) < ATOM*ATOM
}

// CircleThrough3 builds the numeric circle through three non-collinear
// points as the intersection of the two perpendicular bisectors. ok is
// false if the points are collinear (degenerate circle).
func CircleThrough3(a, b, c Vec2) (circ Circle, ok bool) {
	if Collinear(a, b, c) {
		return Circle{}, false
	}
	mab := Midpoint(a, b)
	mbc := Midpoint(b, c)
	perpAB := Line{N: b.Sub(a).Unit(), C: b.Sub(a).Unit().Dot(mab)}
	perpBC := Line{N: c.Sub(b).Unit(), C: c.Sub(b).Unit().Dot(mbc)}
	center, ok := Intersect(perpAB, perpBC)
	if !ok {
		return Circle{}, false
	}
	return Circle{Center: center, Radius: Distance(center, a)}, true
}
