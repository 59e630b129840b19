// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package geodb

import (
	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/quantity"
)

// Line is an immutable formal line: an ordered (by position along the
// line) list of points known collinear, a distinguished main pair
// defining the line's direction variable, the direction itself, and the
// numeric line used as the geometric oracle.
//
// Lines are never mutated in place. A merge replaces the old *Line in
// the database's Lines set and repoints every PairToLine entry that
// named it — see Database.ReplaceLines.
type Line struct {
	Points   []*Point
	MainPair [2]*Point
	Dir      quantity.Angle
	Num      numeric.Line
}

// Has reports whether p is a member of the line.
func (l *Line) Has(p *Point) bool {
	for _, q := range l.Points {
		if q == p {
			return true
		}
	}
	return false
}

// WithoutPoint returns a new formal line with p removed, copying MainPair
// and Dir unchanged even when p is one of the main pair's points; the
// caller (package ddar, point-merge rule G3) replaces p in the returned
// line's MainPair afterwards.
func (l *Line) WithoutPoint(p *Point) *Line {
	pts := make([]*Point, 0, len(l.Points))
	for _, q := range l.Points {
		if q != p {
			pts = append(pts, q)
		}
	}
	return &Line{Points: pts, MainPair: l.MainPair, Dir: l.Dir, Num: l.Num}
}
