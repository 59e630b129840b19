// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package geodb is the geometry database described in spec.md sections 3
// and 4.F: formal lines, formal circles, the pair-to-line and
// triple-to-circle indices, the point substitution map, and the
// known-similar set. The database's contents grow monotonically except
// through the two merging operations package ddar drives through it
// (line/circle merge on collinearity/concyclicity installation, and
// point merge on overlap).
package geodb

import (
	"sort"
	"sync/atomic"

	"github.com/geoddar/ddar/numeric"
)

// Point is an immutable named 2-D position. Points are created once at
// engine construction; their identity — the pointer, never the name —
// is the key in every map this package maintains.
type Point struct {
	id   int64
	Name string
	Pos  numeric.Vec2
}

var nextPointID int64

// NewPoint allocates a fresh point. Two points with the same name and
// position are still distinct identities unless the caller reuses the
// same *Point value.
func NewPoint(name string, pos numeric.Vec2) *Point {
	return &Point{id: atomic.AddInt64(&nextPointID, 1), Name: name, Pos: pos}
}

// ID returns a process-unique, monotonically increasing identifier
// assigned at construction, used only to give pair/triple keys and
// sorted iteration a deterministic order (spec.md property P2) —
// pointer values themselves have no meaningful order.
func (p *Point) ID() int64 { return p.id }

// SortPoints returns pts sorted by ID, for deterministic iteration.
func SortPoints(pts []*Point) []*Point {
	out := append([]*Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// PairKey is a canonical (order-independent) key for an unordered pair
// of distinct points.
type PairKey struct{ A, B *Point }

// MakePairKey canonicalizes a and b into a PairKey so that PairKey(a,b)
// == PairKey(b,a), per spec.md property P7.
func MakePairKey(a, b *Point) PairKey {
	if a.id <= b.id {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}

// TripleKey is a canonical (order-independent) key for three distinct
// points, used by triple_to_circle membership lookups.
type TripleKey struct{ A, B, C *Point }

// MakeTripleKey canonicalizes three distinct points by ascending ID.
func MakeTripleKey(a, b, c *Point) TripleKey {
	pts := []*Point{a, b, c}
	sort.Slice(pts, func(i, j int) bool { return pts[i].id < pts[j].id })
	return TripleKey{A: pts[0], B: pts[1], C: pts[2]}
}
