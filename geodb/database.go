// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package geodb

import "github.com/bits-and-blooms/bitset"

// SmallCircle is a transient equidistance cluster with fewer than three
// members (spec.md section 3, last_small_circles). Package ddar keeps its
// own list of such clusters and does not read or fill LastSmallCircles.
type SmallCircle struct {
	Center  *Point
	Members []*Point
}

// Database is the geometry database owned by a ddar.Engine: formal
// lines, formal circles, the pair-to-line and triple-to-circle indices,
// the point substitution table, and the known-similar set.
type Database struct {
	Lines   map[*Line]struct{}
	Circles map[*Circle]struct{}

	PairToLine     map[PairKey]*Line
	TripleToCircle map[TripleKey]*Circle

	// PointSubst redirects a point identity that has been merged away to
	// its current representative. Resolve walks this chain to a
	// fixed point; every incoming caller reference goes through it
	// before touching any other index (spec.md section 9, "substitution
	// table in place of reference rewriting").
	PointSubst map[*Point]*Point

	// KnownSimilar records every ordered-triple-of-triples marking
	// already installed by rule G4, including all six rotations and
	// reflections of each marking, keyed by a canonical string so
	// re-discovering the same similarity is a cheap membership test.
	KnownSimilar map[string]struct{}

	LastSmallCircles []SmallCircle

	// visitIdx/nextVisit assign each point a dense index for VisitSet,
	// a bitset-backed "already visited" membership test. Rules G1 and G2
	// in package ddar do not use it: their transitive-closure searches
	// track visited points in a fresh map[*Point]bool per merge.
	visitIdx  map[*Point]uint
	nextVisit uint
}

// NewDatabase returns an empty geometry database.
func NewDatabase() *Database {
	return &Database{
		Lines:          make(map[*Line]struct{}),
		Circles:        make(map[*Circle]struct{}),
		PairToLine:     make(map[PairKey]*Line),
		TripleToCircle: make(map[TripleKey]*Circle),
		PointSubst:     make(map[*Point]*Point),
		KnownSimilar:   make(map[string]struct{}),
		visitIdx:       make(map[*Point]uint),
	}
}

// Resolve follows PointSubst to the current representative of p.
func (db *Database) Resolve(p *Point) *Point {
	for {
		q, ok := db.PointSubst[p]
		if !ok || q == p {
			return p
		}
		p = q
	}
}

// AddLine inserts a new formal line and indexes every pair drawn from
// its member set.
func (db *Database) AddLine(l *Line) {
	db.Lines[l] = struct{}{}
	for i := 0; i < len(l.Points); i++ {
		for j := i + 1; j < len(l.Points); j++ {
			db.PairToLine[MakePairKey(l.Points[i], l.Points[j])] = l
		}
	}
}

// RemoveLine deletes a formal line from the set and every pair index
// entry that pointed to it (spec.md property P7: never leave a dangling
// pair key pointing at a removed line).
func (db *Database) RemoveLine(l *Line) {
	delete(db.Lines, l)
	for i := 0; i < len(l.Points); i++ {
		for j := i + 1; j < len(l.Points); j++ {
			key := MakePairKey(l.Points[i], l.Points[j])
			if db.PairToLine[key] == l {
				delete(db.PairToLine, key)
			}
		}
	}
}

// ReplaceLines atomically removes every line in old and inserts
// replacement, repointing every pair key among replacement's points at
// it.
func (db *Database) ReplaceLines(old []*Line, replacement *Line) {
	for _, l := range old {
		db.RemoveLine(l)
	}
	db.AddLine(replacement)
}

// AddCircle inserts a new formal circle and indexes every 3-combination
// of its points, so triple_to_circle holds every triple that actually
// lies on the circle (spec.md section 3), not just those touching the
// defining pair.
func (db *Database) AddCircle(c *Circle) {
	db.Circles[c] = struct{}{}
	for i := 0; i < len(c.Points); i++ {
		for j := i + 1; j < len(c.Points); j++ {
			for k := j + 1; k < len(c.Points); k++ {
				db.registerTriple(c.Points[i], c.Points[j], c.Points[k], c)
			}
		}
	}
}

func (db *Database) registerTriple(a, b, c *Point, circ *Circle) {
	db.TripleToCircle[MakeTripleKey(a, b, c)] = circ
}

// RemoveCircle deletes a formal circle and every triple index entry
// pointing to it.
func (db *Database) RemoveCircle(c *Circle) {
	delete(db.Circles, c)
	for key, v := range db.TripleToCircle {
		if v == c {
			delete(db.TripleToCircle, key)
		}
	}
}

// ReplaceCircles atomically removes every circle in old and inserts
// replacement.
func (db *Database) ReplaceCircles(old []*Circle, replacement *Circle) {
	for _, c := range old {
		db.RemoveCircle(c)
	}
	db.AddCircle(replacement)
}

// NewVisitSet returns a fresh scratch bitset for a single merge's
// transitive-closure search, reusing the database's point-index
// assignment across calls.
func (db *Database) NewVisitSet() *VisitSet {
	return &VisitSet{db: db, bits: bitset.New(db.nextVisit)}
}

func (db *Database) visitIndex(p *Point) uint {
	if idx, ok := db.visitIdx[p]; ok {
		return idx
	}
	idx := db.nextVisit
	db.nextVisit++
	db.visitIdx[p] = idx
	return idx
}

// VisitSet is a dense "already visited" membership test scoped to one
// merge operation (rules G1, G2).
type VisitSet struct {
	db   *Database
	bits *bitset.BitSet
}

// Visit marks p visited and reports whether it was already marked.
func (v *VisitSet) Visit(p *Point) (alreadyVisited bool) {
	idx := v.db.visitIndex(p)
	if v.bits.Test(idx) {
		return true
	}
	v.bits.Set(idx)
	return false
}
