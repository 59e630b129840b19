// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package ddar implements the deduction-closure engine of spec.md
// section 4.G: the fixed-point inference loop over a geometry database,
// driven by three Gaussian-elimination cores and the numeric oracle.
// It builds on packages numeric, ratcomb, elim, quantity, geodb and
// predicate; callers construct geodb points and predicate values
// themselves and hand them to *Engine's methods.
package ddar

import (
	"math"
	"sync"

	"github.com/blang/semver/v4"

	"github.com/geoddar/ddar/elim"
	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/internal/log"
	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/quantity"
	"github.com/geoddar/ddar/ratcomb"
)

// Version identifies the deduction-closure ruleset implemented by this
// package (spec.md section 4.G's rule order and section 3's predicate
// set), independent of the module's own go.mod version.
var Version = semver.MustParse("1.0.0")

var versionLogOnce sync.Once

// Engine owns one geometry database, the three elimination cores, and
// the per-pair quantity variable tables. It is not safe for concurrent
// use by multiple goroutines (spec.md section 5); package batch drives
// many independent Engines concurrently instead of sharing one.
type Engine struct {
	db *geodb.Database

	// live is the current list of live points, shrinking on every
	// successful G3 merge. Order is insertion order; callers needing a
	// deterministic order should sort by Point.ID.
	live []*geodb.Point

	// pairToDir/pairToDistMul/pairToDistAdd hold the singleton-
	// combination variable allocated for every pair of initially
	// distinct points (spec.md section 3's "ordered pair" language is
	// realized here as an unordered PairKey, since line direction and
	// segment length are both symmetric in their two endpoints).
	pairToDir     map[geodb.PairKey]*ratcomb.Var
	pairToDistMul map[geodb.PairKey]*ratcomb.Var
	pairToDistAdd map[geodb.PairKey]*ratcomb.Var

	dirCore *elim.Core
	mulCore *elim.Core
	addCore *elim.Core

	// lastSmallCircles mirrors spec.md section 3's last_small_circles;
	// known_similar lives in db.KnownSimilar. G6 rebuilds lastSmallCircles
	// on every pass and no other rule reads it.
	lastSmallCircles []smallCircleCandidate

	// distMulCache/directionCache are refreshed after every rule that
	// installs a constraint (updateCache). No rule reads them: G4, G5, G7
	// and G8 simplify through the elimination cores directly.
	distMulCache   map[geodb.PairKey]quantity.DistMul
	directionCache map[geodb.PairKey]quantity.Angle
}

// smallCircleCandidate is an equidistance cluster too small to be a
// circle (spec.md section 3, last_small_circles). It is kept only until
// the next G6 pass; point merging (G3) does not use it.
type smallCircleCandidate struct {
	center  *geodb.Point
	members []*geodb.Point
}

// New constructs an engine over the given points, eagerly allocating a
// direction, multiplicative-distance, and additive-distance variable
// for every pair of points farther apart than numeric.ATOM.
func New(points []*geodb.Point) *Engine {
	versionLogOnce.Do(func() {
		log.Logger().Info().Str("version", Version.String()).Msg("ddar: engine version")
	})

	e := &Engine{
		db:             geodb.NewDatabase(),
		live:           append([]*geodb.Point(nil), points...),
		pairToDir:      make(map[geodb.PairKey]*ratcomb.Var),
		pairToDistMul:  make(map[geodb.PairKey]*ratcomb.Var),
		pairToDistAdd:  make(map[geodb.PairKey]*ratcomb.Var),
		dirCore:        elim.NewCore(),
		mulCore:        elim.NewCore(),
		addCore:        elim.NewCore(),
		distMulCache:   make(map[geodb.PairKey]quantity.DistMul),
		directionCache: make(map[geodb.PairKey]quantity.Angle),
	}

	sorted := geodb.SortPoints(points)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			dist := numeric.Distance(a.Pos, b.Pos)
			if dist <= numeric.ATOM {
				continue
			}
			key := geodb.MakePairKey(a, b)
			dir := numeric.LineThrough(a.Pos, b.Pos).Direction()
			e.pairToDir[key] = ratcomb.NewLHSVar(dir, "dir_"+a.Name+b.Name)
			e.pairToDistMul[key] = ratcomb.NewLHSVar(math.Log(dist), "mul_"+a.Name+b.Name)
			e.pairToDistAdd[key] = ratcomb.NewLHSVar(dist, "add_"+a.Name+b.Name)
		}
	}
	e.updateCache()
	return e
}

// dirOf, distMulOf, distAddOf return the formal quantity for the
// segment (a,b), resolving both endpoints through point_subst first.
func (e *Engine) dirOf(a, b *geodb.Point) quantity.Angle {
	return quantity.NewAngleVar(e.pairToDir[e.pairKey(a, b)])
}

func (e *Engine) distMulOf(a, b *geodb.Point) quantity.DistMul {
	return quantity.NewDistMulVar(e.pairToDistMul[e.pairKey(a, b)])
}

func (e *Engine) distAddOf(a, b *geodb.Point) quantity.DistAdd {
	return quantity.NewDistAddVar(e.pairToDistAdd[e.pairKey(a, b)])
}

func (e *Engine) pairKey(a, b *geodb.Point) geodb.PairKey {
	return geodb.MakePairKey(e.db.Resolve(a), e.db.Resolve(b))
}

// livePoints returns the current live point list sorted by ID, for
// deterministic iteration (spec.md property P2).
func (e *Engine) livePoints() []*geodb.Point {
	return geodb.SortPoints(e.live)
}

// removeLivePoint drops p from the live list (G3's point merge).
func (e *Engine) removeLivePoint(p *geodb.Point) {
	out := e.live[:0]
	for _, q := range e.live {
		if q != p {
			out = append(out, q)
		}
	}
	e.live = out
}

// updateCache refreshes distMulCache/directionCache for every live
// pair, simplifying each through its elimination core (spec.md section
// 5(iii), "caches refreshed between rules whose results they feed").
func (e *Engine) updateCache() {
	pts := e.livePoints()
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := pts[i], pts[j]
			key := e.pairKey(a, b)
			if _, ok := e.pairToDir[key]; !ok {
				continue
			}
			e.distMulCache[key] = quantity.DistMul{C: e.mulCore.Simplify(e.distMulOf(a, b).C)}
			e.directionCache[key] = quantity.Angle{C: e.dirCore.Simplify(e.dirOf(a, b).C)}
		}
	}
}
