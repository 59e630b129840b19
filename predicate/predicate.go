// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package predicate carries the symbolic predicates of spec.md section
// 4.E (coll, cong, perp, para, eqangle, aconst, s_angle, cyclic,
// cyclic_with_centers, distmeq, distseq, rconst, eqratio, overlap,
// acompute) as plain data, plus the trivial textual-form lexer described
// in spec.md section 6. Translating a Predicate into an equation against
// a particular engine's per-pair quantity variables is the job of
// package ddar, since that translation consults state (pair_to_dir,
// pair_to_dist_mul, pair_to_dist_add) owned by the engine, not by this
// package.
package predicate

import (
	"math/big"

	"github.com/geoddar/ddar/geodb"
)

// Predicate is the parsed form of a predicate textual form: a name and
// its ordered arguments, split into point references (already resolved
// through whatever substitution is in effect) and numeric constants in
// the order they appeared after the points.
type Predicate struct {
	Name   string
	Points []*geodb.Point
	Consts []*big.Rat
}

// Known predicate names, matching spec.md section 4.E's translation
// table exactly.
const (
	Coll              = "coll"
	Cong              = "cong"
	Perp              = "perp"
	Para              = "para"
	EqAngle           = "eqangle"
	AngEq             = "angeq"
	AConst            = "aconst"
	SAngle            = "s_angle"
	Cyclic            = "cyclic"
	CyclicWithCenters = "cyclic_with_centers"
	DistMEq           = "distmeq"
	DistSEq           = "distseq"
	RConst            = "rconst"
	EqRatio           = "eqratio"
	Overlap           = "overlap"
	ACompute          = "acompute"
)

// Rewrite returns p with every point argument rewritten through resolve
// (normally geodb.Database.Resolve), so callers may refer to points that
// have since been merged away (spec.md section 4.E, "before translation,
// every predicate has its point arguments rewritten through
// point_subst").
func (p Predicate) Rewrite(resolve func(*geodb.Point) *geodb.Point) Predicate {
	pts := make([]*geodb.Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = resolve(pt)
	}
	return Predicate{Name: p.Name, Points: pts, Consts: p.Consts}
}
