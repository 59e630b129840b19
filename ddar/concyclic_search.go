// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"math/big"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/quantity"
)

// searchConcyclic installs rule G5: for each pair (a,b), bucket every
// other point by the simplified inscribed angle ∠(ca,cb). A zero bucket
// means those points are collinear with a,b (forwarded to G1); any other
// bucket with at least two members is a concyclic candidate set
// (forwarded to G2), augmented with any point equidistant from a and b —
// a center candidate, bucketed under ½+∠(ac,ab), the complementary
// half-turn offset of its own vertex-a inscribed angle.
func (e *Engine) searchConcyclic() bool {
	pts := e.livePoints()
	changed := false

	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := pts[i], pts[j]
			var collinear []*geodb.Point
			buckets := make(map[string][]*geodb.Point)
			centerBuckets := make(map[string][]*geodb.Point)

			for _, c := range pts {
				if c == a || c == b {
					continue
				}
				angle := quantity.Angle{C: e.dirCore.Simplify(e.dirOf(c, a).Sub(e.dirOf(c, b)).C)}
				if angle.IsZero() {
					collinear = append(collinear, c)
					continue
				}
				buckets[angle.Hash()] = append(buckets[angle.Hash()], c)

				ratio := quantity.DistMul{C: e.mulCore.Simplify(e.distMulOf(c, a).Div(e.distMulOf(c, b)).C)}
				if ratio.IsIdentity() {
					vertexA := quantity.Angle{C: e.dirCore.Simplify(e.dirOf(a, c).Sub(e.dirOf(a, b)).C)}
					shifted := quantity.FromHalfTurns(halfHalfTurn).Add(vertexA)
					centerBuckets[shifted.Hash()] = append(centerBuckets[shifted.Hash()], c)
				}
			}

			if len(collinear) > 0 {
				if ok, err := e.forceCollinear(append([]*geodb.Point{a, b}, collinear...)); err == nil && ok {
					changed = true
				}
			}
			for key, members := range buckets {
				if len(members) < 2 {
					continue
				}
				candidates := append([]*geodb.Point{a, b}, members...)
				if ok, err := e.forceConcyclic(candidates, centerBuckets[key]); err == nil && ok {
					changed = true
				}
			}
		}
	}
	return changed
}

var halfHalfTurn = big.NewRat(1, 2)
