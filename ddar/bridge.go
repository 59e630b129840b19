// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"math/big"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/quantity"
	"github.com/geoddar/ddar/ratcomb"
)

// mulSeen/addSeen entries remember, for a normalized shape encountered
// for the first time, which live pair produced it and the rational
// scale factor that shape was divided by to reach its canonical form.
type bridgeEntry struct {
	pair  geodb.PairKey
	scale *big.Rat
}

// bridgeAddMul installs rule G7: whenever two distinct pairs' DistMul
// (respectively DistAdd) quantities normalize to the same shape up to a
// known rational scale, the other representation is forced to the same
// scale between those two pairs — bridging log-space and linear-space
// distance once a rational relation is known in either.
func (e *Engine) bridgeAddMul() bool {
	pts := e.livePoints()
	mulSeen := make(map[string]bridgeEntry)
	addSeen := make(map[string]bridgeEntry)
	changed := false

	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := pts[i], pts[j]
			pk := geodb.MakePairKey(a, b)

			mulQ := quantity.DistMul{C: e.mulCore.Simplify(e.distMulOf(a, b).C)}
			mulCoef, mulRest := mulQ.Normalize()
			if prev, ok := mulSeen[mulRest.Hash()]; ok && prev.pair != pk {
				thisAdd := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(a, b).C)}
				prevAdd := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(prev.pair.A, prev.pair.B).C)}
				eq := thisAdd.Scale(prev.scale).Sub(prevAdd.Scale(mulCoef))
				if e.addCore.AddConstraint(eq.C) {
					changed = true
				}
			} else if !ok {
				mulSeen[mulRest.Hash()] = bridgeEntry{pair: pk, scale: mulCoef}
			}

			addQ := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(a, b).C)}
			addDivisor, addRest := normalizeAdd(addQ)
			if addDivisor == nil {
				continue
			}
			if prev, ok := addSeen[addRest.Hash()]; ok && prev.pair != pk {
				thisMul := quantity.DistMul{C: e.mulCore.Simplify(e.distMulOf(a, b).C)}
				prevMul := quantity.DistMul{C: e.mulCore.Simplify(e.distMulOf(prev.pair.A, prev.pair.B).C)}
				eq := thisMul.Div(prevMul).ScaleByRational(new(big.Rat).Inv(new(big.Rat).Quo(addDivisor, prev.scale)))
				if e.mulCore.AddConstraint(eq.C) {
					changed = true
				}
			} else if !ok {
				addSeen[addRest.Hash()] = bridgeEntry{pair: pk, scale: addDivisor}
			}
		}
	}
	return changed
}

// normalizeAdd divides a DistAdd by the minimum absolute LHS
// coefficient, mirroring quantity.DistAdd.Normalize but also returning
// the divisor, which G7's bridging needs and Normalize's public
// signature does not expose.
func normalizeAdd(a quantity.DistAdd) (*big.Rat, quantity.DistAdd) {
	if a.IsZero() {
		return nil, a
	}
	var minAbs *big.Rat
	for v, k := range a.C {
		if v.Kind != ratcomb.KindLHS {
			continue
		}
		abs := new(big.Rat).Abs(k)
		if minAbs == nil || abs.Cmp(minAbs) < 0 {
			minAbs = abs
		}
	}
	if minAbs == nil || minAbs.Sign() == 0 {
		return nil, a
	}
	return minAbs, a.Scale(new(big.Rat).Inv(minAbs))
}

// bridgeArcChord installs rule G8: for every formal circle with at
// least four members and a known center, every ordered pair (a,b) with
// positive orientation relative to the center is bucketed by its
// directed arc angle, and two pairs whose arcs collide get their chord
// distances forced equal. Only this direction is bridged: equal chords
// do not force equal arcs.
func (e *Engine) bridgeArcChord() bool {
	changed := false
	for c := range e.db.Circles {
		if len(c.Points) < 4 {
			continue
		}
		center := c.Centers
		if len(center) == 0 {
			continue
		}
		o := center[0]

		arcSeen := make(map[string]bridgeEntry)
		for i, a := range c.Points {
			for j, b := range c.Points {
				if i == j {
					continue
				}
				if orientationSign(o, a, b) <= 0 {
					continue
				}
				pk := geodb.MakePairKey(a, b)
				arc := quantity.Angle{C: e.dirCore.Simplify(e.dirOf(o, a).Sub(e.dirOf(o, b)).C)}
				if prev, ok := arcSeen[arc.Hash()]; ok && prev.pair != pk {
					thisChord := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(a, b).C)}
					prevChord := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(prev.pair.A, prev.pair.B).C)}
					if e.addCore.AddConstraint(thisChord.Sub(prevChord).C) {
						changed = true
					}
				} else if !ok {
					arcSeen[arc.Hash()] = bridgeEntry{pair: pk}
				}
			}
		}
	}
	return changed
}

func orientationSign(o, a, b *geodb.Point) int {
	return signOf(cross(a.Pos.X-o.Pos.X, a.Pos.Y-o.Pos.Y, b.Pos.X-o.Pos.X, b.Pos.Y-o.Pos.Y))
}

func cross(ax, ay, bx, by float64) float64 { return ax*by - ay*bx }

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
