// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/quantity"
)

// oTriple is an ordered triple of distinct live points with nonzero
// orientation, the unit of work for rule G4.
type oTriple struct{ a, b, c *geodb.Point }

// searchSimilar installs rule G4: bucket every eligible triple under
// its SSS/AA/SAS/SSA keys and call forceSimilar on every collision.
func (e *Engine) searchSimilar() bool {
	pts := e.livePoints()
	buckets := make(map[string][]oTriple)
	sawSSA := make(map[[3]*geodb.Point]bool)
	changed := false

	for _, a := range pts {
		for _, b := range pts {
			if b == a {
				continue
			}
			for _, c := range pts {
				if c == a || c == b {
					continue
				}
				if numeric.Orientation(a.Pos, b.Pos, c.Pos) == 0 {
					continue
				}
				t := oTriple{a, b, c}
				if !e.triangleEncountered(t) {
					continue
				}
				for _, key := range e.triangleKeys(t, sawSSA) {
					for _, other := range buckets[key] {
						if trianglesOverlap(t, other) {
							continue
						}
						if e.forceSimilar(t, other) {
							changed = true
						}
					}
					buckets[key] = append(buckets[key], t)
				}
			}
		}
	}
	return changed
}

// triangleEncountered prunes the O(n^3) loop to triples whose direction
// or multiplicative-distance variable already occurs in some
// elimination core (spec.md section 4.G, G4).
func (e *Engine) triangleEncountered(t oTriple) bool {
	return e.dirCore.WasEncountered(e.dirOf(t.a, t.b).C) ||
		e.dirCore.WasEncountered(e.dirOf(t.a, t.c).C) ||
		e.mulCore.WasEncountered(e.distMulOf(t.a, t.b).C) ||
		e.mulCore.WasEncountered(e.distMulOf(t.a, t.c).C)
}

// triangleKeys returns the bucket keys for t per spec.md section 4.G's
// SSS/AA/SAS/SSA scheme.
func (e *Engine) triangleKeys(t oTriple, sawSSA map[[3]*geodb.Point]bool) []string {
	ratio1 := e.simplifiedMul(t.a, t.b, t.a, t.c)
	ratio2 := e.simplifiedMul(t.c, t.b, t.c, t.a)
	ang1 := e.simplifiedAngle(t.a, t.b, t.a, t.c)
	ang2 := e.simplifiedAngle(t.c, t.b, t.c, t.a)
	orient := numeric.Orientation(t.a.Pos, t.b.Pos, t.c.Pos)

	keys := []string{
		"SSS|" + ratio1.Hash() + "|" + ratio2.Hash(),
		"AA|" + ang1.Hash() + "|" + ang2.Hash(),
		"AA|" + ang1.Neg().Hash() + "|" + ang2.Neg().Hash(),
		"SAS|" + ang1.Hash() + "|" + ratio1.Hash() + "|" + orientKey(orient),
		"SAS|" + ang1.Neg().Hash() + "|" + ratio1.Hash() + "|" + orientKey(-orient),
	}

	longerSide := numeric.Distance(t.c.Pos, t.b.Pos) > numeric.Distance(t.c.Pos, t.a.Pos)
	if longerSide && !sawSSA[[3]*geodb.Point{t.a, t.b, t.c}] {
		sawSSA[[3]*geodb.Point{t.a, t.b, t.c}] = true
		keys = append(keys,
			"SSA|"+ang1.Hash()+"|"+ratio1.Hash()+"|"+orientKey(orient),
			"SSA|"+ang1.Neg().Hash()+"|"+ratio1.Hash()+"|"+orientKey(-orient),
		)
	}
	return keys
}

func orientKey(o int) string {
	if o > 0 {
		return "+"
	}
	return "-"
}

// forceSimilar installs the two angle and two ratio equalities implied
// by two similar triangles (spec.md section 4.G), recording all six
// symmetric markings in known_similar first so later passes skip the
// pair.
func (e *Engine) forceSimilar(t1, t2 oTriple) bool {
	key := similarKey(t1, t2)
	if _, ok := e.db.KnownSimilar[key]; ok {
		return false
	}
	for _, k := range similarityMarkings(t1, t2) {
		e.db.KnownSimilar[k] = struct{}{}
	}

	negate := numeric.Orientation(t1.a.Pos, t1.b.Pos, t1.c.Pos) * numeric.Orientation(t2.a.Pos, t2.b.Pos, t2.c.Pos) < 0
	changed := false

	angAt := func(p, q, r *geodb.Point) quantity.Angle { return e.dirOf(p, q).Sub(e.dirOf(p, r)) }

	ang1a := angAt(t1.a, t1.b, t1.c)
	ang1b := quantity.ZeroAngle().Sub(e.dirOf(t1.b, t1.a)).Add(e.dirOf(t1.b, t1.c))
	ang2a := angAt(t2.a, t2.b, t2.c)
	ang2b := quantity.ZeroAngle().Sub(e.dirOf(t2.b, t2.a)).Add(e.dirOf(t2.b, t2.c))
	if negate {
		ang2a, ang2b = ang2a.Neg(), ang2b.Neg()
	}
	if e.dirCore.AddConstraint(ang1a.Sub(ang2a).C) {
		changed = true
	}
	if e.dirCore.AddConstraint(ang1b.Sub(ang2b).C) {
		changed = true
	}

	ratio1a := e.distMulOf(t1.a, t1.b).Div(e.distMulOf(t1.a, t1.c))
	ratio1b := e.distMulOf(t2.a, t2.b).Div(e.distMulOf(t2.a, t2.c))
	ratio2a := e.distMulOf(t1.b, t1.a).Div(e.distMulOf(t1.b, t1.c))
	ratio2b := e.distMulOf(t2.b, t2.a).Div(e.distMulOf(t2.b, t2.c))
	if e.mulCore.AddConstraint(ratio1a.Div(ratio1b).C) {
		changed = true
	}
	if e.mulCore.AddConstraint(ratio2a.Div(ratio2b).C) {
		changed = true
	}
	return changed
}

func (e *Engine) simplifiedMul(a, b, c, d *geodb.Point) quantity.DistMul {
	q := e.distMulOf(a, b).Div(e.distMulOf(c, d))
	return quantity.DistMul{C: e.mulCore.Simplify(q.C)}
}

func (e *Engine) simplifiedAngle(a, b, c, d *geodb.Point) quantity.Angle {
	q := e.dirOf(a, b).Sub(e.dirOf(c, d))
	return quantity.Angle{C: e.dirCore.Simplify(q.C)}
}

func (e *Engine) simplifiedAdd(a, b *geodb.Point) quantity.DistAdd {
	q := e.distAddOf(a, b)
	return quantity.DistAdd{C: e.addCore.Simplify(q.C)}
}

func trianglesOverlap(t1, t2 oTriple) bool {
	return t1.a == t2.a && t1.b == t2.b && t1.c == t2.c
}

func similarKey(t1, t2 oTriple) string {
	return idKey(t1.a) + idKey(t1.b) + idKey(t1.c) + "~" + idKey(t2.a) + idKey(t2.b) + idKey(t2.c)
}

func idKey(p *geodb.Point) string {
	return p.Name + "#"
}

// similarityMarkings returns all six rotation/reflection markings of
// the similarity (t1 ~ t2): three rotations for each of the direct and
// reflected correspondence.
func similarityMarkings(t1, t2 oTriple) []string {
	rot := func(t oTriple) [3]oTriple {
		return [3]oTriple{t, {t.b, t.c, t.a}, {t.c, t.a, t.b}}
	}
	refl := func(t oTriple) oTriple { return oTriple{t.a, t.c, t.b} }

	r1, r2 := rot(t1), rot(t2)
	rr1, rr2 := rot(refl(t1)), rot(refl(t2))

	var out []string
	for i := 0; i < 3; i++ {
		out = append(out, similarKey(r1[i], r2[i]), similarKey(rr1[i], rr2[i]))
	}
	return out
}
