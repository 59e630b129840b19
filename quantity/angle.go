// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package quantity

import (
	"math/big"

	"github.com/geoddar/ddar/ratcomb"
)

// Angle represents a directed angle modulo one half-turn, expressed in
// units of pi. It equals 0 (the zero directed angle) iff its combination
// is empty. Every Angle carries invariant I1 from spec.md section 3: its
// AngleUnit coefficient always lies in [0,1).
type Angle struct{ C ratcomb.Comb }

// NewAngleVar wraps a single direction LHS variable (e.g. the main-pair
// direction of a formal line).
func NewAngleVar(v *ratcomb.Var) Angle {
	c := ratcomb.New()
	c.Set(v, big.NewRat(1, 1))
	return Angle{C: c}
}

// ZeroAngle returns the zero directed angle.
func ZeroAngle() Angle { return Angle{C: ratcomb.New()} }

// FromHalfTurns returns the constant angle r (in units of pi; a half
// turn is 1), already reduced to invariant I1.
func FromHalfTurns(r *big.Rat) Angle {
	c := ratcomb.New()
	c.Set(ratcomb.AngleUnit(), r)
	return normalize(Angle{C: c})
}

// FromDegreeFraction returns the constant angle n*180/m degrees,
// matching spec.md section 6's "np/m" token grammar: n*180/m degrees is
// n/m half-turns.
func FromDegreeFraction(n, m int64) Angle {
	return FromHalfTurns(big.NewRat(n, m))
}

// Add returns a+b, reduced to invariant I1.
func (a Angle) Add(b Angle) Angle {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(1, 1), b.C)
	return normalize(Angle{C: out})
}

// Sub returns a-b, reduced to invariant I1.
func (a Angle) Sub(b Angle) Angle {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(-1, 1), b.C)
	return normalize(Angle{C: out})
}

// Neg returns -a, reduced to invariant I1.
func (a Angle) Neg() Angle {
	out := a.C.Clone()
	out.Scale(big.NewRat(-1, 1))
	return normalize(Angle{C: out})
}

// IsZero reports whether a is known equal to the zero directed angle
// (spec.md invariant I2).
func (a Angle) IsZero() bool { return a.C.IsZero() }

// AsRational returns the rational coefficient on the AngleUnit atom iff
// that atom is the only one remaining in a's combination — the
// acompute query's success case (spec.md section 4.G).
func (a Angle) AsRational() (*big.Rat, bool) {
	vars := a.C.Vars()
	if len(vars) == 0 {
		return big.NewRat(0, 1), true
	}
	if len(vars) == 1 && vars[0].Kind == ratcomb.KindAngleUnit {
		return a.C.Get(vars[0]), true
	}
	return nil, false
}

// Equal reports structural equality of the underlying combinations.
func (a Angle) Equal(b Angle) bool { return a.C.Equal(b.C) }

// Hash returns a's canonical dictionary key.
func (a Angle) Hash() string { return a.C.Hash() }

// normalize reduces the AngleUnit coefficient into [0,1), enforcing
// invariant I1. Reducing modulo 1 (a full half-turn) is exact because
// distinct half-turn multiples of pi are the same directed angle.
func normalize(a Angle) Angle {
	k := a.C.Get(ratcomb.AngleUnit())
	if k.Sign() == 0 {
		return a
	}
	frac := new(big.Rat).Sub(k, floor(k))
	out := a.C
	out.Set(ratcomb.AngleUnit(), frac)
	return Angle{C: out}
}

// floor returns the greatest rational integer <= r, via Euclidean
// division on r's numerator/denominator (big.Rat denominators are always
// positive, so Euclidean div/mod here coincides with floor div/mod).
func floor(r *big.Rat) *big.Rat {
	q, m := new(big.Int), new(big.Int)
	q.DivMod(r.Num(), r.Denom(), m)
	return new(big.Rat).SetInt(q)
}
