// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package quantity

import (
	"math/big"

	"github.com/geoddar/ddar/ratcomb"
)

// DistAdd represents an additive distance: the signed sum of segment
// lengths. It equals 0 iff its combination is empty.
type DistAdd struct{ C ratcomb.Comb }

// NewDistAddVar wraps a single singleton-combination LHS variable.
func NewDistAddVar(v *ratcomb.Var) DistAdd {
	c := ratcomb.New()
	c.Set(v, big.NewRat(1, 1))
	return DistAdd{C: c}
}

// ZeroDistAdd returns the additive identity.
func ZeroDistAdd() DistAdd { return DistAdd{C: ratcomb.New()} }

// Add returns a+b.
func (a DistAdd) Add(b DistAdd) DistAdd {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(1, 1), b.C)
	return DistAdd{C: out}
}

// Sub returns a-b.
func (a DistAdd) Sub(b DistAdd) DistAdd {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(-1, 1), b.C)
	return DistAdd{C: out}
}

// Scale returns k*a for a rational scalar k.
func (a DistAdd) Scale(k *big.Rat) DistAdd {
	out := a.C.Clone()
	out.Scale(k)
	return DistAdd{C: out}
}

// IsZero reports whether a is known equal to 0.
func (a DistAdd) IsZero() bool { return a.C.IsZero() }

// Normalize divides a by the minimum absolute LHS coefficient, so that
// two additive combinations differing only by an overall positive
// rational scale compare equal after normalization (spec.md section 3).
func (a DistAdd) Normalize() DistAdd {
	if a.C.IsZero() {
		return a
	}
	var minAbs *big.Rat
	for _, v := range a.C.Vars() {
		if v.Kind != ratcomb.KindLHS {
			continue
		}
		k := a.C.Get(v)
		abs := new(big.Rat).Abs(k)
		if minAbs == nil || abs.Cmp(minAbs) < 0 {
			minAbs = abs
		}
	}
	if minAbs == nil || minAbs.Sign() == 0 {
		return a
	}
	out := a.C.Clone()
	out.Scale(new(big.Rat).Inv(minAbs))
	return DistAdd{C: out}
}

// Equal reports structural equality of the underlying combinations.
func (a DistAdd) Equal(b DistAdd) bool { return a.C.Equal(b.C) }

// Hash returns a's canonical dictionary key.
func (a DistAdd) Hash() string { return a.C.Hash() }
