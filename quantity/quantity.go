// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package quantity implements the three typed facades over ratcomb.Comb
// described in spec.md section 3: DistMul (multiplicative distance, a log
// scale), DistAdd (additive distance), and Angle (directed angle modulo
// one half-turn). Each wraps a single ratcomb.Comb and interprets it
// differently: DistMul is 1 at identity, DistAdd and Angle are 0.
//
// All three defer their actual arithmetic to ratcomb.Comb.AddScaled; the
// work here is normalization and the semantic difference between "known
// equal to identity" for a multiplicative quantity (empty combination, =
// 1) versus an additive one (empty combination, = 0).
package quantity

import (
	"math/big"

	"github.com/geoddar/ddar/ratcomb"
)

// DistMul represents a multiplicative distance, interpreted as log of a
// ratio of segment lengths. It equals 1 (the multiplicative identity)
// iff its combination is empty.
type DistMul struct{ C ratcomb.Comb }

// NewDistMulVar wraps a single singleton-combination LHS variable, the
// shape every pair_to_dist_mul entry takes at construction.
func NewDistMulVar(v *ratcomb.Var) DistMul {
	c := ratcomb.New()
	c.Set(v, big.NewRat(1, 1))
	return DistMul{C: c}
}

// Identity returns the multiplicative identity (segment length ratio 1).
func Identity() DistMul { return DistMul{C: ratcomb.New()} }

// Mul returns a*b, i.e. the log-space sum of the two combinations.
func (a DistMul) Mul(b DistMul) DistMul {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(1, 1), b.C)
	return DistMul{C: out}
}

// Div returns a/b, the log-space difference.
func (a DistMul) Div(b DistMul) DistMul {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(-1, 1), b.C)
	return DistMul{C: out}
}

// ScaleByRational returns a * r, translating the rational scalar r into
// a combination of DistMulConst atoms via prime factorization first.
func (a DistMul) ScaleByRational(r *big.Rat) DistMul {
	out := a.C.Clone()
	out.AddScaled(big.NewRat(1, 1), ratcomb.FromRational(r))
	return DistMul{C: out}
}

// IsIdentity reports whether a is known equal to 1 (spec.md invariant I2).
func (a DistMul) IsIdentity() bool { return a.C.IsZero() }

// Pow returns a raised to the rational exponent k, i.e. the log-space
// scalar multiple k*a. Used by distmeq's Σ cᵢ·log|pᵢqᵢ| translation,
// where each term's exponent is a caller-supplied rational, not
// necessarily an integer.
func (a DistMul) Pow(k *big.Rat) DistMul {
	out := a.C.Clone()
	out.Scale(k)
	return DistMul{C: out}
}

// Normalize separates the integer-exponent DistMulConst part (returned as
// a positive rational coefficient) from the remainder: every
// KindDistMulConst atom's coefficient must be an integer for this to be
// meaningful, which holds by construction since FromRational only ever
// emits integer exponents and LHS arithmetic never introduces fractional
// DistMulConst coefficients.
func (a DistMul) Normalize() (coef *big.Rat, rest DistMul) {
	coef = big.NewRat(1, 1)
	rest = DistMul{C: ratcomb.New()}
	for _, v := range a.C.Vars() {
		k := a.C.Get(v)
		if v.Kind == ratcomb.KindDistMulConst {
			// k is an integer exponent of prime v.Prime.
			num := k.Num().Int64()
			den := k.Denom().Int64() // always 1 by construction
			exp := num / den
			p := new(big.Int).Exp(big.NewInt(v.Prime), big.NewInt(absInt64(exp)), nil)
			factor := new(big.Rat).SetInt(p)
			if exp < 0 {
				factor.Inv(factor)
			}
			coef.Mul(coef, factor)
			continue
		}
		rest.C.Set(v, k)
	}
	return coef, rest
}

// Equal reports structural equality of the underlying combinations.
func (a DistMul) Equal(b DistMul) bool { return a.C.Equal(b.C) }

// Hash returns a's canonical dictionary key.
func (a DistMul) Hash() string { return a.C.Hash() }

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
