// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"fmt"
	"math"
	"math/big"

	"github.com/geoddar/ddar/predicate"
	"github.com/geoddar/ddar/quantity"
	"github.com/geoddar/ddar/ratcomb"
)

// translateAngle builds the Angle equation for every angle-shaped
// predicate in spec.md section 4.E's table (angeq, eqangle, para, perp,
// s_angle/aconst). It is known true exactly when the returned Angle
// simplifies to zero in dirCore.
func (e *Engine) translateAngle(p predicate.Predicate) (quantity.Angle, error) {
	switch p.Name {
	case predicate.AngEq:
		if len(p.Points)%2 != 0 || len(p.Consts) != len(p.Points)/2+1 {
			return quantity.Angle{}, fmt.Errorf("ddar: angeq: malformed argument count")
		}
		k := len(p.Points) / 2
		acc := quantity.ZeroAngle()
		for i := 0; i < k; i++ {
			term := e.dirOf(p.Points[2*i], p.Points[2*i+1])
			acc = acc.Add(angleScale(term, p.Consts[i]))
		}
		n := p.Consts[k]
		acc = acc.Add(quantity.FromHalfTurns(new(big.Rat).Quo(n, big.NewRat(180, 1))))
		return acc, nil

	case predicate.EqAngle:
		if len(p.Points) != 8 {
			return quantity.Angle{}, fmt.Errorf("ddar: eqangle: expected 8 points")
		}
		left := e.dirOf(p.Points[0], p.Points[1]).Sub(e.dirOf(p.Points[2], p.Points[3]))
		right := e.dirOf(p.Points[4], p.Points[5]).Sub(e.dirOf(p.Points[6], p.Points[7]))
		return left.Sub(right), nil

	case predicate.Para:
		if len(p.Points) != 4 {
			return quantity.Angle{}, fmt.Errorf("ddar: para: expected 4 points")
		}
		return e.dirOf(p.Points[0], p.Points[1]).Sub(e.dirOf(p.Points[2], p.Points[3])), nil

	case predicate.Perp:
		if len(p.Points) != 4 {
			return quantity.Angle{}, fmt.Errorf("ddar: perp: expected 4 points")
		}
		diff := e.dirOf(p.Points[0], p.Points[1]).Sub(e.dirOf(p.Points[2], p.Points[3]))
		return diff.Sub(quantity.FromHalfTurns(big.NewRat(1, 2))), nil

	case predicate.AConst, predicate.SAngle:
		if len(p.Points) != 4 || len(p.Consts) != 1 {
			return quantity.Angle{}, fmt.Errorf("ddar: %s: expected 4 points and 1 constant", p.Name)
		}
		diff := e.dirOf(p.Points[0], p.Points[1]).Sub(e.dirOf(p.Points[2], p.Points[3]))
		n := new(big.Rat).Quo(p.Consts[0], big.NewRat(180, 1))
		return diff.Sub(quantity.FromHalfTurns(n)), nil

	default:
		return quantity.Angle{}, fmt.Errorf("ddar: %w: %s", ErrUnknownPredicate, p.Name)
	}
}

// angleScale returns c*a. Angle exposes no public scale-by-rational
// method (only Add/Sub/Neg), so this scales the underlying combination
// directly and re-applies invariant I1 through a no-op Add, which is the
// only way outside package quantity to reach its normalization step.
func angleScale(a quantity.Angle, c *big.Rat) quantity.Angle {
	scaled := quantity.Angle{C: a.C.Clone()}
	scaled.C.Scale(c)
	return quantity.ZeroAngle().Add(scaled)
}

// translateDistMul builds the DistMul equation for cong, rconst,
// eqratio, and distmeq.
func (e *Engine) translateDistMul(p predicate.Predicate) (quantity.DistMul, error) {
	switch p.Name {
	case predicate.Cong:
		if len(p.Points) != 4 {
			return quantity.DistMul{}, fmt.Errorf("ddar: cong: expected 4 points")
		}
		return e.distMulOf(p.Points[0], p.Points[1]).Div(e.distMulOf(p.Points[2], p.Points[3])), nil

	case predicate.RConst:
		if len(p.Points) != 4 || len(p.Consts) != 1 {
			return quantity.DistMul{}, fmt.Errorf("ddar: rconst: expected 4 points and 1 constant")
		}
		ratio := e.distMulOf(p.Points[0], p.Points[1]).Div(e.distMulOf(p.Points[2], p.Points[3]))
		return ratio.ScaleByRational(new(big.Rat).Inv(p.Consts[0])), nil

	case predicate.EqRatio:
		if len(p.Points) != 8 {
			return quantity.DistMul{}, fmt.Errorf("ddar: eqratio: expected 8 points")
		}
		r1 := e.distMulOf(p.Points[0], p.Points[1]).Div(e.distMulOf(p.Points[2], p.Points[3]))
		r2 := e.distMulOf(p.Points[4], p.Points[5]).Div(e.distMulOf(p.Points[6], p.Points[7]))
		return r1.Div(r2), nil

	case predicate.DistMEq:
		if len(p.Points)%2 != 0 || len(p.Consts) != len(p.Points)/2+1 {
			return quantity.DistMul{}, fmt.Errorf("ddar: distmeq: malformed argument count")
		}
		k := len(p.Points) / 2
		acc := quantity.Identity()
		for i := 0; i < k; i++ {
			term := e.distMulOf(p.Points[2*i], p.Points[2*i+1]).Pow(p.Consts[i])
			acc = acc.Mul(term)
		}
		n := p.Consts[k]
		return acc.ScaleByRational(new(big.Rat).Inv(n)), nil

	default:
		return quantity.DistMul{}, fmt.Errorf("ddar: %w: %s", ErrUnknownPredicate, p.Name)
	}
}

// translateDistAdd builds the DistAdd equation for distseq.
func (e *Engine) translateDistAdd(p predicate.Predicate) (quantity.DistAdd, error) {
	if p.Name != predicate.DistSEq {
		return quantity.DistAdd{}, fmt.Errorf("ddar: %w: %s", ErrUnknownPredicate, p.Name)
	}
	if len(p.Points)%2 != 0 || len(p.Consts) != len(p.Points)/2 {
		return quantity.DistAdd{}, fmt.Errorf("ddar: distseq: malformed argument count")
	}
	k := len(p.Points) / 2
	acc := quantity.ZeroDistAdd()
	for i := 0; i < k; i++ {
		acc = acc.Add(e.distAddOf(p.Points[2*i], p.Points[2*i+1]).Scale(p.Consts[i]))
	}
	return acc, nil
}

// numericAngle evaluates an Angle combination against each variable's
// advisory numeric value (half-turn fraction), reduced into [-0.5,0.5]
// so the result is the signed numeric discrepancy from zero.
func numericAngle(c map[*ratcomb.Var]*big.Rat) float64 {
	sum := 0.0
	for v, k := range c {
		coef, _ := new(big.Float).SetRat(k).Float64()
		sum += coef * v.Value
	}
	sum = sum - math.Round(sum)
	return sum
}

// numericDistMul evaluates a DistMul combination numerically: LHS atoms
// carry log(distance) as their advisory value directly; DistMulConst(p)
// atoms carry the bare prime p, so their contribution is exponent *
// log(p).
func numericDistMul(c map[*ratcomb.Var]*big.Rat) float64 {
	sum := 0.0
	for v, k := range c {
		coef, _ := new(big.Float).SetRat(k).Float64()
		if v.Kind == ratcomb.KindDistMulConst {
			sum += coef * math.Log(v.Value)
			continue
		}
		sum += coef * v.Value
	}
	return sum
}

// numericDistAdd evaluates a DistAdd combination numerically: every atom
// is an LHS pair variable carrying plain distance as its advisory value.
func numericDistAdd(c map[*ratcomb.Var]*big.Rat) float64 {
	sum := 0.0
	for v, k := range c {
		coef, _ := new(big.Float).SetRat(k).Float64()
		sum += coef * v.Value
	}
	return sum
}
