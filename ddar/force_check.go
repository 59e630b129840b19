// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"fmt"
	"math"

	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/predicate"
	"github.com/geoddar/ddar/quantity"

	dlog "github.com/geoddar/ddar/internal/log"
)

// ForcePred installs p as an assumption. Structural predicates (coll,
// cyclic, cyclic_with_centers, overlap) drive the corresponding merge
// rule directly; every other predicate is translated to an equation and
// installed into the matching elimination core, after a numeric sanity
// check against the ground-truth point positions (spec.md section 7:
// a numerically false forced constraint is a caller bug).
func (e *Engine) ForcePred(p predicate.Predicate) error {
	p = p.Rewrite(e.db.Resolve)

	switch p.Name {
	case predicate.Coll:
		_, err := e.forceCollinear(p.Points)
		return err

	case predicate.Cyclic:
		_, err := e.forceConcyclic(p.Points, nil)
		return err

	case predicate.CyclicWithCenters:
		if len(p.Consts) != 1 {
			return fmt.Errorf("ddar: cyclic_with_centers: expected 1 constant")
		}
		k := int(p.Consts[0].Num().Int64())
		if k < 0 || k > len(p.Points) {
			return fmt.Errorf("ddar: cyclic_with_centers: k out of range")
		}
		_, err := e.forceConcyclic(p.Points[k:], p.Points[:k])
		return err

	case predicate.Overlap:
		if len(p.Points) != 2 {
			return fmt.Errorf("ddar: overlap: expected 2 points")
		}
		return e.forceEqualPoints(p.Points[0], p.Points[1])

	case predicate.ACompute:
		dlog.Logger().Warn().Str("predicate", p.Name).Msg("acompute forced: not applicable, ignoring")
		return nil
	}

	switch {
	case isAngleKind(p.Name):
		eq, err := e.translateAngle(p)
		if err != nil {
			return err
		}
		if math.Abs(numericAngle(eq.C)) > numeric.ATOM {
			return fmt.Errorf("%w: %s", ErrNumericInconsistency, p.Name)
		}
		e.dirCore.AddConstraint(eq.C)
		return nil

	case isDistMulKind(p.Name):
		eq, err := e.translateDistMul(p)
		if err != nil {
			return err
		}
		if math.Abs(numericDistMul(eq.C)) > numeric.ATOM {
			return fmt.Errorf("%w: %s", ErrNumericInconsistency, p.Name)
		}
		e.mulCore.AddConstraint(eq.C)
		return nil

	case isDistAddKind(p.Name):
		eq, err := e.translateDistAdd(p)
		if err != nil {
			return err
		}
		if math.Abs(numericDistAdd(eq.C)) > numeric.ATOM {
			return fmt.Errorf("%w: %s", ErrNumericInconsistency, p.Name)
		}
		e.addCore.AddConstraint(eq.C)
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownPredicate, p.Name)
}

// CheckPred queries whether p currently holds. acompute returns
// KindRational on success or KindUnknown if the angle is not yet
// determined; every other predicate returns KindBool.
func (e *Engine) CheckPred(p predicate.Predicate) (Result, error) {
	p = p.Rewrite(e.db.Resolve)

	switch p.Name {
	case predicate.Coll:
		return boolResult(e.checkCollinear(p.Points)), nil

	case predicate.Cyclic:
		return boolResult(e.checkConcyclic(p.Points)), nil

	case predicate.CyclicWithCenters:
		if len(p.Consts) != 1 {
			return Result{}, fmt.Errorf("ddar: cyclic_with_centers: expected 1 constant")
		}
		k := int(p.Consts[0].Num().Int64())
		if k < 0 || k > len(p.Points) {
			return Result{}, fmt.Errorf("ddar: cyclic_with_centers: k out of range")
		}
		return boolResult(e.checkConcyclic(p.Points[k:])), nil

	case predicate.Overlap:
		if len(p.Points) != 2 {
			return Result{}, fmt.Errorf("ddar: overlap: expected 2 points")
		}
		return boolResult(p.Points[0] == p.Points[1]), nil

	case predicate.ACompute:
		if len(p.Points) != 4 {
			return Result{}, fmt.Errorf("ddar: acompute: expected 4 points")
		}
		diff := e.dirOf(p.Points[0], p.Points[1]).Sub(e.dirOf(p.Points[2], p.Points[3]))
		// Simplify's substitution can leave the AngleUnit coefficient
		// outside [0,1); the no-op Add reduces it back (invariant I1).
		simplified := quantity.ZeroAngle().Add(quantity.Angle{C: e.dirCore.Simplify(diff.C)})
		r, ok := simplified.AsRational()
		if !ok {
			return unknownResult(), nil
		}
		return rationalResult(r), nil
	}

	switch {
	case isAngleKind(p.Name):
		eq, err := e.translateAngle(p)
		if err != nil {
			return Result{}, err
		}
		simplified := e.dirCore.Simplify(eq.C)
		return boolResult(len(simplified) == 0), nil

	case isDistMulKind(p.Name):
		eq, err := e.translateDistMul(p)
		if err != nil {
			return Result{}, err
		}
		simplified := e.mulCore.Simplify(eq.C)
		return boolResult(len(simplified) == 0), nil

	case isDistAddKind(p.Name):
		eq, err := e.translateDistAdd(p)
		if err != nil {
			return Result{}, err
		}
		simplified := e.addCore.Simplify(eq.C)
		return boolResult(len(simplified) == 0), nil
	}

	return Result{}, fmt.Errorf("%w: %s", ErrUnknownPredicate, p.Name)
}

func isAngleKind(name string) bool {
	switch name {
	case predicate.AngEq, predicate.EqAngle, predicate.Para, predicate.Perp, predicate.AConst, predicate.SAngle:
		return true
	}
	return false
}

func isDistMulKind(name string) bool {
	switch name {
	case predicate.Cong, predicate.RConst, predicate.EqRatio, predicate.DistMEq:
		return true
	}
	return false
}

func isDistAddKind(name string) bool {
	return name == predicate.DistSEq
}
