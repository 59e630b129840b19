// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import "math/big"

// ResultKind tags which of the three shapes a CheckPred outcome takes.
type ResultKind int

const (
	// KindBool covers every predicate except acompute.
	KindBool ResultKind = iota
	// KindRational is acompute's success case: the directed angle is
	// fully determined.
	KindRational
	// KindUnknown is acompute's failure case: the angle is not yet
	// determined by the current closure.
	KindUnknown
)

// Result is the sum type returned by CheckPred (spec.md section 4.G's
// check_pred: "bool | rational | unknown").
type Result struct {
	Kind     ResultKind
	Bool     bool
	Rational *big.Rat
}

func boolResult(b bool) Result { return Result{Kind: KindBool, Bool: b} }

func rationalResult(r *big.Rat) Result { return Result{Kind: KindRational, Rational: r} }

func unknownResult() Result { return Result{Kind: KindUnknown} }

// String renders the result for logging/CLI use.
func (r Result) String() string {
	switch r.Kind {
	case KindRational:
		return r.Rational.RatString()
	case KindUnknown:
		return "unknown"
	default:
		if r.Bool {
			return "true"
		}
		return "false"
	}
}
