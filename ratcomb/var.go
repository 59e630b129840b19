// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package ratcomb implements exact-rational sparse linear combinations
// over elimination variables. A Comb is the common currency of the three
// Gaussian-elimination subsystems (package elim) and the three quantity
// facades (package quantity): multiplicative distance, additive distance,
// and directed angle are each "a Comb interpreted a certain way."
//
// Coefficients are *big.Rat throughout: every equality decided on a Comb
// is exact, never floating point. The numeric Value cached on a Var is
// advisory only (used by rule-gating tolerance checks in package ddar)
// and must never participate in Comb equality or hashing.
package ratcomb

import "sync/atomic"

// Kind tags an elimination variable as described in spec.md section 3:
// LHS variables are pivot-eligible, RHS variables never are.
type Kind int

const (
	// KindLHS marks a variable eligible to become a pivot: every unknown
	// geometric quantity introduced by the engine (a direction, a
	// multiplicative or additive distance) is LHS.
	KindLHS Kind = iota
	// KindAngleUnit marks the single RHS variable with value 1
	// representing pi; it is never pivoted.
	KindAngleUnit
	// KindDistMulConst marks an RHS variable representing log(p) for a
	// prime p; one such variable exists per prime, interned process-wide.
	KindDistMulConst
)

// Var is a tagged elimination atom with an associated numeric value and
// display name. Var identity is the pointer: two Vars are "the same
// variable" iff they are the same *Var, never by comparing fields.
type Var struct {
	id      int64
	Kind    Kind
	Prime   int64 // meaningful only when Kind == KindDistMulConst
	Value   float64
	Display string
}

var nextVarID int64

// NewLHSVar allocates a fresh pivot-eligible variable. value is the
// advisory numeric value used only by rule-gating tolerance checks;
// display is a human-readable name used only for logging.
func NewLHSVar(value float64, display string) *Var {
	return &Var{
		id:      atomic.AddInt64(&nextVarID, 1),
		Kind:    KindLHS,
		Value:   value,
		Display: display,
	}
}

// ID returns a process-unique, monotonically increasing identifier
// assigned at construction. It exists solely to give Comb a stable,
// deterministic iteration order (spec.md property P2): Go map iteration
// order is randomized, so canonical output needs a sort key independent
// of any map's internal bucket layout.
func (v *Var) ID() int64 { return v.id }

var angleUnitVar = &Var{id: 0, Kind: KindAngleUnit, Value: 1, Display: "pi"}

// AngleUnit returns the single process-wide RHS variable representing
// pi. It is a singleton: every Angle in every Engine in the process
// shares this pointer, which is what lets two Angles from different
// calls collide structurally when their AngleUnit coefficients match.
func AngleUnit() *Var { return angleUnitVar }
