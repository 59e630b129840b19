// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package elim implements the incremental Gaussian-elimination core
// described in spec.md section 4.C: a quotient of ratcomb.Comb values by
// a growing set of pivot rows, each expressing one LHS (pivot-eligible)
// variable in terms of the rest.
//
// One Core exists per quantity kind in a ddar.Engine (direction,
// multiplicative distance, additive distance); the three are otherwise
// identical machinery operating over disjoint variable sets.
package elim

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/geoddar/ddar/ratcomb"
)

// Core is an incremental Gaussian-elimination quotient. It is not safe
// for concurrent use; see spec.md section 5.
type Core struct {
	// instantiated maps a pivot variable to the combination that
	// expresses it in terms of other (non-pivot) variables. Invariant:
	// the pivot itself never occurs as a key in its own row.
	instantiated map[*ratcomb.Var]ratcomb.Comb

	// freeToUsage is the reverse index: for each variable currently
	// occurring as a free (non-pivot) term in some row, the set of
	// pivots whose row mentions it, represented as a bitset over dense
	// pivot indices rather than a map[*Var]map[*Var]struct{} so the
	// least-used-pivot heuristic in AddConstraint is a single
	// bitset.Count() rather than a map length probe.
	freeToUsage map[*ratcomb.Var]*bitset.BitSet

	pivotIdx map[*ratcomb.Var]uint
	idxToVar map[uint]*ratcomb.Var
	nextBit  uint
}

// NewCore returns an empty elimination core.
func NewCore() *Core {
	return &Core{
		instantiated: make(map[*ratcomb.Var]ratcomb.Comb),
		freeToUsage:  make(map[*ratcomb.Var]*bitset.BitSet),
		pivotIdx:     make(map[*ratcomb.Var]uint),
		idxToVar:     make(map[uint]*ratcomb.Var),
	}
}

// Simplify returns the canonical form of comb modulo the current
// quotient: every pivot variable occurring in the initial snapshot of
// comb's keys is replaced by its row. Substitution is single-pass —
// variables newly introduced by a substitution are not themselves
// re-simplified, matching spec.md section 4.C's "performed in a snapshot
// of the initial keys."
func (c *Core) Simplify(comb ratcomb.Comb) ratcomb.Comb {
	out := comb.Clone()
	initial := out.Vars()
	for _, v := range initial {
		row, ok := c.instantiated[v]
		if !ok {
			continue
		}
		coef := out.Get(v)
		if coef.Sign() == 0 {
			continue
		}
		out.Set(v, new(big.Rat))
		out.AddScaled(coef, row)
	}
	return out
}

// AddConstraint installs the equation eq == 0 into the quotient. It
// first simplifies eq; if no LHS variable remains, the equation is
// redundant (or, by the caller's precondition, inconsistent with an
// already-entailed identity) and AddConstraint returns false without
// mutating the core. Otherwise it picks the LHS variable with the
// smallest usage count as pivot, rewrites every existing row that
// mentions the new pivot, and returns true.
func (c *Core) AddConstraint(eq ratcomb.Comb) bool {
	eq = c.Simplify(eq)

	pivot, coef := c.choosePivot(eq)
	if pivot == nil {
		return false
	}

	row := eq.Clone()
	row.Set(pivot, new(big.Rat))
	inv := new(big.Rat).Inv(coef)
	inv.Neg(inv)
	row.Scale(inv)

	// Rewrite every existing pivot row that mentions the new pivot.
	if bs, ok := c.freeToUsage[pivot]; ok {
		affected := make([]uint, 0, bs.Count())
		for i, e := bs.NextSet(0); e; i, e = bs.NextSet(i + 1) {
			affected = append(affected, i)
		}
		for _, idx := range affected {
			p := c.idxToVar[idx]
			oldRow := c.instantiated[p]
			pc := oldRow.Get(pivot)
			if pc.Sign() == 0 {
				continue
			}
			c.unregisterRow(p, oldRow)
			newRow := oldRow.Clone()
			newRow.Set(pivot, new(big.Rat))
			newRow.AddScaled(pc, row)
			c.instantiated[p] = newRow
			c.registerRow(p, newRow)
		}
	}

	c.instantiated[pivot] = row
	c.registerRow(pivot, row)
	return true
}

// choosePivot selects the LHS variable occurring in eq with the fewest
// existing consumers, breaking ties by the lowest variable ID for
// determinism (spec.md property P2).
func (c *Core) choosePivot(eq ratcomb.Comb) (*ratcomb.Var, *big.Rat) {
	var best *ratcomb.Var
	bestUsage := -1
	for _, v := range eq.Vars() {
		if v.Kind != ratcomb.KindLHS {
			continue
		}
		usage := 0
		if bs, ok := c.freeToUsage[v]; ok {
			usage = int(bs.Count())
		}
		if best == nil || usage < bestUsage {
			best = v
			bestUsage = usage
		}
	}
	if best == nil {
		return nil, nil
	}
	return best, eq.Get(best)
}

// WasEncountered reports whether the variable carried by the given
// single-variable combination already occurs anywhere in the system, as
// either a pivot or a free variable. comb must carry exactly one
// variable; any other shape returns false.
func (c *Core) WasEncountered(comb ratcomb.Comb) bool {
	vars := comb.Vars()
	if len(vars) != 1 {
		return false
	}
	v := vars[0]
	if _, ok := c.instantiated[v]; ok {
		return true
	}
	if bs, ok := c.freeToUsage[v]; ok {
		return bs.Any()
	}
	return false
}

func (c *Core) bitIndex(v *ratcomb.Var) uint {
	if idx, ok := c.pivotIdx[v]; ok {
		return idx
	}
	idx := c.nextBit
	c.nextBit++
	c.pivotIdx[v] = idx
	c.idxToVar[idx] = v
	return idx
}

func (c *Core) registerRow(pivot *ratcomb.Var, row ratcomb.Comb) {
	idx := c.bitIndex(pivot)
	for _, w := range row.Vars() {
		bs, ok := c.freeToUsage[w]
		if !ok {
			bs = bitset.New(idx + 1)
			c.freeToUsage[w] = bs
		}
		bs.Set(idx)
	}
}

func (c *Core) unregisterRow(pivot *ratcomb.Var, row ratcomb.Comb) {
	idx, ok := c.pivotIdx[pivot]
	if !ok {
		return
	}
	for _, w := range row.Vars() {
		if bs, ok := c.freeToUsage[w]; ok {
			bs.Clear(idx)
			if bs.None() {
				delete(c.freeToUsage, w)
			}
		}
	}
}
