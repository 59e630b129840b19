// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package elim

import (
	"math/big"
	"testing"

	"github.com/geoddar/ddar/ratcomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func one(v *ratcomb.Var) ratcomb.Comb {
	c := ratcomb.New()
	c.Set(v, big.NewRat(1, 1))
	return c
}

func TestAddConstraintBasicPivot(t *testing.T) {
	a := ratcomb.NewLHSVar(1, "a")
	b := ratcomb.NewLHSVar(2, "b")
	core := NewCore()

	// a - b == 0  =>  a == b
	eq := one(a)
	eq.AddScaled(big.NewRat(-1, 1), one(b))
	require.True(t, core.AddConstraint(eq))

	simplified := core.Simplify(one(a))
	assert.True(t, simplified.Equal(one(b)))
}

func TestAddConstraintRedundantReturnsFalse(t *testing.T) {
	a := ratcomb.NewLHSVar(1, "a")
	b := ratcomb.NewLHSVar(2, "b")
	core := NewCore()

	eq := one(a)
	eq.AddScaled(big.NewRat(-1, 1), one(b))
	require.True(t, core.AddConstraint(eq))

	// Same equation again: simplifies to zero, no LHS var remains.
	eq2 := one(a)
	eq2.AddScaled(big.NewRat(-1, 1), one(b))
	assert.False(t, core.AddConstraint(eq2))
}

func TestAddConstraintTransitiveChain(t *testing.T) {
	a := ratcomb.NewLHSVar(1, "a")
	b := ratcomb.NewLHSVar(2, "b")
	c := ratcomb.NewLHSVar(3, "c")
	core := NewCore()

	eqAB := one(a)
	eqAB.AddScaled(big.NewRat(-1, 1), one(b))
	require.True(t, core.AddConstraint(eqAB))

	eqBC := one(b)
	eqBC.AddScaled(big.NewRat(-1, 1), one(c))
	require.True(t, core.AddConstraint(eqBC))

	// a should now simplify to the same canonical form as c.
	simplifiedA := core.Simplify(one(a))
	simplifiedC := core.Simplify(one(c))
	assert.True(t, simplifiedA.Equal(simplifiedC))
}

func TestWasEncountered(t *testing.T) {
	a := ratcomb.NewLHSVar(1, "a")
	b := ratcomb.NewLHSVar(2, "b")
	core := NewCore()

	assert.False(t, core.WasEncountered(one(a)))

	eq := one(a)
	eq.AddScaled(big.NewRat(-1, 1), one(b))
	require.True(t, core.AddConstraint(eq))

	assert.True(t, core.WasEncountered(one(a)))
	assert.True(t, core.WasEncountered(one(b)))
}

func TestAddConstraintPicksLeastUsedPivot(t *testing.T) {
	a := ratcomb.NewLHSVar(1, "a")
	b := ratcomb.NewLHSVar(2, "b")
	c := ratcomb.NewLHSVar(3, "c")
	core := NewCore()

	// b used once already as a free variable.
	eq1 := one(a)
	eq1.AddScaled(big.NewRat(-1, 1), one(b))
	require.True(t, core.AddConstraint(eq1))

	// Now b+c==0: b already has usage 1 (from eq1's row a=b), c has 0.
	// c should be chosen as pivot, leaving b's row untouched structurally.
	eq2 := one(b)
	eq2.AddScaled(big.NewRat(1, 1), one(c))
	require.True(t, core.AddConstraint(eq2))

	_, cIsPivot := core.instantiated[c]
	assert.True(t, cIsPivot)
}
