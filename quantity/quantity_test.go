// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package quantity

import (
	"math/big"
	"testing"

	"github.com/geoddar/ddar/ratcomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleReducesModOne(t *testing.T) {
	a := FromHalfTurns(big.NewRat(5, 2)) // 2.5 half-turns -> 0.5
	k, ok := a.AsRational()
	require.True(t, ok)
	assert.Equal(t, big.NewRat(1, 2), k)
}

func TestAngleNegationWraps(t *testing.T) {
	a := FromHalfTurns(big.NewRat(1, 3))
	neg := a.Neg()
	k, ok := neg.AsRational()
	require.True(t, ok)
	// -1/3 mod 1 == 2/3
	assert.Equal(t, big.NewRat(2, 3), k)
}

func TestAngleFromDegreeFraction(t *testing.T) {
	// np/m = 1*180/6 = 30 degrees = 1/6 half-turn.
	a := FromDegreeFraction(1, 6)
	k, ok := a.AsRational()
	require.True(t, ok)
	assert.Equal(t, big.NewRat(1, 6), k)
}

func TestAngleAsRationalFalseWhenVariableRemains(t *testing.T) {
	v := ratcomb.NewLHSVar(0.5, "dir(A,B)")
	a := NewAngleVar(v)
	_, ok := a.AsRational()
	assert.False(t, ok)
}

func TestDistMulNormalize(t *testing.T) {
	m := Identity().ScaleByRational(big.NewRat(12, 1))
	coef, rest := m.Normalize()
	assert.Equal(t, big.NewRat(12, 1), coef)
	assert.True(t, rest.IsIdentity())
}

func TestDistAddNormalize(t *testing.T) {
	v1 := ratcomb.NewLHSVar(2, "|A,B|")
	v2 := ratcomb.NewLHSVar(4, "|C,D|")
	a := NewDistAddVar(v1).Scale(big.NewRat(2, 1)).Add(NewDistAddVar(v2).Scale(big.NewRat(4, 1)))
	norm := a.Normalize()
	// min abs coefficient is 2, so dividing through gives coefficients {1, 2}.
	assert.Equal(t, big.NewRat(1, 1), norm.C.Get(v1))
	assert.Equal(t, big.NewRat(2, 1), norm.C.Get(v2))
}
