// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/predicate"
)

func pt(name string, x, y float64) *geodb.Point {
	return geodb.NewPoint(name, numeric.Vec2{X: x, Y: y})
}

func force(t *testing.T, e *Engine, name string, consts []*big.Rat, pts ...*geodb.Point) {
	t.Helper()
	require.NoError(t, e.ForcePred(predicate.Predicate{Name: name, Points: pts, Consts: consts}))
}

func check(t *testing.T, e *Engine, name string, pts ...*geodb.Point) Result {
	t.Helper()
	r, err := e.CheckPred(predicate.Predicate{Name: name, Points: pts})
	require.NoError(t, err)
	return r
}

// S1 — Isosceles base angles.
func TestScenarioIsoscelesBaseAngles(t *testing.T) {
	a := pt("A", 200, 50)
	b := pt("B", 100, 200)
	c := pt("C", 300, 200)
	m := pt("M", 200, 200)
	e := New([]*geodb.Point{a, b, c, m})

	force(t, e, predicate.Cong, nil, a, b, a, c)
	force(t, e, predicate.Coll, nil, b, m, c)
	force(t, e, predicate.Cong, nil, b, m, m, c)

	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	// Base angles at B and C are negatives of each other under this
	// engine's "line-direction difference" angle convention (swapping
	// which vertex anchors the subtraction flips sign), so the isosceles
	// base-angle identity is ang(A,B,B,C) + ang(A,C,B,C) = 0, phrased
	// below as the eqangle form ang(A,B,B,C) = ang(B,C,A,C).
	got := check(t, e, predicate.EqAngle, a, b, b, c, b, c, a, c)
	assert.True(t, got.Bool)
}

// S2 — Parallelism from two perpendicularity facts against a common
// transversal (spec.md S2's "parallelism from equal alternate angles",
// realized via perp since this engine's directed angle is a line angle
// mod a half-turn: "both perpendicular to EF" and "alternate angles
// across EF equal" are the same fact up to sign).
func TestScenarioParallelFromSharedPerpendicular(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 10, 0)
	c := pt("C", 2, 5)
	d := pt("D", 12, 5)
	ep := pt("E", 5, -3)
	f := pt("F", 5, 7)
	e := New([]*geodb.Point{a, b, c, d, ep, f})

	force(t, e, predicate.Perp, nil, a, b, ep, f)
	force(t, e, predicate.Perp, nil, c, d, ep, f)

	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	got := check(t, e, predicate.Para, a, b, c, d)
	assert.True(t, got.Bool)
}

// S3 — Inscribed-angle theorem. Five points on the unit circle so that
// forceConcyclic's defining triple leaves at least two non-defining
// members to equate (the installed equality compares their views of
// the same chord).
func TestScenarioInscribedAngle(t *testing.T) {
	a := pt("A", 0, 1)
	b := pt("B", 1, 0)
	c := pt("C", 0, -1)
	d := pt("D", -1, 0)
	ep := pt("E", math.Cos(math.Pi/3), math.Sin(math.Pi/3))
	o := pt("O", 0, 0)
	e := New([]*geodb.Point{a, b, c, d, ep, o})

	force(t, e, predicate.Cyclic, nil, a, b, c, d, ep)
	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	got := check(t, e, predicate.EqAngle, d, a, d, b, ep, a, ep, b)
	assert.True(t, got.Bool)

	notYetKnown := check(t, e, predicate.Cong, o, a, o, b)
	assert.False(t, notYetKnown.Bool)

	force(t, e, predicate.CyclicWithCenters, []*big.Rat{big.NewRat(1, 1)}, o, a, b, c, d, ep)
	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	known := check(t, e, predicate.Cong, o, a, o, b)
	assert.True(t, known.Bool)
}

// S4 — Overlap merging.
func TestScenarioOverlapMerging(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 1, 0)
	b2 := pt("B2", 1, 0)
	e := New([]*geodb.Point{a, b, b2})

	force(t, e, predicate.Overlap, nil, b, b2)
	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	assert.True(t, check(t, e, predicate.Cong, a, b, a, b2).Bool)
	assert.True(t, check(t, e, predicate.Coll, a, b, b2).Bool)
}

// S5 — Arithmetic angle constant.
func TestScenarioArithmeticAngleConstant(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 1, 0)
	c := pt("C", 5, 5)
	// CD is turned -30 degrees from AB, so dir(AB) - dir(CD) is 1/6 of a
	// half-turn, the directed angle aconst and acompute measure.
	rad := -math.Pi / 6
	d := pt("D", c.Pos.X+math.Cos(rad), c.Pos.Y+math.Sin(rad))
	e := New([]*geodb.Point{a, b, c, d})

	thirty := big.NewRat(30, 1)
	force(t, e, predicate.AConst, []*big.Rat{thirty}, a, b, c, d)

	r1, err := e.CheckPred(predicate.Predicate{
		Name:   predicate.AConst,
		Points: []*geodb.Point{a, b, c, d},
		Consts: []*big.Rat{thirty},
	})
	require.NoError(t, err)
	assert.True(t, r1.Bool)

	r2, err := e.CheckPred(predicate.Predicate{Name: predicate.ACompute, Points: []*geodb.Point{a, b, c, d}})
	require.NoError(t, err)
	require.Equal(t, KindRational, r2.Kind)
	assert.Equal(t, big.NewRat(1, 6), r2.Rational)
}

// S6 — Similar triangles transfer ratios.
func TestScenarioSimilarTrianglesTransferRatios(t *testing.T) {
	a := pt("a", 0, 0)
	b := pt("b", 4, 0)
	c := pt("c", 0, 3)
	x := pt("x", 0, 0)
	y := pt("y", 8, 0)
	z := pt("z", 0, 6)
	e := New([]*geodb.Point{a, b, c, x, y, z})

	force(t, e, predicate.EqAngle, nil, b, a, a, c, y, x, x, z)
	force(t, e, predicate.EqRatio, nil, a, b, a, c, x, y, x, z)

	require.NoError(t, e.DeductionClosure(context.Background(), false, false))

	got := check(t, e, predicate.EqRatio, b, c, a, b, y, z, x, y)
	assert.True(t, got.Bool)
}
