// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package predicate

import (
	"math/big"
	"testing"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedPoints(names ...string) map[string]*geodb.Point {
	m := make(map[string]*geodb.Point, len(names))
	for _, n := range names {
		m[n] = geodb.NewPoint(n, numeric.Vec2{})
	}
	return m
}

func TestParseCollinear(t *testing.T) {
	pts := namedPoints("A", "B", "C")
	p, err := Parse("coll A B C", pts)
	require.NoError(t, err)
	assert.Equal(t, Coll, p.Name)
	assert.Equal(t, []*geodb.Point{pts["A"], pts["B"], pts["C"]}, p.Points)
	assert.Empty(t, p.Consts)
}

func TestParseAConstWithFractionDegrees(t *testing.T) {
	pts := namedPoints("A", "B", "C", "D")
	p, err := Parse("aconst A B C D 45/2", pts)
	require.NoError(t, err)
	require.Len(t, p.Consts, 1)
	assert.Equal(t, big.NewRat(45, 2), p.Consts[0])
}

func TestParseNegativeInteger(t *testing.T) {
	pts := namedPoints("A", "B")
	p, err := Parse("acompute A B -90", pts)
	require.NoError(t, err)
	require.Len(t, p.Consts, 1)
	assert.Equal(t, big.NewRat(-90, 1), p.Consts[0])
}

func TestParseUnknownPointErrors(t *testing.T) {
	pts := namedPoints("A", "B")
	_, err := Parse("coll A B Z", pts)
	assert.Error(t, err)
}

func TestRewriteFollowsSubstitution(t *testing.T) {
	pts := namedPoints("A", "B")
	p, err := Parse("coll A B A", pts)
	require.NoError(t, err)
	rewritten := p.Rewrite(func(pt *geodb.Point) *geodb.Point {
		if pt == pts["B"] {
			return pts["A"]
		}
		return pt
	})
	assert.Equal(t, []*geodb.Point{pts["A"], pts["A"], pts["A"]}, rewritten.Points)
}
