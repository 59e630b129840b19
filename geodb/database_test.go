// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package geodb

import (
	"testing"

	"github.com/geoddar/ddar/numeric"
	"github.com/stretchr/testify/assert"
)

func TestPairKeyCanonical(t *testing.T) {
	a := NewPoint("A", numeric.Vec2{})
	b := NewPoint("B", numeric.Vec2{})
	assert.Equal(t, MakePairKey(a, b), MakePairKey(b, a))
}

func TestReplaceLinesRepointsPairs(t *testing.T) {
	a := NewPoint("A", numeric.Vec2{X: 0, Y: 0})
	b := NewPoint("B", numeric.Vec2{X: 1, Y: 0})
	c := NewPoint("C", numeric.Vec2{X: 2, Y: 0})
	db := NewDatabase()

	l1 := &Line{Points: []*Point{a, b}}
	db.AddLine(l1)
	assert.Equal(t, l1, db.PairToLine[MakePairKey(a, b)])

	l2 := &Line{Points: []*Point{a, b, c}}
	db.ReplaceLines([]*Line{l1}, l2)

	assert.Equal(t, l2, db.PairToLine[MakePairKey(a, b)])
	assert.Equal(t, l2, db.PairToLine[MakePairKey(b, c)])
	assert.Equal(t, l2, db.PairToLine[MakePairKey(a, c)])
	_, stillTracked := db.Lines[l1]
	assert.False(t, stillTracked)
}

func TestResolveFollowsChain(t *testing.T) {
	a := NewPoint("A", numeric.Vec2{})
	b := NewPoint("B", numeric.Vec2{})
	c := NewPoint("C", numeric.Vec2{})
	db := NewDatabase()
	db.PointSubst[b] = a
	db.PointSubst[c] = b
	assert.Equal(t, a, db.Resolve(c))
}

func TestVisitSet(t *testing.T) {
	a := NewPoint("A", numeric.Vec2{})
	b := NewPoint("B", numeric.Vec2{})
	db := NewDatabase()
	vs := db.NewVisitSet()
	assert.False(t, vs.Visit(a))
	assert.True(t, vs.Visit(a))
	assert.False(t, vs.Visit(b))
}
