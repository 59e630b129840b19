// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoddar/ddar/predicate"
)

func TestParseSingleGroupWithGoal(t *testing.T) {
	p, err := Parse("A@0_0 B@4_0 C@0_3 = cong A B A C ? cong A C B C")
	require.NoError(t, err)

	require.Len(t, p.Points, 3)
	assert.Equal(t, "A", p.Points[0].Name)
	assert.Equal(t, "B", p.Points[1].Name)
	assert.Equal(t, "C", p.Points[2].Name)

	require.Len(t, p.Givens, 1)
	assert.Equal(t, predicate.Cong, p.Givens[0].Name)

	require.NotNil(t, p.Goal)
	assert.Equal(t, predicate.Cong, p.Goal.Name)
}

func TestParseMultipleGroupsAndPredicates(t *testing.T) {
	p, err := Parse("A@0_0 B@1_0 = coll A B; M@0_2 = cong A M B M, perp A B A M")
	require.NoError(t, err)

	require.Len(t, p.Points, 3)
	require.Len(t, p.Givens, 3)
	assert.Equal(t, predicate.Coll, p.Givens[0].Name)
	assert.Equal(t, predicate.Cong, p.Givens[1].Name)
	assert.Equal(t, predicate.Perp, p.Givens[2].Name)
	assert.Nil(t, p.Goal)
}

func TestParseDuplicatePointErrors(t *testing.T) {
	_, err := Parse("A@0_0 = coll A A; A@1_1 = coll A A")
	assert.Error(t, err)
}

func TestParseUnknownPointInGoalErrors(t *testing.T) {
	_, err := Parse("A@0_0 B@1_0 = coll A B ? cong A B A Z")
	assert.Error(t, err)
}
