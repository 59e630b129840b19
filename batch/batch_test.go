// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoddar/ddar/ddar"
	"github.com/geoddar/ddar/problem"
)

func TestRunSolvesEachProblemIndependently(t *testing.T) {
	isosceles, err := problem.Parse(
		"A@200_50 B@100_200 C@300_200 M@200_200 = cong A B A C, coll B M C, cong B M M C ? eqangle A B B C B C A C")
	require.NoError(t, err)

	overlap, err := problem.Parse("A@0_0 B@1_0 B2@1_0 = overlap B B2 ? coll A B B2")
	require.NoError(t, err)

	outcomes, err := Run(context.Background(), []*problem.Problem{isosceles, overlap})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	require.NoError(t, outcomes[0].Err)
	require.NotNil(t, outcomes[0].Goal)
	assert.Equal(t, ddar.KindBool, outcomes[0].Goal.Kind)
	assert.True(t, outcomes[0].Goal.Bool)

	require.NoError(t, outcomes[1].Err)
	require.NotNil(t, outcomes[1].Goal)
	assert.True(t, outcomes[1].Goal.Bool)
}

func TestRunReportsPerProblemError(t *testing.T) {
	bad, err := problem.Parse("A@0_0 B@1_0 C@2_0 = cong A B A C")
	require.NoError(t, err)

	outcomes, err := Run(context.Background(), []*problem.Problem{bad})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Error(t, outcomes[0].Err)
}
