// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package batch drives many independent engines concurrently, exploiting
// spec.md section 5's explicit sanction that two engine instances share
// no mutable state and may run on separate threads.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/geoddar/ddar/ddar"
	"github.com/geoddar/ddar/problem"
)

// Outcome is one problem's result: its engine (still live, so the
// caller may issue further CheckPred queries), the goal's result if
// the problem declared one, and any error encountered forcing its
// givens or running closure.
type Outcome struct {
	Engine *ddar.Engine
	Goal   *ddar.Result
	Err    error
}

// Run fans out one *ddar.Engine per problem, forces every given
// predicate, runs DeductionClosure, and checks the goal predicate if
// one is present, via golang.org/x/sync/errgroup so a single problem's
// error does not stop the others from completing. The returned slice
// is always the same length as problems, in the same order; Run itself
// returns a non-nil error only if ctx is cancelled.
func Run(ctx context.Context, problems []*problem.Problem) ([]Outcome, error) {
	outcomes := make([]Outcome, len(problems))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range problems {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = solve(gctx, p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}

func solve(ctx context.Context, p *problem.Problem) Outcome {
	e := ddar.New(p.Points)
	for _, given := range p.Givens {
		if err := e.ForcePred(given); err != nil {
			return Outcome{Engine: e, Err: err}
		}
	}
	if err := e.DeductionClosure(ctx, false, false); err != nil {
		return Outcome{Engine: e, Err: err}
	}
	if p.Goal == nil {
		return Outcome{Engine: e}
	}
	result, err := e.CheckPred(*p.Goal)
	if err != nil {
		return Outcome{Engine: e, Err: err}
	}
	return Outcome{Engine: e, Goal: &result}
}
