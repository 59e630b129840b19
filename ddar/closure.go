// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"context"
	"fmt"

	dlog "github.com/geoddar/ddar/internal/log"
)

// DeductionClosure runs the fixed-point inference loop: each outer
// iteration runs G4, G5, G6, G3, G7, G8 in that fixed order, refreshing
// the quantity caches after every rule that installed something, and
// stops when a full iteration installs nothing. The context is polled
// only between iterations, never inside a rule, so cancellation never
// observes a partially-applied iteration.
func (e *Engine) DeductionClosure(ctx context.Context, verbose, progress bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		anyChange := false
		for _, rule := range []struct {
			name string
			run  func() bool
		}{
			{"search_similar", e.searchSimilar},
			{"search_concyclic", e.searchConcyclic},
			{"search_circle_by_equidistance", e.searchCircleByEquidistance},
			{"merge_duplicate_points", e.mergeDuplicatePoints},
			{"bridge_add_mul", e.bridgeAddMul},
			{"bridge_arc_chord", e.bridgeArcChord},
		} {
			changed := rule.run()
			if changed {
				e.updateCache()
				anyChange = true
			}
			if verbose {
				dlog.Logger().Debug().Str("rule", rule.name).Bool("changed", changed).Msg("deduction_closure pass")
			}
		}

		if progress {
			fmt.Print(".")
		}
		if !anyChange {
			return nil
		}
	}
}

// mergeDuplicatePoints drives G3 from within the closure loop: any live
// pair whose simplified additive distance is known to be zero names the
// same point and is unified via force_equal_points.
func (e *Engine) mergeDuplicatePoints() bool {
	changed := false
	for {
		pts := e.livePoints()
		merged := false
		for i := 0; i < len(pts) && !merged; i++ {
			for j := i + 1; j < len(pts); j++ {
				a, b := pts[i], pts[j]
				d := e.simplifiedAdd(a, b)
				if !d.IsZero() {
					continue
				}
				if err := e.forceEqualPoints(a, b); err == nil {
					changed = true
					merged = true
					break
				}
			}
		}
		if !merged {
			return changed
		}
	}
}
