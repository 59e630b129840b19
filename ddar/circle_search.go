// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import (
	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/quantity"
)

// searchCircleByEquidistance installs rule G6: for each point a, group
// the rest by simplified additive distance to a. A group of at least
// three numerically distinct points forces a formal circle centered at
// a (via G2); smaller groups are stashed in lastSmallCircles, which this
// pass clears first and which no other rule reads.
func (e *Engine) searchCircleByEquidistance() bool {
	pts := e.livePoints()
	changed := false
	e.lastSmallCircles = e.lastSmallCircles[:0]

	for _, a := range pts {
		buckets := make(map[string][]*geodb.Point)
		for _, x := range pts {
			if x == a {
				continue
			}
			d := quantity.DistAdd{C: e.addCore.Simplify(e.distAddOf(a, x).C)}
			buckets[d.Hash()] = append(buckets[d.Hash()], x)
		}
		for _, members := range buckets {
			if len(members) >= 3 {
				if ok, err := e.forceConcyclic(members, []*geodb.Point{a}); err == nil && ok {
					changed = true
				}
			} else if len(members) > 0 {
				e.lastSmallCircles = append(e.lastSmallCircles, smallCircleCandidate{center: a, members: members})
			}
		}
	}
	return changed
}
