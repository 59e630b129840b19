// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package geodb

import "github.com/geoddar/ddar/numeric"

// Circle is an immutable formal circle: three defining points, the list
// of points known concyclic, the (possibly empty) list of points known
// to be centers, and the numeric circle used as the geometric oracle.
type Circle struct {
	Defining [3]*Point
	Points   []*Point
	Centers  []*Point
	Num      numeric.Circle
}

// Has reports whether p is a known member of the circle.
func (c *Circle) Has(p *Point) bool {
	for _, q := range c.Points {
		if q == p {
			return true
		}
	}
	return false
}

// IsCenter reports whether p is a known center of the circle.
func (c *Circle) IsCenter(p *Point) bool {
	for _, q := range c.Centers {
		if q == p {
			return true
		}
	}
	return false
}

// WithoutPoint returns a new formal circle with p removed from both the
// member list and the center list. The defining points are copied
// unchanged, even when p is one of them; no caller re-derives them.
func (c *Circle) WithoutPoint(p *Point) *Circle {
	pts := make([]*Point, 0, len(c.Points))
	for _, q := range c.Points {
		if q != p {
			pts = append(pts, q)
		}
	}
	centers := make([]*Point, 0, len(c.Centers))
	for _, q := range c.Centers {
		if q != p {
			centers = append(centers, q)
		}
	}
	return &Circle{Defining: c.Defining, Points: pts, Centers: centers, Num: c.Num}
}
