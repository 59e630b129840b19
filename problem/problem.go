// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package problem parses the problem textual form described in
// spec.md section 6: point declarations with coordinates, their given
// predicates, and an optional goal predicate, all resolved against a
// single point table ready to hand to ddar.New.
package problem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/numeric"
	"github.com/geoddar/ddar/predicate"
)

// Problem is the parsed form of "<point-decls> ? <goal>": the points in
// declaration order, every given predicate across every declaration
// group, and the goal predicate if one was written.
type Problem struct {
	Points []*geodb.Point
	Givens []predicate.Predicate
	Goal   *predicate.Predicate
}

// Parse reads a problem in the textual form of spec.md section 6:
// semicolon-separated groups "<points> = <preds>", each <points> a
// space-separated list of "name@x_y", each <preds> a comma-separated
// list of predicate textual forms, followed optionally by "? <goal>".
func Parse(s string) (*Problem, error) {
	body, goalStr, hasGoal := cutRune(s, '?')

	p := &Problem{}
	points := make(map[string]*geodb.Point)

	for _, group := range strings.Split(body, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		decl, predsStr, hasPreds := strings.Cut(group, "=")
		for _, tok := range strings.Fields(decl) {
			pt, err := parsePointDecl(tok)
			if err != nil {
				return nil, fmt.Errorf("problem: %w", err)
			}
			if _, dup := points[pt.Name]; dup {
				return nil, fmt.Errorf("problem: duplicate point %q", pt.Name)
			}
			points[pt.Name] = pt
			p.Points = append(p.Points, pt)
		}
		if !hasPreds {
			continue
		}
		for _, predStr := range strings.Split(predsStr, ",") {
			predStr = strings.TrimSpace(predStr)
			if predStr == "" {
				continue
			}
			pred, err := predicate.Parse(predStr, points)
			if err != nil {
				return nil, fmt.Errorf("problem: %w", err)
			}
			p.Givens = append(p.Givens, pred)
		}
	}

	if hasGoal {
		goalStr = strings.TrimSpace(goalStr)
		if goalStr != "" {
			goal, err := predicate.Parse(goalStr, points)
			if err != nil {
				return nil, fmt.Errorf("problem: goal: %w", err)
			}
			p.Goal = &goal
		}
	}

	return p, nil
}

// parsePointDecl reads one "name@x_y" token.
func parsePointDecl(tok string) (*geodb.Point, error) {
	name, coords, ok := strings.Cut(tok, "@")
	if !ok || name == "" {
		return nil, fmt.Errorf("malformed point declaration %q", tok)
	}
	xs, ys, ok := strings.Cut(coords, "_")
	if !ok {
		return nil, fmt.Errorf("malformed point coordinates %q", tok)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return nil, fmt.Errorf("bad x coordinate in %q: %w", tok, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return nil, fmt.Errorf("bad y coordinate in %q: %w", tok, err)
	}
	return geodb.NewPoint(name, numeric.Vec2{X: x, Y: y}), nil
}

func cutRune(s string, r rune) (before, after string, found bool) {
	i := strings.IndexRune(s, r)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
