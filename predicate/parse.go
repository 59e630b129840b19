// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package predicate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/geoddar/ddar/geodb"
)

// Parse reads a single predicate textual form ("coll A B C",
// "aconst A B C D 90", "rconst A B C D 2/3") and resolves its point
// tokens against points, a table of already-declared points keyed by
// name.
//
// A token is a point reference if it is not parseable as a signed
// integer or a signed-integer-over-positive-integer fraction; every
// other token is a numeric constant. Wherever a constant slot denotes
// an angle (aconst, s_angle, the trailing constant of angeq), the
// stored *big.Rat is the angle in degrees exactly as written, including
// fractional degrees written as p/q — translation divides by 180 to
// reach the engine's half-turn units. A plain ratio slot (rconst) uses
// the same *big.Rat unscaled.
func Parse(line string, points map[string]*geodb.Point) (Predicate, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Predicate{}, fmt.Errorf("predicate: empty line")
	}
	p := Predicate{Name: fields[0]}
	for _, tok := range fields[1:] {
		if r, ok := parseConst(tok); ok {
			p.Consts = append(p.Consts, r)
			continue
		}
		pt, ok := points[tok]
		if !ok {
			return Predicate{}, fmt.Errorf("predicate: unknown point %q in %q", tok, line)
		}
		p.Points = append(p.Points, pt)
	}
	return p, nil
}

// parseConst recognizes a signed integer or a signed-integer-over-
// positive-integer fraction. Anything else (starts with a letter, or
// contains no parseable slash form) is left for the point table.
func parseConst(tok string) (*big.Rat, bool) {
	if tok == "" {
		return nil, false
	}
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, okN := new(big.Int).SetString(num, 10)
		d, okD := new(big.Int).SetString(den, 10)
		if !okN || !okD || d.Sign() <= 0 {
			return nil, false
		}
		return new(big.Rat).SetFrac(n, d), true
	}
	n, ok := new(big.Int).SetString(tok, 10)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetInt(n), true
}
