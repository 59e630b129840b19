// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package sample serializes a solved problem to CBOR, the analog of
// dataset/exporter.py's dict-of-fields export (problem_svg, givens,
// goal, steps there; SVG rendering itself stays out of scope here).
package sample

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/geoddar/ddar/predicate"
	"github.com/geoddar/ddar/problem"
)

// Document is the exported shape of a solved problem: every declared
// point's name and coordinates, the given predicates, the optional
// goal, and whatever new predicates deduction closure entailed.
type Document struct {
	Points  []PointRecord     `cbor:"points"`
	Givens  []PredicateRecord `cbor:"givens"`
	Goal    *PredicateRecord  `cbor:"goal,omitempty"`
	Derived []PredicateRecord `cbor:"derived"`
}

// PointRecord is a point's CBOR-friendly projection: its name and
// floating-point coordinates, dropping the engine-internal identity.
type PointRecord struct {
	Name string  `cbor:"name"`
	X    float64 `cbor:"x"`
	Y    float64 `cbor:"y"`
}

// PredicateRecord is a predicate.Predicate's CBOR-friendly projection:
// point arguments reduced to names and constants reduced to numerator
// and denominator pairs, since *big.Rat has no native CBOR encoding.
type PredicateRecord struct {
	Name   string      `cbor:"name"`
	Points []string    `cbor:"points"`
	Consts []RatRecord `cbor:"consts,omitempty"`
}

// RatRecord is a *big.Rat's numerator/denominator pair.
type RatRecord struct {
	Num int64 `cbor:"num"`
	Den int64 `cbor:"den"`
}

// Export serializes problem's declared points and givens together with
// derived, the predicates a solver newly entailed beyond the problem's
// own givens, to CBOR.
func Export(p *problem.Problem, derived []predicate.Predicate) ([]byte, error) {
	doc := Document{
		Points:  make([]PointRecord, len(p.Points)),
		Givens:  make([]PredicateRecord, len(p.Givens)),
		Derived: make([]PredicateRecord, len(derived)),
	}
	for i, pt := range p.Points {
		doc.Points[i] = PointRecord{Name: pt.Name, X: pt.Pos.X, Y: pt.Pos.Y}
	}
	for i, g := range p.Givens {
		doc.Givens[i] = toRecord(g)
	}
	if p.Goal != nil {
		rec := toRecord(*p.Goal)
		doc.Goal = &rec
	}
	for i, d := range derived {
		doc.Derived[i] = toRecord(d)
	}
	return cbor.Marshal(doc)
}

func toRecord(p predicate.Predicate) PredicateRecord {
	rec := PredicateRecord{
		Name:   p.Name,
		Points: make([]string, len(p.Points)),
		Consts: make([]RatRecord, len(p.Consts)),
	}
	for i, pt := range p.Points {
		rec.Points[i] = pt.Name
	}
	for i, c := range p.Consts {
		rec.Consts[i] = RatRecord{Num: c.Num().Int64(), Den: c.Denom().Int64()}
	}
	return rec
}

// Rat reconstructs a *big.Rat from its exported numerator/denominator
// pair, the inverse of toRecord's Consts projection.
func (r RatRecord) Rat() *big.Rat {
	return big.NewRat(r.Num, r.Den)
}
