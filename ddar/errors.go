// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ddar

import "errors"

// Error kinds from spec.md section 7. ForcePred wraps these with
// fmt.Errorf("%w: detail") rather than panicking: library code never
// panics on caller-supplied bad input.
var (
	ErrNumericInconsistency   = errors.New("ddar: forced constraint is not numerically identity")
	ErrGeometricInconsistency = errors.New("ddar: points not numerically collinear/concyclic")
	ErrDegenerateInput        = errors.New("ddar: too few distinct points")
	ErrUnknownPredicate       = errors.New("ddar: unrecognized predicate name")
)
