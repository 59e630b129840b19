// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ratcomb

import (
	"math/big"
	"sync"
)

// primeTable interns one *Var per prime, process-wide. spec.md section 9
// requires this table's lifecycle to be shared across every Engine in the
// process, since two engines may otherwise intern the same prime twice
// and fail to recognize equal rational constants as equal.
type primeTable struct {
	mu   sync.RWMutex
	vars map[int64]*Var
}

var globalPrimes = &primeTable{vars: make(map[int64]*Var)}

// distMulConst returns the interned RHS variable for log(p).
func distMulConst(p int64) *Var {
	globalPrimes.mu.RLock()
	v, ok := globalPrimes.vars[p]
	globalPrimes.mu.RUnlock()
	if ok {
		return v
	}

	globalPrimes.mu.Lock()
	defer globalPrimes.mu.Unlock()
	if v, ok := globalPrimes.vars[p]; ok {
		return v
	}
	v = &Var{
		id:      -p, // negative, process-wide stable, never collides with an LHS id (which starts at 1)
		Kind:    KindDistMulConst,
		Prime:   p,
		Value:   float64(p),
		Display: "log_" + big.NewInt(p).String(),
	}
	globalPrimes.vars[p] = v
	return v
}

// factorize returns the prime factorization of a positive integer n as a
// map from prime to exponent. n must be > 0.
func factorize(n int64) map[int64]int64 {
	factors := make(map[int64]int64)
	if n <= 1 {
		return factors
	}
	for p := int64(2); p*p <= n; p++ {
		for n%p == 0 {
			factors[p]++
			n /= p
		}
	}
	if n > 1 {
		factors[n]++
	}
	return factors
}

// FromRational translates a positive rational constant into a Comb over
// DistMulConst atoms, one per prime in the numerator (positive exponent)
// and denominator (negative exponent): r = p1^e1 * p2^e2 * ... becomes
// the combination sum(ei * log(pi)).
//
// r must be strictly positive; a non-positive r has no logarithm and is
// a caller bug.
func FromRational(r *big.Rat) Comb {
	c := New()
	if r.Sign() <= 0 {
		return c
	}
	num := factorize(r.Num().Int64())
	den := factorize(r.Denom().Int64())
	for p, e := range num {
		c.Set(distMulConst(p), big.NewRat(e, 1))
	}
	for p, e := range den {
		existing := c.Get(distMulConst(p))
		c.Set(distMulConst(p), new(big.Rat).Sub(existing, big.NewRat(e, 1)))
	}
	return c
}
