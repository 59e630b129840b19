// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package ratcomb

import (
	"math/big"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Comb is a sparse mapping from elimination variable to exact rational
// coefficient. Zero entries are never stored: every mutating method
// prunes coefficients that become zero, so structural equality (spec.md
// invariant I3) reduces to map equality on the surviving keys.
type Comb map[*Var]*big.Rat

// New returns an empty combination, equal to the additive/multiplicative
// identity depending on how the caller's quantity wrapper interprets it.
func New() Comb { return Comb{} }

// Clone returns a deep copy: mutating the result never affects c.
func (c Comb) Clone() Comb {
	out := make(Comb, len(c))
	for v, k := range c {
		out[v] = new(big.Rat).Set(k)
	}
	return out
}

// Get returns the coefficient of v, or zero if v does not occur.
func (c Comb) Get(v *Var) *big.Rat {
	if k, ok := c[v]; ok {
		return k
	}
	return new(big.Rat)
}

// Set assigns the coefficient of v, removing the entry entirely if k is
// zero so the sparse map never accumulates zero entries.
func (c Comb) Set(v *Var, k *big.Rat) {
	if k.Sign() == 0 {
		delete(c, v)
		return
	}
	c[v] = k
}

// AddScaled performs the in-place update c += k*other, the fundamental
// operation behind every quantity's arithmetic (DistMul multiplication is
// AddScaled(1, ...), division is AddScaled(-1, ...), and so on).
func (c Comb) AddScaled(k *big.Rat, other Comb) {
	if k.Sign() == 0 {
		return
	}
	for v, ok := range other {
		cur := new(big.Rat).Set(c.Get(v))
		cur.Add(cur, new(big.Rat).Mul(k, ok))
		c.Set(v, cur)
	}
}

// Scale multiplies every coefficient by k in place. Scaling by zero
// empties the combination.
func (c Comb) Scale(k *big.Rat) {
	if k.Sign() == 0 {
		for v := range c {
			delete(c, v)
		}
		return
	}
	for v, ok := range c {
		c.Set(v, new(big.Rat).Mul(ok, k))
	}
}

// IsZero reports whether the combination is empty, i.e. known equal to
// identity (spec.md invariant I2).
func (c Comb) IsZero() bool { return len(c) == 0 }

// Equal reports structural equality: same variables, same coefficients.
// Two combinations compare equal only if both are already in canonical
// (simplified) form — see elim.Core.Simplify.
func (c Comb) Equal(other Comb) bool {
	if len(c) != len(other) {
		return false
	}
	for v, k := range c {
		ok, present := other[v]
		if !present || k.Cmp(ok) != 0 {
			return false
		}
	}
	return true
}

// Vars returns the variables occurring in c, sorted by Var.ID for a
// deterministic, reproducible iteration order (spec.md property P2).
func (c Comb) Vars() []*Var {
	out := maps.Keys(c)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Hash returns a canonical string digest of c, suitable as a map key for
// dictionary-collision detection (rules G5, G7, G8). Two combinations
// that are Equal always produce the same Hash, and the converse holds
// for combinations already in canonical form.
func (c Comb) Hash() string {
	if len(c) == 0 {
		return "0"
	}
	vars := c.Vars()
	var b strings.Builder
	for i, v := range vars {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(c[v].RatString())
		b.WriteByte('*')
		b.WriteString(int64ToString(v.id))
	}
	return b.String()
}

func int64ToString(n int64) string {
	return big.NewInt(n).String()
}

// String renders c using each variable's Display name, for logging only.
func (c Comb) String() string {
	if len(c) == 0 {
		return "0"
	}
	vars := c.Vars()
	var b strings.Builder
	for i, v := range vars {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(c[v].RatString())
		b.WriteByte('*')
		b.WriteString(v.Display)
	}
	return b.String()
}
