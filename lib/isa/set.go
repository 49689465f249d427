// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package isa

import "math/bits"

// SetWords is the number of 32-bit words in a feature Set. The RISC-V
// feature universe tops out at ordinal 104, so four words (128 bits)
// cover it with room for future extensions.
const SetWords = 4

// Set is a fixed-width bitset over feature ordinals. The zero value is
// the empty set. Set is comparable: two sets are equal exactly when
// they contain the same bits.
type Set [SetWords]uint32

// NewSet returns a Set containing the given feature ordinals.
func NewSet(ordinals ...uint32) Set {
	var s Set
	for _, ordinal := range ordinals {
		s.Add(ordinal)
	}
	return s
}

// Test reports whether the given ordinal is present.
func (s Set) Test(ordinal uint32) bool {
	if ordinal >= SetWords*32 {
		return false
	}
	return s[ordinal/32]&(1<<(ordinal%32)) != 0
}

// Add sets the given ordinal. Ordinals outside the universe are
// ignored.
func (s *Set) Add(ordinal uint32) {
	if ordinal >= SetWords*32 {
		return
	}
	s[ordinal/32] |= 1 << (ordinal % 32)
}

// Remove clears the given ordinal.
func (s *Set) Remove(ordinal uint32) {
	if ordinal >= SetWords*32 {
		return
	}
	s[ordinal/32] &^= 1 << (ordinal % 32)
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	var r Set
	for i := range s {
		r[i] = s[i] | o[i]
	}
	return r
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	var r Set
	for i := range s {
		r[i] = s[i] & o[i]
	}
	return r
}

// Difference returns s \ o.
func (s Set) Difference(o Set) Set {
	var r Set
	for i := range s {
		r[i] = s[i] &^ o[i]
	}
	return r
}

// Popcount returns the number of bits present in s.
func (s Set) Popcount() int {
	var n int
	for _, word := range s {
		n += bits.OnesCount32(word)
	}
	return n
}

// IsEmpty reports whether s contains no bits.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// Subset reports whether every bit of s is also present in o.
func (s Set) Subset(o Set) bool {
	return s.Difference(o).IsEmpty()
}
