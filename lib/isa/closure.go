// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package isa

// EnableClosure expands s to its dependency closure: for every present
// bit with a prerequisite edge, the prerequisite is added, repeated
// until a fixed point. The result is a superset of the input and the
// operation is idempotent. Termination is bounded by bits × edges
// because each pass either adds a bit or stops.
func EnableClosure(s *Set) {
	for {
		changed := false
		for _, edge := range dependencies {
			if s.Test(edge.Dependent) && !s.Test(edge.Prerequisite) {
				s.Add(edge.Prerequisite)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// DisableClosure strips from s every bit whose prerequisite (direct or
// transitive) is missing, repeated until a fixed point. The result is
// a subset of the input and the operation is idempotent. Clearing a
// bit and then calling DisableClosure cascades the removal to
// everything that depended on it.
func DisableClosure(s *Set) {
	for {
		changed := false
		for _, edge := range dependencies {
			if s.Test(edge.Dependent) && !s.Test(edge.Prerequisite) {
				s.Remove(edge.Dependent)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
