// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package hostcpu

import (
	"sync"

	"github.com/tessera-lang/tessera/lib/isa"
)

// Info is the probed host CPU: a resolved profile name, the feature
// set the kernel reported, and the ordered list of capability tokens
// that were recognized while parsing.
type Info struct {
	// Name is the microarchitecture profile name. Exact
	// identification from the uarch line wins; otherwise this is the
	// scored best match over the probed features, falling back to
	// "generic".
	Name string

	// Features is the probed feature set.
	Features isa.Set

	// Tokens lists the recognized capability tokens in the order they
	// appeared in the kernel's ISA description. Tokens and Features
	// describe the same capabilities; Tokens preserves the textual
	// order for diagnostics and tests.
	Tokens []string
}

var (
	probeOnce sync.Once
	probed    Info
)

// Probe returns the host CPU description. The underlying probe
// executes at most once per process; concurrent first-time callers
// all observe the single computation.
func Probe() Info {
	probeOnce.Do(func() {
		probed = probeHost()
	})
	return probed
}

// Supports reports whether the CPU has the named capability. Unknown
// names are unsupported by definition.
func (i Info) Supports(name string) bool {
	feature, ok := isa.Lookup(name)
	if !ok {
		return false
	}
	return i.Features.Test(feature.Ordinal)
}

// HasFMA reports whether the CPU can fuse multiply-add at the given
// precision: 32-bit needs the f and zfa extensions, 64-bit needs d
// and zfa.
func (i Info) HasFMA(bits int) bool {
	switch bits {
	case 32:
		return i.Features.Test(isa.F) && i.Features.Test(isa.Zfa)
	case 64:
		return i.Features.Test(isa.D) && i.Features.Test(isa.Zfa)
	}
	return false
}

// Supports reports whether the executing host has the named
// capability.
func Supports(name string) bool {
	return Probe().Supports(name)
}

// HasFMA reports whether the executing host can fuse multiply-add at
// the given precision.
func HasFMA(bits int) bool {
	return Probe().HasFMA(bits)
}
