// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"github.com/tessera-lang/tessera/lib/cpudb"
	"github.com/tessera-lang/tessera/lib/hostcpu"
	"github.com/tessera-lang/tessera/lib/isa"
)

// Build resolves a target specification against the executing host.
// Entry 0 is clamped to the host's probed capabilities: it is the
// fallback that must always be executable, so its enabled set never
// exceeds what the host reported. Every entry after the first is
// flagged clone-all.
//
// ext carries backend-reported feature strings that have no bit in
// the feature table; they are appended verbatim to every target.
func Build(spec string, host hostcpu.Info, ext []string) ([]Descriptor, error) {
	return build(spec, host, ext, true)
}

// BuildForImage resolves a target specification for an image emitter.
// Unlike Build, the baseline is taken as specified: images are
// routinely compiled for machines other than the build host, and the
// operator's explicit profile choice is the contract.
func BuildForImage(spec string, host hostcpu.Info, ext []string) ([]Descriptor, error) {
	return build(spec, host, ext, false)
}

func build(spec string, host hostcpu.Info, ext []string, clampBaseline bool) ([]Descriptor, error) {
	entries, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(entries))
	for i, parsed := range entries {
		descriptor := resolve(parsed, host)

		if i == 0 && clampBaseline {
			descriptor.Enabled = descriptor.Enabled.Intersect(host.Features)
			// Clamping may have removed a prerequisite; strip the
			// orphaned dependents too.
			isa.DisableClosure(&descriptor.Enabled)
		}
		if i > 0 || parsed.cloneAll {
			descriptor.Flags |= FlagCloneAll
		}

		descriptor.Ext = append(descriptor.Ext, ext...)
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// resolve binds an entry's name to its baseline feature set and
// applies the explicit toggles: enable closure first, then the
// explicit disables and everything that depended on them — disables
// win over bits the closure introduced.
func resolve(parsed entry, host hostcpu.Info) Descriptor {
	descriptor := Descriptor{Name: parsed.name}

	var base isa.Set
	switch {
	case parsed.name == "native":
		descriptor.Name = host.Name
		base = host.Features
	default:
		if profile, ok := cpudb.FindProfile(parsed.name); ok {
			base = profile.Features
		} else {
			descriptor.Flags |= FlagUnknownName
		}
	}

	enabled := base.Union(parsed.enable)
	isa.EnableClosure(&enabled)
	enabled = enabled.Difference(parsed.disable)
	isa.DisableClosure(&enabled)

	descriptor.Enabled = enabled
	descriptor.Disabled = parsed.disable
	return descriptor
}
