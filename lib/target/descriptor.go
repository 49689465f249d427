// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package target

import "github.com/tessera-lang/tessera/lib/isa"

// Flags mark properties of a resolved target.
type Flags uint32

const (
	// FlagUnknownName is set when the entry's profile name matched
	// neither "native" nor any database profile. The target is still
	// built — the caller decides whether to warn or reject.
	FlagUnknownName Flags = 1 << iota

	// FlagCloneAll tells the backend to produce a full specialized
	// clone of every function for this target rather than a partial
	// patch. Set on every target after the baseline.
	FlagCloneAll
)

// Descriptor is one fully-resolved compilation target.
type Descriptor struct {
	// Name is the resolved profile name ("native" is replaced by the
	// probed host name during resolution).
	Name string

	// Enabled is the dependency-closed feature set the backend
	// compiles for.
	Enabled isa.Set

	// Disabled holds the explicitly disabled bits. Kept separate from
	// Enabled so the serialized form preserves the operator's intent.
	Disabled isa.Set

	// Ext carries backend-reported feature strings with no bit in the
	// feature table. Opaque pass-through, never deduplicated.
	Ext []string

	// Flags marks unknown-name and clone-all properties.
	Flags Flags
}

// FeatureTokens renders the descriptor's feature configuration as the
// signed token list handed to the code-generation backend: "+name"
// for every enabled bit, "-name" for every explicitly disabled bit
// (both in feature-table order), then the opaque ext strings
// unchanged.
func (d Descriptor) FeatureTokens() []string {
	var tokens []string
	for _, name := range isa.Names(d.Enabled) {
		tokens = append(tokens, "+"+name)
	}
	for _, name := range isa.Names(d.Disabled) {
		tokens = append(tokens, "-"+name)
	}
	tokens = append(tokens, d.Ext...)
	return tokens
}
