// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"strings"

	"github.com/tessera-lang/tessera/lib/isa"
)

// Record is the persisted form of a Descriptor, embedded in a
// compiled image's target block. Field names are part of the image
// format; add fields, never rename them.
type Record struct {
	// Name is the resolved target name used for negotiation.
	Name string `cbor:"name"`

	// Features is the signed token list: "+f"/"-f" for table bits,
	// opaque ext strings verbatim.
	Features []string `cbor:"features,omitempty"`

	// Flags is the Descriptor flag set.
	Flags uint32 `cbor:"flags"`

	// BaseIndex is the index of the target this one clones from.
	// The baseline clones from itself (index 0).
	BaseIndex uint32 `cbor:"base"`

	// Payload is an opaque blob owned by the code-generation backend
	// (relocation tables, clone offsets). Never inspected here.
	Payload []byte `cbor:"payload,omitempty"`
}

// NewRecord serializes a Descriptor for embedding into an image.
func NewRecord(descriptor Descriptor, baseIndex uint32) Record {
	return Record{
		Name:      descriptor.Name,
		Features:  descriptor.FeatureTokens(),
		Flags:     uint32(descriptor.Flags),
		BaseIndex: baseIndex,
	}
}

// Descriptor reconstructs the in-memory form of the record. Signed
// tokens that resolve in the feature table populate the enabled and
// disabled sets; everything else (vendor extensions, backend strings)
// lands in Ext unchanged, preserving the exact token text.
func (r Record) Descriptor() Descriptor {
	descriptor := Descriptor{
		Name:  r.Name,
		Flags: Flags(r.Flags),
	}
	for _, token := range r.Features {
		switch {
		case strings.HasPrefix(token, "+"):
			if feature, ok := isa.Lookup(token[1:]); ok {
				descriptor.Enabled.Add(feature.Ordinal)
				continue
			}
		case strings.HasPrefix(token, "-"):
			if feature, ok := isa.Lookup(token[1:]); ok {
				descriptor.Disabled.Add(feature.Ordinal)
				continue
			}
		}
		descriptor.Ext = append(descriptor.Ext, token)
	}
	return descriptor
}
