// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessera-lang/tessera/lib/isa"
)

// ErrEmptySpec is returned when the target specification contains no
// entries. An empty specification is a configuration error, not a
// request for defaults.
var ErrEmptySpec = errors.New("target: empty target specification")

// entry is one parsed, unresolved target-specification entry.
type entry struct {
	// name is the profile name, "native", or an unknown string.
	name string

	// enable and disable hold the explicit +feature/-feature toggles.
	enable  isa.Set
	disable isa.Set

	// cloneAll is set by the clone_all marker. The builder also
	// forces it on every entry after the first.
	cloneAll bool
}

// parseSpec splits a target specification into its entries. Unknown
// feature names in toggles are rejected: misspelling a feature must
// not silently compile for the wrong ISA. Unknown *target* names are
// not rejected here — they surface later as FlagUnknownName.
func parseSpec(spec string) ([]entry, error) {
	var entries []entry
	for _, raw := range strings.Split(spec, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		fields := strings.Split(raw, ",")
		parsed := entry{name: strings.TrimSpace(fields[0])}
		if parsed.name == "" {
			return nil, fmt.Errorf("target: entry %q has no target name", raw)
		}

		for _, field := range fields[1:] {
			field = strings.TrimSpace(field)
			switch {
			case field == "":
				continue
			case field == "clone_all":
				parsed.cloneAll = true
			case strings.HasPrefix(field, "-"):
				feature, ok := isa.Lookup(field[1:])
				if !ok {
					return nil, fmt.Errorf("target: unknown feature %q in target %q", field[1:], parsed.name)
				}
				parsed.disable.Add(feature.Ordinal)
			default:
				name := strings.TrimPrefix(field, "+")
				feature, ok := isa.Lookup(name)
				if !ok {
					return nil, fmt.Errorf("target: unknown feature %q in target %q", name, parsed.name)
				}
				parsed.enable.Add(feature.Ordinal)
			}
		}
		entries = append(entries, parsed)
	}

	if len(entries) == 0 {
		return nil, ErrEmptySpec
	}
	return entries, nil
}
