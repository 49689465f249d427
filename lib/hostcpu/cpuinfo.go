// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package hostcpu

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessera-lang/tessera/lib/cpudb"
	"github.com/tessera-lang/tessera/lib/isa"
)

// probeFrom is the testable implementation of the probe. It accepts a
// root path for /proc so tests can point at synthetic filesystems.
//
// Probing never fails: an unreadable cpuinfo, a malformed ISA string,
// or an unknown vendor all degrade to fewer recognized capabilities,
// not to an error.
func probeFrom(procRoot string) Info {
	info := Info{Name: "generic"}

	file, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
	if err != nil {
		return info
	}
	defer file.Close()

	var nameHint string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := splitCPUInfoLine(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case "isa":
			// All harts report the same ISA; the last line wins, which
			// matches re-parsing on each "processor" stanza.
			info.Features, info.Tokens = parseISAString(value)
		case "uarch":
			nameHint = uarchHint(value)
		}
	}

	// An exact microarchitecture identification trumps heuristic
	// scoring; the scored match is the fallback.
	if nameHint != "" {
		if _, ok := cpudb.FindProfile(nameHint); ok {
			info.Name = nameHint
			return info
		}
	}
	info.Name = cpudb.BestMatch(info.Features).Name
	return info
}

// splitCPUInfoLine splits a "key\t: value" cpuinfo line into its
// trimmed key and value.
func splitCPUInfoLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// parseISAString tokenizes a RISC-V ISA string such as
// "rv64imafdcv_zba_zbb_zicbom" into the feature set and the ordered
// list of recognized tokens. The leading chunk is the base plus
// single-letter extensions; underscore-separated chunks that follow
// are full multi-letter extension names. Unrecognized tokens are
// skipped.
func parseISAString(s string) (isa.Set, []string) {
	var set isa.Set
	var tokens []string

	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "rv64") {
		return set, nil
	}

	recognize := func(name string) {
		feature, ok := isa.Lookup(name)
		if !ok || set.Test(feature.Ordinal) {
			return
		}
		set.Add(feature.Ordinal)
		tokens = append(tokens, name)
	}

	chunks := strings.Split(s[len("rv64"):], "_")
	for _, letter := range chunks[0] {
		switch letter {
		case 'i', 'e':
			// Base integer ISA, implied by rv64.
		case 'g':
			// G groups IMAFD.
			recognize("m")
			recognize("a")
			recognize("f")
			recognize("d")
		default:
			recognize(string(letter))
		}
	}
	for _, chunk := range chunks[1:] {
		recognize(chunk)
	}
	return set, tokens
}

// uarchMarkers maps microarchitecture substrings from the cpuinfo
// uarch line to profile names. Order matters: more specific markers
// come before their prefixes (u74 before u9 would not collide, but
// u9 would swallow u84/u87/u89 if checked first).
var uarchMarkers = []struct {
	marker  string
	profile string
}{
	{"u74", "sifive-u74-mc"},
	{"u84", "sifive-u84-mc"},
	{"u87", "sifive-u87-mc"},
	{"u89", "sifive-u89-mc"},
	{"u9", "sifive-u9-mc"},
}

// uarchHint extracts a profile name from the uarch line ("sifive,u74"
// and similar vendor,model forms). Returns "" when the vendor or
// model is not recognized.
func uarchHint(s string) string {
	s = strings.ToLower(s)
	if !strings.Contains(s, "sifive") {
		return ""
	}
	for _, entry := range uarchMarkers {
		if strings.Contains(s, entry.marker) {
			return entry.profile
		}
	}
	return ""
}
