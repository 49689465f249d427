// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package cpudb

import "github.com/tessera-lang/tessera/lib/isa"

// Profile ordinals. Persisted in image target records; append only.
const (
	Generic uint32 = iota
	RV64GC
	RV64GCV
	RV64IMAFDC
	RV64IMAFDCV
	SiFiveU74
	SiFiveU84
	SiFiveU87
	SiFiveU89
	SiFiveU9
)

// Profile describes one named microarchitecture.
type Profile struct {
	// Name is the exact, case-sensitive profile name accepted in
	// target specifications.
	Name string

	// Ordinal identifies the profile in persisted records.
	Ordinal uint32

	// Parent is the ordinal of the profile this one is based on.
	// Features must be a superset of the parent's features; the
	// generic profile is its own parent.
	Parent uint32

	// MinVersion is the minimum backend version that knows this
	// profile by name. Zero means any backend.
	MinVersion uint32

	// Features is the baseline feature set, before dependency
	// closure.
	Features isa.Set
}

// Baseline feature sets, built up the same way the hardware families
// are: each tier extends the one below it.
var (
	genericSet = isa.Set{}

	rv64gcSet  = isa.NewSet(isa.M, isa.A, isa.F, isa.D, isa.C)
	rv64gcvSet = rv64gcSet.Union(isa.NewSet(isa.V))

	sifiveU74Set = rv64gcSet.Union(isa.NewSet(
		isa.Zba, isa.Zbb, isa.Zbs, isa.Zicbom, isa.Zicbop, isa.Zicboz))
	sifiveU84Set = sifiveU74Set.Union(isa.NewSet(
		isa.Zicond, isa.Zawrs, isa.Zfa, isa.Zfhmin))
	sifiveU87Set = sifiveU84Set.Union(isa.NewSet(
		isa.Zfh, isa.Zicntr, isa.Zihpm))
	sifiveU89Set = sifiveU87Set.Union(isa.NewSet(
		isa.Zicclsm, isa.Zicfilp, isa.Zicfiss, isa.Zihintntl,
		isa.Zihintpause, isa.Zihwa, isa.Zimop, isa.Ziselect, isa.Ztso))
)

// profiles is the profile table in declaration order. BestMatch
// depends on this order for its tie-break, so entries must stay
// sorted from least to most capable within a family.
var profiles = []Profile{
	{"generic", Generic, Generic, 0, genericSet},
	{"rv64gc", RV64GC, Generic, 0, rv64gcSet},
	{"rv64gcv", RV64GCV, RV64GC, 0, rv64gcvSet},
	{"rv64imafdc", RV64IMAFDC, Generic, 0, rv64gcSet},
	{"rv64imafdcv", RV64IMAFDCV, RV64IMAFDC, 0, rv64gcvSet},
	{"sifive-u74-mc", SiFiveU74, RV64GC, 0, sifiveU74Set},
	{"sifive-u84-mc", SiFiveU84, SiFiveU74, 0, sifiveU84Set},
	{"sifive-u87-mc", SiFiveU87, SiFiveU84, 0, sifiveU87Set},
	{"sifive-u89-mc", SiFiveU89, SiFiveU87, 0, sifiveU89Set},
	{"sifive-u9-mc", SiFiveU9, SiFiveU89, 0, sifiveU89Set},
}

// FindProfile returns the profile with the given name. Matching is
// exact and case-sensitive.
func FindProfile(name string) (*Profile, bool) {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], true
		}
	}
	return nil, false
}

// ProfileName returns the name for a profile ordinal, or "generic"
// when the ordinal is unknown (e.g. a record written by a newer
// release).
func ProfileName(ordinal uint32) string {
	for i := range profiles {
		if profiles[i].Ordinal == ordinal {
			return profiles[i].Name
		}
	}
	return "generic"
}

// BestMatch classifies a probed feature set against the profile
// table. The score of a profile is the number of probed bits it
// shares; the first profile with a strictly greater score than the
// current best wins, so ties resolve to the earliest-declared (least
// capable) candidate. An empty probe matches the generic profile at
// score zero.
func BestMatch(probed isa.Set) *Profile {
	best := &profiles[0]
	bestScore := 0
	for i := range profiles {
		score := probed.Intersect(profiles[i].Features).Popcount()
		if score > bestScore {
			best = &profiles[i]
			bestScore = score
		}
	}
	return best
}

// IsGeneric reports whether the ordinal names a generic ISA level
// rather than a concrete microarchitecture. Generic levels are
// eligible for replacement by a more specific name hint from the
// host probe.
func IsGeneric(ordinal uint32) bool {
	switch ordinal {
	case Generic, RV64GC, RV64GCV, RV64IMAFDC, RV64IMAFDCV:
		return true
	}
	return false
}

// Profiles returns the profile table in declaration order. The
// returned slice is shared static data; callers must not modify it.
func Profiles() []Profile {
	return profiles
}
