// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package isa

// Feature ordinals for RISC-V 64. These values are persisted inside
// compiled images and must stay stable across releases. Gaps in the
// numbering (38–41, 88–91) are reserved: they were burned by duplicate
// definitions in an earlier revision of the table and must not be
// reused.
const (
	// Floating point.
	F        uint32 = 1 // RV64F single precision
	D        uint32 = 2 // RV64D double precision
	Zfinx    uint32 = 3
	Zdinx    uint32 = 4
	Zhinx    uint32 = 5
	Zhinxmin uint32 = 6

	// Vector.
	V      uint32 = 7 // RVV vector extension
	Zve32x uint32 = 8
	Zve32f uint32 = 9
	Zve64x uint32 = 10
	Zve64f uint32 = 11
	Zve64d uint32 = 12

	// Bit manipulation.
	Zba  uint32 = 13
	Zbb  uint32 = 14
	Zbc  uint32 = 15
	Zbkb uint32 = 16
	Zbkc uint32 = 17
	Zbkx uint32 = 18
	Zbs  uint32 = 19

	// Scalar crypto.
	Zknd  uint32 = 20
	Zkne  uint32 = 21
	Zknh  uint32 = 22
	Zksed uint32 = 23
	Zksh  uint32 = 24
	Zkr   uint32 = 25
	Zk    uint32 = 26

	// Vector crypto.
	Zvknha uint32 = 27
	Zvknhb uint32 = 28
	Zvksed uint32 = 29
	Zvksh  uint32 = 30
	Zvkb   uint32 = 31

	// Additional vector.
	Zvbb     uint32 = 32
	Zvbc     uint32 = 33
	Zvfbfmin uint32 = 34
	Zvfbfwma uint32 = 35
	Zvkg     uint32 = 36
	Zvkned   uint32 = 37

	// Compressed instructions.
	C    uint32 = 64
	Zca  uint32 = 65
	Zcb  uint32 = 66
	Zcd  uint32 = 67
	Zcf  uint32 = 68
	Zcmp uint32 = 69
	Zcmt uint32 = 70

	// Atomics.
	A      uint32 = 71
	Zalrsc uint32 = 72
	Zacas  uint32 = 73

	// Integer multiply and cache management.
	M      uint32 = 74
	Zmmul  uint32 = 75
	Zicbom uint32 = 76
	Zicbop uint32 = 77
	Zicboz uint32 = 78

	// Privileged architecture.
	S      uint32 = 79
	U      uint32 = 80
	Zicntr uint32 = 81
	Zihpm  uint32 = 82
	Zicond uint32 = 83
	Zawrs  uint32 = 84
	Zfa    uint32 = 85
	Zfh    uint32 = 86
	Zfhmin uint32 = 87

	// Hints and memory ordering.
	Zicclsm     uint32 = 96
	Zicfilp     uint32 = 97
	Zicfiss     uint32 = 98
	Zihintntl   uint32 = 99
	Zihintpause uint32 = 100
	Zihwa       uint32 = 101
	Zimop       uint32 = 102
	Ziselect    uint32 = 103
	Ztso        uint32 = 104
)

// Feature describes one named capability bit.
type Feature struct {
	// Name is the canonical lowercase extension name as it appears in
	// ISA strings and target specifications.
	Name string

	// Ordinal is the stable persisted bit position.
	Ordinal uint32

	// MinVersion is the minimum backend version required to emit code
	// for this feature. Zero means any backend.
	MinVersion uint32
}

// features is the feature table in declaration (ordinal) order.
var features = []Feature{
	{"f", F, 0},
	{"d", D, 0},
	{"zfinx", Zfinx, 0},
	{"zdinx", Zdinx, 0},
	{"zhinx", Zhinx, 0},
	{"zhinxmin", Zhinxmin, 0},
	{"v", V, 0},
	{"zve32x", Zve32x, 0},
	{"zve32f", Zve32f, 0},
	{"zve64x", Zve64x, 0},
	{"zve64f", Zve64f, 0},
	{"zve64d", Zve64d, 0},
	{"zba", Zba, 0},
	{"zbb", Zbb, 0},
	{"zbc", Zbc, 0},
	{"zbkb", Zbkb, 0},
	{"zbkc", Zbkc, 0},
	{"zbkx", Zbkx, 0},
	{"zbs", Zbs, 0},
	{"zknd", Zknd, 0},
	{"zkne", Zkne, 0},
	{"zknh", Zknh, 0},
	{"zksed", Zksed, 0},
	{"zksh", Zksh, 0},
	{"zkr", Zkr, 0},
	{"zk", Zk, 0},
	{"zvknha", Zvknha, 0},
	{"zvknhb", Zvknhb, 0},
	{"zvksed", Zvksed, 0},
	{"zvksh", Zvksh, 0},
	{"zvkb", Zvkb, 0},
	{"zvbb", Zvbb, 0},
	{"zvbc", Zvbc, 0},
	{"zvfbfmin", Zvfbfmin, 0},
	{"zvfbfwma", Zvfbfwma, 0},
	{"zvkg", Zvkg, 0},
	{"zvkned", Zvkned, 0},
	{"c", C, 0},
	{"zca", Zca, 0},
	{"zcb", Zcb, 0},
	{"zcd", Zcd, 0},
	{"zcf", Zcf, 0},
	{"zcmp", Zcmp, 0},
	{"zcmt", Zcmt, 0},
	{"a", A, 0},
	{"zalrsc", Zalrsc, 0},
	{"zacas", Zacas, 0},
	{"m", M, 0},
	{"zmmul", Zmmul, 0},
	{"zicbom", Zicbom, 0},
	{"zicbop", Zicbop, 0},
	{"zicboz", Zicboz, 0},
	{"s", S, 0},
	{"u", U, 0},
	{"zicntr", Zicntr, 0},
	{"zihpm", Zihpm, 0},
	{"zicond", Zicond, 0},
	{"zawrs", Zawrs, 0},
	{"zfa", Zfa, 0},
	{"zfh", Zfh, 0},
	{"zfhmin", Zfhmin, 0},
	{"zicclsm", Zicclsm, 0},
	{"zicfilp", Zicfilp, 0},
	{"zicfiss", Zicfiss, 0},
	{"zihintntl", Zihintntl, 0},
	{"zihintpause", Zihintpause, 0},
	{"zihwa", Zihwa, 0},
	{"zimop", Zimop, 0},
	{"ziselect", Ziselect, 0},
	{"ztso", Ztso, 0},
}

// dependency is one edge of the feature dependency graph: enabling
// Dependent requires Prerequisite. The graph is acyclic.
type dependency struct {
	Dependent    uint32
	Prerequisite uint32
}

// dependencies lists every edge between defined feature bits. The
// original table also referenced grouped crypto capability names
// (aes, sha2, sm4, sm3) that have no bit in this architecture's
// table; those edges are dead and are not carried here.
var dependencies = []dependency{
	{D, F},
	{Zfinx, F},
	{Zdinx, D},
	{Zhinx, F},
	{Zhinx, Zhinxmin},
	{Zhinxmin, F},
	{Zve32f, Zve32x},
	{Zve64f, Zve64x},
	{Zve64d, Zve64f},
	{Zve64f, Zve32f},
	{Zve64x, Zve32x},
	{Zve32x, V},
	{Zve32f, V},
	{Zve64x, V},
	{Zve64f, V},
	{Zve64d, V},
	{Zvbb, V},
	{Zvbc, V},
	{Zvfbfmin, V},
	{Zvfbfwma, V},
	{Zvkg, V},
	{Zvkned, V},
	{Zvknha, V},
	{Zvknhb, V},
	{Zvksed, V},
	{Zvksh, V},
	{Zvkb, V},
	{Zca, C},
	{Zcb, C},
	{Zcd, C},
	{Zcf, C},
	{Zcmp, C},
	{Zcmt, C},
	{Zalrsc, A},
	{Zacas, A},
	{Zmmul, M},
	{Zk, Zknd},
	{Zk, Zkne},
	{Zk, Zknh},
	{Zk, Zksed},
	{Zk, Zksh},
	{Zk, Zkr},
	{Zfa, F},
	{Zfh, F},
	{Zfh, Zfhmin},
	{Zfhmin, F},
}

// byName indexes the feature table for Lookup.
var byName = func() map[string]Feature {
	index := make(map[string]Feature, len(features))
	for _, feature := range features {
		index[feature.Name] = feature
	}
	return index
}()

// Lookup returns the feature with the given canonical name.
func Lookup(name string) (Feature, bool) {
	feature, ok := byName[name]
	return feature, ok
}

// Names returns the names of the features present in s, in table
// declaration order. The order is stable across calls and releases.
func Names(s Set) []string {
	var names []string
	for _, feature := range features {
		if s.Test(feature.Ordinal) {
			names = append(names, feature.Name)
		}
	}
	return names
}

// Count returns the number of defined features.
func Count() int {
	return len(features)
}

// All returns the feature table in declaration order. The returned
// slice is shared static data; callers must not modify it.
func All() []Feature {
	return features
}
