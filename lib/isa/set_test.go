// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package isa

import "testing"

func TestSetBasicOperations(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Fatal("zero Set should be empty")
	}

	s.Add(F)
	s.Add(Ztso) // high word
	if !s.Test(F) || !s.Test(Ztso) {
		t.Errorf("bits not present after Add: %v", s)
	}
	if s.Popcount() != 2 {
		t.Errorf("Popcount = %d, want 2", s.Popcount())
	}

	s.Remove(F)
	if s.Test(F) {
		t.Error("bit present after Remove")
	}
}

func TestSetOutOfRangeOrdinalIgnored(t *testing.T) {
	var s Set
	s.Add(SetWords * 32)
	if !s.IsEmpty() {
		t.Error("out-of-range Add should be a no-op")
	}
	if s.Test(SetWords * 32) {
		t.Error("out-of-range Test should be false")
	}
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet(F, D, V)
	b := NewSet(D, V, C)

	if got, want := a.Union(b), NewSet(F, D, V, C); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got, want := a.Intersect(b), NewSet(D, V); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if got, want := a.Difference(b), NewSet(F); got != want {
		t.Errorf("Difference = %v, want %v", got, want)
	}
	if !NewSet(D).Subset(a) {
		t.Error("Subset: {d} should be a subset of {f,d,v}")
	}
	if NewSet(C).Subset(a) {
		t.Error("Subset: {c} should not be a subset of {f,d,v}")
	}
}

func TestOrdinalUniqueness(t *testing.T) {
	seen := make(map[uint32]string)
	for _, feature := range All() {
		if other, ok := seen[feature.Ordinal]; ok {
			t.Errorf("ordinal %d assigned to both %q and %q",
				feature.Ordinal, other, feature.Name)
		}
		seen[feature.Ordinal] = feature.Name
		if feature.Ordinal >= SetWords*32 {
			t.Errorf("feature %q ordinal %d outside the %d-bit universe",
				feature.Name, feature.Ordinal, SetWords*32)
		}
	}
}

func TestLookup(t *testing.T) {
	feature, ok := Lookup("zba")
	if !ok {
		t.Fatal("Lookup(zba) not found")
	}
	if feature.Ordinal != Zba {
		t.Errorf("Lookup(zba).Ordinal = %d, want %d", feature.Ordinal, Zba)
	}

	if _, ok := Lookup("avx2"); ok {
		t.Error("Lookup(avx2) should not resolve on riscv64")
	}
	// Lookup is case-sensitive: canonical names are lowercase.
	if _, ok := Lookup("ZBA"); ok {
		t.Error("Lookup(ZBA) should not resolve")
	}
}

func TestNamesStableOrder(t *testing.T) {
	s := NewSet(Ztso, F, V, C)
	got := Names(s)
	want := []string{"f", "v", "c", "ztso"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
