// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tessera-lang/tessera/lib/hostcpu"
	"github.com/tessera-lang/tessera/lib/image"
	"github.com/tessera-lang/tessera/lib/isa"
	"github.com/tessera-lang/tessera/lib/target"
)

// u74Host mirrors a SiFive U74 machine without the vector extension.
func u74Host() hostcpu.Info {
	return hostcpu.Info{
		Name: "sifive-u74-mc",
		Features: isa.NewSet(
			isa.M, isa.A, isa.F, isa.D, isa.C,
			isa.Zba, isa.Zbb, isa.Zbs,
			isa.Zicbom, isa.Zicbop, isa.Zicboz),
	}
}

// blockWithNames builds a target block whose records carry the given
// names, in order.
func blockWithNames(t *testing.T, names ...string) []byte {
	t.Helper()
	var records []target.Record
	for _, name := range names {
		records = append(records, target.NewRecord(target.Descriptor{Name: name}, 0))
	}
	block, err := image.WriteBlock(records)
	if err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
	return block
}

func TestInitPrimarySelectsMatchingRecord(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "rv64gc", "sifive-u74-mc", "sifive-u84-mc")

	index, reason, err := engine.InitPrimary("sifive-u74-mc", block)
	if err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}
	if reason != "" {
		t.Errorf("reason = %q, want empty", reason)
	}
	if index != 1 {
		t.Errorf("index = %d, want 1", index)
	}
}

func TestInitPrimaryFallsBackToImageBaseline(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "rv64gc", "sifive-u89-mc")

	index, reason, err := engine.InitPrimary("sifive-u74-mc", block)
	if err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}
	if index != 0 || reason != "" {
		t.Errorf("(index, reason) = (%d, %q), want (0, \"\") — image baseline fallback", index, reason)
	}
}

func TestInitPrimaryLastMatchWins(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "sifive-u74-mc", "rv64gc", "sifive-u74-mc")

	index, _, err := engine.InitPrimary("sifive-u74-mc", block)
	if err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}
	if index != 2 {
		t.Errorf("index = %d, want 2 (positional scan keeps the last match)", index)
	}
}

func TestInitPrimaryRejectsUnusableBlock(t *testing.T) {
	engine := NewEngine(u74Host(), nil)

	index, reason, err := engine.InitPrimary("generic", []byte("not a target block"))
	if err != nil {
		t.Fatalf("unusable block is a rejection, not an error: %v", err)
	}
	if index != NoMatch {
		t.Errorf("index = %d, want NoMatch", index)
	}
	if !strings.Contains(reason, "target block") {
		t.Errorf("reason = %q, want a human-readable rejection", reason)
	}
}

func TestInitPrimaryOneShot(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "sifive-u74-mc")

	if _, _, err := engine.InitPrimary("native", block); err != nil {
		t.Fatalf("first InitPrimary: %v", err)
	}
	committed, err := engine.Targets()
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}

	_, _, err = engine.InitPrimary("generic;rv64gc", block)
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second InitPrimary err = %v, want ErrAlreadyInitialized", err)
	}

	after, err := engine.Targets()
	if err != nil {
		t.Fatalf("Targets after failed re-init: %v", err)
	}
	if len(after) != len(committed) || after[0].Name != committed[0].Name {
		t.Error("failed re-init mutated the committed target list")
	}
}

func TestInitPrimarySpecErrorDoesNotCommit(t *testing.T) {
	engine := NewEngine(u74Host(), nil)

	if _, _, err := engine.InitPrimary("", nil); !errors.Is(err, target.ErrEmptySpec) {
		t.Fatalf("err = %v, want ErrEmptySpec", err)
	}
	if _, err := engine.Targets(); !errors.Is(err, ErrNotInitialized) {
		t.Error("failed init must not commit a target list")
	}

	// The engine is still initializable after a bad spec.
	block := blockWithNames(t, "sifive-u74-mc")
	if _, _, err := engine.InitPrimary("native", block); err != nil {
		t.Fatalf("InitPrimary after failed attempt: %v", err)
	}
}

func TestInitSecondaryRequiresPrimary(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "sifive-u74-mc")

	if _, _, err := engine.InitSecondary(block); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
}

func TestInitSecondaryRejectsMultiTargetPrimary(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "generic", "sifive-u74-mc")

	if _, _, err := engine.InitPrimary("generic;sifive-u74-mc", block); err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}
	if _, _, err := engine.InitSecondary(block); !errors.Is(err, ErrMultiTarget) {
		t.Errorf("err = %v, want ErrMultiTarget", err)
	}
}

func TestInitSecondaryMatches(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	primaryBlock := blockWithNames(t, "sifive-u74-mc")

	if _, _, err := engine.InitPrimary("native", primaryBlock); err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}

	secondaryBlock := blockWithNames(t, "generic", "sifive-u74-mc")
	index, reason, err := engine.InitSecondary(secondaryBlock)
	if err != nil {
		t.Fatalf("InitSecondary: %v", err)
	}
	if index != 1 || reason != "" {
		t.Errorf("(index, reason) = (%d, %q), want (1, \"\")", index, reason)
	}
}

func TestInitPrimaryConcurrentExactlyOnce(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	block := blockWithNames(t, "sifive-u74-mc")

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := engine.InitPrimary("native", block)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyInitialized):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != callers-1 {
		t.Errorf("succeeded = %d, rejected = %d; want exactly one success", succeeded, rejected)
	}
}

func TestCloneTargets(t *testing.T) {
	engine := NewEngine(u74Host(), []string{"+xtheadba"})
	block := blockWithNames(t, "generic", "sifive-u74-mc")

	if _, _, err := engine.InitPrimary("generic;sifive-u74-mc", block); err != nil {
		t.Fatalf("InitPrimary: %v", err)
	}

	clones, err := engine.CloneTargets()
	if err != nil {
		t.Fatalf("CloneTargets: %v", err)
	}
	if len(clones) != 2 {
		t.Fatalf("len = %d, want 2", len(clones))
	}
	if clones[1].Name != "sifive-u74-mc" {
		t.Errorf("clone name = %q", clones[1].Name)
	}
	var hasZba, hasExt bool
	for _, token := range clones[1].Features {
		if token == "+zba" {
			hasZba = true
		}
		if token == "+xtheadba" {
			hasExt = true
		}
	}
	if !hasZba || !hasExt {
		t.Errorf("clone features %v missing +zba or the ext passthrough", clones[1].Features)
	}
}

func TestHostSupports(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	if !engine.HostSupports("zba") {
		t.Error("HostSupports(zba) = false on a u74 host")
	}
	if engine.HostSupports("v") {
		t.Error("HostSupports(v) = true on a host without vector")
	}
}

func TestDisasmTarget(t *testing.T) {
	engine := NewEngine(u74Host(), nil)
	name, features := engine.DisasmTarget()
	if name != "sifive-u74-mc" {
		t.Errorf("name = %q", name)
	}
	if !strings.Contains(features, "+zba") || !strings.Contains(features, ",") {
		t.Errorf("features = %q, want comma-joined tokens", features)
	}
}
