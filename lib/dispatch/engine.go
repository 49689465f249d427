// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tessera-lang/tessera/lib/hostcpu"
	"github.com/tessera-lang/tessera/lib/image"
	"github.com/tessera-lang/tessera/lib/target"
)

// Fatal configuration errors. None of these are transient.
var (
	// ErrAlreadyInitialized is returned by a second primary-image
	// init. The committed target list is left untouched.
	ErrAlreadyInitialized = errors.New("dispatch: targets already initialized")

	// ErrNotInitialized is returned by a secondary-image init before
	// the primary image has initialized the target list.
	ErrNotInitialized = errors.New("dispatch: targets not initialized")

	// ErrMultiTarget is returned by a secondary-image init when the
	// primary target list has more than one entry; secondary images
	// are compiled for exactly one target.
	ErrMultiTarget = errors.New("dispatch: expected exactly one target")
)

// NoMatch is the negotiation result when an image holds no usable
// record. It is distinguishable from every valid record index; the
// accompanying reason says why the image should be refused.
const NoMatch = -1

// CloneTarget is the per-target configuration handed to the
// code-generation backend: the resolved name and the ordered feature
// token list.
type CloneTarget struct {
	Name     string
	Features []string
}

// Engine holds the process-scoped dispatch state. The zero value is
// not usable; construct with NewEngine. All methods are safe for
// concurrent use, and the one-time-init guarantee holds even when the
// first calls race.
type Engine struct {
	host       hostcpu.Info
	backendExt []string

	mu          sync.Mutex
	initialized bool
	targets     []target.Descriptor
}

// NewEngine creates an engine for the given host description.
// backendExt carries backend-reported feature strings appended to
// every resolved target (capabilities the backend knows about that
// have no bit in the feature table).
func NewEngine(host hostcpu.Info, backendExt []string) *Engine {
	return &Engine{host: host, backendExt: backendExt}
}

// InitPrimary builds the process target list from the specification
// string and negotiates the primary image's target block. Callable
// exactly once per process.
//
// The returned index selects the image record to load; NoMatch with a
// reason means the image holds no usable record and should be
// refused. When the live baseline's name appears nowhere in the
// record list, the image's own baseline (record 0) is selected — an
// image is always allowed to run on its fallback variant.
func (e *Engine) InitPrimary(spec string, block []byte) (int, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return NoMatch, "", ErrAlreadyInitialized
	}

	targets, err := target.Build(spec, e.host, e.backendExt)
	if err != nil {
		return NoMatch, "", fmt.Errorf("building target list: %w", err)
	}

	index, reason := negotiate(block, targets[0].Name)

	// The target list is process state independent of whether this
	// particular image was accepted; commit it now so the backend and
	// any secondary loads see the negotiated configuration.
	e.targets = targets
	e.initialized = true
	return index, reason, nil
}

// InitSecondary negotiates a secondary image's target block against
// the committed target list. Requires a prior InitPrimary with a
// single-target list: secondary images do not support multi-target
// builds.
func (e *Engine) InitSecondary(block []byte) (int, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return NoMatch, "", ErrNotInitialized
	}
	if len(e.targets) > 1 {
		return NoMatch, "", fmt.Errorf("%w, have %d", ErrMultiTarget, len(e.targets))
	}

	index, reason := negotiate(block, e.targets[0].Name)
	return index, reason, nil
}

// negotiate scans an image's record list for the live target name.
// Exact name equality, positional scan, last match wins; no match
// falls back to record 0, the image's own baseline. Only an unusable
// block rejects.
func negotiate(block []byte, name string) (int, string) {
	records, err := image.ReadBlock(block)
	if err != nil {
		return NoMatch, fmt.Sprintf("unusable target block: %v", err)
	}

	index := 0
	for i := range records {
		if records[i].Name == name {
			index = i
		}
	}
	return index, ""
}

// Targets returns a copy of the committed target list, or
// ErrNotInitialized before the primary init has run.
func (e *Engine) Targets() ([]target.Descriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil, ErrNotInitialized
	}
	targets := make([]target.Descriptor, len(e.targets))
	copy(targets, e.targets)
	return targets, nil
}

// CloneTargets returns the backend configuration for every committed
// target: resolved name plus ordered feature tokens.
func (e *Engine) CloneTargets() ([]CloneTarget, error) {
	targets, err := e.Targets()
	if err != nil {
		return nil, err
	}

	clones := make([]CloneTarget, len(targets))
	for i, descriptor := range targets {
		clones[i] = CloneTarget{
			Name:     descriptor.Name,
			Features: descriptor.FeatureTokens(),
		}
	}
	return clones, nil
}

// Host returns the host description the engine was built with.
func (e *Engine) Host() hostcpu.Info {
	return e.host
}

// HostSupports reports whether the engine's host has the named
// capability.
func (e *Engine) HostSupports(name string) bool {
	return e.host.Supports(name)
}

// DisasmTarget returns the (name, comma-joined features) pair used to
// configure a disassembler for the executing host.
func (e *Engine) DisasmTarget() (string, string) {
	descriptor := target.Descriptor{
		Name:    e.host.Name,
		Enabled: e.host.Features,
		Ext:     e.backendExt,
	}
	return descriptor.Name, strings.Join(descriptor.FeatureTokens(), ",")
}
