/*
   Copyright 2026 The AOTC Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rsx

import (
	"errors"
	"sync"
	"sync/atomic"

	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/builder"
	"aotc.dev/rsx/config"
	"aotc.dev/rsx/naming"
)

// init initializes the global substitution state.
func init() {
	// Initialize state with default cfg and unbound layers.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.mat, s.reg = mustBuild(b, s.cfg)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is reported when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rsx: builder returned nil registry")
	// ErrNilMaterializer is reported when a builder returns a nil materializer.
	ErrNilMaterializer = errors.New("rsx: builder returned nil materializer")
)

// ProxyType returns the synthetic proxy type for m using the global
// registry, generating it on first request.
// This is a convenience wrapper around the global registry.
func ProxyType(m apis.Member) (apis.ResolvedType, error) {
	return st.Load().reg.ProxyType(m)
}

// MemberOf returns the member a generated proxy type stands for.
// This is a convenience wrapper around the global registry.
func MemberOf(t apis.ResolvedType) (apis.Member, bool) {
	return st.Load().reg.MemberOf(t)
}

// LookupType substitutes a generated proxy type with its wrapper; anything
// else passes through unchanged.
// This is a convenience wrapper around the global registry.
func LookupType(t apis.ResolvedType) apis.ResolvedType {
	return st.Load().reg.LookupType(t)
}

// LookupMethod substitutes a method declared on a substituted proxy type;
// anything else passes through unchanged.
// This is a convenience wrapper around the global registry.
func LookupMethod(m apis.ResolvedMethod) apis.ResolvedMethod {
	return st.Load().reg.LookupMethod(m)
}

// ResolveType unwraps a substitution wrapper to the entity it wraps;
// anything else passes through unchanged.
// This is a convenience wrapper around the global registry.
func ResolveType(t apis.ResolvedType) apis.ResolvedType {
	return st.Load().reg.ResolveType(t)
}

// ResolveMethod unwraps a substitution method to the method it wraps;
// anything else passes through unchanged.
// This is a convenience wrapper around the global registry.
func ResolveMethod(m apis.ResolvedMethod) apis.ResolvedMethod {
	return st.Load().reg.ResolveMethod(m)
}

// Bind attaches an environment and rebuilds the non-pinned layers through
// the global builder. A nil env detaches: lookups become the identity and
// generation is refused.
//
// Capability resolution failure (marker, dynamic proxy, or later an
// accessor interface missing) is unrecoverable for a compilation; Bind
// surfaces it and leaves the previous snapshot in place.
func Bind(env *apis.Environment) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new mat and reg against the new environment.
	nmat, nreg, err := build(b, old.cfg, env, old)
	if err != nil {
		return err
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			env:  env,
			mat:  nmat,
			reg:  nreg,
			bld:  b,
			pmat: old.pmat,
			preg: old.preg,
		},
	)
	return nil
}

// SetAll explicitly sets all global substitution state components.
//
// Nil arguments leave the corresponding component unchanged, except for
// env which is always replaced. Passing nil mat/reg rebuilds them through
// the (possibly new) builder and resets their pins.
//
// This is the hard-reset API, mainly used by tests to get a clean
// deterministic state between cases.
func SetAll(cfg *apis.Config, env *apis.Environment, mat apis.Materializer, reg apis.Registry, bld apis.Builder) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Materializer
	nmat := mat
	npmat := nmat != nil

	// Registry
	nreg := reg
	npreg := nreg != nil

	// Rebuild whatever was not supplied explicitly.
	if nmat == nil || nreg == nil {
		bmat, breg, err := buildLayers(nbld, ncfg, env)
		if err != nil {
			return err
		}
		if nmat == nil {
			nmat = bmat
		}
		if nreg == nil {
			nreg = breg
		}
	}

	// Ensure non-nil mat and reg.
	if nmat == nil {
		panic(ErrNilMaterializer)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			env:  env,
			mat:  nmat,
			reg:  nreg,
			bld:  nbld,
			pmat: npmat,
			preg: npreg,
		},
	)
	return nil
}

// Config returns the global substitution configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global substitution configuration to cfg.
// It rebuilds the non-pinned layers using the new configuration against
// the currently bound environment.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new mat and reg based on the new cfg and old environment.
	nmat, nreg, err := build(b, cfg, old.env, old)
	if err != nil {
		return err
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			env:  old.env,
			mat:  nmat,
			reg:  nreg,
			bld:  b,
			pmat: old.pmat,
			preg: old.preg,
		},
	)
	return nil
}

// Environment returns the currently bound environment, or nil.
func Environment() *apis.Environment {
	return st.Load().env
}

// Registry returns the global substitution registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global substitution registry to reg and pins it:
// later rebuilds leave it untouched until UnpinRegistry.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			env:  old.env,
			mat:  old.mat,
			reg:  reg,
			bld:  old.bld,
			pmat: old.pmat,
			preg: true,
		},
	)
}

// Materializer returns the global synthesis layer.
func Materializer() apis.Materializer {
	return st.Load().mat
}

// SetMaterializer sets the global synthesis layer to mat and pins it.
// The registry is rebuilt against it unless pinned itself.
func SetMaterializer(mat apis.Materializer) error {
	if mat == nil {
		return nil
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg based on the old cfg and new mat.
	nreg := old.reg
	if !old.preg {
		var err error
		nreg, err = b.BuildRegistry(old.cfg, old.env, mat, old.reg)
		if err != nil {
			return err
		}
	}

	// Ensure non-nil reg.
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			env:  old.env,
			mat:  mat,
			reg:  nreg,
			bld:  b,
			pmat: true,
			preg: old.preg,
		},
	)
	return nil
}

// Builder returns the global substitution builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global substitution builder to b and rebuilds the
// non-pinned layers through it.
func SetBuilder(b apis.Builder) error {
	if b == nil {
		return nil
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new mat and reg based on the new builder and old state.
	nmat, nreg, err := build(b, old.cfg, old.env, old)
	if err != nil {
		return err
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			env:  old.env,
			mat:  nmat,
			reg:  nreg,
			bld:  b,
			pmat: old.pmat,
			preg: old.preg,
		},
	)
	return nil
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immune to rebuilds.
func PinRegistry() {
	setPins(func(s *state) { s.preg = true })
}

// UnpinRegistry makes the global registry rebuildable again.
func UnpinRegistry() {
	setPins(func(s *state) { s.preg = false })
}

// IsMaterializerPinned returns whether the global synthesis layer is pinned.
func IsMaterializerPinned() bool {
	return st.Load().pmat
}

// PinMaterializer makes the global synthesis layer immune to rebuilds.
func PinMaterializer() {
	setPins(func(s *state) { s.pmat = true })
}

// UnpinMaterializer makes the global synthesis layer rebuildable again.
func UnpinMaterializer() {
	setPins(func(s *state) { s.pmat = false })
}

// ResetNames restarts the process-wide name disambiguation counter. Call
// between independent compilation runs, never while one is in flight.
func ResetNames() {
	naming.ResetCounter()
}

// Reset tears down the global registry's cached substitutions. The
// registry instance and the rest of the snapshot stay in place.
func Reset() {
	st.Load().reg.Reset()
}

// setPins publishes a snapshot identical to the current one except for the
// pin flags mutated by f.
func setPins(f func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	next := &state{
		cfg:  old.cfg,
		env:  old.env,
		mat:  old.mat,
		reg:  old.reg,
		bld:  old.bld,
		pmat: old.pmat,
		preg: old.preg,
	}
	f(next)

	// Store the new state atomically.
	st.Store(next)
}

// build derives new materializer and registry layers for cfg and env,
// keeping pinned layers from prev.
func build(b apis.Builder, cfg apis.Config, env *apis.Environment, prev *state) (apis.Materializer, apis.Registry, error) {
	nmat := prev.mat
	if !prev.pmat {
		var err error
		nmat, err = b.BuildMaterializer(cfg, env, prev.mat)
		if err != nil {
			return nil, nil, err
		}
	}
	nreg := prev.reg
	if !prev.preg {
		var err error
		nreg, err = b.BuildRegistry(cfg, env, nmat, prev.reg)
		if err != nil {
			return nil, nil, err
		}
	}

	// Ensure non-nil mat and reg.
	if nmat == nil {
		panic(ErrNilMaterializer)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	return nmat, nreg, nil
}

// buildLayers derives both layers fresh, ignoring pins.
func buildLayers(b apis.Builder, cfg apis.Config, env *apis.Environment) (apis.Materializer, apis.Registry, error) {
	nmat, err := b.BuildMaterializer(cfg, env, nil)
	if err != nil {
		return nil, nil, err
	}
	nreg, err := b.BuildRegistry(cfg, env, nmat, nil)
	if err != nil {
		return nil, nil, err
	}
	return nmat, nreg, nil
}

// mustBuild is buildLayers for contexts where failure is a programming
// error (the unbound default state cannot fail to build).
func mustBuild(b apis.Builder, cfg apis.Config) (apis.Materializer, apis.Registry) {
	nmat, nreg, err := buildLayers(b, cfg, nil)
	if err != nil {
		panic(err)
	}
	if nmat == nil {
		panic(ErrNilMaterializer)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	return nmat, nreg
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global substitution state.
var st atomic.Pointer[state]

// state is the global substitution state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global substitution configuration.
	cfg apis.Config
	// env is the bound environment, nil when detached.
	env *apis.Environment
	// mat is the global synthesis layer.
	mat apis.Materializer
	// reg is the global substitution registry.
	reg apis.Registry
	// bld is the global substitution builder.
	bld apis.Builder
	// pmat indicates whether the materializer is pinned (immutable).
	pmat bool
	// preg indicates whether the registry is pinned (immutable).
	preg bool
}
