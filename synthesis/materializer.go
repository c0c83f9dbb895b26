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

// Package synthesis turns reflective members into loaded, linked proxy
// artifacts: generated name, synthesized bytecode, class definition,
// explicit linkage.
//
// The synthesized implementation is expected, by contract with the backend,
// to dispatch the reflective operation to the original member at runtime;
// this package only requests that synthesis, it never generates dispatch
// bodies itself. Every failure here is unrecoverable for the compilation:
// a missing accessor means the compiled program could not perform a
// reflective operation it was built to support.
package synthesis

import (
	"errors"
	"fmt"
	"sync"

	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/naming"
)

var (
	// ErrNoEnvironment is returned when materialization is requested
	// without a bound environment.
	ErrNoEnvironment = errors.New("rsx(synthesis): no environment bound")
	// ErrSynthesis wraps failures of the opaque synthesis backend.
	ErrSynthesis = errors.New("rsx(synthesis): bytecode synthesis failed")
	// ErrClassSpace wraps failures to define, link, or resolve the
	// generated class in the execution environment.
	ErrClassSpace = errors.New("rsx(synthesis): class space rejected generated class")
)

// New constructs an apis.Materializer over env using caps for accessor
// capability resolution.
func New(env *apis.Environment, caps apis.CapabilityResolver, cfg apis.Config) apis.Materializer {
	return &materializer{env: env, caps: caps, cfg: cfg}
}

// materializer is the default Materializer implementation.
type materializer struct {
	// env bundles the external collaborators.
	env *apis.Environment
	// caps resolves accessor capability interfaces.
	caps apis.CapabilityResolver
	// cfg carries the naming knobs.
	cfg apis.Config

	// defineMu serializes define+link pairs: the class space is one shared
	// mutable resource, and a registration must be exclusive while ordinary
	// lookups proceed concurrently.
	defineMu sync.Mutex
}

// Ensure materializer implements apis.Materializer.
var _ apis.Materializer = (*materializer)(nil)

// Materialize synthesizes, defines, and links the proxy class for m, then
// resolves its compiler-level type. A defined-but-unlinked class is never
// returned: linkage failures discard the artifact and surface the error.
func (mz *materializer) Materialize(m apis.Member) (apis.Artifact, error) {
	if mz.env == nil {
		return apis.Artifact{}, ErrNoEnvironment
	}

	name, err := naming.GeneratedName(m, mz.cfg)
	if err != nil {
		return apis.Artifact{}, err
	}

	accessor, err := mz.caps.Accessor(m.Kind())
	if err != nil {
		return apis.Artifact{}, err
	}

	// The generated class implements the kind's accessor capability plus
	// the reflection-proxy marker; the marker is what the registry's
	// candidate predicate later recognizes.
	code, err := mz.env.Synth.Synthesize(name, []apis.ResolvedType{accessor, mz.caps.Marker()})
	if err != nil {
		return apis.Artifact{}, fmt.Errorf("%w: %q: %v", ErrSynthesis, name, err)
	}

	mz.defineMu.Lock()
	loaded, err := mz.env.Space.Define(name, code)
	if err != nil {
		mz.defineMu.Unlock()
		return apis.Artifact{}, fmt.Errorf("%w: define %q: %v", ErrClassSpace, name, err)
	}
	if err := mz.env.Space.Link(loaded); err != nil {
		mz.defineMu.Unlock()
		return apis.Artifact{}, fmt.Errorf("%w: link %q: %v", ErrClassSpace, name, err)
	}
	mz.defineMu.Unlock()

	typ, err := mz.env.Meta.LookupType(loaded.ClassName())
	if err != nil {
		return apis.Artifact{}, fmt.Errorf("%w: resolve %q: %v", ErrClassSpace, name, err)
	}

	return apis.Artifact{Name: name, Loaded: loaded, Type: typ}, nil
}
