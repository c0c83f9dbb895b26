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

// Package registry implements the bidirectional, memoizing substitution
// cache between original compiler entities and generated reflection
// proxies.
//
// The forward map is keyed by the canonical member descriptor, so equal
// but distinct member instances share one cache slot. The reverse map is
// keyed by the generated type's identity and is written only as a side
// effect of successful generation; there is no other path into it. Over
// the lifetime of one compilation the two maps form a bijection.
package registry

import (
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/utils/descriptor"
)

var (
	// ErrNilMember is returned when a nil member is provided.
	ErrNilMember = errors.New("rsx(registry): nil member provided")
	// ErrNoEnvironment is returned when generation is requested from a
	// registry that has no bound environment.
	ErrNoEnvironment = errors.New("rsx(registry): no environment bound")
)

// New constructs an apis.Registry that generates proxies through mat and
// recognizes them via the marker and dynamic-proxy capabilities of caps.
func New(caps apis.CapabilityResolver, mat apis.Materializer) apis.Registry {
	return &registry{caps: caps, mat: mat}
}

// forwardEntry pairs a member with its generated proxy type.
type forwardEntry struct {
	member apis.Member
	typ    apis.ResolvedType
}

// registry is the default Registry implementation.
type registry struct {
	// caps supplies the marker and dynamic-proxy capabilities for the
	// candidate predicate.
	caps apis.CapabilityResolver
	// mat performs naming, synthesis, loading, and linking.
	mat apis.Materializer

	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// count tracks the number of generated substitutions.
	count int

	// forward maps canonical member key to *forwardEntry.
	forward sync.Map
	// reverse maps generated apis.ResolvedType to apis.Member. Written
	// only by successful generation.
	reverse sync.Map
	// wrappers maps generated apis.ResolvedType to its *SubstitutionType,
	// created once per type on first lookup.
	wrappers sync.Map
	// flight collapses concurrent first requests for the same member onto
	// one generation.
	flight singleflight.Group
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// ProxyType returns the proxy type for m, generating it on first request.
// Generation runs at most once per descriptor-equal member: concurrent first
// requests collapse onto a single materialization, and every successful
// call returns the identical ResolvedType.
func (r *registry) ProxyType(m apis.Member) (apis.ResolvedType, error) {
	if m == nil {
		return nil, ErrNilMember
	}
	key, err := descriptor.Key(m)
	if err != nil {
		return nil, err
	}

	// Fast read path: no locking once generated.
	if e, ok := r.forward.Load(key); ok {
		return e.(*forwardEntry).typ, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		// Re-check inside the flight in case a previous winner stored
		// meanwhile.
		if e, ok := r.forward.Load(key); ok {
			return e.(*forwardEntry).typ, nil
		}

		art, err := r.mat.Materialize(m)
		if err != nil {
			// Nothing is cached on failure; a later request would retry
			// generation from scratch rather than see a broken artifact.
			return nil, err
		}

		r.mu.Lock()
		r.forward.Store(key, &forwardEntry{member: m, typ: art.Type})
		r.reverse.Store(art.Type, m)
		r.count++
		r.mu.Unlock()
		return art.Type, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(apis.ResolvedType), nil
}

// MemberOf returns the member a generated proxy type stands for.
func (r *registry) MemberOf(t apis.ResolvedType) (apis.Member, bool) {
	if t == nil {
		return nil, false
	}
	if st, ok := t.(*SubstitutionType); ok {
		return st.Member(), true
	}
	if m, ok := r.reverse.Load(t); ok {
		return m.(apis.Member), true
	}
	return nil, false
}

// isCandidate reports whether t is a reflection-proxy candidate for
// substitution: assignable to both the marker capability and the generic
// dynamic-proxy capability. The conjunction keeps ordinary types that
// happen to implement only one of the two out of substitution.
func (r *registry) isCandidate(t apis.ResolvedType) bool {
	return r.caps.Marker().AssignableFrom(t) && r.caps.DynamicProxy().AssignableFrom(t)
}

// LookupType substitutes a generated proxy type with its wrapper, creating
// the wrapper on first request. Everything else passes through unchanged.
func (r *registry) LookupType(t apis.ResolvedType) apis.ResolvedType {
	if t == nil {
		return nil
	}
	// Wrappers are outputs, never inputs to wrap again.
	if _, ok := t.(*SubstitutionType); ok {
		return t
	}
	if !r.isCandidate(t) {
		return t
	}
	m, ok := r.reverse.Load(t)
	if !ok {
		// A proxy this registry did not generate is not ours to substitute.
		return t
	}

	if w, ok := r.wrappers.Load(t); ok {
		return w.(*SubstitutionType)
	}
	w, _ := r.wrappers.LoadOrStore(t, newSubstitutionType(t, m.(apis.Member)))
	return w.(*SubstitutionType)
}

// LookupMethod substitutes a method declared on a substituted proxy type,
// matched by name and signature. Everything else passes through unchanged.
func (r *registry) LookupMethod(m apis.ResolvedMethod) apis.ResolvedMethod {
	if m == nil {
		return nil
	}
	st, ok := r.LookupType(m.Declaring()).(*SubstitutionType)
	if !ok {
		return m
	}
	if sub := st.SubstitutionMethod(m); sub != nil {
		return sub
	}
	return m
}

// ResolveType unwraps a substitution wrapper to the entity it wraps. The
// exact left inverse of LookupType restricted to wrapper outputs.
func (r *registry) ResolveType(t apis.ResolvedType) apis.ResolvedType {
	if st, ok := t.(*SubstitutionType); ok {
		return st.Original()
	}
	return t
}

// ResolveMethod unwraps a substitution method to the method it wraps.
func (r *registry) ResolveMethod(m apis.ResolvedMethod) apis.ResolvedMethod {
	if sm, ok := m.(*SubstitutionMethod); ok {
		return sm.Original()
	}
	return m
}

// Entries returns a snapshot of all generated substitutions (order is
// unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.forward.Range(func(key, value any) bool {
		e := value.(*forwardEntry)
		entries = append(entries, apis.Entry{
			Key:    key.(string),
			Member: e.member,
			Type:   e.typ,
		})
		return true
	})
	return entries
}

// Count returns the number of generated substitutions.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset tears down all cached substitutions.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forward.Clear()
	r.reverse.Clear()
	r.wrappers.Clear()
	r.count = 0
}
