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

package apis

// Registry is the bidirectional, memoizing substitution cache between
// original compiler entities and their synthetic proxies. It intercepts the
// compiler's resolution calls: Lookup* substitutes, Resolve* inverts.
//
// The member-to-proxy mapping is a bijection over the lifetime of one
// compilation: the registry never produces two proxy types for equal
// members, and never maps one proxy type to two members. All operations are
// safe for concurrent use.
type Registry interface {
	// ProxyType returns the synthetic proxy type for m, generating
	// (naming, synthesis, loading, linking) on first request. Generation
	// happens at most once per descriptor-equal member, even under concurrent
	// first requests; every call returns the identical ResolvedType.
	ProxyType(m Member) (ResolvedType, error)

	// MemberOf returns the member a registry-generated proxy type stands
	// for. It reports false for types this registry did not generate.
	MemberOf(t ResolvedType) (Member, bool)

	// LookupType returns the substitution wrapper for a generated proxy
	// type, creating it on first request. Non-candidates, and candidates
	// this registry did not generate, pass through unchanged. Repeated
	// calls for the same type return the identical wrapper.
	LookupType(t ResolvedType) ResolvedType

	// LookupMethod returns the substitute for a method declared on a
	// substituted proxy type, matched by name and signature; any other
	// method passes through unchanged.
	LookupMethod(m ResolvedMethod) ResolvedMethod

	// ResolveType is the exact left inverse of LookupType restricted to
	// wrapper outputs: it unwraps a substitution wrapper to the entity it
	// wraps and returns anything else unchanged.
	ResolveType(t ResolvedType) ResolvedType

	// ResolveMethod is the symmetric left inverse of LookupMethod.
	ResolveMethod(m ResolvedMethod) ResolvedMethod

	// Entries returns a snapshot of all generated substitutions for
	// diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of generated substitutions.
	Count() int
	// Reset tears down all cached substitutions. The registry's lifetime
	// is one compilation; Reset separates independent runs.
	Reset()
}

// Entry is a single (member, proxy type) substitution in a Registry
// snapshot.
type Entry struct {
	// Key is the canonical member key the forward map is keyed by.
	Key string
	// Member is the original reflective member.
	Member Member
	// Type is the generated proxy type.
	Type ResolvedType
}
