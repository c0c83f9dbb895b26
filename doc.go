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

// Package rsx is the reflection substitution layer of an ahead-of-time
// compiler.
//
// An AOT compiler works over a closed-world snapshot of types, so every
// reflective accessor a program might use at runtime (read a field, invoke
// a method, invoke a constructor) must be materialized as a concrete,
// compiler-visible type before compilation finishes. rsx synthesizes those
// accessor types deterministically, makes them indistinguishable from real
// types to the rest of the compiler, and keeps the mapping invertible:
// every synthetic construct can be traced back to the member it stands
// for, and repeated requests for the same member yield the same synthetic
// identity within one compilation.
//
// # Design
//
// The core of rsx is a read-mostly global snapshot (state). The snapshot
// holds five things:
//
//   - Config: naming and capability-resolution knobs (name prefix, the
//     disambiguation-counter toggle, accessor capability namespaces, the
//     marker and dynamic-proxy class names).
//
//   - Environment: the three external collaborators, injected by the host
//     compiler. MetaAccess turns class names into the compiler's resolved
//     types; ClassSpace defines and links generated bytecode; Synthesizer
//     is the opaque backend that emits an implementation of "interface set
//     {X, Y} bound to member M".
//
//   - Materializer: the synthesis layer. Given a member it derives the
//     generated name, resolves the accessor capability for the member's
//     kind, asks the Synthesizer for bytecode, then defines and links the
//     class (exclusively, the class space is one shared resource) and
//     resolves the loaded class to a compiler-level type.
//
//   - Registry: the bidirectional, memoizing substitution cache. Forward:
//     member descriptor to generated proxy type, generated at most once
//     per member (single-flight). Reverse: generated type to member,
//     populated only by successful generation. On top of the two maps sit
//     the four resolution-pipeline hooks: LookupType/LookupMethod
//     substitute, ResolveType/ResolveMethod invert.
//
//   - Builder: a pluggable factory that constructs Materializer and
//     Registry instances for a given Config and Environment.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state
// and atomically swap it in, so resolution hooks are lock-free on the hot
// path and concurrent compiler workers always see a consistent snapshot.
//
// # Substitution semantics
//
// A type is a candidate for substitution only when it is assignable to
// both the reflection-proxy marker capability and the environment's
// generic dynamic-proxy capability. The conjunction keeps ordinary types
// that happen to implement one of the two out of substitution: rsx only
// substitutes types it is prepared to have generated itself.
//
//	proxy, err := rsx.ProxyType(member)   // generate (once) and cache
//	sub := rsx.LookupType(proxy)          // wrapper presenting as ordinary type
//	orig := rsx.ResolveType(sub)          // exact inverse: the wrapped type
//	m, ok := rsx.MemberOf(proxy)          // back to the member descriptor
//
// Non-candidates pass through both Lookup and Resolve unchanged.
//
// # Failure model
//
// Nothing in this layer is best-effort. A missing capability interface, a
// synthesis backend failure, or a class that cannot be defined or linked
// means the compiled program would silently lack a reflective operation it
// was built to support, so every such failure is surfaced as an
// unrecoverable error and nothing partial is ever cached. A member that is
// none of field, method, or constructor is a caller bug and fails the same
// way.
//
// # Concurrency model
//
// Reads (LookupType, ResolveType, ProxyType cache hits, ...) are wait-free
// at the snapshot level; the Registry's own caches support concurrent
// lookups. First-time generation for a member is serialized per member
// key: concurrent first requests collapse onto one synthesis, everyone
// else observes the winner's result. Defining and linking one class in the
// shared class space is exclusive for the duration of that registration.
// The name disambiguation counter is a process-wide atomic; ResetNames
// separates independent compilation runs.
//
// # Usage pattern in a compiler
//
//  1. Bind the environment once per compilation:
//
//     rsx.Bind(&apis.Environment{Meta: meta, Space: space, Synth: backend})
//
//  2. When reachability analysis registers a reflective member, request
//     its proxy: rsx.ProxyType(member).
//
//  3. Route the resolution pipeline's type/method lookups through
//     rsx.LookupType / rsx.LookupMethod and the inverse direction through
//     rsx.ResolveType / rsx.ResolveMethod.
//
//  4. Between independent compilations: rsx.Reset() and, if the host
//     process reuses one class space, keep the counter running; otherwise
//     rsx.ResetNames().
//
//  5. In tests, call rsx.SetAll(...) to get deterministic snapshots and to
//     inject mock layers.
//
// # Scope
//
// rsx is intentionally small. It does not implement reflection semantics,
// reachability analysis, or bytecode verification, and it owns no CLI,
// file format, or network surface. It solves one job:
//
//	"For every reflectively-accessed member, produce exactly one
//	 compiler-visible synthetic type, and keep that mapping invertible."
//
// Everything else belongs to the host compiler.
package rsx
