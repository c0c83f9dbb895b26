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

// Package capability resolves the execution environment's accessor
// capability interfaces across environment versions.
//
// The accessor interfaces (FieldAccessor, MethodAccessor,
// ConstructorAccessor) live under namespaces that differ between
// environment versions, so resolution walks an ordered candidate list and
// memoizes the first hit. A capability that resolves under no candidate
// namespace is a configuration-fatal condition: the compiled program would
// be missing behavior it was built to support.
package capability

import (
	"errors"
	"fmt"
	"sync"

	"aotc.dev/rsx/apis"
)

// ErrCapabilityUnresolved is returned when a required capability interface
// cannot be located in the environment. Unrecoverable for the compilation.
var ErrCapabilityUnresolved = errors.New("rsx(capability): required capability interface not found")

// accessorSimpleName maps a member kind to the simple name of its accessor
// capability interface.
func accessorSimpleName(kind apis.MemberKind) (string, bool) {
	switch kind {
	case apis.KindField:
		return "FieldAccessor", true
	case apis.KindMethod:
		return "MethodAccessor", true
	case apis.KindConstructor:
		return "ConstructorAccessor", true
	default:
		return "", false
	}
}

// NewResolver constructs an apis.CapabilityResolver over meta.
//
// The marker and dynamic-proxy capabilities are resolved eagerly: they gate
// every candidate-predicate decision, so a registry must never be built on
// an environment that lacks them. Accessor interfaces are resolved lazily,
// once per kind.
func NewResolver(meta apis.MetaAccess, cfg apis.Config) (apis.CapabilityResolver, error) {
	marker, err := meta.LookupType(cfg.MarkerClass)
	if err != nil {
		return nil, fmt.Errorf("%w: marker %q: %v", ErrCapabilityUnresolved, cfg.MarkerClass, err)
	}
	dynProxy, err := meta.LookupType(cfg.DynamicProxyClass)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic proxy %q: %v", ErrCapabilityUnresolved, cfg.DynamicProxyClass, err)
	}
	return &resolver{
		meta:       meta,
		namespaces: append([]string(nil), cfg.CapabilityNamespaces...),
		marker:     marker,
		dynProxy:   dynProxy,
	}, nil
}

// resolver is the default CapabilityResolver: ordered namespace candidates,
// first success memoized per kind.
type resolver struct {
	// meta is the compiler's type-resolution service.
	meta apis.MetaAccess
	// namespaces are the candidate namespaces, tried in order.
	namespaces []string
	// marker is the reflection-proxy marker capability.
	marker apis.ResolvedType
	// dynProxy is the generic dynamic-proxy capability.
	dynProxy apis.ResolvedType

	// mu guards accessors; resolution for a kind runs at most once.
	mu sync.Mutex
	// accessors memoizes resolved accessor capabilities by kind.
	accessors map[apis.MemberKind]apis.ResolvedType
}

// Ensure resolver implements apis.CapabilityResolver.
var _ apis.CapabilityResolver = (*resolver)(nil)

// Accessor resolves the accessor capability for kind, trying each candidate
// namespace in order and memoizing the first success.
func (r *resolver) Accessor(kind apis.MemberKind) (apis.ResolvedType, error) {
	simple, ok := accessorSimpleName(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no accessor interface for member kind %v", ErrCapabilityUnresolved, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.accessors[kind]; ok {
		return t, nil
	}
	for _, ns := range r.namespaces {
		t, err := r.meta.LookupType(ns + "." + simple)
		if err != nil {
			continue
		}
		if r.accessors == nil {
			r.accessors = make(map[apis.MemberKind]apis.ResolvedType)
		}
		r.accessors[kind] = t
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s not found under namespaces %v", ErrCapabilityUnresolved, simple, r.namespaces)
}

// Marker returns the reflection-proxy marker capability.
func (r *resolver) Marker() apis.ResolvedType {
	return r.marker
}

// DynamicProxy returns the generic dynamic-proxy capability.
func (r *resolver) DynamicProxy() apis.ResolvedType {
	return r.dynProxy
}
