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

// Package naming derives globally unique, deterministic proxy class names
// from reflective members.
//
// The stable portion of a name is a pure function of the member's
// descriptor: two members with the same declaring class, kind, name,
// parameter types, and return type always yield the same stable name, and
// members differing in any of those never collide. Generated names may
// additionally carry a process-wide counter that disambiguates repeated
// definitions under a class space that cannot be reset; the counter is not
// part of the semantic identity.
package naming

import (
	"errors"
	"strconv"
	"strings"
	"sync/atomic"

	"aotc.dev/rsx/apis"
)

// Separator joins all name segments. Sanitization maps every character of
// nested/array/descriptor syntax onto it, so a sanitized segment can never
// smuggle in a fake separator boundary.
const Separator = "_"

// constructorToken is the member token used for constructors, which carry
// no name of their own.
const constructorToken = "constructor"

var (
	// ErrNilMember is returned when a nil member is provided.
	ErrNilMember = errors.New("rsx(naming): nil member provided")
	// ErrUnsupportedMember indicates a member that is none of field,
	// method, or constructor. Proxies are defined only for those three
	// kinds; anything else is a caller contract violation.
	ErrUnsupportedMember = errors.New("rsx(naming): unsupported member kind")
)

// sanitizer replaces each of the characters that carry structure in
// class names ($ for nesting, . for packages, [ and ; for array
// descriptors) with the separator.
var sanitizer = strings.NewReplacer(
	"$", Separator,
	".", Separator,
	"[", Separator,
	";", Separator,
)

// counter is the process-wide disambiguation counter shared by all
// generated names.
var counter atomic.Int64

// Sanitize rewrites a fully-qualified type name so it is safe to embed as
// a single name segment.
func Sanitize(typeName string) string {
	return sanitizer.Replace(typeName)
}

// StableName derives the deterministic portion of the proxy class name for
// m: cfg.NamePrefix, the sanitized declaring class, and the member
// signature token, joined by Separator.
func StableName(m apis.Member, cfg apis.Config) (string, error) {
	token, err := memberToken(m)
	if err != nil {
		return "", err
	}
	return cfg.NamePrefix + Separator + Sanitize(m.Declaring()) + Separator + token, nil
}

// GeneratedName derives the name actually submitted to the class space:
// the stable name, plus (when cfg.CounterSuffix is set) the separator and
// the next counter value. With the suffix enabled the returned name is
// never reused within one process, even when successive compilations
// redefine the same member.
func GeneratedName(m apis.Member, cfg apis.Config) (string, error) {
	stable, err := StableName(m, cfg)
	if err != nil {
		return "", err
	}
	if !cfg.CounterSuffix {
		return stable, nil
	}
	return stable + Separator + strconv.FormatInt(counter.Add(1), 10), nil
}

// ResetCounter restarts the disambiguation counter. Call between
// independent compilation runs when the host process performs more than
// one; never call while a compilation is in flight.
func ResetCounter() {
	counter.Store(0)
}

// CounterValue returns the number of generated names so far. Diagnostics
// only.
func CounterValue() int64 {
	return counter.Load()
}

// memberToken computes the member signature token: the part of the name
// that distinguishes members of the same declaring class.
func memberToken(m apis.Member) (string, error) {
	if m == nil {
		return "", ErrNilMember
	}

	var b strings.Builder
	switch m.Kind() {
	case apis.KindField:
		// Field names are unique per class; the name alone suffices.
		return m.Name(), nil

	case apis.KindMethod:
		b.WriteString(m.Name())
		b.WriteString(Separator)
		b.WriteString(Sanitize(m.ReturnType()))

	case apis.KindConstructor:
		b.WriteString(constructorToken)

	default:
		return "", ErrUnsupportedMember
	}

	// Executable kinds append the parameter segment, separator-joined in
	// declaration order. The segment separator is written even for zero
	// parameters: the trailing separator is what keeps a no-arg method
	// token distinct from a field whose name happens to contain the
	// separator (identifiers may legally contain it).
	b.WriteString(Separator)
	for i, p := range m.ParameterTypes() {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(Sanitize(p))
	}
	return b.String(), nil
}
