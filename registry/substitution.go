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

package registry

import (
	"sync"

	"aotc.dev/rsx/apis"
)

// SubstitutionType presents a generated proxy type to the rest of the
// compiler as an ordinary resolved type while retaining the member it
// stands for and the underlying type it wraps. Created once per generated
// type, cached by the registry, and reused for every subsequent lookup.
type SubstitutionType struct {
	// original is the loaded proxy type this wrapper stands in for.
	original apis.ResolvedType
	// member is the reflective member the proxy realizes.
	member apis.Member
	// methods caches substitution methods by name+signature.
	methods sync.Map
}

// Ensure SubstitutionType presents as an ordinary resolved type.
var _ apis.ResolvedType = (*SubstitutionType)(nil)

// newSubstitutionType wraps a generated proxy type.
func newSubstitutionType(original apis.ResolvedType, member apis.Member) *SubstitutionType {
	return &SubstitutionType{original: original, member: member}
}

// TypeName returns the wrapped type's name.
func (t *SubstitutionType) TypeName() string {
	return t.original.TypeName()
}

// AssignableFrom delegates to the wrapped type.
func (t *SubstitutionType) AssignableFrom(other apis.ResolvedType) bool {
	return t.original.AssignableFrom(other)
}

// Original returns the wrapped resolved type.
func (t *SubstitutionType) Original() apis.ResolvedType {
	return t.original
}

// Member returns the reflective member the proxy realizes.
func (t *SubstitutionType) Member() apis.Member {
	return t.member
}

// SubstitutionMethod returns the substitute for a method declared on this
// proxy type, or nil when the method is not one of the accessor entry
// points for the member's kind. The substitute is created once per
// (name, signature) and reused.
func (t *SubstitutionType) SubstitutionMethod(m apis.ResolvedMethod) apis.ResolvedMethod {
	if m == nil || !isAccessorEntryPoint(t.member.Kind(), m.MethodName()) {
		return nil
	}

	key := m.MethodName() + m.Signature()
	if v, ok := t.methods.Load(key); ok {
		return v.(*SubstitutionMethod)
	}
	v, _ := t.methods.LoadOrStore(key, &SubstitutionMethod{original: m, declaring: t})
	return v.(*SubstitutionMethod)
}

// isAccessorEntryPoint reports whether name is an accessor entry point the
// generated proxy realizes for the given member kind. Anything else on the
// proxy (Object plumbing, marker defaults) is left to ordinary resolution.
func isAccessorEntryPoint(kind apis.MemberKind, name string) bool {
	switch kind {
	case apis.KindField:
		return name == "get" || name == "set"
	case apis.KindMethod:
		return name == "invoke"
	case apis.KindConstructor:
		return name == "newInstance"
	default:
		return false
	}
}

// SubstitutionMethod presents a proxy method as an ordinary resolved
// method while retaining the method it wraps. Its declaring type is the
// SubstitutionType that created it.
type SubstitutionMethod struct {
	// original is the method this wrapper stands in for.
	original apis.ResolvedMethod
	// declaring is the substitution type that owns this method.
	declaring *SubstitutionType
}

// Ensure SubstitutionMethod presents as an ordinary resolved method.
var _ apis.ResolvedMethod = (*SubstitutionMethod)(nil)

// MethodName returns the wrapped method's name.
func (m *SubstitutionMethod) MethodName() string {
	return m.original.MethodName()
}

// Declaring returns the substitution type that owns this method.
func (m *SubstitutionMethod) Declaring() apis.ResolvedType {
	return m.declaring
}

// Signature returns the wrapped method's signature.
func (m *SubstitutionMethod) Signature() string {
	return m.original.Signature()
}

// Original returns the wrapped resolved method.
func (m *SubstitutionMethod) Original() apis.ResolvedMethod {
	return m.original
}
