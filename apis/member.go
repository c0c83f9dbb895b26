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

// MemberKind discriminates the three reflective member categories that can
// be substituted. Any other value is a caller bug, not a user input error.
type MemberKind int

const (
	// KindField is a reflective field access (get/set).
	KindField MemberKind = iota
	// KindMethod is a reflective method invocation.
	KindMethod
	// KindConstructor is a reflective constructor invocation.
	KindConstructor
)

// String returns the lower-case kind token.
func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Member describes a reflectively accessed field, method, or constructor
// from the compiler's closed-world snapshot.
//
// Members are owned by the host compiler and must be immutable. Two Members
// are considered equal when declaring class, kind, name, parameter types,
// and (for methods) return type all match; equality is by descriptor, never
// by instance identity.
type Member interface {
	// Kind reports whether this member is a field, method, or constructor.
	Kind() MemberKind
	// Declaring returns the fully-qualified name of the declaring class.
	Declaring() string
	// Name returns the member's simple name. Empty for constructors.
	Name() string
	// ParameterTypes returns the fully-qualified parameter type names in
	// declaration order. Empty for fields.
	ParameterTypes() []string
	// ReturnType returns the fully-qualified return type name for methods.
	// Empty for fields and constructors.
	ReturnType() string
}
