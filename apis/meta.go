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

// ResolvedType is the compiler's internal representation of a resolved
// class. Implementations are owned by the host compiler (or by testkit).
//
// Implementations must be comparable: the registry keys its reverse map by
// ResolvedType identity, the same way the host compiler keys resolved-type
// tables.
type ResolvedType interface {
	// TypeName returns the fully-qualified class name.
	TypeName() string
	// AssignableFrom reports whether a value of type t is assignable to
	// this type (this type is a supertype or equal).
	AssignableFrom(t ResolvedType) bool
}

// ResolvedMethod is the compiler's internal representation of a resolved
// method.
type ResolvedMethod interface {
	// MethodName returns the method's simple name.
	MethodName() string
	// Declaring returns the method's declaring type.
	Declaring() ResolvedType
	// Signature returns the parameter/return descriptor used to match
	// methods of the same name.
	Signature() string
}

// LoadedClass is the opaque token a ClassSpace hands back for a defined
// class. It is only ever passed back into the same ClassSpace or used to
// look the class up by name.
type LoadedClass interface {
	// ClassName returns the fully-qualified name the class was defined under.
	ClassName() string
}

// MetaAccess is the compiler's general type-resolution service. The
// substitution layer wraps it; it never replaces it.
type MetaAccess interface {
	// LookupType turns a fully-qualified class name into the compiler's
	// resolved representation. An unknown name is an error.
	LookupType(className string) (ResolvedType, error)
}
