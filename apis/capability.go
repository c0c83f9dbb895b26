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

// CapabilityResolver resolves the execution environment's accessor
// capability interfaces. The accessor interfaces live in environment
// namespaces that differ across versions, so resolution tries an ordered
// candidate list and memoizes the first hit.
type CapabilityResolver interface {
	// Accessor returns the accessor capability for a member kind:
	// FieldAccessor, MethodAccessor, or ConstructorAccessor. Resolution
	// failure is unrecoverable for the compilation.
	Accessor(kind MemberKind) (ResolvedType, error)
	// Marker returns the reflection-proxy marker capability every
	// generated proxy implements.
	Marker() ResolvedType
	// DynamicProxy returns the environment's generic dynamic-proxy
	// capability. Together with Marker it forms the candidate predicate.
	DynamicProxy() ResolvedType
}
