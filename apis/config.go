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

// Config carries read-only substitution knobs that influence naming and
// capability resolution. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// NamePrefix is the namespace prefix every generated proxy class name
	// starts with. It is used verbatim, never sanitized.
	NamePrefix string

	// CounterSuffix controls whether generated names carry the process-wide
	// disambiguation counter. The counter keeps names unique when
	// successive compilations redefine the "same" member under a class
	// space that cannot be reset; it is not part of the semantic identity.
	CounterSuffix bool

	// CapabilityNamespaces lists the environment namespaces the accessor
	// capability interfaces are looked up under, tried in order. The
	// accessor interfaces move between namespaces across environment
	// versions.
	CapabilityNamespaces []string

	// MarkerClass is the fully-qualified name of the reflection-proxy
	// marker capability every generated proxy implements.
	MarkerClass string

	// DynamicProxyClass is the fully-qualified name of the environment's
	// generic dynamic-proxy capability.
	DynamicProxyClass string
}
