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
	"aotc.dev/rsx/apis"
)

// NewPassthrough constructs the registry used before an environment is
// bound: every lookup and resolve is the identity, and generation is
// refused. It keeps the facade total without faking substitutions.
func NewPassthrough() apis.Registry {
	return passthrough{}
}

// passthrough is the unbound Registry.
type passthrough struct{}

// Ensure passthrough implements apis.Registry.
var _ apis.Registry = passthrough{}

// ProxyType refuses generation: there is no environment to generate into.
func (passthrough) ProxyType(m apis.Member) (apis.ResolvedType, error) {
	if m == nil {
		return nil, ErrNilMember
	}
	return nil, ErrNoEnvironment
}

// MemberOf reports no known proxies.
func (passthrough) MemberOf(apis.ResolvedType) (apis.Member, bool) { return nil, false }

// LookupType returns t unchanged.
func (passthrough) LookupType(t apis.ResolvedType) apis.ResolvedType { return t }

// LookupMethod returns m unchanged.
func (passthrough) LookupMethod(m apis.ResolvedMethod) apis.ResolvedMethod { return m }

// ResolveType returns t unchanged.
func (passthrough) ResolveType(t apis.ResolvedType) apis.ResolvedType { return t }

// ResolveMethod returns m unchanged.
func (passthrough) ResolveMethod(m apis.ResolvedMethod) apis.ResolvedMethod { return m }

// Entries reports no substitutions.
func (passthrough) Entries() []apis.Entry { return nil }

// Count reports no substitutions.
func (passthrough) Count() int { return 0 }

// Reset has nothing to tear down.
func (passthrough) Reset() {}
