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

package testkit

import (
	"aotc.dev/rsx/apis"
)

// Member is a plain apis.Member value for tests. Construct via NewField,
// NewMethod, or NewConstructor; each call returns a distinct instance so
// tests can verify descriptor-equality caching rather than instance
// identity.
type Member struct {
	kind      apis.MemberKind
	declaring string
	name      string
	params    []string
	ret       string
}

// Ensure Member implements apis.Member.
var _ apis.Member = (*Member)(nil)

// NewField describes a field member.
func NewField(declaring, name string) *Member {
	return &Member{kind: apis.KindField, declaring: declaring, name: name}
}

// NewMethod describes a method member.
func NewMethod(declaring, name, returnType string, params ...string) *Member {
	return &Member{
		kind:      apis.KindMethod,
		declaring: declaring,
		name:      name,
		ret:       returnType,
		params:    params,
	}
}

// NewConstructor describes a constructor member.
func NewConstructor(declaring string, params ...string) *Member {
	return &Member{kind: apis.KindConstructor, declaring: declaring, params: params}
}

// NewMemberOfKind builds a member with an arbitrary kind value. Tests use
// it to exercise the unsupported-kind contract violation.
func NewMemberOfKind(kind apis.MemberKind, declaring string) *Member {
	return &Member{kind: kind, declaring: declaring}
}

// Kind returns the member kind.
func (m *Member) Kind() apis.MemberKind { return m.kind }

// Declaring returns the declaring class name.
func (m *Member) Declaring() string { return m.declaring }

// Name returns the member name; empty for constructors.
func (m *Member) Name() string { return m.name }

// ParameterTypes returns the parameter type names in declaration order.
func (m *Member) ParameterTypes() []string { return m.params }

// ReturnType returns the return type name; empty except for methods.
func (m *Member) ReturnType() string { return m.ret }
