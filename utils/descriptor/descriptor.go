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

package descriptor

import (
	"errors"
	"strings"

	"aotc.dev/rsx/apis"
)

var (
	// ErrNilMember is returned when a nil member is provided.
	ErrNilMember = errors.New("rsx(descriptor): nil member provided")
	// ErrNoDeclaring is returned when a member has no declaring class.
	ErrNoDeclaring = errors.New("rsx(descriptor): member has no declaring class")
	// ErrUnsupportedKind indicates a member that is none of field, method,
	// or constructor. This is a caller contract violation, not an input error.
	ErrUnsupportedKind = errors.New("rsx(descriptor): unsupported member kind")
)

// Key derives the canonical descriptor key for a member.
//
// Two members are substitution-equal exactly when their keys are equal:
// the key covers declaring class, kind, name, parameter types in order,
// and return type. The registry's forward cache and its single-flight
// group are keyed by this string, so equal-but-distinct member instances
// collapse onto one cache slot.
//
// Key layout (readable on purpose, it shows up in diagnostics):
//
//	com.example.Box#field:value
//	com.example.Box#method:get(java.lang.String)int
//	com.example.Box#constructor:(int,int)
func Key(m apis.Member) (string, error) {
	if m == nil {
		return "", ErrNilMember
	}
	declaring := m.Declaring()
	if declaring == "" {
		return "", ErrNoDeclaring
	}

	var b strings.Builder
	b.WriteString(declaring)
	b.WriteByte('#')

	switch m.Kind() {
	case apis.KindField:
		b.WriteString("field:")
		b.WriteString(m.Name())

	case apis.KindMethod:
		b.WriteString("method:")
		b.WriteString(m.Name())
		writeParams(&b, m.ParameterTypes())
		b.WriteString(m.ReturnType())

	case apis.KindConstructor:
		b.WriteString("constructor:")
		writeParams(&b, m.ParameterTypes())

	default:
		return "", ErrUnsupportedKind
	}

	return b.String(), nil
}

// writeParams appends "(p1,p2,...)" to b.
func writeParams(b *strings.Builder, params []string) {
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p)
	}
	b.WriteByte(')')
}
