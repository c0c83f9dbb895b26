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

// Package testkit provides an in-memory closed-world environment for
// exercising the substitution layer in tests: a class table with
// assignability, a counting meta-access service, a class space with
// define/link bookkeeping, and a fake synthesis backend.
//
// The fake "bytecode" is a readable string encoding of the class name and
// its supertypes. That is deliberate: the blob is opaque by contract, the
// substitution layer must pass it through untouched, and a readable
// encoding makes test failures diagnosable.
package testkit

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"aotc.dev/rsx/apis"
)

// ErrUnknownClass is returned by the meta-access service for names absent
// from the world.
var ErrUnknownClass = errors.New("testkit: unknown class")

// Class is an in-world class. It implements apis.ResolvedType.
type Class struct {
	name   string
	supers map[string]bool
}

// Ensure Class implements apis.ResolvedType.
var _ apis.ResolvedType = (*Class)(nil)

// TypeName returns the fully-qualified class name.
func (c *Class) TypeName() string { return c.name }

// AssignableFrom reports whether t is c or names c among its supertypes.
func (c *Class) AssignableFrom(t apis.ResolvedType) bool {
	if t == nil {
		return false
	}
	if o, ok := t.(*Class); ok {
		return o.name == c.name || o.supers[c.name]
	}
	return t.TypeName() == c.name
}

// loadedClass is the class-space token for a defined class.
type loadedClass struct {
	name string
}

// Ensure loadedClass implements apis.LoadedClass.
var _ apis.LoadedClass = loadedClass{}

// ClassName returns the name the class was defined under.
func (c loadedClass) ClassName() string { return c.name }

// World is an in-memory closed-world snapshot: classes, a meta-access
// service, a class space, and a synthesis backend, all sharing one table.
// All methods are safe for concurrent use.
type World struct {
	mu      sync.Mutex
	classes map[string]*Class
	linked  map[string]bool
	lookups map[string]int

	defineCalls int
	linkCalls   int
	synthCalls  int

	// proxySuper is the superclass the fake backend gives every generated
	// proxy, matching the environment's dynamic-proxy capability.
	proxySuper string

	// failure injection for error-path tests
	synthErr  error
	defineErr error
	linkErr   error
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		classes:    make(map[string]*Class),
		linked:     make(map[string]bool),
		lookups:    make(map[string]int),
		proxySuper: "java.lang.reflect.Proxy",
	}
}

// SetProxySuper overrides the superclass the fake backend gives generated
// proxies. Use together with a non-default DynamicProxyClass.
func (w *World) SetProxySuper(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.proxySuper = name
}

// AddClass registers a class with the given supertypes and returns it.
// Re-adding a name replaces the previous class.
func (w *World) AddClass(name string, supers ...string) *Class {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addLocked(name, supers...)
}

func (w *World) addLocked(name string, supers ...string) *Class {
	c := &Class{name: name, supers: make(map[string]bool, len(supers))}
	for _, s := range supers {
		c.supers[s] = true
	}
	w.classes[name] = c
	w.linked[name] = true
	return c
}

// SeedRuntime registers the runtime classes the substitution layer
// depends on: the marker and dynamic-proxy capabilities from cfg, and the
// three accessor interfaces under ns (typically one of
// cfg.CapabilityNamespaces).
func (w *World) SeedRuntime(cfg apis.Config, ns string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.addLocked(cfg.MarkerClass)
	w.addLocked(cfg.DynamicProxyClass)
	w.addLocked(ns + ".FieldAccessor")
	w.addLocked(ns + ".MethodAccessor")
	w.addLocked(ns + ".ConstructorAccessor")
}

// Class returns a registered class by name.
func (w *World) Class(name string) (*Class, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.classes[name]
	return c, ok
}

// IsLinked reports whether a defined class has been linked.
func (w *World) IsLinked(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.linked[name]
}

// DefineCalls returns the number of Define invocations.
func (w *World) DefineCalls() int { w.mu.Lock(); defer w.mu.Unlock(); return w.defineCalls }

// LinkCalls returns the number of Link invocations.
func (w *World) LinkCalls() int { w.mu.Lock(); defer w.mu.Unlock(); return w.linkCalls }

// SynthCalls returns the number of Synthesize invocations.
func (w *World) SynthCalls() int { w.mu.Lock(); defer w.mu.Unlock(); return w.synthCalls }

// Lookups returns how often a class name was looked up via meta access.
func (w *World) Lookups(name string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lookups[name]
}

// FailSynthesis makes the synthesis backend fail with err (nil clears).
func (w *World) FailSynthesis(err error) { w.mu.Lock(); defer w.mu.Unlock(); w.synthErr = err }

// FailDefine makes Define fail with err (nil clears).
func (w *World) FailDefine(err error) { w.mu.Lock(); defer w.mu.Unlock(); w.defineErr = err }

// FailLink makes Link fail with err (nil clears).
func (w *World) FailLink(err error) { w.mu.Lock(); defer w.mu.Unlock(); w.linkErr = err }

// Env returns an environment whose meta access, class space, and
// synthesizer all operate on this world.
func (w *World) Env() *apis.Environment {
	return &apis.Environment{Meta: metaAccess{w}, Space: classSpace{w}, Synth: synthesizer{w}}
}

// metaAccess implements apis.MetaAccess over the world's class table.
type metaAccess struct{ w *World }

var _ apis.MetaAccess = metaAccess{}

// LookupType returns the registered class for a name.
func (m metaAccess) LookupType(className string) (apis.ResolvedType, error) {
	m.w.mu.Lock()
	defer m.w.mu.Unlock()
	m.w.lookups[className]++
	c, ok := m.w.classes[className]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	return c, nil
}

// classSpace implements apis.ClassSpace over the world's class table.
type classSpace struct{ w *World }

var _ apis.ClassSpace = classSpace{}

// Define decodes the blob and registers the class, unlinked.
func (s classSpace) Define(name string, code []byte) (apis.LoadedClass, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.defineCalls++
	if s.w.defineErr != nil {
		return nil, s.w.defineErr
	}

	blobName, supers, err := DecodeBlob(code)
	if err != nil {
		return nil, err
	}
	if blobName != name {
		return nil, fmt.Errorf("testkit: blob name %q does not match defined name %q", blobName, name)
	}
	if _, exists := s.w.classes[name]; exists {
		return nil, fmt.Errorf("testkit: duplicate class definition %q", name)
	}

	s.w.addLocked(name, supers...)
	s.w.linked[name] = false
	return loadedClass{name: name}, nil
}

// Link marks a defined class as linked.
func (s classSpace) Link(c apis.LoadedClass) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.linkCalls++
	if s.w.linkErr != nil {
		return s.w.linkErr
	}
	if _, ok := s.w.classes[c.ClassName()]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, c.ClassName())
	}
	s.w.linked[c.ClassName()] = true
	return nil
}

// synthesizer implements apis.Synthesizer: the emitted "bytecode" encodes
// the class name and its supertypes (the requested capabilities plus the
// dynamic-proxy superclass every generated proxy extends).
type synthesizer struct{ w *World }

var _ apis.Synthesizer = synthesizer{}

// Synthesize emits a fake bytecode blob for name implementing capabilities.
func (s synthesizer) Synthesize(name string, capabilities []apis.ResolvedType) ([]byte, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.synthCalls++
	if s.w.synthErr != nil {
		return nil, s.w.synthErr
	}

	supers := make([]string, 0, len(capabilities)+1)
	for _, c := range capabilities {
		supers = append(supers, c.TypeName())
	}
	// Generated dynamic proxies extend the environment's proxy superclass.
	supers = append(supers, s.w.proxySuper)
	return EncodeBlob(name, supers), nil
}

// EncodeBlob encodes a fake bytecode blob: the class name, then one
// supertype per line.
func EncodeBlob(name string, supers []string) []byte {
	lines := append([]string{name}, supers...)
	return []byte(strings.Join(lines, "\n"))
}

// DecodeBlob inverts EncodeBlob.
func DecodeBlob(code []byte) (name string, supers []string, err error) {
	lines := strings.Split(string(code), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return "", nil, errors.New("testkit: empty bytecode blob")
	}
	return lines[0], lines[1:], nil
}
