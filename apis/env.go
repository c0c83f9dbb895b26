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

// ClassSpace is the execution environment's class definition surface: one
// logical class space per compilation. Define and Link mutate shared state
// and are serialized by the caller for each registration; ordinary lookups
// may proceed concurrently.
type ClassSpace interface {
	// Define loads a synthesized bytecode blob under the given name and
	// returns the loaded-but-not-yet-linked class.
	Define(name string, code []byte) (LoadedClass, error)
	// Link triggers linkage/verification of a previously defined class.
	// A defined class is not usable until Link succeeds.
	Link(c LoadedClass) error
}

// Synthesizer is the opaque code-synthesis backend. Given a class name and
// the capability interfaces the class must implement, it returns a bytecode
// blob whose runtime behavior dispatches to the original member. The blob
// is opaque to this library; it is passed to ClassSpace.Define untouched.
type Synthesizer interface {
	Synthesize(name string, capabilities []ResolvedType) ([]byte, error)
}

// Environment bundles the three external collaborators the substitution
// layer consumes. All fields must be non-nil for a bound environment.
type Environment struct {
	// Meta is the compiler's type-resolution service.
	Meta MetaAccess
	// Space is the execution environment's class space.
	Space ClassSpace
	// Synth is the bytecode synthesis backend.
	Synth Synthesizer
}
