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

// Artifact is the generated, loaded, linked realization of a synthetic
// proxy type. It is produced only by a fully successful materialization;
// an unlinked artifact never escapes the synthesis layer.
type Artifact struct {
	// Name is the generated (stable + disambiguated) class name.
	Name string
	// Loaded is the class-space token for the defined class.
	Loaded LoadedClass
	// Type is the compiler's resolved representation of the loaded class.
	Type ResolvedType
}

// Materializer turns a reflective member into a loaded, linked proxy
// artifact: naming, code synthesis, definition, linkage. It performs no
// caching; at-most-once generation per member is the registry's job.
type Materializer interface {
	// Materialize synthesizes, loads, and links the proxy class for m.
	// Any failure is unrecoverable for the compilation and is returned,
	// never absorbed.
	Materialize(m Member) (Artifact, error)
}
