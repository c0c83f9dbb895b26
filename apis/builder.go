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

// Builder composes Materializer and Registry from a Config and an optional
// Environment binding. Implementations may inspect previous instances
// (prev*), or ignore them.
//
// A nil env must yield working unbound layers (identity substitution,
// generation refused), never nil. A non-nil env with unresolvable
// capabilities is a configuration-fatal error.
type Builder interface {
	// BuildMaterializer constructs the synthesis layer for Config and env.
	BuildMaterializer(cfg Config, env *Environment, prev Materializer) (Materializer, error)
	// BuildRegistry constructs the substitution registry for Config, env,
	// and the materializer it generates through.
	BuildRegistry(cfg Config, env *Environment, mat Materializer, prev Registry) (Registry, error)
}
