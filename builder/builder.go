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

package builder

import (
	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/capability"
	"aotc.dev/rsx/registry"
	"aotc.dev/rsx/synthesis"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildMaterializer builds the synthesis layer for cfg and env. With a nil
// env it returns an unbound materializer that refuses generation. With a
// bound env, capability resolution failure (marker or dynamic-proxy
// missing) is surfaced as a fatal error.
func (b *builder) BuildMaterializer(cfg apis.Config, env *apis.Environment, _ apis.Materializer) (apis.Materializer, error) {
	if env == nil {
		return synthesis.New(nil, nil, cfg), nil
	}
	caps, err := capability.NewResolver(env.Meta, cfg)
	if err != nil {
		return nil, err
	}
	return synthesis.New(env, caps, cfg), nil
}

// BuildRegistry builds the substitution registry for cfg, env, and mat.
// With a nil env it returns the passthrough registry (identity
// substitution, generation refused).
//
// Previous registries are never migrated: the reverse map may only be
// populated by this registry's own successful generations, so entries
// cannot be transplanted across instances.
func (b *builder) BuildRegistry(cfg apis.Config, env *apis.Environment, mat apis.Materializer, _ apis.Registry) (apis.Registry, error) {
	if env == nil {
		return registry.NewPassthrough(), nil
	}
	caps, err := capability.NewResolver(env.Meta, cfg)
	if err != nil {
		return nil, err
	}
	return registry.New(caps, mat), nil
}
