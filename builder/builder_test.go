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

package builder_test

import (
	"errors"
	"testing"

	"aotc.dev/rsx/builder"
	"aotc.dev/rsx/capability"
	"aotc.dev/rsx/config"
	"aotc.dev/rsx/registry"
	"aotc.dev/rsx/synthesis"
	"aotc.dev/rsx/testkit"
)

// TestBuild_Unbound asserts that a nil environment still produces working
// layers: identity substitution, generation refused.
func TestBuild_Unbound(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	mat, err := b.BuildMaterializer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("BuildMaterializer: %v", err)
	}
	if mat == nil {
		t.Fatal("BuildMaterializer returned nil")
	}
	if _, err := mat.Materialize(testkit.NewField("com.example.Box", "value")); !errors.Is(err, synthesis.ErrNoEnvironment) {
		t.Fatalf("unbound materializer: err = %v, want ErrNoEnvironment", err)
	}

	reg, err := b.BuildRegistry(cfg, nil, mat, nil)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}
	if _, err := reg.ProxyType(testkit.NewField("com.example.Box", "value")); !errors.Is(err, registry.ErrNoEnvironment) {
		t.Fatalf("unbound registry: err = %v, want ErrNoEnvironment", err)
	}

	w := testkit.NewWorld()
	c := w.AddClass("com.example.Box")
	if reg.LookupType(c) != c || reg.ResolveType(c) != c {
		t.Fatal("unbound registry changed a type")
	}
}

// TestBuild_Bound asserts that a seeded environment yields a generating
// stack end to end.
func TestBuild_Bound(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.SeedRuntime(cfg, "jdk.internal.reflect")
	env := w.Env()

	mat, err := b.BuildMaterializer(cfg, env, nil)
	if err != nil {
		t.Fatalf("BuildMaterializer: %v", err)
	}
	reg, err := b.BuildRegistry(cfg, env, mat, nil)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	m := testkit.NewField("com.example.Box", "value")
	proxy, err := reg.ProxyType(m)
	if err != nil {
		t.Fatalf("ProxyType: %v", err)
	}
	sub := reg.LookupType(proxy)
	if sub == proxy {
		t.Fatal("generated proxy not substituted")
	}
	if reg.ResolveType(sub) != proxy {
		t.Fatal("resolve did not invert lookup")
	}
}

// TestBuild_MissingCapabilitiesIsFatal asserts that an environment lacking
// the marker capability fails construction instead of degrading.
func TestBuild_MissingCapabilitiesIsFatal(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.AddClass(cfg.DynamicProxyClass) // marker deliberately absent
	env := w.Env()

	if _, err := b.BuildMaterializer(cfg, env, nil); !errors.Is(err, capability.ErrCapabilityUnresolved) {
		t.Fatalf("BuildMaterializer: err = %v, want ErrCapabilityUnresolved", err)
	}
	if _, err := b.BuildRegistry(cfg, env, nil, nil); !errors.Is(err, capability.ErrCapabilityUnresolved) {
		t.Fatalf("BuildRegistry: err = %v, want ErrCapabilityUnresolved", err)
	}
}
