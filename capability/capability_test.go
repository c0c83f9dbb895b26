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

package capability_test

import (
	"errors"
	"testing"

	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/capability"
	"aotc.dev/rsx/config"
	"aotc.dev/rsx/testkit"
)

func TestNewResolver_ResolvesMarkerAndDynamicProxy(t *testing.T) {
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.SeedRuntime(cfg, "jdk.internal.reflect")

	caps, err := capability.NewResolver(w.Env().Meta, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if got := caps.Marker().TypeName(); got != cfg.MarkerClass {
		t.Fatalf("Marker = %q, want %q", got, cfg.MarkerClass)
	}
	if got := caps.DynamicProxy().TypeName(); got != cfg.DynamicProxyClass {
		t.Fatalf("DynamicProxy = %q, want %q", got, cfg.DynamicProxyClass)
	}
}

// TestNewResolver_MissingMarker verifies that an environment without the
// marker capability cannot produce a resolver at all.
func TestNewResolver_MissingMarker(t *testing.T) {
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.AddClass(cfg.DynamicProxyClass)

	if _, err := capability.NewResolver(w.Env().Meta, cfg); !errors.Is(err, capability.ErrCapabilityUnresolved) {
		t.Fatalf("err = %v, want ErrCapabilityUnresolved", err)
	}
}

// TestAccessor_NamespaceFallback verifies the ordered candidate walk: the
// accessor interfaces live only under the second candidate namespace.
func TestAccessor_NamespaceFallback(t *testing.T) {
	cfg := config.DefaultConfig() // jdk.internal.reflect, then sun.reflect
	w := testkit.NewWorld()
	w.SeedRuntime(cfg, "sun.reflect")

	caps, err := capability.NewResolver(w.Env().Meta, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	cases := []struct {
		kind apis.MemberKind
		want string
	}{
		{apis.KindField, "sun.reflect.FieldAccessor"},
		{apis.KindMethod, "sun.reflect.MethodAccessor"},
		{apis.KindConstructor, "sun.reflect.ConstructorAccessor"},
	}
	for _, c := range cases {
		got, err := caps.Accessor(c.kind)
		if err != nil {
			t.Fatalf("Accessor(%v): %v", c.kind, err)
		}
		if got.TypeName() != c.want {
			t.Fatalf("Accessor(%v) = %q, want %q", c.kind, got.TypeName(), c.want)
		}
	}
}

// TestAccessor_Memoized verifies that accessor resolution hits the meta
// service once per kind, no matter how often it is asked.
func TestAccessor_Memoized(t *testing.T) {
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.SeedRuntime(cfg, "jdk.internal.reflect")

	caps, err := capability.NewResolver(w.Env().Meta, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	for i := 0; i < 10; i++ {
		if _, err := caps.Accessor(apis.KindField); err != nil {
			t.Fatalf("Accessor #%d: %v", i, err)
		}
	}
	if n := w.Lookups("jdk.internal.reflect.FieldAccessor"); n != 1 {
		t.Fatalf("FieldAccessor looked up %d times, want 1", n)
	}
}

func TestAccessor_Exhausted(t *testing.T) {
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	// Marker and dynamic proxy exist, accessor interfaces do not.
	w.AddClass(cfg.MarkerClass)
	w.AddClass(cfg.DynamicProxyClass)

	caps, err := capability.NewResolver(w.Env().Meta, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if _, err := caps.Accessor(apis.KindMethod); !errors.Is(err, capability.ErrCapabilityUnresolved) {
		t.Fatalf("err = %v, want ErrCapabilityUnresolved", err)
	}
}

func TestAccessor_UnsupportedKind(t *testing.T) {
	cfg := config.DefaultConfig()
	w := testkit.NewWorld()
	w.SeedRuntime(cfg, "jdk.internal.reflect")

	caps, err := capability.NewResolver(w.Env().Meta, cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if _, err := caps.Accessor(apis.MemberKind(9)); !errors.Is(err, capability.ErrCapabilityUnresolved) {
		t.Fatalf("err = %v, want ErrCapabilityUnresolved", err)
	}
}
