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

package config_test

import (
	"reflect"
	"testing"

	"aotc.dev/rsx/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.NamePrefix != config.DefaultNamePrefix {
		t.Fatalf("NamePrefix = %q, want %q", cfg.NamePrefix, config.DefaultNamePrefix)
	}
	if cfg.CounterSuffix != config.DefaultCounterSuffix {
		t.Fatalf("CounterSuffix = %v, want %v", cfg.CounterSuffix, config.DefaultCounterSuffix)
	}
	if !reflect.DeepEqual(cfg.CapabilityNamespaces, config.DefaultCapabilityNamespaces()) {
		t.Fatalf("CapabilityNamespaces = %v", cfg.CapabilityNamespaces)
	}
	if cfg.MarkerClass != config.DefaultMarkerClass {
		t.Fatalf("MarkerClass = %q", cfg.MarkerClass)
	}
	if cfg.DynamicProxyClass != config.DefaultDynamicProxyClass {
		t.Fatalf("DynamicProxyClass = %q", cfg.DynamicProxyClass)
	}
}

func TestNewConfig_Options(t *testing.T) {
	cfg := config.NewConfig(
		config.WithNamePrefix("acme.gen.Accessor"),
		config.WithCounterSuffix(false),
		config.WithCapabilityNamespaces("acme.internal.reflect"),
		config.WithMarkerClass("acme.runtime.GeneratedProxy"),
		config.WithDynamicProxyClass("acme.lang.Proxy"),
	)

	if cfg.NamePrefix != "acme.gen.Accessor" {
		t.Fatalf("NamePrefix = %q", cfg.NamePrefix)
	}
	if cfg.CounterSuffix {
		t.Fatal("CounterSuffix not disabled")
	}
	if !reflect.DeepEqual(cfg.CapabilityNamespaces, []string{"acme.internal.reflect"}) {
		t.Fatalf("CapabilityNamespaces = %v", cfg.CapabilityNamespaces)
	}
	if cfg.MarkerClass != "acme.runtime.GeneratedProxy" {
		t.Fatalf("MarkerClass = %q", cfg.MarkerClass)
	}
	if cfg.DynamicProxyClass != "acme.lang.Proxy" {
		t.Fatalf("DynamicProxyClass = %q", cfg.DynamicProxyClass)
	}
}

// TestNewConfig_EmptyValuesReset asserts that zero option values fall back
// to the defaults instead of producing an unusable config.
func TestNewConfig_EmptyValuesReset(t *testing.T) {
	cfg := config.NewConfig(
		config.WithNamePrefix(""),
		config.WithCapabilityNamespaces(),
		config.WithMarkerClass(""),
		config.WithDynamicProxyClass(""),
	)

	want := config.DefaultConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("NewConfig with empty values = %+v, want defaults %+v", cfg, want)
	}
}

// TestNewConfig_CopiesNamespaces asserts the option copies its slice so a
// caller mutating the argument cannot mutate the config.
func TestNewConfig_CopiesNamespaces(t *testing.T) {
	in := []string{"a.reflect", "b.reflect"}
	cfg := config.NewConfig(config.WithCapabilityNamespaces(in...))
	in[0] = "mutated"
	if cfg.CapabilityNamespaces[0] != "a.reflect" {
		t.Fatal("config aliases the caller's namespace slice")
	}
}
