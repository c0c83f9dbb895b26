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

package config

import (
	"aotc.dev/rsx/apis"
)

const (
	// DefaultNamePrefix is the namespace prefix for generated proxy class
	// names. It deliberately ends in "Proxy" so sanitized segments read as
	// "...Proxy_<declaring>_<member>".
	DefaultNamePrefix = "rsx.proxies.Proxy"
	// DefaultCounterSuffix controls whether generated names carry the
	// process-wide disambiguation counter. On by default: a class space
	// that cannot be reset must never see the same name twice.
	DefaultCounterSuffix = true
	// DefaultMarkerClass is the reflection-proxy marker capability.
	DefaultMarkerClass = "rsx.runtime.ReflectionProxy"
	// DefaultDynamicProxyClass is the environment's generic dynamic-proxy
	// capability.
	DefaultDynamicProxyClass = "java.lang.reflect.Proxy"
)

// DefaultCapabilityNamespaces lists the environment namespaces the accessor
// capability interfaces are looked up under, newest first. The interfaces
// moved namespaces between environment versions.
func DefaultCapabilityNamespaces() []string {
	return []string{"jdk.internal.reflect", "sun.reflect"}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure required fields are valid.
	if cfg.NamePrefix == "" {
		cfg.NamePrefix = DefaultNamePrefix
	}
	if len(cfg.CapabilityNamespaces) == 0 {
		cfg.CapabilityNamespaces = DefaultCapabilityNamespaces()
	}
	if cfg.MarkerClass == "" {
		cfg.MarkerClass = DefaultMarkerClass
	}
	if cfg.DynamicProxyClass == "" {
		cfg.DynamicProxyClass = DefaultDynamicProxyClass
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		NamePrefix:           DefaultNamePrefix,
		CounterSuffix:        DefaultCounterSuffix,
		CapabilityNamespaces: DefaultCapabilityNamespaces(),
		MarkerClass:          DefaultMarkerClass,
		DynamicProxyClass:    DefaultDynamicProxyClass,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithNamePrefix sets the NamePrefix option.
// An empty value resets to the default.
func WithNamePrefix(prefix string) Option {
	return func(c *apis.Config) {
		if prefix == "" {
			c.NamePrefix = DefaultNamePrefix
			return
		}
		c.NamePrefix = prefix
	}
}

// WithCounterSuffix sets the CounterSuffix option.
func WithCounterSuffix(enabled bool) Option {
	return func(c *apis.Config) {
		c.CounterSuffix = enabled
	}
}

// WithCapabilityNamespaces sets the CapabilityNamespaces option.
// An empty list resets to the defaults.
func WithCapabilityNamespaces(namespaces ...string) Option {
	return func(c *apis.Config) {
		if len(namespaces) == 0 {
			c.CapabilityNamespaces = DefaultCapabilityNamespaces()
			return
		}
		c.CapabilityNamespaces = append([]string(nil), namespaces...)
	}
}

// WithMarkerClass sets the MarkerClass option.
// An empty value resets to the default.
func WithMarkerClass(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.MarkerClass = DefaultMarkerClass
			return
		}
		c.MarkerClass = name
	}
}

// WithDynamicProxyClass sets the DynamicProxyClass option.
// An empty value resets to the default.
func WithDynamicProxyClass(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			c.DynamicProxyClass = DefaultDynamicProxyClass
			return
		}
		c.DynamicProxyClass = name
	}
}
