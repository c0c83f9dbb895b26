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

package registry_test

import (
	"runtime"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"aotc.dev/rsx/apis"
	"aotc.dev/rsx/config"
	"aotc.dev/rsx/testkit"
)

// TestConcurrentProxyType_SingleFlight hammers first requests: for every
// distinct member, exactly one generation must win and all callers must
// observe the identical synthetic type.
func TestConcurrentProxyType_SingleFlight(t *testing.T) {
	cfg := config.DefaultConfig()
	w, reg := newRegistry(t, cfg)

	members := []apis.Member{
		testkit.NewField("com.example.Box", "value"),
		testkit.NewField("com.example.Box", "other"),
		testkit.NewMethod("com.example.Box", "get", "int", "java.lang.String"),
		testkit.NewMethod("com.example.Box", "get", "int", "int"),
		testkit.NewMethod("com.example.Crate", "open", "void"),
		testkit.NewConstructor("com.example.Box"),
		testkit.NewConstructor("com.example.Box", "int"),
		testkit.NewConstructor("com.example.Crate", "java.lang.String"),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([][]apis.ResolvedType, len(members))
	for i := range results {
		results[i] = make([]apis.ResolvedType, workers)
	}

	var g errgroup.Group
	for i, m := range members {
		for wkr := 0; wkr < workers; wkr++ {
			g.Go(func() error {
				// Fresh equal instance per call: the cache must key by
				// descriptor, not by pointer.
				clone := cloneMember(m)
				p, err := reg.ProxyType(clone)
				if err != nil {
					return err
				}
				results[i][wkr] = p
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent ProxyType: %v", err)
	}

	// Exactly one synthesis per distinct member.
	if n := w.SynthCalls(); n != len(members) {
		t.Fatalf("synthesizer invoked %d times, want %d", n, len(members))
	}
	if reg.Count() != len(members) {
		t.Fatalf("Count = %d, want %d", reg.Count(), len(members))
	}
	for i, rs := range results {
		for _, p := range rs[1:] {
			if p != rs[0] {
				t.Fatalf("member #%d observed divergent proxy types", i)
			}
		}
	}
}

// TestConcurrentLookupAndResolve verifies that lookups, resolves, and
// diagnostics are race-free against in-flight generation.
func TestConcurrentLookupAndResolve(t *testing.T) {
	cfg := config.DefaultConfig()
	w, reg := newRegistry(t, cfg)

	seed := testkit.NewField("com.example.Box", "value")
	proxy, err := reg.ProxyType(seed)
	if err != nil {
		t.Fatalf("ProxyType: %v", err)
	}
	ordinary := w.AddClass("com.example.Plain")

	workers := runtime.GOMAXPROCS(0) * 4
	wg := sync.WaitGroup{}

	// Readers: wrapper round trips and pass-through, continuously.
	wg.Add(workers)
	for wkr := 0; wkr < workers; wkr++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				sub := reg.LookupType(proxy)
				if sub == apis.ResolvedType(proxy) {
					t.Error("generated proxy not substituted")
					return
				}
				if reg.ResolveType(sub) != apis.ResolvedType(proxy) {
					t.Error("resolve did not invert lookup")
					return
				}
				if reg.LookupType(ordinary) != apis.ResolvedType(ordinary) {
					t.Error("ordinary type substituted")
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers: generate more members while readers run.
	wg.Add(workers)
	for wkr := 0; wkr < workers; wkr++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				m := testkit.NewConstructor("com.example.Gen", genParam(id), genParam(i))
				if _, err := reg.ProxyType(m); err != nil {
					t.Errorf("ProxyType: %v", err)
					return
				}
			}
		}(wkr)
	}

	wg.Wait()
}

// cloneMember rebuilds an equal member instance.
func cloneMember(m apis.Member) apis.Member {
	switch m.Kind() {
	case apis.KindField:
		return testkit.NewField(m.Declaring(), m.Name())
	case apis.KindMethod:
		return testkit.NewMethod(m.Declaring(), m.Name(), m.ReturnType(), m.ParameterTypes()...)
	default:
		return testkit.NewConstructor(m.Declaring(), m.ParameterTypes()...)
	}
}

// genParam derives a distinct parameter type name from an index.
func genParam(i int) string {
	names := []string{"int", "long", "boolean", "byte", "short", "char", "float", "double",
		"java.lang.String", "java.lang.Object"}
	return names[i%len(names)]
}
