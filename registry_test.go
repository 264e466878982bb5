package marketdata

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/housefax/marketdata/cache"
)

// testRegistry returns a registry rooted in a throwaway cache directory, so
// tests never touch the real user preferences.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	return &Registry{
		providers: make(map[string]Provider),
		client:    http.DefaultClient,
		openStore: func(namespace string) (*cache.Store, error) {
			return cache.OpenDir(filepath.Join(dir, namespace))
		},
	}
}

func TestRegistryMemoizes(t *testing.T) {
	r := testRegistry(t)
	cfg := Config{Kind: KindSample}

	first := r.Provider(cfg)
	if first == nil {
		t.Fatal("Provider returned nil")
	}
	if second := r.Provider(cfg); second != first {
		t.Errorf("same configuration should resolve to the same instance")
	}
	if other := r.Provider(Config{Kind: KindSample, Namespace: "other"}); other == first {
		t.Errorf("a different configuration should resolve to its own instance")
	}

	r.Clear()
	if fresh := r.Provider(cfg); fresh == first {
		t.Errorf("Clear should drop memoized providers")
	}
}

func TestRegistrySampleFallback(t *testing.T) {
	r := testRegistry(t)

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"Bulk without values URL", Config{Kind: KindBulk}},
		{"On-demand without base URL", Config{Kind: KindOnDemand}},
		{"Unknown kind", Config{Kind: "sideways"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := r.Provider(tc.cfg)
			if p == nil {
				t.Fatal("Provider must never return nil")
			}
			// The fallback serves the fixed sample dataset.
			stats, err := p.Stats(context.Background(), "90210")
			if err != nil {
				t.Fatalf("Stats(90210) on fallback: %v", err)
			}
			if stats.City != "Beverly Hills" {
				t.Errorf("Stats(90210).City = %q, want Beverly Hills", stats.City)
			}
		})
	}
}

func TestRegistryBuildErrors(t *testing.T) {
	r := testRegistry(t)
	for _, cfg := range []Config{{Kind: KindBulk}, {Kind: KindOnDemand}, {Kind: "sideways"}} {
		_, err := r.build(cfg)
		var cerr *ConfigError
		if !errors.As(err, &cerr) || cerr.Reason == "" {
			t.Errorf("build(%+v) error = %v, want a *ConfigError with a reason", cfg, err)
		}
	}
}

func TestRegistryPreferredKind(t *testing.T) {
	r := testRegistry(t)

	if _, ok := r.PreferredKind(); ok {
		t.Fatal("no preference should be persisted initially")
	}

	if err := r.SetPreferredKind(KindSample); err != nil {
		t.Fatalf("SetPreferredKind: %v", err)
	}
	if kind, ok := r.PreferredKind(); !ok || kind != KindSample {
		t.Fatalf("PreferredKind = %q,%v, want sample,true", kind, ok)
	}

	// The persisted preference overrides the configured default: a bulk config
	// without URLs now resolves cleanly to the sample provider.
	p := r.Provider(Config{Kind: KindBulk})
	if _, err := p.Stats(context.Background(), "90210"); err != nil {
		t.Errorf("preference override should yield the sample provider: %v", err)
	}

	if err := r.ClearPreferredKind(); err != nil {
		t.Fatalf("ClearPreferredKind: %v", err)
	}
	if _, ok := r.PreferredKind(); ok {
		t.Errorf("preference should be gone after ClearPreferredKind")
	}
	// Clearing again is fine.
	if err := r.ClearPreferredKind(); err != nil {
		t.Errorf("second ClearPreferredKind = %v, want nil", err)
	}
}

func TestParseSourceKind(t *testing.T) {
	for _, valid := range []string{"bulk", "ondemand", "sample"} {
		if _, err := ParseSourceKind(valid); err != nil {
			t.Errorf("ParseSourceKind(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "Bulk", "on-demand", "sideways"} {
		if _, err := ParseSourceKind(invalid); err == nil {
			t.Errorf("ParseSourceKind(%q) should fail", invalid)
		}
	}
}
