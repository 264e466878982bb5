package marketdata

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/housefax/marketdata/cache"
)

// settingsNamespace holds user preferences, isolated from dataset caches.
const settingsNamespace = "settings"

// prefKindKey is the settings key of the persisted source-kind preference.
const prefKindKey = "source-kind"

// ConfigError reports a configuration that cannot produce a usable provider.
// The registry reacts to it by falling back to sample data, never by failing.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unusable data source configuration: %s", e.Reason)
}

// Registry resolves configurations to providers, instantiating at most one
// provider per configuration identity and reusing it for the life of the
// process. It is an explicit object to be passed to the application root,
// not hidden process-wide state.
type Registry struct {
	mu        sync.Mutex
	providers map[string]Provider

	client    *http.Client
	openStore func(namespace string) (*cache.Store, error)
}

// NewRegistry returns an empty registry using the default HTTP client and
// the user cache directory.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		client:    http.DefaultClient,
		openStore: cache.Open,
	}
}

// Provider resolves a configuration to its memoized provider. A persisted
// user source-kind preference overrides the configured default, and any
// misconfiguration resolves to the sample provider: this method never fails.
func (r *Registry) Provider(cfg Config) Provider {
	if kind, ok := r.PreferredKind(); ok {
		cfg.Kind = kind
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cfg.identity()
	if p, ok := r.providers[key]; ok {
		return p
	}

	p, err := r.build(cfg)
	if err != nil {
		// Guaranteed-success fallback: misconfiguration degrades to sample data.
		log.Printf("falling back to sample data: %v", err)
		p = newSampleProvider()
	}
	r.providers[key] = p
	return p
}

// build is the explicit resolution chain from configuration to provider.
func (r *Registry) build(cfg Config) (Provider, error) {
	switch cfg.Kind {
	case KindSample:
		return newSampleProvider(), nil

	case KindOnDemand:
		if cfg.BaseURL == "" {
			return nil, &ConfigError{Reason: "on-demand source needs a base URL for per-region files"}
		}
		return newOnDemandProvider(cfg, r.client), nil

	case KindBulk, "":
		if cfg.ValuesURL == "" {
			return nil, &ConfigError{Reason: "bulk source needs the home-value file URL"}
		}
		if cfg.Namespace == "" {
			cfg.Namespace = "markets"
		}
		store, err := r.openStore(cfg.Namespace)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot open cache namespace %q: %v", cfg.Namespace, err)}
		}
		return newBulkProvider(cfg, store, r.client), nil

	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown source kind %q", cfg.Kind)}
	}
}

// Clear drops every memoized provider. Callers invoke it when they want a
// fresh instance, e.g. after changing the data source.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = make(map[string]Provider)
}

// SetPreferredKind persists the user's source-kind selection. It overrides
// the deployment default on every later resolution.
func (r *Registry) SetPreferredKind(kind SourceKind) error {
	store, err := r.openStore(settingsNamespace)
	if err != nil {
		return err
	}
	return store.Set(prefKindKey, kind, cache.Never())
}

// PreferredKind returns the persisted source-kind selection, if any.
func (r *Registry) PreferredKind() (SourceKind, bool) {
	store, err := r.openStore(settingsNamespace)
	if err != nil {
		return "", false
	}
	var kind SourceKind
	if err := store.Get(prefKindKey, &kind); err != nil {
		return "", false
	}
	if _, err := ParseSourceKind(string(kind)); err != nil {
		return "", false
	}
	return kind, true
}

// ClearPreferredKind removes the persisted selection.
func (r *Registry) ClearPreferredKind() error {
	store, err := r.openStore(settingsNamespace)
	if err != nil {
		return err
	}
	return store.Remove(prefKindKey)
}
