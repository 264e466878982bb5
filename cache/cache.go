// Package cache implements a durable, namespaced key-value store used to
// persist parsed datasets and settings across runs.
//
// Entries live as JSON files under the user cache directory and carry a
// schema version, a storage timestamp and a TTL. A version mismatch or an
// expired entry behaves as a miss and removes the file, so stale formats
// heal themselves without ever surfacing an error.
package cache

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SchemaVersion tags every entry. Bump it when the stored payload format
// changes: older entries then read as misses and are removed.
const SchemaVersion = 2

// ErrMiss reports an absent, expired, outdated or unreadable entry. It is an
// expected condition, not a failure.
var ErrMiss = errors.New("cache miss")

// TTL is the lifetime of an entry: a duration, or never-expiring. The tagged
// form avoids the usual infinity sentinel, which does not survive JSON.
type TTL struct {
	d     time.Duration
	never bool
}

// Never returns the TTL of an entry that persists until explicitly removed
// or until the schema version changes.
func Never() TTL { return TTL{never: true} }

// After returns the TTL of an entry that expires once d has elapsed.
func After(d time.Duration) TTL { return TTL{d: d} }

// IsNever reports whether the TTL never expires.
func (t TTL) IsNever() bool { return t.never }

// entry is the on-disk representation.
type entry struct {
	Version  int             `json:"version"`
	Key      string          `json:"key"`
	StoredAt time.Time       `json:"storedAt"`
	TTLMs    *int64          `json:"ttlMs,omitempty"` // absent means never
	Payload  json.RawMessage `json:"payload"`
}

// expired reports whether the entry is past its lifetime at time now.
func (e *entry) expired(now time.Time) bool {
	if e.TTLMs == nil {
		return false
	}
	return now.After(e.StoredAt.Add(time.Duration(*e.TTLMs) * time.Millisecond))
}

// Store is a single cache namespace. Namespaces isolate data sources from
// each other and from settings.
type Store struct {
	dir string
}

// Open returns the store for a namespace, rooted under the user cache
// directory.
func Open(namespace string) (*Store, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("cannot locate user cache dir: %w", err)
	}
	return OpenDir(filepath.Join(base, "housefax", namespace))
}

// OpenDir returns a store rooted at an explicit directory.
func OpenDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create cache dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// path derives the entry file for a key. Keys are free-form, so they are
// hashed into safe filenames.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", sha1.Sum([]byte(key))))
}

// Get reads the entry for key into v. It returns ErrMiss for an absent,
// expired, corrupt or version-mismatched entry; the last three also remove
// the stale file.
func (s *Store) Get(key string, v any) error {
	file := s.path(key)
	content, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrMiss
		}
		return fmt.Errorf("cannot read cache entry %q: %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(content, &e); err != nil {
		os.Remove(file)
		return ErrMiss
	}
	if e.Version != SchemaVersion || e.expired(time.Now()) {
		os.Remove(file)
		return ErrMiss
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		os.Remove(file)
		return ErrMiss
	}
	return nil
}

// Set stores a value under key with the given lifetime. A value that fails
// to serialize is an error, never a silent drop.
func (s *Store) Set(key string, v any, ttl TTL) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot serialize cache value for %q: %w", key, err)
	}
	e := entry{
		Version:  SchemaVersion,
		Key:      key,
		StoredAt: time.Now(),
		Payload:  payload,
	}
	if !ttl.never {
		ms := ttl.d.Milliseconds()
		e.TTLMs = &ms
	}
	content, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cannot serialize cache entry for %q: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), content, 0644); err != nil {
		return fmt.Errorf("cannot write cache entry for %q: %w", key, err)
	}
	return nil
}

// Remove deletes the entry for key. Removing an absent entry is not an error.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove cache entry %q: %w", key, err)
	}
	return nil
}

// Clear deletes every entry in the namespace.
func (s *Store) Clear() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("cannot scan cache dir %q: %w", s.dir, err)
	}
	var errs error
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
