package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound reports a key the provider does not hold.
var ErrNotFound = errors.New("assets: not found")

// Provider loads asset bytes by key. Any error, including ErrNotFound, means
// the asset is absent.
type Provider interface {
	Load(ctx context.Context, key string) ([]byte, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, key string) ([]byte, error)

// Load implements Provider.
func (fn ProviderFunc) Load(ctx context.Context, key string) ([]byte, error) {
	return fn(ctx, key)
}

// Set holds already-loaded assets handed to renderers.
type Set map[string][]byte

// Get returns the bytes for key. Empty payloads count as absent.
func (s Set) Get(key string) ([]byte, bool) {
	data, ok := s[key]
	if !ok || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Keys returns the stored keys sorted.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DirProvider serves assets from a filesystem; keys are slash separated paths
// relative to its root.
type DirProvider struct {
	fsys fs.FS
}

// NewDirProvider wraps fsys.
func NewDirProvider(fsys fs.FS) *DirProvider {
	return &DirProvider{fsys: fsys}
}

// Load implements Provider.
func (p *DirProvider) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil || p.fsys == nil {
		return nil, fmt.Errorf("assets: filesystem is required")
	}
	name := path.Clean(strings.TrimPrefix(key, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("assets: read %q: %w", key, err)
	}
	return data, nil
}

// Keys lists every regular file under the root as a slash separated key.
func (p *DirProvider) Keys() ([]string, error) {
	if p == nil || p.fsys == nil {
		return nil, fmt.Errorf("assets: filesystem is required")
	}
	var keys []string
	err := fs.WalkDir(p.fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.Type().IsRegular() {
			keys = append(keys, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: list keys: %w", err)
	}
	return keys, nil
}

// Memory is an in-process provider, mainly for tests and embedding.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns a provider seeded with items.
func NewMemory(items map[string][]byte) *Memory {
	m := &Memory{items: make(map[string][]byte, len(items))}
	for key, data := range items {
		m.items[key] = append([]byte(nil), data...)
	}
	return m
}

// Put stores a copy of data under key.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), data...)
}

// Load implements Provider.
func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return append([]byte(nil), data...), nil
}
