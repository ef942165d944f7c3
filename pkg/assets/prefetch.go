package assets

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel loads in Prefetch.
const DefaultConcurrency = 4

// PrefetchOption customises Prefetch.
type PrefetchOption func(*prefetchConfig)

type prefetchConfig struct {
	limit int
}

// WithConcurrency sets the maximum number of loads in flight.
func WithConcurrency(n int) PrefetchOption {
	return func(cfg *prefetchConfig) {
		if n > 0 {
			cfg.limit = n
		}
	}
}

// Result is the outcome of a prefetch: the loaded assets plus the reason each
// absent key could not be loaded.
type Result struct {
	Set     Set
	Missing map[string]error
}

// Prefetch loads keys concurrently. A failed key never cancels its siblings;
// it is reported in Missing and left out of the Set. Duplicate and empty keys
// are ignored.
func Prefetch(ctx context.Context, provider Provider, keys []string, options ...PrefetchOption) Result {
	cfg := prefetchConfig{limit: DefaultConcurrency}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := Result{Set: Set{}, Missing: map[string]error{}}
	if provider == nil {
		for _, key := range keys {
			if key != "" {
				result.Missing[key] = ErrNotFound
			}
		}
		return result
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, len(keys))
		g    errgroup.Group
	)
	g.SetLimit(cfg.limit)
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			data, err := provider.Load(ctx, key)
			if err == nil && len(data) == 0 {
				err = ErrNotFound
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Missing[key] = err
				return nil
			}
			result.Set[key] = data
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func sniff(data []byte) string {
	return http.DetectContentType(data)
}
