package layout

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Resolver converts one page's content into resolved geometry.
type Resolver interface {
	Resolve(page content.Page, env Env) scene.Page
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(page content.Page, env Env) scene.Page

// Resolve implements Resolver.
func (fn ResolverFunc) Resolve(page content.Page, env Env) scene.Page {
	return fn(page, env)
}

// Registry stores resolvers by template tag.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[content.Tag]Resolver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[content.Tag]Resolver)}
}

// NewDefaultRegistry returns a registry holding the built-in resolver for
// every catalog template.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(content.TagCover, ResolverFunc(resolveCover))
	r.MustRegister(content.TagTimeline, ResolverFunc(resolveTimeline))
	r.MustRegister(content.TagFlowChart, ResolverFunc(resolveFlowChart))
	r.MustRegister(content.TagDataTable, ResolverFunc(resolveDataTable))
	r.MustRegister(content.TagPhotoGallery, ResolverFunc(resolvePhotoGallery))
	r.MustRegister(content.TagMapTextList, ResolverFunc(resolveMapTextList))
	r.MustRegister(content.TagMapTextCards, ResolverFunc(resolveMapTextCards))
	r.MustRegister(content.TagMapOverlay, ResolverFunc(resolveMapOverlay))
	r.MustRegister(content.TagThreeCircles, ResolverFunc(resolveThreeCircles))
	r.MustRegister(content.TagMultiCardGrid, ResolverFunc(resolveMultiCardGrid))
	return r
}

// Register adds a resolver for tag. Duplicate tags return an error.
func (r *Registry) Register(tag content.Tag, resolver Resolver) error {
	if resolver == nil {
		return fmt.Errorf("layout: resolver is required")
	}
	if tag == "" {
		return fmt.Errorf("layout: template tag is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resolvers[tag]; exists {
		return fmt.Errorf("layout: resolver %q already registered", tag)
	}
	r.resolvers[tag] = resolver
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(tag content.Tag, resolver Resolver) {
	if err := r.Register(tag, resolver); err != nil {
		panic(err)
	}
}

// Lookup returns the resolver for tag.
func (r *Registry) Lookup(tag content.Tag) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolver, ok := r.resolvers[tag]
	return resolver, ok
}

// Tags returns the registered tags sorted by name.
func (r *Registry) Tags() []content.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]content.Tag, 0, len(r.resolvers))
	for tag := range r.resolvers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Resolve dispatches on the page tag. Unknown tags resolve to a placeholder
// page.
func (r *Registry) Resolve(page content.Page, env Env) scene.Page {
	if resolver, ok := r.Lookup(page.Tag()); ok {
		return resolver.Resolve(page, env)
	}
	return placeholderPage(page, env)
}

var defaultRegistry = NewDefaultRegistry()

// Resolve resolves page with the built-in resolvers.
func Resolve(page content.Page, env Env) scene.Page {
	return defaultRegistry.Resolve(page, env)
}
