package promptvault

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Factory returns a fresh variant holding its default field values.
type Factory func() Variant

// Registry maps type tags to variant factories. Construct one at startup with
// NewRegistry and pass it to vaults; it is safe for concurrent use.
// Entries are never removed; the last registration for a tag wins.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    zerolog.Logger
}

func newBaseVariant() Variant { return NewTemplate("") }

// NewRegistry creates a Registry with the base Template registered under BaseTag.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		logger:    zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Register(BaseTag, newBaseVariant)
	return r
}

// Register associates tag with factory. Panics if tag is empty or factory is nil.
func (r *Registry) Register(tag string, factory Factory) {
	if tag == "" {
		panic("promptvault: variant tag must not be empty")
	}
	if factory == nil {
		panic("promptvault: variant factory must not be nil")
	}
	r.mu.Lock()
	r.factories[tag] = factory
	r.mu.Unlock()
}

// RegisterType registers newFn under the Go type name of T and returns that tag.
// Call it once per variant type, next to the type declaration's init or at startup.
func RegisterType[T Variant](r *Registry, newFn func() T) string {
	tag := tagForType(reflect.TypeFor[T]())
	r.Register(tag, func() Variant { return newFn() })
	return tag
}

// Resolve returns the factory registered for tag. ok is false when tag is unknown.
func (r *Registry) Resolve(tag string) (Factory, bool) {
	r.mu.RLock()
	f, ok := r.factories[tag]
	r.mu.RUnlock()
	return f, ok
}

// New constructs the variant registered under tag with its tag stamped.
func (r *Registry) New(tag string) (Variant, error) {
	f, ok := r.Resolve(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
	v := f()
	if _, err := variantValue(v); err != nil {
		return nil, fmt.Errorf("factory for %q: %w", tag, err)
	}
	if TagOf(v) != tag {
		v.Base().tag = tag
	}
	return v, nil
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}
