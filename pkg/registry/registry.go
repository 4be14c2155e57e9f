package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alekulyn/limo/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] interface {
	// Register adds an item and fails if the name is taken
	Register(name string, item T) error

	// Replace adds or overwrites an item and reports whether it overwrote one
	Replace(name string, item T) (bool, error)

	// Get retrieves an item from the registry
	Get(name string) (T, error)

	// Remove removes an item from the registry
	Remove(name string) error

	// List returns all registered names, sorted
	List() []string

	// Items returns all registered items ordered by name
	Items() []T

	// Has checks if an item is registered
	Has(name string) bool

	// Count returns the number of registered items
	Count() int
}

type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	// notFound is the code Get and Remove report for unknown names.
	notFound errors.ErrorCode
}

// Option customises a Registry.
type Option func(*settings)

type settings struct {
	notFound errors.ErrorCode
}

// WithNotFoundCode makes lookups of unknown names fail with code instead
// of ErrNotFound.
func WithNotFoundCode(code errors.ErrorCode) Option {
	return func(s *settings) { s.notFound = code }
}

// New creates a new Registry instance
func New[T any](opts ...Option) Registry[T] {
	s := settings{notFound: errors.ErrNotFound}
	for _, opt := range opts {
		opt(&s)
	}
	return &registry[T]{
		items:    make(map[string]T),
		notFound: s.notFound,
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

func (r *registry[T]) Replace(name string, item T) (bool, error) {
	if name == "" {
		return false, errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.items[name]
	r.items[name] = item
	return existed, nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(r.notFound, "'%s' is not registered", name).
			WithDetail("known", r.namesLocked())
	}

	return item, nil
}

func (r *registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(r.notFound, "'%s' is not registered", name)
	}

	delete(r.items, name)
	return nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

func (r *registry[T]) namesLocked() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.items))
	for _, name := range r.namesLocked() {
		out = append(out, r.items[name])
	}
	return out
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Built-in registrations use it: a failure there is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
