package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// BackendFactory opens a new backend connection.
type BackendFactory func() (Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	// DDraw7 > Software (the real device first, emulation as fallback).
	backendPriority = []string{BackendDDraw7, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get opens the backend registered under name.
// Returns ErrBackendNotAvailable if the backend is not registered.
func Get(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory()
}

// Default opens the best available backend based on priority.
// Priority order: ddraw7 > software, then any other registered backend in
// name order. A backend whose factory fails is skipped.
//
// If nothing can be opened, the error wraps ErrBackendNotAvailable and every
// factory error.
func Default() (Backend, error) {
	registryMu.RLock()
	order := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			order = append(order, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	order = append(order, rest...)
	factories := make([]BackendFactory, len(order))
	for i, name := range order {
		factories[i] = backends[name]
	}
	registryMu.RUnlock()

	errs := []error{ErrBackendNotAvailable}
	for i, factory := range factories {
		b, err := factory()
		if err == nil && b != nil {
			return b, nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", order[i], err))
		}
	}
	return nil, errors.Join(errs...)
}

// MustDefault returns the default backend or panics.
func MustDefault() Backend {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

// Open opens the named backend, or the default one when name is empty.
func Open(name string) (Backend, error) {
	if name == "" {
		return Default()
	}
	return Get(name)
}
