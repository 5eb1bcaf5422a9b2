package sentiment

import (
	"fmt"
	"sync"

	domsvc "TrendPulse/internal/domain/service"
)

// ClassifierFactory lazily constructs a classifier. For the trained
// classifier this is the expensive load-or-train path.
type ClassifierFactory func() (domsvc.Classifier, error)

// Registry maps configured classifier names to implementations. The first
// successful construction per name is cached for the process lifetime, and
// the mutex guarantees at most one concurrent training per process.
type Registry struct {
	mu        sync.Mutex
	factories map[string]ClassifierFactory
	instances map[string]domsvc.Classifier
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ClassifierFactory),
		instances: make(map[string]domsvc.Classifier),
	}
}

func (r *Registry) Register(name string, f ClassifierFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns the cached classifier for name, constructing it on first use.
// A failed construction is not cached, so a later call retries.
func (r *Registry) Get(name string) (domsvc.Classifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.instances[name]; ok {
		return c, nil
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown classifier: %s", name)
	}
	c, err := f()
	if err != nil {
		return nil, fmt.Errorf("build classifier %s: %w", name, err)
	}
	r.instances[name] = c
	return c, nil
}

// Names returns the registered classifier names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	return names
}
