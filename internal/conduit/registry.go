package conduit

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pilot/models"
)

// Factory builds conduit instances and carries their metadata.
type Factory interface {
	Info() Info
	New(ctx context.Context, deps Deps, pilot models.Pilot, cfg models.ConduitConfig) (Conduit, error)
}

type factoryFunc struct {
	info Info
	fn   func(ctx context.Context, deps Deps, pilot models.Pilot, cfg models.ConduitConfig) (Conduit, error)
}

func (f factoryFunc) Info() Info { return f.info }

func (f factoryFunc) New(ctx context.Context, deps Deps, pilot models.Pilot, cfg models.ConduitConfig) (Conduit, error) {
	return f.fn(ctx, deps, pilot, cfg)
}

// NewFactory pairs metadata with a constructor.
func NewFactory(info Info, fn func(ctx context.Context, deps Deps, pilot models.Pilot, cfg models.ConduitConfig) (Conduit, error)) Factory {
	return factoryFunc{info: info, fn: fn}
}

// Registry maps conduit names to factories. Names keep registration order.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("%w: %q", ErrMissingInfo, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Infos returns the metadata of every registered conduit.
func (r *Registry) Infos() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		info := r.factories[name].Info()
		if info.Name == "" {
			info.Name = name
		}
		out = append(out, info)
	}
	return out
}
