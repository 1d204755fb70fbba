package supplier

import (
	"fmt"
	"sort"
	"sync"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared"
)

// Registry dispatches unified orders to the compiler registered for their target
type Registry struct {
	mu        sync.RWMutex
	compilers map[order.Target]order.Compiler
}

// NewRegistry creates an empty compiler registry
func NewRegistry() *Registry {
	return &Registry{
		compilers: make(map[order.Target]order.Compiler),
	}
}

// Config groups the per-supplier compiler configuration
type Config struct {
	ABC    *ABCConfig
	Beacon *BeaconConfig
	SRS    *SRSConfig
}

// NewDefaultRegistry creates a registry holding the ABC, Beacon and SRS
// compilers. Nil sections of cfg fall back to defaults.
func NewDefaultRegistry(cfg Config) (*Registry, error) {
	abc, err := NewABCCompiler(cfg.ABC)
	if err != nil {
		return nil, err
	}
	beacon, err := NewBeaconCompiler(cfg.Beacon)
	if err != nil {
		return nil, err
	}
	srs, err := NewSRSCompiler(cfg.SRS)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, c := range []order.Compiler{abc, beacon, srs} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a compiler for its target
func (r *Registry) Register(c order.Compiler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := c.Target()
	if _, exists := r.compilers[target]; exists {
		return fmt.Errorf("%w: compiler for '%s' already registered", shared.ErrAlreadyExists, target)
	}
	r.compilers[target] = c
	return nil
}

// Get returns the compiler registered for target
func (r *Registry) Get(target order.Target) (order.Compiler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.compilers[target]
	if !exists {
		return nil, fmt.Errorf("%w: compiler for '%s' not found", shared.ErrNotFound, target)
	}
	return c, nil
}

// Targets returns all registered targets, sorted
func (r *Registry) Targets() []order.Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]order.Target, 0, len(r.compilers))
	for t := range r.compilers {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// Compile checks preconditions and dispatches o to its target's compiler.
// An unregistered target is reported as a precondition failure.
func (r *Registry) Compile(o *order.UnifiedOrder) (*order.RequestDescriptor, error) {
	if err := order.CheckPreconditions(o); err != nil {
		return nil, err
	}
	c, err := r.Get(o.Target)
	if err != nil {
		return nil, &order.PreconditionError{
			Target:     o.Target,
			Violations: []string{fmt.Sprintf("unsupported target %q", o.Target)},
		}
	}
	return c.Compile(o)
}
