package calculator

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// reservedNames are path segments under /calculator that a custom operation
// could never be reached through.
var reservedNames = map[string]struct{}{
	"CHAIN":      {},
	"SESSIONS":   {},
	"OPERATIONS": {},
}

// Registry maps upper-case operation names to custom operations. It only
// grows; registrations cannot be removed or replaced. A Registry is safe for
// concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Func)}
}

// Register stores fn under the upper-cased name. Names that collide with a
// built-in or an earlier registration fail with ErrDuplicateOperation and
// leave the registry unchanged.
func (r *Registry) Register(name string, fn Func) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("register: empty operation name")
	}
	if fn == nil {
		return fmt.Errorf("register %s: nil function", key)
	}
	if IsBuiltin(key) {
		return fmt.Errorf("%w: %s is a built-in operation", ErrDuplicateOperation, key)
	}
	if _, reserved := reservedNames[key]; reserved {
		return fmt.Errorf("%w: %s is a reserved name", ErrDuplicateOperation, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ops[key]; exists {
		return fmt.Errorf("%w: %s already exists", ErrDuplicateOperation, key)
	}
	r.ops[key] = fn
	return nil
}

// Resolve looks name up among custom operations first, then built-ins.
// Names are normalized the same way as in Register.
func (r *Registry) Resolve(name string) (Func, error) {
	key := normalizeName(name)

	r.mu.RLock()
	fn, ok := r.ops[key]
	r.mu.RUnlock()
	if ok {
		return fn, nil
	}

	if kind, ok := ParseKind(key); ok {
		return kind.Func(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, name)
}

// Names returns the registered custom names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
