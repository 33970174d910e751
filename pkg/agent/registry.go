package agent

import (
	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

// Registry is an ordered collection of entrypoint definitions with unique
// keys. It is built once at startup and treated as read-only thereafter;
// concurrent reads require no locking.
type Registry struct {
	ordered []Entrypoint
	byKey   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]int)}
}

// Register adds an entrypoint. It fails with a DUPLICATE_ENTRYPOINT error
// when the key is already present, and rejects entrypoints with an empty key,
// a negative price, or no handler.
func (r *Registry) Register(ep Entrypoint) error {
	if ep.Key == "" {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "entrypoint key cannot be empty")
	}
	if ep.Price < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "entrypoint %q has negative price %d", ep.Key, ep.Price)
	}
	if ep.Handler == nil {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "entrypoint %q has no handler", ep.Key)
	}
	if _, exists := r.byKey[ep.Key]; exists {
		return gerrors.New(gerrors.ErrCodeDuplicateKey, "entrypoint %q is already registered", ep.Key)
	}
	r.byKey[ep.Key] = len(r.ordered)
	r.ordered = append(r.ordered, ep)
	return nil
}

// Get returns the entrypoint for key, or a NOT_REGISTERED error when the key
// is unknown.
func (r *Registry) Get(key string) (Entrypoint, error) {
	idx, ok := r.byKey[key]
	if !ok {
		return Entrypoint{}, gerrors.New(gerrors.ErrCodeNotRegistered, "unknown entrypoint %q", key)
	}
	return r.ordered[idx], nil
}

// List returns the entrypoints in registration order. The returned slice is
// a copy; mutating it does not affect the registry.
func (r *Registry) List() []Entrypoint {
	out := make([]Entrypoint, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered entrypoints.
func (r *Registry) Len() int {
	return len(r.ordered)
}
