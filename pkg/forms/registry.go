package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fastform/pkg/schema"
)

var (
	// ErrNotFound is returned when no provider is registered under a name.
	ErrNotFound = errors.New("forms: form not found")
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("forms: form already registered")
)

// Provider returns a form's FieldDescriptor (validate=false) or
// ValidationDescriptor (validate=true). Providers must be pure.
type Provider func(validate bool) schema.Descriptor

// Registry resolves providers by name. Names are trimmed and lower-cased. It
// is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry constructs a registry with the built-in login form registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	_ = reg.Register(LoginName, Login)
	return reg
}

// NewEmptyRegistry constructs a registry without built-ins.
func NewEmptyRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under name.
func (r *Registry) Register(name string, provider Provider) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("forms: provider name is required")
	}
	if provider == nil {
		return fmt.Errorf("forms: provider %q is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	r.providers[key] = provider
	return nil
}

// RegisterForm checks form and registers a provider serving copies of it
// under the form's name.
func (r *Registry) RegisterForm(form schema.Form) error {
	if err := form.Check(); err != nil {
		return err
	}
	snapshot := form.Clone()
	return r.Register(form.Name, func(validate bool) schema.Descriptor {
		return snapshot.Describe(schema.ModeFor(validate))
	})
}

// Describe resolves name and invokes its provider.
func (r *Registry) Describe(name string, validate bool) (schema.Descriptor, error) {
	provider, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, normalizeName(name))
	}
	return provider(validate), nil
}

// Form rebuilds a schema.Form from a registered provider by calling it in both
// modes.
func (r *Registry) Form(name string) (schema.Form, error) {
	provider, ok := r.Lookup(name)
	if !ok {
		return schema.Form{}, fmt.Errorf("%w: %q", ErrNotFound, normalizeName(name))
	}
	form := schema.Form{Name: normalizeName(name)}
	if fields, ok := provider(false).(schema.Fields); ok {
		form.Fields = fields
	}
	if validations, ok := provider(true).(schema.Validations); ok {
		form.Validations = validations
	}
	return form, nil
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[normalizeName(name)]
	return provider, ok
}

// Names lists registered form names in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
