package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/askgate/askgate/internal/domain"
)

// Router selects one registered adapter by name and invokes it. There
// is no retry, fan-out, or fallback: provider selection is explicit.
type Router struct {
	adapters    map[string]Adapter
	defaultName string
}

// NewRouter builds a router over the given adapters. defaultName is
// used when a request names no provider and must match a registered
// adapter.
func NewRouter(defaultName string, adapters ...Adapter) (*Router, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("at least one adapter is required")
	}
	m := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		name := strings.ToLower(a.Name())
		if name == "" {
			return nil, fmt.Errorf("adapter with empty name")
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("duplicate adapter name: %s", name)
		}
		m[name] = a
	}
	defaultName = strings.ToLower(defaultName)
	if _, ok := m[defaultName]; !ok {
		return nil, fmt.Errorf("default provider %q is not registered", defaultName)
	}
	return &Router{adapters: m, defaultName: defaultName}, nil
}

// Names returns the registered provider names.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}

// Default returns the configured default provider name.
func (r *Router) Default() string {
	return r.defaultName
}

// Route resolves name (empty means the default), invokes exactly one
// adapter and returns its normalized result. An unknown name fails
// before any vendor call is attempted; an adapter failure is surfaced
// as a provider failure with the vendor error as cause.
func (r *Router) Route(ctx context.Context, query, name string) (string, Result, error) {
	if name == "" {
		name = r.defaultName
	}
	name = strings.ToLower(name)
	adapter, ok := r.adapters[name]
	if !ok {
		return "", Result{}, domain.NewUnknownProvider(name)
	}

	result, err := adapter.Respond(ctx, query)
	if err != nil {
		return name, Result{}, domain.NewProviderFailure(err)
	}
	if result.Tokens < 0 {
		result.Tokens = 0
	}
	return name, result, nil
}
