package services

import (
	"fmt"
	"sort"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
)

// ProviderRegistry holds the closed set of chat providers. It is built
// once at startup from configuration; lookups never construct adapters.
type ProviderRegistry struct {
	providers   map[domain.ProviderName]driven.Provider
	defaultName domain.ProviderName
}

// NewProviderRegistry creates a registry. The default provider must be
// present in the set.
func NewProviderRegistry(providers map[domain.ProviderName]driven.Provider, defaultName domain.ProviderName) (*ProviderRegistry, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no providers registered", domain.ErrConfiguration)
	}
	if _, ok := providers[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default provider %q is not registered",
			domain.ErrConfiguration, defaultName)
	}
	return &ProviderRegistry{
		providers:   providers,
		defaultName: defaultName,
	}, nil
}

// Get returns the provider for the name. An empty name selects the
// default. An unknown name is an error; there is no silent fallback.
func (r *ProviderRegistry) Get(name string) (driven.Provider, domain.ProviderName, error) {
	resolved := domain.ProviderName(name)
	if name == "" {
		resolved = r.defaultName
	}
	p, ok := r.providers[resolved]
	if !ok {
		return nil, resolved, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, name)
	}
	return p, resolved, nil
}

// Default returns the default provider name.
func (r *ProviderRegistry) Default() domain.ProviderName {
	return r.defaultName
}

// Names returns the registered provider names in sorted order.
func (r *ProviderRegistry) Names() []domain.ProviderName {
	names := make([]domain.ProviderName, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Close releases every registered provider.
func (r *ProviderRegistry) Close() {
	for _, p := range r.providers {
		p.Close()
	}
}
