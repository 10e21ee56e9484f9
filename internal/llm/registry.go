package llm

import (
	"fmt"
	"sort"
	"time"
)

// settings shared by every provider
type ProviderOptions struct {
	// Timeout bounds a single completion call; zero means no explicit bound.
	Timeout time.Duration
}

// defines a function that creates a new provider instance
type ProviderFactory func(opts ProviderOptions) (Provider, error)

// global registry of available providers
var providers = make(map[string]ProviderFactory)

// registers a provider factory with the given name
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// creates a new provider instance based on the given name
func NewProvider(name string, opts ProviderOptions) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory(opts)
}

// RegisteredProviders lists registered provider names in sorted order.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
