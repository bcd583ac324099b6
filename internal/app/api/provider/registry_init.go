package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// ProviderCreator is a function that creates a provider from configuration
type ProviderCreator func(config ProviderConfig) (TranscriptionProvider, error)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("provider type %s not registered (available: %s)",
			providerType, strings.Join(registeredNames(), ", "))
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types, sorted.
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return registeredNames()
}

// registeredNames expects registryMutex to be held.
func registeredNames() []string {
	providers := lo.Keys(providerRegistry)
	sort.Strings(providers)
	return providers
}

// CreateProvider looks up providerType and builds it from config.
func CreateProvider(providerType string, config ProviderConfig) (TranscriptionProvider, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, err
	}
	p, err := creator(config)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", providerType, err)
	}
	return p, nil
}
