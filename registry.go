package bspec

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*StepSet)
)

// Register associates a step set with a feature name, replacing any
// previous registration for that name.
func Register(feature string, set *StepSet) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[feature] = set
}

// Resolve returns the step set registered under a feature name. Its
// signature matches gherkin.Resolver so it can be handed straight to
// the parser.
func Resolve(feature string) (any, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	set, ok := registry[feature]
	if !ok {
		return nil, false
	}
	return set, true
}

// Registered returns the feature names with a step set, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a feature's step set. Mainly useful in tests.
func Unregister(feature string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, feature)
}
