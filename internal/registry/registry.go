// Package registry provides a global registry for autonomous move policies.
// Policies register themselves by name, allowing level files to pick a
// behaviour ("random", "patrol", ...) without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

// Params carries the per-entity inputs a policy factory may use.
type Params struct {
	// Path is the direction list for path-following policies.
	Path []core.Dir

	// Rng is the source for randomized policies. The level builder derives
	// it from the game seed so that runs are reproducible.
	Rng *rand.Rand
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	Name        string
	Description string
}

// Factory creates a new policy instance for one entity.
type Factory func(p Params) (core.MovePolicy, error)

type entry struct {
	factory     Factory
	description string
}

var (
	factories = make(map[string]entry)
	mu        sync.RWMutex
)

// Register adds a policy factory to the registry.
// Panics if a policy with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", name))
	}

	factories[name] = entry{factory: f, description: description}
}

// List returns information about all registered policies, sorted by name.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for name, e := range factories {
		result = append(result, PolicyInfo{
			Name:        name,
			Description: e.description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a policy by name.
// Returns an error if the name is not registered or the params do not fit.
func Create(name string, p Params) (core.MovePolicy, error) {
	mu.RLock()
	e, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", name)
	}

	policy, err := e.factory(p)
	if err != nil {
		return nil, fmt.Errorf("registry: policy %q: %w", name, err)
	}
	return policy, nil
}

// Exists checks if a policy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
