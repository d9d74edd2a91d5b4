// File: confstack/component.go
package confstack

import (
	"fmt"
	"sort"
)

// Configurable is the only capability the assembler requires of a component:
// accept the configuration slice named by its profile. Concrete component
// types stay unknown to this package.
type Configurable interface {
	Configure(config map[string]any) error
}

// ConfigurableFunc adapts a plain function to Configurable.
type ConfigurableFunc func(config map[string]any) error

func (f ConfigurableFunc) Configure(config map[string]any) error { return f(config) }

// Apply hands each component its slice of the assembled configuration,
// keyed by profile. The null profile ("") receives the full map; a profile
// with no configured slice receives an empty map. Components are applied in
// sorted profile order for determinism.
func Apply(cfg *Config, components map[string]Configurable) error {
	profiles := make([]string, 0, len(components))
	for profile := range components {
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)

	for _, profile := range profiles {
		slice := profileSlice(cfg, profile)
		if err := components[profile].Configure(slice); err != nil {
			return fmt.Errorf("failed to configure component for profile %q: %w", profile, err)
		}
	}
	return nil
}

func profileSlice(cfg *Config, profile string) map[string]any {
	if profile == "" {
		return cfg.Map()
	}
	value, ok := cfg.Get(profile)
	if !ok {
		return map[string]any{}
	}
	if m, isMap := value.(map[string]any); isMap {
		return m
	}
	return map[string]any{}
}
