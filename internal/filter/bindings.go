package filter

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/unifiable/pkg/unification"
)

// Criteria selects which bindings are reported.
// A binding passes when its placeholder name matches ANY of the globs.
type Criteria struct {
	NameGlobs []string // Glob patterns for placeholder names, empty = no filter
}

// Validate rejects malformed glob patterns up front so Matches never has to.
func (c *Criteria) Validate() error {
	for _, glob := range c.NameGlobs {
		if _, err := filepath.Match(glob, ""); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", glob, err)
		}
	}
	return nil
}

// Matches returns true if the placeholder name matches the criteria.
// Empty criteria match every name.
func (c *Criteria) Matches(name unification.Symbol) bool {
	if !c.HasFilters() {
		return true
	}
	for _, glob := range c.NameGlobs {
		if matched, err := filepath.Match(glob, string(name)); err == nil && matched {
			return true
		}
	}
	return false
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return len(c.NameGlobs) > 0
}

// Apply returns the subset of bindings matching the criteria.
// The input is never modified.
func (c *Criteria) Apply(bindings unification.Bindings) unification.Bindings {
	result := make(unification.Bindings, len(bindings))
	for name, v := range bindings {
		if c.Matches(name) {
			result[name] = v
		}
	}
	return result
}
