package unification

import (
	"fmt"
	"sort"
)

// Shape is the tag used to classify a value for dispatch.
type Shape string

const (
	// ShapeAtom covers every value that is compared by equality
	ShapeAtom Shape = "atom"

	// ShapeSequence is the shape of []any
	ShapeSequence Shape = "sequence"

	// ShapeMapping is the shape of map[string]any
	ShapeMapping Shape = "mapping"
)

// Shaped is implemented by composite values that want their own decomposition and
// substitution handlers. The returned shape is the Registry key for those handlers.
type Shaped interface {
	Shape() Shape
}

// ShapeOf classifies v. Values that are neither sequences, mappings nor Shaped are atoms.
//
// Only map[string]any is a mapping. Maps with other key types are atoms and compare
// whole; Normalize converts maps whose key kind is string (including Symbol keys).
// Other key types need a Shaped wrapper with its own registered handlers.
func ShapeOf(v any) Shape {
	switch x := v.(type) {
	case []any:
		return ShapeSequence
	case map[string]any:
		return ShapeMapping
	case Shaped:
		return x.Shape()
	default:
		return ShapeAtom
	}
}

// Symbol is a named atom. Symbols matching the placeholder pattern act as meta-variables.
type Symbol string

// String returns the symbol name.
func (s Symbol) String() string {
	return string(s)
}

// Equation is a pending constraint that Expected and Actual must unify.
// Path locates the pair inside the root values and is only used for reporting.
type Equation struct {
	Expected any
	Actual   any
	Path     string
}

// String renders the equation for debug logging.
func (e Equation) String() string {
	return fmt.Sprintf("%s: %v = %v", DisplayPath(e.Path), e.Expected, e.Actual)
}

// Bindings maps placeholders to the values they were unified with.
type Bindings map[Symbol]any

// Names returns the bound placeholder names in sorted order.
func (b Bindings) Names() []Symbol {
	names := make([]Symbol, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup returns the value bound to the named placeholder.
func (b Bindings) Lookup(name string) (any, bool) {
	v, ok := b[Symbol(name)]
	return v, ok
}

// DisplayPath renders a path label for messages. The root path is empty and shown as <root>.
func DisplayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

// IndexPath extends path with a sequence index, e.g. [2].
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// KeyPath extends path with a mapping key, e.g. ["name"].
func KeyPath(path string, key string) string {
	return fmt.Sprintf("%s[%q]", path, key)
}
