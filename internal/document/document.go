// Package document loads YAML or JSON documents into value trees the unifier understands.
//
// Mappings become map[string]any, sequences []any, timestamps time.Time and other
// scalars their natural Go types. Placeholders are written as plain scalars in
// expected documents (e.g. `id: _id`) or explicitly with the !sym tag in any document.
// Quoting a scalar (`id: "_id"`) keeps it a string.
package document

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dyluth/unifiable/pkg/unification"
)

// SymbolTag marks a scalar as a symbol regardless of mode
const SymbolTag = "!sym"

// Mode selects how plain scalars are interpreted.
type Mode int

const (
	// Actual documents only produce symbols from explicit !sym tags
	Actual Mode = iota

	// Expected documents also turn plain scalars matching the placeholder pattern
	// into symbols
	Expected
)

// Loader converts documents using a placeholder configuration.
// The wildcard needs no special handling here: it is only a placeholder when it
// matches the pattern, like any other name.
type Loader struct {
	Pattern *regexp.Regexp
}

// NewLoader returns a loader for the given options, applying the unifier defaults.
func NewLoader(opts unification.Options) *Loader {
	l := &Loader{Pattern: opts.Pattern}
	if l.Pattern == nil {
		l.Pattern = unification.DefaultPattern
	}
	return l
}

// LoadFile reads and converts the document at path.
func (l *Loader) LoadFile(path string, mode Mode) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	v, err := l.Parse(data, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse converts a single YAML (or JSON) document. An empty document is nil.
func (l *Loader) Parse(data []byte, mode Mode) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return l.convert(&root, mode)
}

// LoadBindings reads a mapping of placeholder names to values, e.g. for applying
// bindings to a template.
func (l *Loader) LoadBindings(path string) (unification.Bindings, error) {
	v, err := l.LoadFile(path, Actual)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return unification.Bindings{}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: bindings must be a mapping, got %T", path, v)
	}

	bindings := make(unification.Bindings, len(m))
	for name, val := range m {
		bindings[unification.Symbol(name)] = val
	}
	return bindings, nil
}

func (l *Loader) convert(node *yaml.Node, mode Mode) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return l.convert(node.Content[0], mode)

	case yaml.AliasNode:
		return l.convert(node.Alias, mode)

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := l.convert(child, mode)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			if _, exists := m[key.Value]; exists {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			v, err := l.convert(val, mode)
			if err != nil {
				return nil, err
			}
			m[key.Value] = v
		}
		return m, nil

	case yaml.ScalarNode:
		return l.scalar(node, mode)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func (l *Loader) scalar(node *yaml.Node, mode Mode) (any, error) {
	if node.Tag == SymbolTag {
		return unification.Symbol(node.Value), nil
	}

	switch node.ShortTag() {
	case "!!str":
		if mode == Expected && node.Style == 0 && l.isPlaceholder(node.Value) {
			return unification.Symbol(node.Value), nil
		}
		return node.Value, nil

	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return t, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return v, nil
}

func (l *Loader) isPlaceholder(name string) bool {
	return l.Pattern.MatchString(name)
}
