package unification

// Decomposer expands an equation between two composites of the same shape.
// It may run auxiliary checks through equal and push child equations onto w.
// bindings is the current binding set and must be treated as read-only.
type Decomposer func(expected, actual any, path string, w *Worklist, bindings Bindings, equal EqualFunc) error

// SubstitutionRule rebuilds a composite value with bindings applied.
// apply substitutes a single child value and should be used for recursion.
type SubstitutionRule func(bindings Bindings, v any, apply func(any) any) any

// Registry holds the per-shape handlers used by the Unifier and the substitution applier.
// A Registry is configuration: populate it before unifying and do not modify it while a
// run that uses it is in progress.
type Registry struct {
	decomposers   map[Shape]Decomposer
	substitutions map[Shape]SubstitutionRule
}

// NewRegistry returns an empty registry. With no handlers every value behaves as an atom.
func NewRegistry() *Registry {
	return &Registry{
		decomposers:   make(map[Shape]Decomposer),
		substitutions: make(map[Shape]SubstitutionRule),
	}
}

// DefaultRegistry returns a new registry with the sequence and mapping handlers installed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterDecomposer(ShapeSequence, DecomposeSequence)
	r.RegisterDecomposer(ShapeMapping, DecomposeMapping)
	r.RegisterSubstitution(ShapeSequence, SubstituteSequence)
	r.RegisterSubstitution(ShapeMapping, SubstituteMapping)
	return r
}

// RegisterDecomposer installs (or replaces) the decomposer for shape.
// A nil decomposer removes the entry. Returns the registry for chaining.
func (r *Registry) RegisterDecomposer(shape Shape, d Decomposer) *Registry {
	if d == nil {
		delete(r.decomposers, shape)
		return r
	}
	r.decomposers[shape] = d
	return r
}

// RegisterSubstitution installs (or replaces) the substitution rule for shape.
// A nil rule removes the entry. Returns the registry for chaining.
func (r *Registry) RegisterSubstitution(shape Shape, rule SubstitutionRule) *Registry {
	if rule == nil {
		delete(r.substitutions, shape)
		return r
	}
	r.substitutions[shape] = rule
	return r
}

// Decomposer returns the decomposer registered for shape.
func (r *Registry) Decomposer(shape Shape) (Decomposer, bool) {
	d, ok := r.decomposers[shape]
	return d, ok
}

// Substitution returns the substitution rule registered for shape.
func (r *Registry) Substitution(shape Shape) (SubstitutionRule, bool) {
	rule, ok := r.substitutions[shape]
	return rule, ok
}

// Clone returns an independent copy that can be extended without touching r.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for shape, d := range r.decomposers {
		c.decomposers[shape] = d
	}
	for shape, rule := range r.substitutions {
		c.substitutions[shape] = rule
	}
	return c
}
