package unification

// defaultRegistry backs the package-level helpers. It is never handed out.
var defaultRegistry = DefaultRegistry()

// Apply substitutes bindings into v using the default sequence and mapping rules.
func Apply(bindings Bindings, v any) any {
	return defaultRegistry.Apply(bindings, v)
}

// Apply returns v with every bound symbol replaced by its binding.
//
// A bound symbol is replaced by a single lookup; the replacement itself is not
// substituted again. Composite values are rebuilt through the substitution rule
// registered for their shape, and values with no rule are returned unchanged.
// The input is never modified.
func (r *Registry) Apply(bindings Bindings, v any) any {
	if s, ok := v.(Symbol); ok {
		if bound, ok := bindings[s]; ok {
			return bound
		}
		return s
	}

	rule, ok := r.substitutions[ShapeOf(v)]
	if !ok {
		return v
	}
	return rule(bindings, v, func(child any) any {
		return r.Apply(bindings, child)
	})
}

// SubstituteSequence is the substitution rule for []any. Other values are returned unchanged.
func SubstituteSequence(_ Bindings, v any, apply func(any) any) any {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(seq))
	for i, elem := range seq {
		out[i] = apply(elem)
	}
	return out
}

// SubstituteMapping is the substitution rule for map[string]any.
// Keys are identifiers and are never substituted, only values. Other values are
// returned unchanged.
func SubstituteMapping(bindings Bindings, v any, apply func(any) any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for key, val := range m {
		if s, ok := val.(Symbol); ok {
			if bound, ok := bindings[s]; ok {
				out[key] = bound
				continue
			}
		}
		out[key] = apply(val)
	}
	return out
}
