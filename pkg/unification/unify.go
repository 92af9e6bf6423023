package unification

import "regexp"

const (
	// DefaultWildcard matches any value without producing a binding
	DefaultWildcard Symbol = "_"
)

// DefaultPattern recognises placeholders by a leading underscore, e.g. _a or _created_at.
var DefaultPattern = regexp.MustCompile(`^_`)

// EqualFunc decides an equation the unifier cannot resolve structurally.
// A non-nil error is the failure signal: it aborts the run and is returned unchanged.
type EqualFunc func(expected, actual any, path string) error

// Options configures a Unifier. Zero values select the defaults.
type Options struct {
	// Pattern recognises placeholder symbols. Defaults to DefaultPattern.
	Pattern *regexp.Regexp

	// Wildcard is the placeholder that matches anything and is never bound.
	// It only takes effect when it matches Pattern. Defaults to DefaultWildcard.
	Wildcard Symbol

	// Registry supplies decomposers and substitution rules. Defaults to DefaultRegistry().
	Registry *Registry

	// Logf receives debug traces of the solver when set.
	Logf func(format string, v ...any)
}

// Unifier solves equations with a fixed configuration.
// It holds no per-run state and may be reused.
type Unifier struct {
	pattern  *regexp.Regexp
	wildcard Symbol
	registry *Registry
	logf     func(format string, v ...any)
}

// NewUnifier builds a Unifier from opts, filling in defaults.
func NewUnifier(opts Options) *Unifier {
	u := &Unifier{
		pattern:  opts.Pattern,
		wildcard: opts.Wildcard,
		registry: opts.Registry,
		logf:     opts.Logf,
	}
	if u.pattern == nil {
		u.pattern = DefaultPattern
	}
	if u.wildcard == "" {
		u.wildcard = DefaultWildcard
	}
	if u.registry == nil {
		u.registry = DefaultRegistry()
	}
	if u.logf == nil {
		u.logf = func(string, ...any) {}
	}
	return u
}

// Unify unifies expected with actual using the default options.
func Unify(expected, actual any, equal EqualFunc) (Bindings, error) {
	return NewUnifier(Options{}).Unify(expected, actual, equal)
}

// Registry returns the registry used by u.
func (u *Unifier) Registry() *Registry {
	return u.registry
}

// IsPlaceholder reports whether v is a symbol matching the placeholder pattern.
// A wildcard that does not match the pattern is an ordinary symbol.
func (u *Unifier) IsPlaceholder(v any) bool {
	s, ok := v.(Symbol)
	if !ok {
		return false
	}
	return u.pattern.MatchString(string(s))
}

// IsWildcard reports whether v is the wildcard symbol.
func (u *Unifier) IsWildcard(v any) bool {
	return isSymbol(v, u.wildcard)
}

// Unify unifies expected with actual starting from the root path.
func (u *Unifier) Unify(expected, actual any, equal EqualFunc) (Bindings, error) {
	return u.Solve([]Equation{{Expected: expected, Actual: actual}}, equal)
}

// Solve processes eqs in order until none remain and returns the bindings found.
//
// The first error reported by equal (directly or through a decomposer) stops the run;
// it is returned as-is with nil bindings. On success, placeholders bound to themselves
// are removed from the result.
func (u *Unifier) Solve(eqs []Equation, equal EqualFunc) (Bindings, error) {
	w := NewWorklist(eqs...)
	bindings := make(Bindings)

	for w.Len() > 0 {
		eq := w.pop()
		a, b := eq.Expected, eq.Actual

		switch {
		case u.IsPlaceholder(a):
			u.bind(a.(Symbol), b, eq, true, w, bindings)

		case u.IsPlaceholder(b):
			u.bind(b.(Symbol), a, eq, false, w, bindings)

		default:
			if err := u.compare(eq, w, bindings, equal); err != nil {
				u.logf("[DEBUG] unify: failed at %s: %v", DisplayPath(eq.Path), err)
				return nil, err
			}
		}
	}

	result := make(Bindings, len(bindings))
	for name, v := range bindings {
		if isSymbol(v, name) {
			continue
		}
		result[name] = v
	}
	return result, nil
}

// compare handles an equation with no placeholder at its top level.
func (u *Unifier) compare(eq Equation, w *Worklist, bindings Bindings, equal EqualFunc) error {
	shape := ShapeOf(eq.Expected)
	if shape != ShapeAtom && shape == ShapeOf(eq.Actual) {
		if decompose, ok := u.registry.Decomposer(shape); ok {
			u.logf("[DEBUG] unify: decompose %s at %s", shape, DisplayPath(eq.Path))
			return decompose(eq.Expected, eq.Actual, eq.Path, w, bindings, equal)
		}
	}
	return equal(eq.Expected, eq.Actual, eq.Path)
}

// bind records p -> v. fromExpected tells which side of eq held the placeholder, so a
// re-check of an existing binding keeps the expected/actual orientation.
func (u *Unifier) bind(p Symbol, v any, eq Equation, fromExpected bool, w *Worklist, bindings Bindings) {
	if u.IsWildcard(p) {
		return
	}
	if isSymbol(v, p) {
		return
	}

	// Only reachable through a binding that contains its own placeholder.
	if prev, ok := bindings[p]; ok && !isSymbol(prev, p) {
		u.logf("[DEBUG] unify: %s already bound, comparing at %s", p, DisplayPath(eq.Path))
		if fromExpected {
			w.pushFront(Equation{Expected: prev, Actual: v, Path: eq.Path})
		} else {
			w.pushFront(Equation{Expected: v, Actual: prev, Path: eq.Path})
		}
		return
	}

	u.logf("[DEBUG] unify: bind %s = %v at %s", p, v, DisplayPath(eq.Path))

	single := Bindings{p: v}
	w.substitute(u.registry, single)
	for name, bound := range bindings {
		bindings[name] = u.registry.Apply(single, bound)
	}
	bindings[p] = v
}

func isSymbol(v any, s Symbol) bool {
	sym, ok := v.(Symbol)
	return ok && sym == s
}
