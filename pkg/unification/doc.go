// Package unification checks that two nested values are "unifiable": equal up to a
// consistent substitution of placeholder symbols for concrete sub-values.
//
// # Overview
//
// The package is built for test assertions. An expected value carries placeholders
// where the test does not want to pin a value down exactly (timestamps, generated ids),
// the actual value is checked for structural compatibility, and the bindings discovered
// for each placeholder are handed back to the caller for further inspection.
//
// # Values
//
// Values are plain Go data classified into shapes:
//
//   - []any is a Sequence
//   - map[string]any is a Mapping
//   - any type implementing Shaped reports its own composite shape
//   - everything else (numbers, strings, time.Time, nil, Symbol) is an Atom
//
// A Symbol whose name matches the placeholder pattern (default ^_) is a placeholder.
// The wildcard (default _) is a placeholder that matches anything without producing a
// binding. It must itself match the pattern; otherwise it is an ordinary symbol.
// Plain strings are never placeholders, so actual data can safely contain "_id".
//
// # Usage Example
//
//	expected := map[string]any{
//		"id":         unification.Symbol("_id"),
//		"name":       "widget",
//		"created_at": unification.Symbol("_"),
//	}
//
//	bindings, err := unification.Unify(expected, actual, unification.StrictEqual)
//	if err != nil {
//		// err is the *MismatchError returned by StrictEqual
//	}
//	id := bindings["_id"]
//
// # Algorithm
//
// Unification works through a queue of equations front to back. A placeholder on
// either side is bound to the other side and the binding is substituted through the
// rest of the queue and through earlier bindings. Two composites of the same shape are
// expanded by the Decomposer registered for that shape. Everything else is handed to the
// caller's EqualFunc, whose error aborts the run.
//
// The solver is greedy and single-pass: the first equation that mentions a placeholder
// fixes its binding, and later equations compare against the substituted value. There
// is no occurs-check, so a placeholder may be bound to a value that contains itself.
//
// # Extending
//
// New composite kinds implement Shaped and register a Decomposer and a
// SubstitutionRule on a Registry passed through Options. Shapes with no registered
// handlers behave as atoms.
package unification
