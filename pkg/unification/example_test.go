package unification_test

import (
	"fmt"
	"regexp"

	"github.com/dyluth/unifiable/pkg/unification"
)

func ExampleUnify() {
	expected := map[string]any{
		"id":    unification.Symbol("_id"),
		"owner": unification.Symbol("_id"),
		"name":  "widget",
		"rev":   unification.Symbol("_"),
	}
	actual := map[string]any{
		"id":    "a1b2",
		"owner": "a1b2",
		"name":  "widget",
		"rev":   7,
	}

	bindings, err := unification.Unify(expected, actual, unification.StrictEqual)
	fmt.Println(bindings, err)
	// Output: map[_id:a1b2] <nil>
}

func ExampleUnify_mismatch() {
	_, err := unification.Unify(
		[]any{unification.Symbol("_a"), unification.Symbol("_a")},
		[]any{1, 3},
		unification.StrictEqual,
	)
	fmt.Println(err)
	// Output: could not unify at path `[1]`: expected `1` vs actual `3`
}

func ExampleApply() {
	bindings := unification.Bindings{"_a": 1}
	fmt.Println(unification.Apply(bindings, map[string]any{"x": []any{unification.Symbol("_a"), "_a"}}))
	// Output: map[x:[1 _a]]
}

func ExampleNewUnifier() {
	u := unification.NewUnifier(unification.Options{
		Pattern:  regexp.MustCompile(`^'`),
		Wildcard: "'_",
	})

	bindings, err := u.Unify(
		[]any{unification.Symbol("'a"), unification.Symbol("'b"), unification.Symbol("'_")},
		[]any{1, 2, 3},
		unification.StrictEqual,
	)
	fmt.Println(bindings, err)
	// Output: map['a:1 'b:2] <nil>
}
