// Package unifytest asserts unifiability inside Go tests using testify.
//
// Expected values use unification.Symbol placeholders for the parts a test does not
// want to pin down; the bindings are returned so the test can make further assertions:
//
//	bindings := unifytest.RequireUnifiable(t,
//		map[string]any{"created_at": unification.Symbol("_a"), "updated_at": unification.Symbol("_b")},
//		unification.Normalize(record),
//	)
//	assert.True(t, bindings["_a"].(time.Time).Before(bindings["_b"].(time.Time)))
package unifytest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/unifiable/pkg/unification"
)

type tHelper interface {
	Helper()
}

// Asserter runs unification assertions with a fixed placeholder configuration.
type Asserter struct {
	unifier *unification.Unifier
}

// New returns an Asserter using opts. The zero Options select the defaults
// (leading-underscore placeholders, _ as wildcard).
func New(opts unification.Options) *Asserter {
	return &Asserter{unifier: unification.NewUnifier(opts)}
}

var defaultAsserter = New(unification.Options{})

// Unifiable asserts that expected and actual unify with the default options.
func Unifiable(t assert.TestingT, expected, actual any, msgAndArgs ...any) (unification.Bindings, bool) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultAsserter.Unifiable(t, expected, actual, msgAndArgs...)
}

// RequireUnifiable is like Unifiable but stops the test on failure.
func RequireUnifiable(t require.TestingT, expected, actual any, msgAndArgs ...any) unification.Bindings {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultAsserter.Require(t, expected, actual, msgAndArgs...)
}

// Unifiable asserts that expected and actual unify and returns the bindings.
//
// Every comparison the unifier cannot settle structurally goes through assert.Equal,
// so a failure is reported by testify with the path of the offending value and a diff.
// Only the first failure is reported. On failure the returned bindings are nil.
func (a *Asserter) Unifiable(t assert.TestingT, expected, actual any, msgAndArgs ...any) (unification.Bindings, bool) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	equal := func(x, y any, path string) error {
		msg := fmt.Sprintf("could not unify at path `%s`", unification.DisplayPath(path))
		if extra := messageFromMsgAndArgs(msgAndArgs...); extra != "" {
			msg = extra + ": " + msg
		}
		if !assert.Equal(t, x, y, msg) {
			return &unification.MismatchError{Path: path, Expected: x, Actual: y}
		}
		return nil
	}

	bindings, err := a.unifier.Unify(expected, actual, equal)
	if err != nil {
		return nil, false
	}
	return bindings, true
}

// Require is like Unifiable but calls t.FailNow on failure.
func (a *Asserter) Require(t require.TestingT, expected, actual any, msgAndArgs ...any) unification.Bindings {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	bindings, ok := a.Unifiable(t, expected, actual, msgAndArgs...)
	if !ok {
		t.FailNow()
	}
	return bindings
}

// Bound asserts that name has a binding and returns its value.
func Bound(t assert.TestingT, bindings unification.Bindings, name string) (any, bool) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	v, ok := bindings.Lookup(name)
	if !ok {
		return nil, assert.Fail(t, fmt.Sprintf("placeholder %s is not bound", name),
			"bound placeholders: %v", bindings.Names())
	}
	return v, true
}

// BoundUUID asserts that name is bound to a UUID, either a uuid.UUID or its string form,
// and returns it parsed.
func BoundUUID(t assert.TestingT, bindings unification.Bindings, name string) (uuid.UUID, bool) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	v, ok := Bound(t, bindings, name)
	if !ok {
		return uuid.Nil, false
	}

	switch x := v.(type) {
	case uuid.UUID:
		return x, true
	case string:
		id, err := uuid.Parse(x)
		if err != nil {
			return uuid.Nil, assert.Fail(t, fmt.Sprintf("placeholder %s is bound to %q, not a UUID", name, x), err.Error())
		}
		return id, true
	default:
		return uuid.Nil, assert.Fail(t, fmt.Sprintf("placeholder %s is bound to %T, not a UUID", name, v))
	}
}

// messageFromMsgAndArgs follows testify's convention for optional messages: a single
// value is used as-is, more than one is treated as a format string and its arguments.
func messageFromMsgAndArgs(msgAndArgs ...any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if msg, ok := msgAndArgs[0].(string); ok {
			return msg
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return fmt.Sprint(msgAndArgs...)
	}
}
