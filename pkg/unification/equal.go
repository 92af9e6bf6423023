package unification

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// MismatchError reports an equation that could not be unified.
type MismatchError struct {
	Path     string // Location of the offending pair inside the root values
	Expected any
	Actual   any
	Diff     string // Optional human-readable diff (-expected +actual)
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("could not unify at path `%s`: expected `%#v` vs actual `%#v`",
		DisplayPath(e.Path), e.Expected, e.Actual)
}

// IsMismatch reports whether err is, or wraps, a *MismatchError.
func IsMismatch(err error) bool {
	var m *MismatchError
	return errors.As(err, &m)
}

// AsMismatch returns the *MismatchError inside err, if any.
func AsMismatch(err error) (*MismatchError, bool) {
	var m *MismatchError
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// cmpOptions lets cmp descend into unexported struct fields instead of panicking.
// Types with an Equal method (time.Time) are still compared through it.
var cmpOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// StrictEqual is an EqualFunc that requires both values to be deeply equal with no
// type coercion: int(1) and int64(1) are different values.
func StrictEqual(expected, actual any, path string) error {
	if cmp.Equal(expected, actual, cmpOptions...) {
		return nil
	}
	return &MismatchError{
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Diff:     cmp.Diff(expected, actual, cmpOptions...),
	}
}
