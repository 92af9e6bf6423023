package unification

import "sort"

// Worklist is the queue of equations still to be solved.
// Equations are taken from the front; decomposers append children at the back.
type Worklist struct {
	items []Equation
}

// NewWorklist returns a worklist holding a copy of eqs.
func NewWorklist(eqs ...Equation) *Worklist {
	return &Worklist{items: append([]Equation(nil), eqs...)}
}

// Push appends equations to the back of the queue.
func (w *Worklist) Push(eqs ...Equation) {
	w.items = append(w.items, eqs...)
}

// Len returns the number of pending equations.
func (w *Worklist) Len() int {
	return len(w.items)
}

// Pending returns a copy of the queued equations in processing order.
func (w *Worklist) Pending() []Equation {
	return append([]Equation(nil), w.items...)
}

func (w *Worklist) pop() Equation {
	eq := w.items[0]
	w.items[0] = Equation{}
	w.items = w.items[1:]
	return eq
}

func (w *Worklist) pushFront(eq Equation) {
	w.items = append([]Equation{eq}, w.items...)
}

// substitute applies bindings to both sides of every queued equation. Paths are kept.
func (w *Worklist) substitute(r *Registry, bindings Bindings) {
	for i := range w.items {
		w.items[i].Expected = r.Apply(bindings, w.items[i].Expected)
		w.items[i].Actual = r.Apply(bindings, w.items[i].Actual)
	}
}

// DecomposeSequence checks that both sequences have the same length and then queues
// one equation per element of expected. Values that report ShapeSequence without
// being []any are compared whole through equal.
func DecomposeSequence(expected, actual any, path string, w *Worklist, _ Bindings, equal EqualFunc) error {
	a, okA := expected.([]any)
	b, okB := actual.([]any)
	if !okA || !okB {
		return equal(expected, actual, path)
	}

	if err := equal(len(a), len(b), path+".length"); err != nil {
		return err
	}

	for i := range a {
		var other any
		if i < len(b) {
			other = b[i]
		}
		w.Push(Equation{Expected: a[i], Actual: other, Path: IndexPath(path, i)})
	}
	return nil
}

// DecomposeMapping checks that both mappings have the same key set and then queues one
// equation per key of expected, in sorted key order. Values that report ShapeMapping
// without being map[string]any are compared whole through equal.
func DecomposeMapping(expected, actual any, path string, w *Worklist, _ Bindings, equal EqualFunc) error {
	a, okA := expected.(map[string]any)
	b, okB := actual.(map[string]any)
	if !okA || !okB {
		return equal(expected, actual, path)
	}

	keys := SortedKeys(a)
	if err := equal(keys, SortedKeys(b), path+".keys.sort"); err != nil {
		return err
	}

	for _, key := range keys {
		w.Push(Equation{Expected: a[key], Actual: b[key], Path: KeyPath(path, key)})
	}
	return nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
