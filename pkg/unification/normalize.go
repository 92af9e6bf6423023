package unification

import "reflect"

// Normalize converts typed Go collections into the generic shapes the unifier decomposes.
//
// Slices become []any and maps whose key kind is string (string, Symbol or any other
// string-based type) become map[string]any, recursively. Maps keyed by numbers or
// other types stay atoms.
// Pointers are followed only when they lead to such a collection. Arrays (uuid.UUID,
// digests), byte slices, structs, Shaped values, Symbols and every other value are
// kept as-is and therefore unify as atoms.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, Symbol, Shaped, []byte:
		return v
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = Normalize(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, elem := range x {
			out[key] = Normalize(elem)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out

	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		elem := rv.Elem()
		switch elem.Kind() {
		case reflect.Slice, reflect.Map:
			return Normalize(elem.Interface())
		}
	}
	return v
}
