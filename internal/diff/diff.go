// Package diff implements the deep-equality oracle used to decide whether a
// field changed between two revisions of a managed object.
package diff

import (
	"reflect"

	"github.com/emrgen/manuscript/internal/object"
)

// Equal reports structural equality between two JSON-shaped values. Arrays
// are order-sensitive. Values are normalized first so that []string and
// []any, or int and float64, compare equal when they encode the same JSON.
func Equal(a, b any) bool {
	return equal(normalize(a), normalize(b))
}

// Changed reports whether a field mutated between prior and proposed. A
// missing prior means a first revision, which is never a mutation. An empty
// field compares the whole objects.
func Changed(proposed, prior object.Object, field string) bool {
	if prior == nil {
		return false
	}
	if field == "" {
		return !Equal(map[string]any(proposed), map[string]any(prior))
	}
	return !Equal(proposed.Field(field), prior.Field(field))
}

func equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, present := bv[k]
			if !present || !equal(v, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// normalize converts any Go value into the canonical JSON value shape:
// nil, bool, float64, string, []any or map[string]any.
func normalize(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case bool, float64, string:
		return tv
	case int:
		return float64(tv)
	case int32:
		return float64(tv)
	case int64:
		return float64(tv)
	case uint:
		return float64(tv)
	case uint64:
		return float64(tv)
	case float32:
		return float64(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = normalize(e)
		}
		return out
	case object.Object:
		return normalize(map[string]any(tv))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			if key.Kind() != reflect.String {
				continue
			}
			out[key.String()] = normalize(rv.MapIndex(key).Interface())
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}

	return v
}
