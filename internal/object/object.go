package object

import (
	"encoding/json"
)

// Object is the decoded form of a managed object. Field names follow the
// stored JSON: _id, objectType, containerID, owners, writers, viewers,
// annotators, editors, _deleted.
type Object map[string]any

// FromJSON decodes a managed object payload.
func FromJSON(data []byte) (Object, error) {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ToJSON encodes the object back to its stored form.
func (o Object) ToJSON() ([]byte, error) {
	return json.Marshal(o)
}

func (o Object) ID() string {
	return o.Str("_id")
}

func (o Object) ObjectType() string {
	return o.Str("objectType")
}

func (o Object) ContainerID() string {
	return o.Str("containerID")
}

func (o Object) Deleted() bool {
	return o.Bool("_deleted")
}

// Str returns the string value of a field, or "" when absent or not a string.
func (o Object) Str(field string) string {
	if o == nil {
		return ""
	}
	s, _ := o[field].(string)
	return s
}

// Bool returns the boolean value of a field, false when absent.
func (o Object) Bool(field string) bool {
	if o == nil {
		return false
	}
	b, _ := o[field].(bool)
	return b
}

// Has reports whether the field is present, even with a null value.
func (o Object) Has(field string) bool {
	if o == nil {
		return false
	}
	_, ok := o[field]
	return ok
}

// Strings returns a string-array field. Both []string and []any payloads are
// accepted since objects may come from JSON decoding or from Go literals.
func (o Object) Strings(field string) []string {
	if o == nil {
		return nil
	}
	switch v := o[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// List returns an array field as raw values.
func (o Object) List(field string) []any {
	if o == nil {
		return nil
	}
	switch v := o[field].(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, 0, len(v))
		for _, e := range v {
			out = append(out, e)
		}
		return out
	default:
		return nil
	}
}

// Map returns an object-valued field.
func (o Object) Map(field string) map[string]any {
	if o == nil {
		return nil
	}
	m, _ := o[field].(map[string]any)
	return m
}

// Field returns the raw field value.
func (o Object) Field(field string) any {
	if o == nil {
		return nil
	}
	return o[field]
}
