// Package normalize turns untrusted backend payloads into canonical entity
// shapes.
//
// Each entity is described once by a Schema: its fields, their kinds and
// the default used when the backend omits a value. A value is absent when it
// is missing, null, an empty string, a zero number or false, or when it has
// the wrong kind. Absent values are replaced by the field's default, or by
// the current time for timestamp fields.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"

	"grimm.is/langportal/internal/clock"
)

// Kind is the expected JSON kind of a field.
type Kind int

const (
	Any Kind = iota
	String
	Int
	Float
	Bool
	Object
	List
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case List:
		return "list"
	default:
		return "any"
	}
}

// Field describes one key of a normalized object.
type Field struct {
	Name    string
	Kind    Kind
	Default any
	// From lists alternate source keys tried in order when Name is absent.
	From []string
	// Now fills an absent value with the current time in RFC 3339.
	Now bool
	// Schema normalizes the value of an Object field.
	Schema *Schema
	// Elem normalizes each element of a List field. Elements that are not
	// objects are dropped.
	Elem *Schema
}

// Schema is the declarative shape of one entity.
type Schema struct {
	Name   string
	Fields []Field
}

// Apply returns a new map holding exactly the schema's fields. raw is not
// modified; a nil raw yields an all-defaults object.
func (s *Schema) Apply(raw map[string]any, c clock.Clock) map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = f.resolve(raw, c)
	}
	return out
}

func (f Field) resolve(raw map[string]any, c clock.Clock) any {
	for _, key := range append([]string{f.Name}, f.From...) {
		if v, ok := f.accept(raw[key], c); ok {
			return v
		}
	}

	switch {
	case f.Now:
		return clock.ISO(clock.Or(c).Now())
	case f.Kind == Object && f.Schema != nil:
		return f.Schema.Apply(nil, c)
	case f.Kind == List:
		return []any{}
	case f.Default != nil:
		return f.Default
	}
	return zero(f.Kind)
}

// accept reports whether v is present and of the field's kind, returning the
// normalized value.
func (f Field) accept(v any, c clock.Clock) (any, bool) {
	if falsy(v) {
		return nil, false
	}

	switch f.Kind {
	case String:
		s, ok := v.(string)
		return s, ok
	case Int:
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, false
		}
		// float64(math.MaxInt) rounds up to 2^63, which no int holds.
		if n < math.MinInt || n >= math.MaxInt {
			return nil, false
		}
		return n, true
	case Float:
		n, ok := v.(float64)
		return n, ok
	case Bool:
		b, ok := v.(bool)
		return b, ok
	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		if f.Schema != nil {
			return f.Schema.Apply(m, c), true
		}
		return m, true
	case List:
		items, ok := v.([]any)
		if !ok {
			return nil, false
		}
		if f.Elem == nil {
			return items, true
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			if m, ok := it.(map[string]any); ok {
				out = append(out, f.Elem.Apply(m, c))
			}
		}
		return out, true
	}
	return v, true
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return x == 0
	case bool:
		return !x
	}
	return false
}

func zero(k Kind) any {
	switch k {
	case String:
		return ""
	case Int, Float:
		return float64(0)
	case Bool:
		return false
	}
	return nil
}

// Decode normalizes raw against s and decodes the result into T. raw is a
// value produced by encoding/json (a map for objects); anything else is
// treated as an empty object.
func Decode[T any](s *Schema, raw any, c clock.Clock) (T, error) {
	var out T
	m, _ := raw.(map[string]any)
	if err := remarshal(s.Apply(m, c), &out); err != nil {
		return out, fmt.Errorf("normalize %s: %w", s.Name, err)
	}
	return out, nil
}

// DecodeList normalizes every object element of raw. A non-array raw yields
// an empty slice.
func DecodeList[T any](s *Schema, raw any, c clock.Clock) ([]T, error) {
	items, _ := raw.([]any)
	out := make([]T, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		var v T
		if err := remarshal(s.Apply(m, c), &v); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", s.Name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Unmarshal parses a JSON body into the generic value Decode expects. An
// empty body yields nil.
func Unmarshal(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return v, nil
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
