// Package record evaluates inferred types in process. A Record behaves like
// an instance of the code emitted for its TypeSchema: New applies the default
// value policy, Bind fills it from a payload and ToMap is the
// conversion-to-mapping every target generates.
package record

import (
	"errors"
	"fmt"

	"github.com/mcncl/modelgen/internal/models"
)

// ErrTypeMismatch is returned by Bind when a value does not have the shape
// its field was inferred with.
var ErrTypeMismatch = errors.New("value does not match inferred type")

// Record is an instance of a TypeSchema. Values holds one entry per field, in
// field order: a plain value for scalar kinds, a *Record for ObjectRef,
// []*Record for ListOfObjectRef and []any for ListOfScalar.
type Record struct {
	Schema *models.TypeSchema
	Values []any
}

// New returns the default instance of schema. Nested objects are constructed
// with their own defaults and lists start empty.
func New(schema *models.TypeSchema) *Record {
	r := &Record{
		Schema: schema,
		Values: make([]any, len(schema.Fields)),
	}
	for i, f := range schema.Fields {
		switch f.Kind.Kind {
		case models.ObjectRef:
			r.Values[i] = New(f.Schema)
		case models.ListOfObjectRef:
			r.Values[i] = []*Record{}
		default:
			r.Values[i] = f.Kind.Default()
		}
	}
	return r
}

// Bind builds an instance of schema from obj. Fields missing from obj keep
// their defaults and keys unknown to schema are ignored.
func Bind(schema *models.TypeSchema, obj models.Value) (*Record, error) {
	if obj.Kind != models.ObjectValue {
		return nil, fmt.Errorf("%w: %s expects an object, got %s", ErrTypeMismatch, schema.Name, obj.Kind)
	}

	r := New(schema)
	for i, f := range schema.Fields {
		value, ok := obj.Get(f.Name)
		if !ok {
			continue
		}
		bound, err := bindField(f, value)
		if err != nil {
			return nil, fmt.Errorf("field '%s' of %s: %w", f.Name, schema.Name, err)
		}
		r.Values[i] = bound
	}
	return r, nil
}

func bindField(f models.Field, value models.Value) (any, error) {
	switch f.Kind.Kind {
	case models.ObjectRef:
		return Bind(f.Schema, value)

	case models.ListOfObjectRef:
		if value.Kind != models.ArrayValue {
			return nil, fmt.Errorf("%w: expected a list, got %s", ErrTypeMismatch, value.Kind)
		}
		items := make([]*Record, 0, len(value.Array))
		for idx, elem := range value.Array {
			// An empty list stands in for an empty object.
			if elem.Kind == models.ArrayValue && elem.Len() == 0 {
				elem = models.Object()
			}
			item, err := Bind(f.Schema, elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			items = append(items, item)
		}
		return items, nil

	case models.ListOfScalar:
		if value.Kind == models.ObjectValue && value.Len() == 0 {
			return []any{}, nil
		}
		if value.Kind != models.ArrayValue {
			return nil, fmt.Errorf("%w: expected a list, got %s", ErrTypeMismatch, value.Kind)
		}
		items := make([]any, len(value.Array))
		for idx, elem := range value.Array {
			items[idx] = elem.Native()
		}
		return items, nil

	default:
		return value.Native(), nil
	}
}

// ToMap converts r into a map keyed by the original field names. Nested
// records are converted recursively and lists of records element-wise, in
// order.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.Schema.Fields))
	for i, f := range r.Schema.Fields {
		switch v := r.Values[i].(type) {
		case *Record:
			out[f.Name] = v.ToMap()
		case []*Record:
			items := make([]map[string]any, 0, len(v))
			for _, item := range v {
				items = append(items, item.ToMap())
			}
			out[f.Name] = items
		default:
			out[f.Name] = v
		}
	}
	return out
}

