package models

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	StringValue
	IntegerValue
	FloatValue
	ArrayValue
	ObjectValue
)

// String returns the JSON name of the kind.
func (k ValueKind) String() string {
	switch k {
	case NullValue:
		return "null"
	case BoolValue:
		return "boolean"
	case StringValue:
		return "string"
	case IntegerValue:
		return "integer"
	case FloatValue:
		return "float"
	case ArrayValue:
		return "array"
	case ObjectValue:
		return "object"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a decoded JSON value. Exactly one of the payload fields is
// meaningful, selected by Kind. Objects keep their members in source order.
type Value struct {
	Kind    ValueKind
	Bool    bool
	String  string
	Integer int64
	Float   float64
	Array   []Value
	Members []Member
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{Kind: NullValue} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// String wraps a string.
func String(s string) Value { return Value{Kind: StringValue, String: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{Kind: IntegerValue, Integer: i} }

// Float64 wraps a floating-point number.
func Float64(f float64) Value { return Value{Kind: FloatValue, Float: f} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: ArrayValue, Array: items}
}

// Object builds an object from members in the given order.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{Kind: ObjectValue, Members: members}
}

// M is shorthand for building a Member.
func M(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.Kind == ArrayValue || v.Kind == ObjectValue
}

// Len returns the number of elements of an array or members of an object,
// and zero for scalars.
func (v Value) Len() int {
	switch v.Kind {
	case ArrayValue:
		return len(v.Array)
	case ObjectValue:
		return len(v.Members)
	default:
		return 0
	}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the member keys of an object in source order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Native converts v into plain Go values: nil, bool, string, int64, float64,
// []any and map[string]any.
func (v Value) Native() any {
	switch v.Kind {
	case BoolValue:
		return v.Bool
	case StringValue:
		return v.String
	case IntegerValue:
		return v.Integer
	case FloatValue:
		return v.Float
	case ArrayValue:
		out := make([]any, len(v.Array))
		for i, item := range v.Array {
			out[i] = item.Native()
		}
		return out
	case ObjectValue:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = m.Value.Native()
		}
		return out
	default:
		return nil
	}
}
