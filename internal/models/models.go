package models

import "fmt"

// Meta is the naming configuration shared by every type inferred from one
// payload: the root type name and the namespace (package) the generated code
// lives in.
type Meta struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// Validate reports whether both naming fields are present.
func (m Meta) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("meta: name is required")
	}
	if m.Namespace == "" {
		return fmt.Errorf("meta: namespace is required")
	}
	return nil
}

// Kind is the shape category assigned to a field.
type Kind int

const (
	Nullable Kind = iota
	Boolean
	Text
	Integer
	Float
	ObjectRef
	ListOfObjectRef
	ListOfScalar
)

var kindNames = map[Kind]string{
	Nullable:        "Nullable",
	Boolean:         "Boolean",
	Text:            "Text",
	Integer:         "Integer",
	Float:           "Float",
	ObjectRef:       "ObjectRef",
	ListOfObjectRef: "ListOfObjectRef",
	ListOfScalar:    "ListOfScalar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ElementKind is the element type of a ListOfScalar field.
type ElementKind int

const (
	ElementInteger ElementKind = iota
	ElementUnknown
)

func (e ElementKind) String() string {
	if e == ElementInteger {
		return "Integer"
	}
	return "Unknown"
}

// TypeKind is the full type of a field. Ref names the referenced type for
// ObjectRef and ListOfObjectRef; Element is meaningful for ListOfScalar only.
type TypeKind struct {
	Kind    Kind
	Ref     string
	Element ElementKind
}

// String renders the kind the way it is written in documentation, e.g.
// ObjectRef(RootA) or ListOfScalar(Integer).
func (t TypeKind) String() string {
	switch t.Kind {
	case ObjectRef, ListOfObjectRef:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Ref)
	case ListOfScalar:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Element)
	default:
		return t.Kind.String()
	}
}

// IsRef reports whether the field refers to another TypeSchema.
func (t TypeKind) IsRef() bool {
	return t.Kind == ObjectRef || t.Kind == ListOfObjectRef
}

// Default returns the default value of a scalar or scalar-list field as a
// plain Go value. Reference kinds have no scalar default; callers build the
// referenced type instead.
func (t TypeKind) Default() any {
	switch t.Kind {
	case Nullable:
		return nil
	case Boolean:
		return false
	case Text:
		return ""
	case Integer:
		return int64(0)
	case Float:
		return float64(0)
	case ListOfObjectRef:
		return []map[string]any{}
	case ListOfScalar:
		return []any{}
	default:
		return nil
	}
}

// Field is one typed member of a TypeSchema.
type Field struct {
	// Name is the key exactly as it appears in the source object.
	Name string
	// Identifier is the camel-cased name used in generated code.
	Identifier string
	Kind       TypeKind
	// Schema is the inferred child type for reference kinds.
	Schema *TypeSchema
}

// TypeSchema is a named type inferred from one JSON object. Fields keep the
// source object's enumeration order.
type TypeSchema struct {
	Name   string
	Fields []Field
	Meta   Meta
}

// Field returns the field with the given original name.
func (s *TypeSchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasListOfObjects reports whether any field is a ListOfObjectRef. Targets
// use it to decide whether the sequence-mapping helper is needed.
func (s *TypeSchema) HasListOfObjects() bool {
	for _, f := range s.Fields {
		if f.Kind.Kind == ListOfObjectRef {
			return true
		}
	}
	return false
}

// Children returns the child schemas in field order.
func (s *TypeSchema) Children() []*TypeSchema {
	var out []*TypeSchema
	for _, f := range s.Fields {
		if f.Kind.IsRef() && f.Schema != nil {
			out = append(out, f.Schema)
		}
	}
	return out
}

// Walk visits s and its descendants depth first, children before their
// parent, mirroring the order in which types are emitted.
func (s *TypeSchema) Walk(visit func(*TypeSchema) error) error {
	for _, child := range s.Children() {
		if err := child.Walk(visit); err != nil {
			return err
		}
	}
	return visit(s)
}

// Unit is one rendered output: the generated source for a single type.
type Unit struct {
	TypeName string
	Source   string
}
