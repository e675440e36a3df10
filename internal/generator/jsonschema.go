package generator

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mcncl/modelgen/internal/models"
)

// JSONSchemaTarget renders each type as a standalone JSON Schema
// (draft 2020-12) document. Nested types are referenced by their $id.
type JSONSchemaTarget struct{}

// NewJSONSchemaTarget creates a JSON Schema target.
func NewJSONSchemaTarget() *JSONSchemaTarget {
	return &JSONSchemaTarget{}
}

func (t *JSONSchemaTarget) Name() string     { return "jsonschema" }
func (t *JSONSchemaTarget) Language() string { return "json" }

func (t *JSONSchemaTarget) FileName(typeName string) string {
	return schemaID(typeName)
}

// Render implements Target.
func (t *JSONSchemaTarget) Render(schema *models.TypeSchema) (string, error) {
	properties := orderedmap.New[string, *jsonschema.Schema]()
	for _, f := range schema.Fields {
		prop, err := propertySchema(f)
		if err != nil {
			return "", err
		}
		properties.Set(f.Name, prop)
	}

	doc := &jsonschema.Schema{
		Version:    jsonschema.Version,
		ID:         jsonschema.ID(schemaID(schema.Name)),
		Title:      schema.Name,
		Type:       "object",
		Properties: properties,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema for '%s': %w", schema.Name, err)
	}
	return string(data) + "\n", nil
}

func propertySchema(f models.Field) (*jsonschema.Schema, error) {
	switch f.Kind.Kind {
	case models.Nullable:
		return &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{{Type: "string"}, {Type: "null"}},
		}, nil
	case models.Boolean:
		return &jsonschema.Schema{Type: "boolean", Default: false}, nil
	case models.Text:
		return &jsonschema.Schema{Type: "string", Default: ""}, nil
	case models.Integer:
		return &jsonschema.Schema{Type: "integer", Default: 0}, nil
	case models.Float:
		return &jsonschema.Schema{Type: "number", Default: 0.0}, nil
	case models.ObjectRef:
		return &jsonschema.Schema{Ref: schemaID(f.Kind.Ref)}, nil
	case models.ListOfObjectRef:
		return &jsonschema.Schema{
			Type:    "array",
			Items:   &jsonschema.Schema{Ref: schemaID(f.Kind.Ref)},
			Default: []any{},
		}, nil
	case models.ListOfScalar:
		list := &jsonschema.Schema{Type: "array", Default: []any{}}
		if f.Kind.Element == models.ElementInteger {
			list.Items = &jsonschema.Schema{Type: "integer"}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("field '%s' has unsupported kind %s", f.Name, f.Kind)
	}
}

func schemaID(typeName string) string {
	return typeName + ".schema.json"
}
