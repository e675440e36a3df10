package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/mcncl/modelgen/internal/models"
)

var phpTemplate = template.Must(template.ParseFS(templateFS, "templates/php.tmpl"))

var phpKeyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// PHPTarget renders each type as a final PHP class with typed public
// properties and a toArray method.
type PHPTarget struct{}

// NewPHPTarget creates a PHP target.
func NewPHPTarget() *PHPTarget {
	return &PHPTarget{}
}

func (t *PHPTarget) Name() string     { return "php" }
func (t *PHPTarget) Language() string { return "php" }

func (t *PHPTarget) FileName(typeName string) string {
	return typeName + ".php"
}

type phpView struct {
	Namespace  string
	ClassName  string
	MapImport  bool
	Properties []string
	Entries    string
}

// Render implements Target.
func (t *PHPTarget) Render(schema *models.TypeSchema) (string, error) {
	view := phpView{
		Namespace: schema.Meta.Namespace,
		ClassName: schema.Name,
		MapImport: schema.HasListOfObjects(),
	}

	// toArray calls are chosen by identifier; a later field with the same
	// identifier replaces the class an earlier one registered.
	objectCalls := make(map[string]string)
	mapCalls := make(map[string]string)

	for _, f := range schema.Fields {
		prop, err := phpProperty(f)
		if err != nil {
			return "", err
		}
		view.Properties = append(view.Properties, prop)

		switch f.Kind.Kind {
		case models.ObjectRef:
			objectCalls[f.Identifier] = f.Kind.Ref
		case models.ListOfObjectRef:
			mapCalls[f.Identifier] = f.Kind.Ref
		}
	}

	entries := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		key := phpKeyEscaper.Replace(f.Name)
		switch {
		case objectCalls[f.Identifier] != "":
			entries = append(entries, fmt.Sprintf("            '%s' => $this->%s->toArray(),", key, f.Identifier))
		case mapCalls[f.Identifier] != "":
			entries = append(entries, fmt.Sprintf("            '%s' => map($this->%s, fn(%s $i) => $i->toArray()),",
				key, f.Identifier, mapCalls[f.Identifier]))
		default:
			entries = append(entries, fmt.Sprintf("            '%s' => $this->%s,", key, f.Identifier))
		}
	}
	view.Entries = strings.Join(entries, "\n")

	var buf bytes.Buffer
	if err := phpTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("executing php template: %w", err)
	}
	return buf.String(), nil
}

func phpProperty(f models.Field) (string, error) {
	switch f.Kind.Kind {
	case models.Nullable:
		return fmt.Sprintf("    public ?string $%s = null;\n", f.Identifier), nil
	case models.Boolean:
		return fmt.Sprintf("    public bool $%s = false;\n", f.Identifier), nil
	case models.Text:
		return fmt.Sprintf("    public string $%s = '';\n", f.Identifier), nil
	case models.Integer:
		return fmt.Sprintf("    public int $%s = 0;\n", f.Identifier), nil
	case models.Float:
		return fmt.Sprintf("    public float $%s = 0.00;\n", f.Identifier), nil
	case models.ObjectRef:
		return fmt.Sprintf("    public %s $%s;\n", f.Kind.Ref, f.Identifier), nil
	case models.ListOfObjectRef:
		return phpList(f.Kind.Ref, f.Identifier), nil
	case models.ListOfScalar:
		element := "int"
		if f.Kind.Element == models.ElementUnknown {
			element = "mixed"
		}
		return phpList(element, f.Identifier), nil
	default:
		return "", fmt.Errorf("field '%s' has unsupported kind %s", f.Name, f.Kind)
	}
}

func phpList(element, identifier string) string {
	return fmt.Sprintf("\n    /** @var list<%s> $%s */\n    public array $%s = [];\n", element, identifier, identifier)
}
