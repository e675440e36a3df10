package generator

import (
	"bytes"
	"embed"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/modelgen/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultGoHeader is the first line of every generated Go file.
const DefaultGoHeader = "Code generated by modelgen. DO NOT EDIT."

var goTemplate = template.Must(template.ParseFS(templateFS, "templates/go.tmpl"))

// GoTarget renders each type as a Go struct with json tags, a constructor
// applying the default value policy and a ToMap method.
//
// Overwritten type names can make the final units refer to each other in a
// cycle. Prepare finds the object fields that close such a cycle and Render
// emits them as pointers.
type GoTarget struct {
	header   string
	pointers map[*models.TypeSchema]map[int]bool
}

// NewGoTarget creates a Go target.
func NewGoTarget(opts TargetOptions) *GoTarget {
	header := opts.Header
	if header == "" {
		header = DefaultGoHeader
	}
	return &GoTarget{header: header}
}

func (t *GoTarget) Name() string     { return "go" }
func (t *GoTarget) Language() string { return "go" }

// FileName returns the snake-cased Go file name for typeName.
func (t *GoTarget) FileName(typeName string) string {
	return strcase.ToSnake(GoName(typeName)) + ".go"
}

type goField struct {
	GoName  string
	Type    string
	Tag     string
	Default string
	Key     string
	Convert string
}

type goList struct {
	Var    string
	GoName string
}

type goView struct {
	Header   string
	Package  string
	TypeName string
	Receiver string
	Defaults bool
	Fields   []goField
	Lists    []goList
	Pointers []goList
}

const (
	unvisited = iota
	visiting
	visited
)

// Prepare implements Preparer. Each type name resolves to the schema walked
// last under it, matching the overwrite policy, and every ObjectRef field
// pointing back at a type still being visited is marked as a pointer.
func (t *GoTarget) Prepare(root *models.TypeSchema) error {
	final := make(map[string]*models.TypeSchema)
	var order []string
	_ = root.Walk(func(s *models.TypeSchema) error {
		if _, ok := final[s.Name]; !ok {
			order = append(order, s.Name)
		}
		final[s.Name] = s
		return nil
	})

	t.pointers = make(map[*models.TypeSchema]map[int]bool)
	state := make(map[string]int, len(final))
	var visit func(name string)
	visit = func(name string) {
		state[name] = visiting
		s := final[name]
		for i, f := range s.Fields {
			if f.Kind.Kind != models.ObjectRef {
				continue
			}
			switch state[f.Kind.Ref] {
			case visiting:
				if t.pointers[s] == nil {
					t.pointers[s] = make(map[int]bool)
				}
				t.pointers[s][i] = true
			case unvisited:
				if _, ok := final[f.Kind.Ref]; ok {
					visit(f.Kind.Ref)
				}
			}
		}
		state[name] = visited
	}
	for _, name := range order {
		if state[name] == unvisited {
			visit(name)
		}
	}
	return nil
}

func (t *GoTarget) isPointer(schema *models.TypeSchema, i int) bool {
	return schema.Fields[i].Kind.Ref == schema.Name || t.pointers[schema][i]
}

// Render implements Target.
func (t *GoTarget) Render(schema *models.TypeSchema) (string, error) {
	view := goView{
		Header:   t.header,
		Package:  GoPackageName(schema.Meta.Namespace),
		TypeName: GoName(schema.Name),
	}
	view.Receiver = receiverName(view.TypeName)

	// ToMap is taken by the method.
	used := map[string]bool{"ToMap": true}
	for i, f := range schema.Fields {
		field := goField{
			GoName: uniqueName(GoName(f.Identifier), used),
			Tag:    structTag(f.Name),
			Key:    strconv.Quote(f.Name),
		}
		selector := view.Receiver + "." + field.GoName

		switch f.Kind.Kind {
		case models.Nullable:
			field.Type = "*string"
			field.Convert = selector
		case models.Boolean:
			field.Type = "bool"
			field.Convert = selector
		case models.Text:
			field.Type = "string"
			field.Convert = selector
		case models.Integer:
			field.Type = "int64"
			field.Convert = selector
		case models.Float:
			field.Type = "float64"
			field.Convert = selector
		case models.ObjectRef:
			ref := GoName(f.Kind.Ref)
			if t.isPointer(schema, i) {
				field.Type = "*" + ref
				ptr := goList{Var: lowerFirst(field.GoName) + "Map", GoName: field.GoName}
				view.Pointers = append(view.Pointers, ptr)
				field.Convert = ptr.Var
				break
			}
			field.Type = ref
			field.Default = "New" + ref + "()"
			field.Convert = selector + ".ToMap()"
		case models.ListOfObjectRef:
			ref := GoName(f.Kind.Ref)
			field.Type = "[]" + ref
			field.Default = field.Type + "{}"
			list := goList{Var: lowerFirst(field.GoName) + "Maps", GoName: field.GoName}
			view.Lists = append(view.Lists, list)
			field.Convert = list.Var
		case models.ListOfScalar:
			field.Type = "[]any"
			if f.Kind.Element == models.ElementInteger {
				field.Type = "[]int64"
			}
			field.Default = field.Type + "{}"
			field.Convert = selector
		default:
			return "", fmt.Errorf("field '%s' has unsupported kind %s", f.Name, f.Kind)
		}

		view.Defaults = view.Defaults || field.Default != ""
		view.Fields = append(view.Fields, field)
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("executing go template: %w", err)
	}
	return buf.String(), nil
}

// GoName returns the exported Go identifier for name.
func GoName(name string) string {
	goName := strcase.ToCamel(name)
	if goName == "" {
		return "Field"
	}
	// strcase drops symbols such as "@" without capitalizing what follows
	first, size := utf8.DecodeRuneInString(goName)
	goName = string(unicode.ToUpper(first)) + goName[size:]
	if !token.IsIdentifier(goName) || token.IsKeyword(goName) {
		return "X" + goName
	}
	return goName
}

// GoPackageName derives a Go package name from a namespace such as
// "App\Model" or "github.com/acme/models".
func GoPackageName(namespace string) string {
	last := namespace
	if i := strings.LastIndexAny(namespace, `\/.`); i >= 0 {
		last = namespace[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(last) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "models"
	}
	return name
}

// uniqueName appends a numeric suffix until name is not in used.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}
	used[candidate] = true
	return candidate
}

func receiverName(typeName string) string {
	return strings.ToLower(typeName[:1])
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// structTag renders a json tag carrying the original field name.
func structTag(name string) string {
	tag := "json:" + strconv.Quote(name)
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
