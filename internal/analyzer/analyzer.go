package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
	"github.com/mcncl/modelgen/internal/naming"
)

// DefaultMaxDepth bounds how deeply nested a payload may be.
const DefaultMaxDepth = 512

// Options controls schema inference.
type Options struct {
	// MaxDepth is the deepest nesting level accepted; zero means DefaultMaxDepth.
	MaxDepth int
	Logger   *slog.Logger
}

// Analyzer infers a TypeSchema forest from a sample JSON object.
type Analyzer struct {
	maxDepth int
	logger   *slog.Logger
}

// NewAnalyzer creates a new Analyzer with default options.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithOptions(Options{})
}

// NewAnalyzerWithOptions creates a new Analyzer with custom options.
func NewAnalyzerWithOptions(opts Options) *Analyzer {
	a := &Analyzer{
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
	if a.maxDepth <= 0 {
		a.maxDepth = DefaultMaxDepth
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Analyze infers the root schema for payload. Every nested object or list of
// objects yields a child schema reachable through the owning field. The
// payload must be a JSON object and meta must carry both a name and a
// namespace; both are checked before any inference runs.
func (a *Analyzer) Analyze(payload models.Value, meta *models.Meta) (*models.TypeSchema, error) {
	if meta == nil {
		return nil, errors.ErrMissingMeta
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMissingMeta, err)
	}
	if payload.Kind != models.ObjectValue {
		return nil, fmt.Errorf("%w: got %s", errors.ErrUnsupportedPayload, payload.Kind)
	}

	return a.analyzeObject(payload, *meta, meta.Name, 1)
}

// analyzeObject builds the schema called name from obj, recursing into
// nested structures before the schema is returned.
func (a *Analyzer) analyzeObject(obj models.Value, meta models.Meta, name string, depth int) (*models.TypeSchema, error) {
	if depth > a.maxDepth {
		return nil, fmt.Errorf("%w: type %s is nested %d levels deep", errors.ErrMaxDepth, name, depth)
	}

	schema := &models.TypeSchema{
		Name:   name,
		Meta:   meta,
		Fields: make([]models.Field, 0, len(obj.Members)),
	}

	for _, member := range obj.Members {
		field, err := a.analyzeField(member, meta, depth)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze field '%s' in type '%s': %w", member.Key, name, err)
		}
		schema.Fields = append(schema.Fields, field)
	}

	a.logger.Debug("inferred type",
		slog.String("type", name),
		slog.Int("fields", len(schema.Fields)),
		slog.Int("depth", depth),
	)
	return schema, nil
}

// analyzeField classifies one member. The checks run in a fixed priority
// order: null, boolean, string, integer, float, then containers.
func (a *Analyzer) analyzeField(member models.Member, meta models.Meta, depth int) (models.Field, error) {
	field := models.Field{
		Name:       member.Key,
		Identifier: naming.Identifier(member.Key),
	}
	value := member.Value

	switch value.Kind {
	case models.NullValue:
		field.Kind = models.TypeKind{Kind: models.Nullable}
	case models.BoolValue:
		field.Kind = models.TypeKind{Kind: models.Boolean}
	case models.StringValue:
		field.Kind = models.TypeKind{Kind: models.Text}
	case models.IntegerValue:
		field.Kind = models.TypeKind{Kind: models.Integer}
	case models.FloatValue:
		field.Kind = models.TypeKind{Kind: models.Float}
	case models.ObjectValue, models.ArrayValue:
		return a.analyzeContainer(field, value, meta, depth)
	default:
		return models.Field{}, fmt.Errorf("unexpected json value kind: %s", value.Kind)
	}

	return field, nil
}

func (a *Analyzer) analyzeContainer(field models.Field, value models.Value, meta models.Meta, depth int) (models.Field, error) {
	childName := naming.TypeName(meta.Name, field.Identifier)

	switch {
	case value.Kind == models.ObjectValue && value.Len() > 0:
		child, err := a.analyzeObject(value, meta, childName, depth+1)
		if err != nil {
			return models.Field{}, err
		}
		field.Kind = models.TypeKind{Kind: models.ObjectRef, Ref: childName}
		field.Schema = child

	case value.Kind == models.ArrayValue && value.Len() > 0 && allContainers(value.Array):
		// Only the first element is inspected; later elements are assumed
		// to share its shape.
		first := value.Array[0]
		if first.Kind == models.ArrayValue && first.Len() > 0 {
			return models.Field{}, fmt.Errorf("%w: element 0 is a list of %d values", errors.ErrElementNotObject, first.Len())
		}
		child, err := a.analyzeObject(first, meta, childName, depth+1)
		if err != nil {
			return models.Field{}, err
		}
		field.Kind = models.TypeKind{Kind: models.ListOfObjectRef, Ref: childName}
		field.Schema = child

	default:
		// Scalar lists are typed as integers whatever their contents; only
		// an empty container stays untyped.
		elem := models.ElementUnknown
		if value.Len() > 0 {
			elem = models.ElementInteger
		}
		field.Kind = models.TypeKind{Kind: models.ListOfScalar, Element: elem}
	}

	return field, nil
}

func allContainers(items []models.Value) bool {
	for _, item := range items {
		if !item.IsContainer() {
			return false
		}
	}
	return true
}
