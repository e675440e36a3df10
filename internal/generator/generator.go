package generator

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
)

// DefaultTarget is the target used when none is configured.
const DefaultTarget = "go"

// Target renders a single TypeSchema into source text for one language.
type Target interface {
	// Name is the identifier used to select the target, e.g. "go".
	Name() string
	// Language tells the formatter how to canonicalize rendered output.
	Language() string
	// FileName returns the file a unit for typeName is written to.
	FileName(typeName string) string
	// Render produces the source text for schema. It must not recurse into
	// child schemas; the Generator emits those as separate units.
	Render(schema *models.TypeSchema) (string, error)
}

// Preparer is implemented by targets that inspect the whole forest before
// any of its units is rendered.
type Preparer interface {
	Prepare(root *models.TypeSchema) error
}

var targets = map[string]func(TargetOptions) Target{
	"go":         func(o TargetOptions) Target { return NewGoTarget(o) },
	"php":        func(TargetOptions) Target { return NewPHPTarget() },
	"jsonschema": func(TargetOptions) Target { return NewJSONSchemaTarget() },
}

// TargetOptions carries target-specific settings.
type TargetOptions struct {
	// Header overrides the comment placed at the top of generated Go files.
	Header string
}

// TargetNames lists the registered targets in sorted order.
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTarget returns the target registered under name.
func NewTarget(name string, opts TargetOptions) (Target, error) {
	if name == "" {
		name = DefaultTarget
	}
	newTarget, ok := targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", errors.ErrUnknownTarget, name, TargetNames())
	}
	return newTarget(opts), nil
}

// Options controls unit generation.
type Options struct {
	// Strict fails generation when two types share a name instead of
	// letting the later one overwrite the earlier.
	Strict bool
	Logger *slog.Logger
}

// Generator is responsible for turning a TypeSchema forest into output units
type Generator struct {
	target Target
	policy CollisionPolicy
	logger *slog.Logger
}

// NewGenerator creates a new Generator for target
func NewGenerator(target Target, opts Options) *Generator {
	g := &Generator{
		target: target,
		policy: CollisionOverwrite,
		logger: opts.Logger,
	}
	if opts.Strict {
		g.policy = CollisionError
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Target returns the target units are rendered for.
func (g *Generator) Target() Target {
	return g.target
}

// Generate renders one unit per schema in the forest rooted at root. Nested
// types are emitted depth first, before the type that owns them.
func (g *Generator) Generate(root *models.TypeSchema) (*UnitSet, error) {
	set := NewUnitSet(g.policy)

	if p, ok := g.target.(Preparer); ok {
		if err := p.Prepare(root); err != nil {
			return set, fmt.Errorf("failed to prepare %s target: %w", g.target.Name(), err)
		}
	}

	err := root.Walk(func(schema *models.TypeSchema) error {
		source, err := g.target.Render(schema)
		if err != nil {
			return fmt.Errorf("failed to render type '%s': %w", schema.Name, err)
		}
		if err := set.Put(models.Unit{TypeName: schema.Name, Source: source}); err != nil {
			return err
		}
		g.logger.Debug("rendered unit",
			slog.String("type", schema.Name),
			slog.String("target", g.target.Name()),
		)
		return nil
	})
	if err != nil {
		return set, err
	}

	if n := len(set.Collisions()); n > 0 {
		g.logger.Debug("overwrote units with colliding type names",
			slog.Int("count", n),
			slog.Any("types", set.Collisions()),
		)
	}
	return set, nil
}
