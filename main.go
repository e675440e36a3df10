package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/mcncl/modelgen/internal/analyzer"
	"github.com/mcncl/modelgen/internal/config"
	"github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/formatter"
	"github.com/mcncl/modelgen/internal/generator"
	"github.com/mcncl/modelgen/internal/logging"
	"github.com/mcncl/modelgen/internal/models"
	"github.com/mcncl/modelgen/internal/parser"
	"github.com/mcncl/modelgen/internal/record"
	"github.com/mcncl/modelgen/internal/writer"
)

// Version information
const (
	Version = "0.1.0"
)

var errRoundTrip = stderrors.New("inferred types do not reproduce the payload")

// Globals are the flags shared by every command.
type Globals struct {
	Config  string           `help:"Path to a YAML config file. Defaults to the nearest .modelgen.yml." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	LogFile string           `help:"Write logs to a rotating file instead of stderr." type:"path"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// InputFlags select the payload and the naming configuration.
type InputFlags struct {
	Payload   string `help:"Path to the payload JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Meta      string `help:"Path to a meta JSON file with a name and a namespace." short:"m" type:"path"`
	Name      string `help:"Root type name. Overrides the meta file." short:"n"`
	Namespace string `help:"Namespace or package of the generated code. Overrides the meta file." short:"N"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate one unit per inferred type (default)."`
	Verify   VerifyCmd   `cmd:"" help:"Check that the inferred types convert the payload back into itself."`
}

// GenerateCmd infers types from a payload and writes one unit per type.
type GenerateCmd struct {
	InputFlags

	Target   string `help:"Output target: go, php or jsonschema." short:"t"`
	Output   string `help:"Output directory. If not specified, writes to stdout." short:"o" type:"path"`
	Strict   bool   `help:"Fail when two inferred types share a name instead of overwriting."`
	NoFormat bool   `help:"Skip formatting generated code."`
}

// VerifyCmd binds the payload to its inferred types and compares the
// converted mapping with the payload.
type VerifyCmd struct {
	InputFlags
}

// Context holds the runtime context
type Context struct {
	*Globals

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args and executes the selected command, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1

	// Parse CLI arguments with Kong
	app, err := kong.New(&cli,
		kong.Name("modelgen"),
		kong.Description("Infer types from a sample JSON payload and generate one model per type"),
		kong.UsageOnError(),
		kong.Vars{"version": "modelgen version " + Version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "modelgen: %v\n", err)
		return 1
	}

	kctx, err := app.Parse(args)
	if exitCode >= 0 {
		// --help or --version already printed their output
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "modelgen: error: %v\n", err)
		return 1
	}

	err = kctx.Run(&Context{
		Globals: &cli.Globals,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}
	return 0
}

// Run executes the generate command
func (c *GenerateCmd) Run(ctx *Context) error {
	cfg, logger, cleanup, err := ctx.setup(c.InputFlags, config.CLIOverrides{
		Target:    c.Target,
		OutputDir: c.Output,
		Strict:    c.Strict,
		NoFormat:  c.NoFormat,
	})
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	// 1. Parse the payload
	payload, err := readPayload(c.Payload, ctx.Stdin)
	if err != nil {
		return err
	}

	// 2. Infer the schema forest
	schema, err := analyze(cfg, logger, payload)
	if err != nil {
		return err
	}

	// 3. Render one unit per type
	target, err := generator.NewTarget(cfg.Target, generator.TargetOptions{Header: cfg.Output.FileHeader})
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("unknown target %q", cfg.Target), err)
	}
	set, err := generator.NewGenerator(target, generator.Options{
		Strict: cfg.Analysis.Strict,
		Logger: logger,
	}).Generate(schema)
	if err != nil {
		return errors.NewGenerateError("failed to generate units", err)
	}

	// 4. Format the units if requested
	files := make([]writer.File, 0, set.Len())
	fm := formatter.NewFormatter()
	for _, unit := range set.Units() {
		source := unit.Source
		if cfg.Formatting.Enabled {
			source, err = fm.FormatAs(target.Language(), source)
			if err != nil {
				return errors.NewFormatError(fmt.Sprintf("failed to format %s", unit.TypeName), err)
			}
		}
		files = append(files, writer.File{Name: target.FileName(unit.TypeName), Content: source})
	}

	// 5. Output the result
	if cfg.OutputDir == "" {
		if err := writer.WriteStream(ctx.Stdout, files); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	paths, err := writer.New(cfg.OutputDir, writer.Options{
		Workers: cfg.Output.Workers,
		Logger:  logger,
	}).WriteAll(context.Background(), files)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to directory '%s'", cfg.OutputDir), err)
	}
	fmt.Fprintf(ctx.Stderr, "Generated %d %s file(s) in %s\n", len(paths), target.Name(), cfg.OutputDir)
	return nil
}

// Run executes the verify command
func (c *VerifyCmd) Run(ctx *Context) error {
	cfg, logger, cleanup, err := ctx.setup(c.InputFlags, config.CLIOverrides{})
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	payload, err := readPayload(c.Payload, ctx.Stdin)
	if err != nil {
		return err
	}
	schema, err := analyze(cfg, logger, payload)
	if err != nil {
		return err
	}

	r, err := record.Bind(schema, payload)
	if err != nil {
		return errors.NewAnalysisError("payload does not fit its inferred types", err)
	}

	if diff := cmp.Diff(normalize(payload.Native()), normalize(r.ToMap())); diff != "" {
		return errors.NewAnalysisError(
			"inferred types do not reproduce the payload",
			fmt.Errorf("%w (-payload +converted):\n%s", errRoundTrip, diff),
		)
	}

	types := 0
	_ = schema.Walk(func(*models.TypeSchema) error {
		types++
		return nil
	})
	fmt.Fprintf(ctx.Stdout, "OK: %d type(s) reproduce the payload\n", types)
	return nil
}

// setup resolves the configuration and builds the logger for a command.
func (ctx *Context) setup(in InputFlags, o config.CLIOverrides) (*config.Config, *slog.Logger, func() error, error) {
	o.ConfigPath = ctx.Config
	if o.ConfigPath == "" {
		o.ConfigPath = config.FindConfigFile()
	}
	o.MetaPath = in.Meta
	o.Name = in.Name
	o.Namespace = in.Namespace
	o.Debug = ctx.Debug
	o.LogFile = ctx.LogFile

	cfg, err := config.LoadConfigWithCLI(o)
	if err != nil {
		if stderrors.Is(err, errors.ErrMissingMeta) {
			return nil, nil, nil, errors.NewConfigError(missingMetaMessage, err)
		}
		return nil, nil, nil, errors.NewConfigError("failed to load configuration", err)
	}

	logger, cleanup, err := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}, ctx.Stderr)
	if err != nil {
		return nil, nil, nil, errors.NewConfigError("failed to set up logging", err)
	}

	logger.Debug("configuration loaded",
		slog.String("target", cfg.Target),
		slog.String("name", cfg.Meta.Name),
		slog.String("namespace", cfg.Meta.Namespace),
		slog.Bool("strict", cfg.Analysis.Strict),
	)
	return cfg, logger, cleanup, nil
}

const missingMetaMessage = "Please provide meta settings with a name and a namespace and try again."

func analyze(cfg *config.Config, logger *slog.Logger, payload models.Value) (*models.TypeSchema, error) {
	a := analyzer.NewAnalyzerWithOptions(analyzer.Options{
		MaxDepth: cfg.Analysis.MaxDepth,
		Logger:   logger,
	})
	meta := cfg.Meta
	schema, err := a.Analyze(payload, &meta)
	switch {
	case err == nil:
		return schema, nil
	case stderrors.Is(err, errors.ErrUnsupportedPayload):
		return nil, errors.NewUnsupportedError("payload must be a JSON object", err)
	case stderrors.Is(err, errors.ErrMissingMeta):
		return nil, errors.NewConfigError(missingMetaMessage, err)
	default:
		return nil, errors.NewAnalysisError("failed to infer types", err)
	}
}

// readPayload reads JSON from file or stdin
func readPayload(path string, stdin io.Reader) (models.Value, error) {
	if path != "" {
		return parser.ParseFile(path)
	}

	if f, ok := stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return models.Value{}, errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			// Terminal is interactive (not piped)
			return models.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.Value{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseString(string(data))
}

// normalize rewrites converted values into the shapes JSON decoding
// produces. An empty object and an empty list count as the same value.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if len(v) == 0 {
			return []any{}
		}
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
