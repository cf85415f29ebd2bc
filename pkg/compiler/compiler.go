// Package compiler wires the front-end pipeline together: lex, parse,
// analyze, generate. It stops at the SSA module; machine-code
// generation, linking, and runtime support are not this package's job.
package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nyxlang/nyxc/pkg/ir"
	"github.com/nyxlang/nyxc/pkg/irgen"
	"github.com/nyxlang/nyxc/pkg/lexer"
	"github.com/nyxlang/nyxc/pkg/parser"
	"github.com/nyxlang/nyxc/pkg/sema"
)

// Config holds one compilation unit's input. Source is the full text of
// a single Nyx file; the grammar has no import/module concept, so a
// Config carries exactly one source.
type Config struct {
	Path   string
	Source string
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("compiler: no source provided")
	}
	return nil
}

// Compiler runs the front-end pipeline for one Config.
type Compiler struct {
	logger *slog.Logger
	config Config
}

// New validates cfg and constructs a Compiler.
func New(logger *slog.Logger, cfg Config) (*Compiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate compiler config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{logger: logger, config: cfg}, nil
}

// SemanticError is returned by Compile when analysis produced one or
// more diagnostics; its Error() renders a "Semantic Errors:\n  <msg>\n..."
// block listing every diagnostic in the order they were recorded.
type SemanticError struct {
	Diagnostics []string
}

func (e *SemanticError) Error() string {
	out := "Semantic Errors:\n"
	for _, d := range e.Diagnostics {
		out += "  " + d + "\n"
	}
	return out
}

// Compile runs lex -> parse -> analyze -> generate and returns the
// resulting SSA module. It logs one line per phase boundary at Debug
// level.
func (c *Compiler) Compile(ctx context.Context) (*ir.Module, error) {
	c.logger.DebugContext(ctx, "lexing", "path", c.config.Path)
	tokens := lexer.Tokenize(c.config.Source)

	c.logger.DebugContext(ctx, "parsing", "path", c.config.Path, "tokens", len(tokens))
	file, err := parser.New(tokens).ParseFile()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", c.config.Path, err)
	}

	c.logger.DebugContext(ctx, "analyzing", "path", c.config.Path)
	analyzer := sema.New()
	ok, diagnostics := analyzer.Run(file)
	if !ok {
		return nil, &SemanticError{Diagnostics: diagnostics}
	}

	c.logger.DebugContext(ctx, "generating IR", "path", c.config.Path)
	mod, err := irgen.Generate(file, analyzer.Symbols())
	if err != nil {
		return nil, fmt.Errorf("failed to generate IR for %q: %w", c.config.Path, err)
	}

	return mod, nil
}

// Backend is the seam a machine-code generator, C runtime, and
// system-compiler driver would implement. cmd/nyxc calls it for -o/--run.
type Backend interface {
	Lower(ctx context.Context, mod *ir.Module, out io.Writer) error
}

// UnimplementedBackend always fails loudly: no real machine-code
// generator ships with this front end, so --dump-ir-only invocations
// exercise the whole pipeline while -o/--run fail with a clear,
// actionable error instead of silently producing nothing.
type UnimplementedBackend struct{}

func (UnimplementedBackend) Lower(ctx context.Context, mod *ir.Module, out io.Writer) error {
	return fmt.Errorf("no backend configured: machine-code generation is outside this compiler's scope")
}
