package asngen

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/golangsnmp/asngen/internal/emitter"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/naming"
	"github.com/golangsnmp/asngen/internal/parser"
	"github.com/golangsnmp/asngen/internal/types"
)

// Result is the outcome of one run.
type Result struct {
	// RunID is attached to every log record of the run as "run".
	RunID string

	// Modules holds one entry per compiled file, in compile order.
	Modules []*ModuleResult
}

// ModuleResult is the output of one module.
type ModuleResult struct {
	Path      string
	Module    string
	FileBase  string
	Namespace string

	HeaderFile string
	Header     string
	SourceFile string
	Source     string

	// Declared lists the type names the module declared, in order.
	Declared []string

	// Diagnostics holds parse diagnostics followed by emission diagnostics.
	Diagnostics []Diagnostic
}

// Module returns the result for the named module, or nil.
func (r *Result) Module(name string) *ModuleResult {
	for _, m := range r.Modules {
		if m.Module == name {
			return m
		}
	}
	return nil
}

// Diagnostics returns the diagnostics of every module, in compile order.
func (r *Result) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, m := range r.Modules {
		out = append(out, m.Diagnostics...)
	}
	return out
}

// Compile parses and emits every module file of source, in order, sharing
// one type registry across the run.
//
// Unresolved references and malformed definitions are reported as
// diagnostics and the affected definition is skipped. If any reported
// diagnostic reaches the configured FailAt severity, Compile returns the
// complete Result together with an error wrapping ErrDiagnosticThreshold.
// Other errors come from listing, reading or writing files.
func Compile(ctx context.Context, source Source, opts ...Option) (*Result, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := defaultCompileConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	files, err := source.Files()
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	runID := uuid.Must(uuid.NewV7()).String()
	logger := cfg.logger
	if logger != nil {
		logger = logger.With(slog.String("run", runID))
	}
	log := types.Logger{L: logger}

	c := &compiler{
		cfg:     cfg,
		emitter: emitter.New(emitter.NewRegistry(), cfg.emit, types.ComponentLogger(logger, "emitter")),
		logger:  types.ComponentLogger(logger, "parser"),
	}
	if cfg.filePrefix != "" {
		c.parserOpts = append(c.parserOpts, parser.WithFilePrefix(cfg.filePrefix))
	}

	if len(files) == 0 {
		log.Log(slog.LevelWarn, "no module files found")
	}

	res := &Result{RunID: runID}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		log.Log(slog.LevelWarn, "compiling module", slog.String("path", file.Path))

		mr, err := c.compileFile(file)
		if err != nil {
			return res, err
		}
		res.Modules = append(res.Modules, mr)

		log.Log(slog.LevelDebug, "module compiled",
			slog.String("module", mr.Module),
			slog.Int("declared", len(mr.Declared)),
			slog.Int("diagnostics", len(mr.Diagnostics)))
	}

	diags := res.Diagnostics()
	failing := 0
	for _, d := range diags {
		if cfg.emit.Diagnostics.ShouldFail(d.Severity) {
			failing++
		}
	}

	log.Log(slog.LevelInfo, "compile complete",
		slog.Int("modules", len(res.Modules)),
		slog.Int("declared", c.emitter.Registry().Len()),
		slog.Int("diagnostics", len(diags)))

	if failing > 0 {
		return res, fmt.Errorf("%w: %d diagnostic(s) at or above %s",
			ErrDiagnosticThreshold, failing, cfg.emit.Diagnostics.FailAt)
	}
	return res, nil
}

// compiler carries the state shared by the modules of one run.
type compiler struct {
	cfg        compileConfig
	emitter    *emitter.Emitter
	logger     *slog.Logger
	parserOpts []parser.Option
}

func (c *compiler) compileFile(file File) (*ModuleResult, error) {
	content, err := file.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.Path, err)
	}

	mod := c.parse(file, content)
	art := c.emitter.EmitModule(mod)

	mr := &ModuleResult{
		Path:        file.Path,
		Module:      art.Module,
		FileBase:    art.FileBase,
		Namespace:   art.Namespace,
		HeaderFile:  art.HeaderFile(),
		Header:      art.Header,
		SourceFile:  art.SourceFile(),
		Source:      art.Source,
		Declared:    art.Declared,
		Diagnostics: slices.Concat(mod.Diagnostics, art.Diagnostics),
	}

	if c.cfg.output != nil {
		if err := c.cfg.output.WriteArtifact(mr.HeaderFile, []byte(mr.Header)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", mr.HeaderFile, err)
		}
		if err := c.cfg.output.WriteArtifact(mr.SourceFile, []byte(mr.Source)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", mr.SourceFile, err)
		}
	}
	return mr, nil
}

// parse parses one file. A module without a usable header is named after
// its file.
func (c *compiler) parse(file File, content []byte) *module.Module {
	mod := parser.New(content, c.logger, c.cfg.emit.Diagnostics, c.parserOpts...).ParseModule()
	mod.Path = file.Path
	if mod.Header.Name == "" {
		name := file.ModuleName()
		mod.Header.Name = name
		mod.Header.FileBase = c.cfg.filePrefix + naming.DeriveFileBase(name)
		for i := range mod.Diagnostics {
			mod.Diagnostics[i].Module = name
		}
	}
	return mod
}
