package asngen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/asngen/internal/types"
)

// DefaultConfigFile is the project file name the CLI looks for.
const DefaultConfigFile = "asngen.yaml"

// Config is a project file describing a run.
//
//	input:
//	  - asn/S1AP-CommonDataTypes.asn
//	  - asn/
//	output: gen
//	namespace: s1ap
//	strictness: normal
//	ignore: [type-cycle]
type Config struct {
	// Input lists module files and directories, compiled in this order.
	// Directories contribute their module files in file name order.
	Input []string `yaml:"input"`

	// Output is the artifact directory.
	Output string `yaml:"output,omitempty"`

	Namespace     string `yaml:"namespace,omitempty"`
	FilePrefix    string `yaml:"file_prefix,omitempty"`
	RuntimeHeader string `yaml:"runtime_header,omitempty"`

	// Banner replaces the default banner. An explicit empty string
	// disables it.
	Banner *string `yaml:"banner,omitempty"`

	// Extensions overrides DefaultExtensions for input directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Strictness is one of strict, normal, permissive, silent.
	Strictness string `yaml:"strictness,omitempty"`

	// FailAt is the severity name at or above which the run fails.
	FailAt string `yaml:"fail_at,omitempty"`

	// Ignore lists diagnostic codes (globs allowed) to suppress.
	Ignore []string `yaml:"ignore,omitempty"`

	// Overrides maps diagnostic codes to severity names.
	Overrides map[string]string `yaml:"overrides,omitempty"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// LoadConfig reads a project file. Relative input and output paths are
// resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig decodes a project file. Unknown keys are an error.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Resolve returns p relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Source builds the Source described by Input.
func (c *Config) Source() (Source, error) {
	if len(c.Input) == 0 {
		return nil, ErrNoSources
	}
	var opts []SourceOption
	if len(c.Extensions) > 0 {
		opts = append(opts, WithExtensions(c.Extensions...))
	}

	var sources []Source
	for _, in := range c.Input {
		p := c.Resolve(in)
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, Paths(p))
			continue
		}
		src, err := Dir(p, opts...)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 1 {
		return sources[0], nil
	}
	return Multi(sources...), nil
}

// DiagnosticConfig builds the diagnostic configuration described by
// Strictness, FailAt, Ignore and Overrides.
func (c *Config) DiagnosticConfig() (DiagnosticConfig, error) {
	level, ok := types.ParseStrictness(c.Strictness)
	if !ok {
		return DiagnosticConfig{}, fmt.Errorf("unknown strictness %q", c.Strictness)
	}
	dc := types.ConfigFor(level)
	if c.FailAt != "" {
		sev, ok := types.ParseSeverity(c.FailAt)
		if !ok {
			return DiagnosticConfig{}, fmt.Errorf("unknown fail_at severity %q", c.FailAt)
		}
		dc.FailAt = sev
	}
	dc.Ignore = append(dc.Ignore, c.Ignore...)
	for code, name := range c.Overrides {
		sev, ok := types.ParseSeverity(name)
		if !ok {
			return DiagnosticConfig{}, fmt.Errorf("unknown severity %q for %s", name, code)
		}
		if dc.Overrides == nil {
			dc.Overrides = make(map[string]Severity)
		}
		dc.Overrides[code] = sev
	}
	return dc, nil
}

// Options converts the file into Compile options. Output is included when
// set.
func (c *Config) Options() ([]Option, error) {
	dc, err := c.DiagnosticConfig()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithDiagnosticConfig(dc)}
	if c.Output != "" {
		opts = append(opts, WithOutput(DirOutput(c.Resolve(c.Output))))
	}
	if c.Namespace != "" {
		opts = append(opts, WithNamespace(c.Namespace))
	}
	if c.FilePrefix != "" {
		opts = append(opts, WithFilePrefix(c.FilePrefix))
	}
	if c.RuntimeHeader != "" {
		opts = append(opts, WithRuntimeHeader(c.RuntimeHeader))
	}
	if c.Banner != nil {
		opts = append(opts, WithBanner(*c.Banner))
	}
	return opts, nil
}
