package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asngen"
)

// runFlags are the flags shared by compile and check. Flags override the
// project file.
type runFlags struct {
	*rootOptions

	namespace     string
	prefix        string
	runtimeHeader string
	banner        string
	noBanner      bool
	extensions    []string
	recursive     bool
	strict        bool
	strictness    string
	failAt        string
	ignore        []string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.namespace, "namespace", "", "C++ namespace for every artifact (default: per-module)")
	fl.StringVar(&f.prefix, "prefix", "", "prefix for artifact and include file names")
	fl.StringVar(&f.runtimeHeader, "runtime-header", asngen.DefaultRuntimeHeader, "runtime library header")
	fl.StringVar(&f.banner, "banner", asngen.DefaultBanner, "comment written at the top of every artifact")
	fl.BoolVar(&f.noBanner, "no-banner", false, "omit the banner")
	fl.StringSliceVar(&f.extensions, "ext", asngen.DefaultExtensions, "module file extensions in input directories")
	fl.BoolVarP(&f.recursive, "recursive", "r", false, "descend into input directories")
	fl.BoolVar(&f.strict, "strict", false, "shorthand for --strictness=strict")
	fl.StringVar(&f.strictness, "strictness", "", "strict, normal, permissive (default) or silent")
	fl.StringVar(&f.failAt, "fail-at", "", "fail when a diagnostic reaches this severity")
	fl.StringSliceVar(&f.ignore, "ignore", nil, "diagnostic codes to suppress (globs allowed)")
}

// load builds the source and options of a run from the arguments, the
// flags and the project file.
func (f *runFlags) load(cmd *cobra.Command, args []string) (asngen.Source, *asngen.Config, []asngen.Option, error) {
	cfg, err := f.projectConfig(len(args) > 0)
	if err != nil {
		return nil, nil, nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if fl.Changed("namespace") {
		cfg.Namespace = f.namespace
	}
	if fl.Changed("prefix") {
		cfg.FilePrefix = f.prefix
	}
	if fl.Changed("runtime-header") {
		cfg.RuntimeHeader = f.runtimeHeader
	}
	switch {
	case f.noBanner:
		empty := ""
		cfg.Banner = &empty
	case fl.Changed("banner"):
		cfg.Banner = &f.banner
	}
	if fl.Changed("strictness") {
		cfg.Strictness = f.strictness
	}
	if f.strict {
		cfg.Strictness = "strict"
	}
	if fl.Changed("fail-at") {
		cfg.FailAt = f.failAt
	}
	cfg.Ignore = append(cfg.Ignore, f.ignore...)

	var src asngen.Source
	if len(args) > 0 {
		src, err = f.sourceFor(args, cfg.Extensions)
	} else {
		src, err = cfg.Source()
	}
	if err != nil {
		return nil, nil, nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, nil, err
	}
	if logger := f.setupLogger(cmd.ErrOrStderr()); logger != nil {
		opts = append(opts, asngen.WithLogger(logger))
	}
	return src, cfg, opts, nil
}

// projectConfig loads the --config file, or asngen.yaml when there are no
// inputs on the command line.
func (f *runFlags) projectConfig(haveInputs bool) (*asngen.Config, error) {
	path := f.config
	if path == "" {
		if haveInputs {
			return &asngen.Config{}, nil
		}
		path = asngen.DefaultConfigFile
	}
	cfg, err := asngen.LoadConfig(path)
	if err != nil {
		if f.config == "" && errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no inputs: pass module files or directories, or create %s", asngen.DefaultConfigFile)
		}
		return nil, err
	}
	return cfg, nil
}

func (f *runFlags) sourceFor(paths []string, extensions []string) (asngen.Source, error) {
	var opts []asngen.SourceOption
	if len(extensions) > 0 {
		opts = append(opts, asngen.WithExtensions(extensions...))
	}

	var sources []asngen.Source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		var src asngen.Source
		switch {
		case !info.IsDir():
			src = asngen.Paths(p)
		case f.recursive:
			src, err = asngen.DirTree(p, opts...)
		default:
			src, err = asngen.Dir(p, opts...)
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 1 {
		return sources[0], nil
	}
	return asngen.Multi(sources...), nil
}
