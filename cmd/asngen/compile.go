package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asngen"
	"github.com/golangsnmp/asngen/cmd/internal/cliutil"
)

type compileOptions struct {
	runFlags
	output string
}

func newCompileCommand(root *rootOptions) *cobra.Command {
	opts := &compileOptions{runFlags: runFlags{rootOptions: root}}

	cmd := &cobra.Command{
		Use:   "compile [flags] [FILE|DIR]...",
		Short: "Generate C++ declarations from ASN.1 modules",
		Long: `Compile translates each module into a header and a source file.

Inputs are compiled in order: files as given, directories in sorted order.
Without inputs the project file (asngen.yaml) supplies them.`,
		Example: `  asngen compile -o gen asn/S1AP-CommonDataTypes.asn asn/S1AP-PDU.asn
  asngen compile --namespace s1ap -o gen asn/
  asngen compile --strict --fail-at warning -o gen asn/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: project file output, or .)")

	return cmd
}

func (o *compileOptions) run(cmd *cobra.Command, args []string) error {
	src, cfg, opts, err := o.load(cmd, args)
	if err != nil {
		return err
	}
	switch {
	case o.output != "":
		opts = append(opts, asngen.WithOutput(asngen.DirOutput(o.output)))
	case cfg.Output == "":
		opts = append(opts, asngen.WithOutput(asngen.DirOutput(".")))
	}

	res, err := asngen.Compile(cmd.Context(), src, opts...)
	if res != nil {
		printResult(cmd.OutOrStdout(), res, true)
	}
	return exitFor(err)
}

// printResult writes one line per module followed by its diagnostics.
func printResult(w io.Writer, res *asngen.Result, artifacts bool) {
	types := 0
	for _, m := range res.Modules {
		types += len(m.Declared)
		if artifacts {
			fmt.Fprintf(w, "%s: %s, %s (%d types)\n", m.Module, m.HeaderFile, m.SourceFile, len(m.Declared))
		} else {
			fmt.Fprintf(w, "%s: %d types, %d diagnostics\n", m.Module, len(m.Declared), len(m.Diagnostics))
		}
		for _, d := range m.Diagnostics {
			cliutil.PrintDiagnostic(w, d)
		}
	}
	fmt.Fprintf(w, "%d modules, %d types, %d diagnostics\n", len(res.Modules), types, len(res.Diagnostics()))
}

func exitFor(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, asngen.ErrDiagnosticThreshold):
		return &exitErr{code: exitStrictViolation, err: err}
	default:
		return &exitErr{code: exitError, err: err}
	}
}
