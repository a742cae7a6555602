package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/asngen"
	"github.com/golangsnmp/asngen/cmd/internal/cliutil"
	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/parser"
)

// dumpDoc is the YAML shape of a parsed module.
type dumpDoc struct {
	Path        string               `yaml:"path"`
	Header      module.Header        `yaml:"header"`
	Definitions []*module.Definition `yaml:"definitions,omitempty"`
	Problems    []string             `yaml:"problems,omitempty"`
	Diagnostics []string             `yaml:"diagnostics,omitempty"`
}

func newDumpCommand(root *rootOptions) *cobra.Command {
	var (
		output string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "dump [flags] FILE",
		Short: "Print the parsed definitions of a module as YAML",
		Long: `Dump parses a single module and prints its header, definition tree
and parse diagnostics. Nothing is resolved or emitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var pOpts []parser.Option
			if prefix != "" {
				pOpts = append(pOpts, parser.WithFilePrefix(prefix))
			}
			logger := root.setupLogger(cmd.ErrOrStderr())
			mod := parser.New(content, logger, asngen.DefaultDiagnosticConfig(), pOpts...).ParseModule()

			doc := dumpDoc{
				Path:        path,
				Header:      mod.Header,
				Definitions: mod.Definitions,
			}
			for _, def := range mod.Definitions {
				doc.Problems = append(doc.Problems, def.Check()...)
			}
			for _, d := range mod.Diagnostics {
				doc.Diagnostics = append(doc.Diagnostics, d.String())
			}

			w, cleanup, err := cliutil.GetOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding %s: %w", path, err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix for derived file names")

	return cmd
}
