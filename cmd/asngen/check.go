package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asngen"
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	opts := &runFlags{rootOptions: root}
	var listCodes bool

	cmd := &cobra.Command{
		Use:   "check [flags] [FILE|DIR]...",
		Short: "Compile modules and report diagnostics without writing files",
		Example: `  asngen check asn/
  asngen check --strict --fail-at minor asn/S1AP-PDU.asn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listCodes {
				for _, c := range asngen.DiagnosticCodes() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", c.Code, c.Phase)
				}
				return nil
			}

			src, _, cOpts, err := opts.load(cmd, args)
			if err != nil {
				return err
			}
			// A later WithOutput replaces the project file's output.
			cOpts = append(cOpts, asngen.WithOutput(asngen.NewMemoryOutput()))

			res, err := asngen.Compile(cmd.Context(), src, cOpts...)
			if res != nil {
				printResult(cmd.OutOrStdout(), res, false)
			}
			return exitFor(err)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&listCodes, "list-codes", false, "list diagnostic codes and exit")
	return cmd
}
