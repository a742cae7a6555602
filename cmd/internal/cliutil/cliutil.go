// Package cliutil provides shared helpers for the asngen command.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/golangsnmp/asngen"
)

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string, stdout io.Writer) (io.Writer, func(), error) {
	if outputFile == "" || outputFile == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

// PrintDiagnostic writes one diagnostic as an indented line:
//
//	  warning: [type-unknown] S1AP-PDU:12: unknown type Foo, skipping Bar
func PrintDiagnostic(w io.Writer, d asngen.Diagnostic) {
	prefix := "  " + d.Severity.String() + ": "
	if d.Code != "" {
		prefix += "[" + d.Code + "] "
	}
	switch {
	case d.Module != "" && d.Line > 0:
		fmt.Fprintf(w, "%s%s:%d: %s\n", prefix, d.Module, d.Line, d.Message)
	case d.Module != "":
		fmt.Fprintf(w, "%s%s: %s\n", prefix, d.Module, d.Message)
	default:
		fmt.Fprintf(w, "%s%s\n", prefix, d.Message)
	}
}
