// Command asngen compiles ASN.1 modules into C++ declarations for the
// ASNTypes runtime library.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/asngen"
	"github.com/golangsnmp/asngen/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK              = 0 // success
	exitError           = 1 // user error or processing failure
	exitStrictViolation = 2 // a diagnostic reached the fail_at threshold
)

// exitErr carries an exit code through cobra's error return.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	cliutil.PrintError(stderr, "%v", err)
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitError
}

type rootOptions struct {
	verbose int
	config  string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "asngen",
		Short: "ASN.1 to C++ declaration compiler",
		Long: `asngen translates ASN.1 module definitions into C++ declarations
for the ASNTypes runtime library: one header and one source file per module.

Modules are compiled in the order given; a module can use the types declared
by every module compiled before it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "debug logging (-vv for trace)")
	cmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "",
		"project file (default "+asngen.DefaultConfigFile+" when no inputs are given)")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newDumpCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func (o *rootOptions) setupLogger(w io.Writer) *slog.Logger {
	if o.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if o.verbose >= 2 {
		level = asngen.LevelTrace
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "asngen %s\n", version())
		},
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
