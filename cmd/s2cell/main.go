package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kylebutts/s2/internal/driver"
	"github.com/kylebutts/s2/internal/version"
)

// errProblemsReported signals that diagnostics were already written and the
// process should exit with status 1 without printing anything else.
var errProblemsReported = errors.New("problems reported")

// newRootCmd builds the command tree. main and the tests share it.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "s2cell",
		Short: "Convert columns of S2 cell identifiers",
		Long: `s2cell converts columns of S2 cell identifiers between tokens, 64-bit ids
and longitude/latitude pairs. Every input line is one element; an empty
line or NA is a missing element and stays missing in the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version.Version

	for _, c := range driver.Commands {
		rootCmd.AddCommand(newConvertCmd(c))
	}
	rootCmd.AddCommand(newVersionCmd())

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to s2cell.toml (default: discovered from the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-problems", 10, "maximum number of problems to show")
	pf.String("report", "pretty", "problem report format (pretty|json|short|msgpack)")
	pf.Bool("with-notes", false, "include problem notes in the report")
	pf.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	pf.String("ui", "auto", "progress UI (auto|on|off)")
	pf.Int("jobs", 0, "max files converted in parallel (0=auto)")
	pf.Int("check-every", 1000, "cancellation polling cadence in elements")

	pf.String("trace", "", "trace output path (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval for long passes (0 disables)")

	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a runtime execution trace to file")

	return rootCmd
}

// main runs the command tree under a context cancelled by SIGINT or SIGTERM.
// Any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errProblemsReported) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold)
	if !isTerminalWriter(w) {
		label.DisableColor()
	}
	fmt.Fprintf(w, "%s %v\n", label.Sprint("error:"), err)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
