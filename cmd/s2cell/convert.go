package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/diagfmt"
	"github.com/kylebutts/s2/internal/driver"
	"github.com/kylebutts/s2/internal/observ"
	"github.com/kylebutts/s2/internal/source"
	"github.com/kylebutts/s2/internal/trace"
	"github.com/kylebutts/s2/internal/vector"
)

// echoWidth bounds the input echoed by pretty reports.
const echoWidth = 60

var convertHelp = map[driver.Command]struct{ short, long string }{
	driver.CmdFromToken: {
		"Convert tokens to cell ids",
		`Reads one token per line and writes the decimal cell id. A malformed token
becomes a missing id and is reported after the pass; with --policy strict the
first malformed token stops the command and nothing is written.`,
	},
	driver.CmdFromLngLat: {
		"Convert lng,lat pairs to leaf cell ids",
		`Reads one "lng,lat" pair in degrees per line and writes the id of the leaf
cell containing the point. Pairs with a non-finite component are missing.`,
	},
	driver.CmdToToken: {
		"Convert cell ids to tokens",
		`Reads one cell id per line, decimal or 0x-prefixed hex, and writes its token.`,
	},
	driver.CmdIsValid: {
		"Check cell ids for validity",
		`Reads one cell id per line and writes TRUE, FALSE, or NA for missing ids.`,
	},
	driver.CmdToLngLat: {
		"Convert cell ids to their center lng,lat",
		`Reads one cell id per line and writes the center of the cell as "lng,lat".
Invalid cells are reported and written as NA.`,
	},
	driver.CmdLevel: {
		"Print the level of each cell id",
		`Reads one cell id per line and writes its level (0-30). Invalid cells are
reported and written as NA.`,
	},
}

func newConvertCmd(c driver.Command) *cobra.Command {
	help := convertHelp[c]
	cmd := &cobra.Command{
		Use:   string(c) + " [flags] [file ...]",
		Short: help.short,
		Long:  help.long + "\n\nWith no file, or when file is -, reads standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, c)
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the output column to file instead of stdout")
	if c == driver.CmdFromToken {
		cmd.Flags().String("policy", "isolate", "malformed token handling (isolate|strict)")
	}
	return cmd
}

// convertRequest is everything ConvertFiles needs for one command.
type convertRequest struct {
	cmd         driver.Command
	files       []*source.File
	jobs        int
	maxProblems int
	opts        driver.Options
}

// runConvert executes a conversion command: it loads the inputs, runs one
// pass per file, writes the aligned output column and renders problems to
// stderr. Problems make the command fail with errProblemsReported.
func runConvert(cmd *cobra.Command, args []string, c driver.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	errOut := cmd.ErrOrStderr()

	stopProfiling, err := setupProfiling(s.prof, errOut)
	if err != nil {
		return err
	}
	defer stopProfiling()

	counter := newCellCounter()
	ctx, finishTrace, err := setupTracing(cmd.Context(), s.trace, counter.describe, errOut)
	if err != nil {
		return err
	}
	failed := false
	defer func() { finishTrace(failed) }()

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "cmd:"+string(c))
	status := "ok"
	defer func() { span.End(status) }()

	maxProblems := s.cfg.Report.MaxProblems
	fs := source.NewFileSet()
	files, readBag := readInputs(fs, args, cmd.InOrStdin(), maxProblems)

	var timer *observ.Timer
	if s.timings {
		timer = observ.NewTimer()
	}
	req := convertRequest{
		cmd:         c,
		files:       files,
		jobs:        s.jobs,
		maxProblems: maxProblems,
		opts: driver.Options{
			CheckEvery: s.cfg.Batch.CheckEvery,
			Policy:     s.policy,
			Timer:      timer,
			Progress:   counter,
		},
	}

	var (
		results []driver.FileResult
		bag     *diag.Bag
	)
	if len(files) > 0 && shouldUseTUI(s.ui, s.quiet, errOut) {
		results, bag, err = runConvertWithUI(ctx, errOut, "s2cell "+string(c), req)
	} else {
		results, bag, err = driver.ConvertFiles(ctx, req.cmd, req.files, req.jobs, req.maxProblems, req.opts)
	}

	all := diag.NewBag(maxProblems)
	all.Collect(readBag)
	if err != nil {
		failed = true
		status = string(vector.StatusCancelled)
		if !errors.Is(err, vector.ErrCancelled) && !errors.Is(err, context.Canceled) {
			return err
		}
		all.Add(diag.NewError(diag.BatchCancelled, diag.NoPos, err.Error()))
		if werr := writeReport(errOut, s, all, fs); werr != nil {
			return werr
		}
		return errProblemsReported
	}
	all.Collect(bag)

	if werr := writeOutput(cmd.OutOrStdout(), outputPath, results); werr != nil {
		all.Add(diag.NewError(diag.IOWriteFailed, diag.NoPos, werr.Error()).WithFile(outputPath))
	}
	all.Sort()

	if s.timings {
		if s.format == diagfmt.FormatPretty || s.format == diagfmt.FormatShort {
			printTimings(errOut, timer)
		} else {
			all.Add(timingDiagnostic(timer))
		}
	}

	hasProblems := all.HasErrors() || all.Dropped() > 0
	if shouldReport(s, all) {
		if werr := writeReport(errOut, s, all, fs); werr != nil {
			return werr
		}
	}
	if hasProblems {
		failed = true
		status = string(vector.StatusProblems)
		return errProblemsReported
	}
	return nil
}

// readInputs loads every argument into fs. "-" and an empty argument list
// mean stdin. Unreadable files are reported and skipped.
func readInputs(fs *source.FileSet, args []string, stdin io.Reader, maxProblems int) ([]*source.File, *diag.Bag) {
	bag := diag.NewBag(maxProblems)
	if len(args) == 0 {
		args = []string{"-"}
	}
	files := make([]*source.File, 0, len(args))
	for _, arg := range args {
		var (
			id  source.FileID
			err error
		)
		if arg == "-" {
			id, err = fs.LoadReader(source.StdinName, stdin)
		} else {
			id, err = fs.Load(arg)
		}
		if err != nil {
			bag.Add(diag.NewError(diag.IOReadFailed, diag.NoPos, err.Error()).WithFile(arg))
			continue
		}
		files = append(files, fs.Get(id))
	}
	return files, bag
}

// writeOutput concatenates the output columns of results in argument order.
// When any file produced no column nothing is written, so the lines written
// always align with the lines read.
func writeOutput(stdout io.Writer, path string, results []driver.FileResult) (err error) {
	for _, r := range results {
		if r.Output == nil && r.Cells > 0 {
			return nil
		}
	}

	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	cw := source.NewColumnWriter(w)
	for _, r := range results {
		for _, line := range r.Output {
			cw.WriteLine(line)
		}
	}
	return cw.Flush()
}

// shouldReport decides whether the report is rendered. Structured formats
// are always written so that consumers get a document; pretty and short
// output stay silent on clean runs, and quiet drops anything below an error.
func shouldReport(s *settings, bag *diag.Bag) bool {
	switch s.format {
	case diagfmt.FormatJSON, diagfmt.FormatMsgpack:
		return true
	}
	if s.quiet {
		return bag.HasErrors() || bag.Dropped() > 0
	}
	return bag.Len() > 0 || bag.Dropped() > 0
}

func writeReport(w io.Writer, s *settings, bag *diag.Bag, fs *source.FileSet) error {
	pretty := diagfmt.PrettyOpts{
		Color:     s.color,
		PathMode:  s.pathMode,
		Width:     echoWidth,
		ShowNotes: s.withNotes,
	}
	structured := diagfmt.JSONOpts{
		PathMode:     s.pathMode,
		Max:          s.cfg.Report.MaxProblems,
		IncludeNotes: s.withNotes,
	}
	if err := diagfmt.Write(w, s.format, bag, fs, pretty, structured); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
