package driver

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/source"
	"github.com/kylebutts/s2/internal/trace"
	"github.com/kylebutts/s2/internal/vector"
)

// FileResult is the outcome of one command over one input file.
type FileResult struct {
	Path string
	// Output is the rendered output column, nil when the pass produced none.
	Output []string
	Cells  int
	Bag    *diag.Bag
}

// Failed reports whether the file has error diagnostics.
func (r FileResult) Failed() bool {
	return r.Bag != nil && (r.Bag.HasErrors() || r.Bag.Dropped() > 0)
}

// ConvertFiles runs cmd over every file, at most jobs files at a time. Each
// pass is single-threaded and owns its own column; only different files
// run in parallel. Results keep the order of files. The merged bag holds
// every file's diagnostics under maxDiagnostics, sorted.
//
// Element problems never make ConvertFiles fail; they land in the bags. The
// returned error is non-nil only when ctx is cancelled.
func ConvertFiles(ctx context.Context, cmd Command, files []*source.File, jobs, maxDiagnostics int, opts Options) ([]FileResult, *diag.Bag, error) {
	if jobs <= 0 {
		jobs = 1
	}
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, f := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := ConvertFile(gctx, cmd, f, maxDiagnostics, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		merged.Collect(r.Bag)
	}
	merged.Sort()
	return results, merged, nil
}

// ConvertFile runs cmd over a single file. Diagnostics go to the result's
// bag; the error is non-nil only for cancellation.
func ConvertFile(ctx context.Context, cmd Command, f *source.File, maxDiagnostics int, opts Options) (FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+f.Path)
	span.WithExtra("cmd", string(cmd)).WithExtra("n", strconv.Itoa(f.Len()))

	bag := diag.NewBag(maxDiagnostics)
	fopts := opts
	fopts.phaseNote = f.Path
	if opts.Progress != nil {
		fopts.Progress = vector.FileSink{File: f.Path, Next: opts.Progress}
	}

	out, err := cmd.run(ctx, f, bag, fopts)
	if errors.Is(err, vector.ErrCancelled) {
		span.End(string(vector.StatusCancelled))
		return FileResult{}, err
	}
	if err != nil {
		addError(bag, f, err)
	}

	status := vector.StatusDone
	if bag.HasErrors() {
		status = vector.StatusProblems
	}
	span.WithExtra("problems", strconv.Itoa(bag.Len()+bag.Dropped())).End(string(status))
	return FileResult{Path: f.Path, Output: out, Cells: f.Len(), Bag: bag}, nil
}

// addError turns the error of an entry point into diagnostics.
func addError(bag *diag.Bag, f *source.File, err error) {
	input := func(pos int) string { return strings.TrimSpace(f.Line(pos)) }

	if p, ok := diag.AsProblems(err); ok {
		bag.AddProblems(f.Path, p, input)
		return
	}

	var elem *ElementError
	if errors.As(err, &elem) {
		d := diag.NewError(diag.BatchStrict, elem.Pos, elem.Err.Error()).
			WithFile(f.Path).
			WithInput(input(elem.Pos))
		var decode *cellid.DecodeError
		if errors.As(elem.Err, &decode) {
			d = d.WithNote(elem.Pos, decode.Detail())
		}
		bag.Add(d)
		return
	}

	code := diag.CellProblem
	if errors.Is(err, ErrLengthMismatch) {
		code = diag.IOLengthMismatch
	}
	bag.Add(diag.NewError(code, diag.NoPos, err.Error()).WithFile(f.Path))
}
