package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/driver"
	"github.com/kylebutts/s2/internal/ui"
	"github.com/kylebutts/s2/internal/vector"
)

type convertOutcome struct {
	results []driver.FileResult
	bag     *diag.Bag
	err     error
}

// runConvertWithUI runs ConvertFiles on a worker goroutine while a Bubble Tea
// program renders its progress events on out.
func runConvertWithUI(ctx context.Context, out io.Writer, title string, req convertRequest) ([]driver.FileResult, *diag.Bag, error) {
	events := make(chan vector.Event, 256)
	outcomeCh := make(chan convertOutcome, 1)

	go func() {
		opts := req.opts
		opts.Progress = vector.Tee{opts.Progress, vector.ChannelSink{Ch: events}}
		results, bag, err := driver.ConvertFiles(ctx, req.cmd, req.files, req.jobs, req.maxProblems, opts)
		outcomeCh <- convertOutcome{results: results, bag: bag, err: err}
		close(events)
	}()

	entries := make([]ui.Entry, len(req.files))
	for i, f := range req.files {
		entries[i] = ui.Entry{Path: f.Path, Cells: f.Len()}
	}
	model := ui.NewProgressModel(title, entries, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the worker from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, outcome.bag, uiErr
	}
	return outcome.results, outcome.bag, outcome.err
}
