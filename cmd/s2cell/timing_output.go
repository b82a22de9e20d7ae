package main

import (
	"fmt"
	"io"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/observ"
)

// printTimings writes the per-pass timing table.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}

// timingDiagnostic carries the timing total into structured reports, where a
// free-form table would break the document.
func timingDiagnostic(timer *observ.Timer) diag.Diagnostic {
	report := timer.Report()
	msg := fmt.Sprintf("%s over %s in %.2f ms", observ.FormatCount(len(report.Laps), "lap"), observ.FormatCount(report.Cells, "cell"), report.TotalMS)
	return diag.New(diag.SevInfo, diag.ObsTimings, diag.NoPos, msg)
}
