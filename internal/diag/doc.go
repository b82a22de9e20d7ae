// Package diag defines the diagnostic model shared by batch passes and the
// CLI.
//
// # Purpose
//
//   - Turn the failure log of a batch pass into one consolidated error
//     (Problems) that lists every failed position in scan order.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to formatting layers.
//
// # Scope
//
// Package diag does not perform IO. Rendering lives in internal/diagfmt and
// orchestration across input files lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as CEL1002.
//   - Message – the failure-log message, kept short.
//   - File / Pos – the input the batch came from and the zero-based position.
//   - Input – optional rendering of the offending input value.
//   - Notes – optional secondary messages.
//
// # Problems
//
// ProblemReporter implements the reporter contract of internal/vector:
// it receives (positions, messages) once per pass, only when the log is not
// empty, and answers with a *Problems error. errors.Is(err, ErrProblems)
// identifies it; AsProblems unwraps it.
//
// Bag aggregates the diagnostics of several passes (one per input file) under
// a cap and sorts them deterministically for output.
package diag
