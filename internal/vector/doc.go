// Package vector applies per-element transforms across batches.
//
// An Operator runs one transform over every position of an input slice and
// returns an output slice of the same length. Three rules shape a pass:
//
//   - A missing input produces the output domain's missing marker without
//     calling the transform.
//   - A transform error produces the missing marker and a (position, message)
//     entry in the failure log; the scan continues. After the scan a
//     non-empty log goes to the Reporter once, and its error is returned
//     together with the full output.
//   - The context is polled every CheckEvery positions. Cancellation unwinds
//     the pass with no output and no report.
//
// Passes are single-threaded. Nothing is shared between calls to Run.
package vector
