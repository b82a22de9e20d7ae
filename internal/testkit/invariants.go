// Package testkit holds invariant checks shared by batch tests.
package testkit

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"github.com/kylebutts/s2/internal/diag"
)

// CheckAlignment verifies that a pass kept one output per input.
func CheckAlignment(inLen, outLen int) error {
	if inLen != outLen {
		return fmt.Errorf("output has %d elements, input has %d", outLen, inLen)
	}
	return nil
}

// CheckMissingPropagation verifies that every missing input produced a
// missing output and no problem entry.
func CheckMissingPropagation[In, Out any](in []In, out []Out, inMissing func(In) bool, outMissing func(Out) bool, problems []int) error {
	if err := CheckAlignment(len(in), len(out)); err != nil {
		return err
	}
	failed := make(map[int]bool, len(problems))
	for _, p := range problems {
		failed[p] = true
	}
	for i, v := range in {
		if !inMissing(v) {
			continue
		}
		if !outMissing(out[i]) {
			return fmt.Errorf("position %d: missing input produced a present output", i)
		}
		if failed[i] {
			return fmt.Errorf("position %d: missing input has a problem entry", i)
		}
	}
	return nil
}

// CheckOrderedLog verifies that failure positions strictly increase and lie
// within a batch of n elements.
func CheckOrderedLog(positions []int, n int) error {
	for i, p := range positions {
		if p < 0 || p >= n {
			return fmt.Errorf("entry %d: position %d outside batch of %d", i, p, n)
		}
		if i > 0 && positions[i-1] >= p {
			return fmt.Errorf("entry %d: position %d does not follow %d", i, p, positions[i-1])
		}
	}
	return nil
}

// CheckProblems runs CheckOrderedLog on a consolidated report and verifies
// that the failed outputs are missing.
func CheckProblems[Out any](p *diag.Problems, out []Out, outMissing func(Out) bool) error {
	if p == nil {
		return nil
	}
	positions := p.Positions()
	if err := CheckOrderedLog(positions, len(out)); err != nil {
		return err
	}
	for _, pos := range positions {
		if !outMissing(out[pos]) {
			return fmt.Errorf("position %d: failed element has a present output", pos)
		}
	}
	return nil
}

// Grid returns n deterministic coordinate pairs spread over the globe.
// Every missingEvery-th pair (if > 0) is NaN.
func Grid(n, missingEvery int) (lng, lat []float64, err error) {
	lng = make([]float64, n)
	lat = make([]float64, n)
	for i := range n {
		k, convErr := safecast.Conv[uint32](i)
		if convErr != nil {
			return nil, nil, fmt.Errorf("grid index: %w", convErr)
		}
		if missingEvery > 0 && i%missingEvery == missingEvery-1 {
			lng[i], lat[i] = math.NaN(), math.NaN()
			continue
		}
		// golden-angle spiral keeps points distinct
		lng[i] = math.Mod(float64(k)*137.50776405, 360) - 180
		lat[i] = math.Mod(float64(k)*7.3, 180) - 90
	}
	return lng, lat, nil
}
