package driver

import (
	"fmt"
	"strings"

	"github.com/kylebutts/s2/internal/observ"
	"github.com/kylebutts/s2/internal/vector"
)

// TokenPolicy decides what a malformed token does to a tokens → ids pass.
type TokenPolicy uint8

const (
	// PolicyIsolate recovers each malformed token as a missing id and
	// reports all of them once after the pass.
	PolicyIsolate TokenPolicy = iota
	// PolicyStrict fails the whole call on the first malformed token.
	PolicyStrict
)

func (p TokenPolicy) String() string {
	switch p {
	case PolicyIsolate:
		return "isolate"
	case PolicyStrict:
		return "strict"
	}
	return "unknown"
}

// ParseTokenPolicy converts "isolate" or "strict". The empty string is
// PolicyIsolate.
func ParseTokenPolicy(s string) (TokenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "isolate":
		return PolicyIsolate, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyIsolate, fmt.Errorf("invalid token policy: %q (expected: isolate|strict)", s)
}

// Options configures the batch entry points. The zero value is usable.
type Options struct {
	// CheckEvery is the cancellation polling cadence; 0 means
	// vector.DefaultCheckEvery.
	CheckEvery int
	// Policy applies to FromTokens only.
	Policy TokenPolicy
	// Reporter receives failure logs; nil means a diag.ProblemReporter.
	Reporter vector.Reporter
	// Progress is optional.
	Progress vector.ProgressSink
	// Timer, when set, records one phase per pass.
	Timer *observ.Timer

	// phaseNote is written on timer phases; ConvertFiles sets it to the file.
	phaseNote string
}

func (o Options) config() vector.Config {
	return vector.Config{
		Reporter:   o.Reporter,
		CheckEvery: o.CheckEvery,
		Progress:   o.Progress,
	}
}

func (o Options) checkEvery() int {
	if o.CheckEvery <= 0 {
		return vector.DefaultCheckEvery
	}
	return o.CheckEvery
}
