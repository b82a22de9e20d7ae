package main

import (
	"fmt"
	"io"

	"github.com/kylebutts/s2/internal/prof"
)

// setupProfiling starts the profilers named in opts. The returned cleanup
// stops them and writes the heap profile; it is safe to call more than once.
func setupProfiling(opts prof.Options, errOut io.Writer) (func(), error) {
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	cleaned := false
	return func() {
		if cleaned {
			return
		}
		cleaned = true
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "profile: %v\n", err)
		}
	}, nil
}
