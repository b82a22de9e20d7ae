package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Element-level problems found during a batch pass
	CellInfo         Code = 1000
	CellProblem      Code = 1001
	CellInvalidToken Code = 1002
	CellNonFinite    Code = 1003
	CellInvalid      Code = 1004

	// Batch-level outcomes
	BatchInfo      Code = 2000
	BatchCancelled Code = 2001
	BatchStrict    Code = 2002

	// I/O
	IOReadFailed     Code = 4001
	IOLengthMismatch Code = 4002
	IOBadLine        Code = 4003
	IOWriteFailed    Code = 4004

	// Configuration
	CfgInvalid Code = 5001

	// Observability
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:      "Unknown error",
	CellInfo:         "Cell information",
	CellProblem:      "Element could not be processed",
	CellInvalidToken: "Invalid token",
	CellNonFinite:    "Non-finite coordinate",
	CellInvalid:      "Invalid cell",
	BatchInfo:        "Batch information",
	BatchCancelled:   "Batch pass cancelled",
	BatchStrict:      "Strict conversion stopped at first bad element",
	IOReadFailed:     "Failed to read input",
	IOLengthMismatch: "Input columns differ in length",
	IOBadLine:        "Malformed input line",
	IOWriteFailed:    "Failed to write output",
	CfgInvalid:       "Invalid configuration",
	ObsTimings:       "Pass timings",
}

// codeByMessage maps the element messages the codec produces to their codes.
var codeByMessage = map[string]Code{
	"invalid token":         CellInvalidToken,
	"non-finite coordinate": CellNonFinite,
}

// CodeForMessage classifies a failure-log message. Messages without a
// dedicated code are CellProblem.
func CodeForMessage(msg string) Code {
	if c, ok := codeByMessage[msg]; ok {
		return c
	}
	if strings.HasPrefix(msg, "invalid cell") {
		return CellInvalid
	}
	return CellProblem
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CEL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("BAT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
