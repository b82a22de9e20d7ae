package cellid

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode error")
	// ErrInvalidCell matches every *InvalidCellError.
	ErrInvalidCell = errors.New("invalid cell")
)

// DecodeKind says which representation failed to decode.
type DecodeKind uint8

const (
	// DecodeToken is a malformed token.
	DecodeToken DecodeKind = iota
	// DecodeCoordinate is a non-finite coordinate pair.
	DecodeCoordinate
)

// DecodeError reports an input that has no identifier.
type DecodeError struct {
	Kind   DecodeKind
	Input  string
	Reason string
}

// Error returns the short form used in batch failure logs. Input and Reason
// stay available on the value.
func (e *DecodeError) Error() string {
	if e.Kind == DecodeCoordinate {
		return "non-finite coordinate"
	}
	return "invalid token"
}

// Detail returns the message with the offending input and the reason.
func (e *DecodeError) Detail() string {
	return fmt.Sprintf("%s %q: %s", e.Error(), e.Input, e.Reason)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// InvalidCellError reports an identifier that is not a valid cell where one
// is required.
type InvalidCellError struct {
	ID ID
}

func (e *InvalidCellError) Error() string {
	return "invalid cell " + e.ID.ToToken()
}

func (e *InvalidCellError) Is(target error) bool { return target == ErrInvalidCell }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
