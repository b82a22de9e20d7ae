package cellid

import (
	"github.com/golang/geo/s2"
)

// maxTokenLen is the length of a token with no trailing zero nibbles trimmed.
const maxTokenLen = 16

// noneToken is the token of the None identifier.
const noneToken = "X"

// FromToken decodes a token into its identifier.
//
// A well-formed token is 1 to 16 hexadecimal digits (either case) or "X".
// Shorter tokens are right-padded with zero nibbles. Anything else returns a
// *DecodeError; the identifier it names does not have to be a valid cell.
func FromToken(token string) (ID, error) {
	if token == noneToken || token == "x" {
		return None, nil
	}
	if reason := checkToken(token); reason != "" {
		return 0, &DecodeError{Kind: DecodeToken, Input: token, Reason: reason}
	}
	return ID(s2.CellIDFromToken(token)), nil
}

// ToToken renders id as a token. It is total over every 64-bit pattern,
// including ones that are not valid cells.
func (id ID) ToToken() string {
	return s2.CellID(id).ToToken()
}

func checkToken(token string) string {
	switch {
	case token == "":
		return "empty token"
	case len(token) > maxTokenLen:
		return "token longer than 16 characters"
	}
	for i := 0; i < len(token); i++ {
		if !isHexDigit(token[i]) {
			return "token contains a non-hexadecimal character"
		}
	}
	return ""
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
