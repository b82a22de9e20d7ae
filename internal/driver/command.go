package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/source"
)

// Command names a conversion the CLI can run over an input column.
type Command string

const (
	CmdFromToken  Command = "from-token"
	CmdFromLngLat Command = "from-lnglat"
	CmdToToken    Command = "to-token"
	CmdIsValid    Command = "is-valid"
	CmdToLngLat   Command = "to-lnglat"
	CmdLevel      Command = "level"
)

// Commands lists every command in help order.
var Commands = []Command{CmdFromToken, CmdFromLngLat, CmdToToken, CmdIsValid, CmdToLngLat, CmdLevel}

// ParseCommand validates a command name.
func ParseCommand(s string) (Command, error) {
	for _, c := range Commands {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = string(c)
	}
	return "", fmt.Errorf("unknown command %q (expected: %s)", s, strings.Join(names, "|"))
}

// run reads f's column the way cmd expects, converts it and renders the
// output column. Malformed lines go to rep. The error is whatever the entry
// point returned; output is nil when the entry point produced none.
func (cmd Command) run(ctx context.Context, f *source.File, rep diag.Reporter, opts Options) ([]string, error) {
	switch cmd {
	case CmdFromToken:
		ids, err := FromTokens(ctx, f.Tokens(), opts)
		return renderIDs(ids), err

	case CmdFromLngLat:
		lng, lat := f.Coordinates(rep)
		ids, err := FromLngLat(ctx, lng, lat, opts)
		return renderIDs(ids), err

	case CmdToToken:
		tokens, err := ToTokens(ctx, f.IDs(rep), opts)
		return tokens, err

	case CmdIsValid:
		flags, err := IsValid(ctx, f.IDs(rep), opts)
		if flags == nil {
			return nil, err
		}
		out := make([]string, len(flags))
		for i, fl := range flags {
			out[i] = fl.String()
		}
		return out, err

	case CmdToLngLat:
		points, err := ToLngLat(ctx, f.IDs(rep), opts)
		if points == nil {
			return nil, err
		}
		out := make([]string, len(points))
		for i, p := range points {
			out[i] = source.FormatLngLat(p)
		}
		return out, err

	case CmdLevel:
		levels, err := Levels(ctx, f.IDs(rep), opts)
		if levels == nil {
			return nil, err
		}
		out := make([]string, len(levels))
		for i, l := range levels {
			out[i] = source.FormatLevel(l)
		}
		return out, err
	}
	return nil, fmt.Errorf("unknown command %q", string(cmd))
}

func renderIDs(ids cellid.Vector) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = source.FormatID(id)
	}
	return out
}
