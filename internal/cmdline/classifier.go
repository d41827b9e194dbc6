package cmdline

import (
	"strings"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

// Parse tokenizes a command line and classifies each part into a switch or
// positional argument. The first part is always positional: the invoked
// program. Pure and deterministic: the same input always yields the same
// argument list.
func Parse(commandLine string) []model.Argument {
	var args []model.Argument
	for part := range Tokenize(commandLine) {
		if args == nil {
			args = []model.Argument{{Value: part}}
			continue
		}
		args = append(args, classify(part))
	}
	return args
}

// classify splits one part into (switch name, value). Parts starting with a
// slash are switches: the name runs up to the first colon past the slash,
// the value is everything after it. A colon in final position, or no colon
// at all, makes the whole remainder a bare switch name. Any string is
// accepted as a name; switch legality is not this layer's concern.
func classify(part string) model.Argument {
	if !strings.HasPrefix(part, "/") {
		return model.Argument{Value: part}
	}
	rest := part[1:]
	if i := strings.Index(rest, ":"); i >= 1 && i < len(rest)-1 {
		return model.Argument{Name: rest[:i], Value: rest[i+1:]}
	}
	return model.Argument{Name: rest}
}
