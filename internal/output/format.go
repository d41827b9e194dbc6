package output

import "github.com/azyobuzin/buildalyzer/internal/model"

// Verbosity controls how much of a build result sinks emit.
type Verbosity int

const (
	Minimal  Verbosity = iota // identity and derived views only
	Standard                  // plus the property map
	Full                      // plus raw items and classified arguments
)

// ParseVerbosity maps a string ("minimal", "standard", "full") to a
// Verbosity. Unknown strings default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// FormatResult returns a copy of the result with fields stripped according
// to verbosity (omitted from JSON via omitempty). The derived views are
// always retained.
func FormatResult(r model.BuildResult, verbosity Verbosity) model.BuildResult {
	if verbosity < Full {
		r.Items = nil
		r.Arguments = nil
	}
	if verbosity < Standard {
		r.Properties = nil
	}
	return r
}
