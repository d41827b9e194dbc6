package snapshot

import (
	"strconv"
	"strings"
)

// Moniker combines a target framework identifier and version into the short
// framework moniker, e.g. (".NETCoreApp", "v6.0") -> "net6.0" and
// (".NETFramework", "v4.8") -> "net48". Returns "" when either half is
// missing: an unresolvable moniker is not an error, the caller just skips
// the build.
func Moniker(identifier, version string) string {
	if identifier == "" || version == "" {
		return ""
	}
	v := strings.TrimPrefix(version, "v")
	switch identifier {
	case ".NETCoreApp":
		// net5.0 and later dropped the netcoreapp prefix.
		if majorVersion(v) >= 5 {
			return "net" + v
		}
		return "netcoreapp" + v
	case ".NETFramework":
		return "net" + strings.ReplaceAll(v, ".", "")
	case ".NETStandard":
		return "netstandard" + v
	default:
		return strings.ToLower(strings.TrimPrefix(identifier, ".")) + v
	}
}

func majorVersion(v string) int {
	head, _, _ := strings.Cut(v, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}
