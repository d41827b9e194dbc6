// Package pathutil canonicalizes file paths for identity comparison.
// Project identity across repeated builds is normalized-path equality, so
// every comparison in the aggregator goes through Normalize.
package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Filesystems on these platforms compare paths case-insensitively.
var foldCase = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// Normalize returns the canonical form of a path used for identity
// comparison: absolute, cleaned, NFC-normalized, and case-folded where the
// platform's filesystem is case-insensitive. Pure given a fixed working
// directory; never fails, unresolvable input degrades to a cleaned form.
func Normalize(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		p = filepath.Clean(path)
	}
	p = norm.NFC.String(p)
	if foldCase {
		p = strings.ToLower(p)
	}
	return p
}

// Resolve makes path absolute relative to baseDir. Absolute input is
// returned cleaned but otherwise untouched.
func Resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// Equal reports whether two paths identify the same file once normalized.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
