// Package cmdline reconstructs the structure of a compiler invocation from
// the single shell-escaped command-line string the build engine logs.
package cmdline

import (
	"iter"
	"strings"
)

// Tokenize splits a raw command line into whitespace-delimited, quote-aware
// parts. The sequence is lazy and makes a single forward pass over the input;
// parts are yielded in order.
//
// A double quote toggles quoted mode and is dropped from the output.
// Whitespace inside quotes is literal. A backslash immediately followed by a
// double quote yields a literal quote regardless of quote state; a backslash
// followed by anything else passes through verbatim together with the next
// character. No other escapes exist.
//
// Malformed input never fails: an unterminated quote runs to the end of the
// string, and a trailing bare backslash is emitted as itself.
func Tokenize(commandLine string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var part strings.Builder
		inQuote := false
		for i := 0; i < len(commandLine); i++ {
			c := commandLine[i]
			switch {
			case c == '\\':
				if i+1 < len(commandLine) && commandLine[i+1] == '"' {
					part.WriteByte('"')
					i++
					continue
				}
				part.WriteByte(c)
				if i+1 < len(commandLine) {
					i++
					part.WriteByte(commandLine[i])
				}
			case c == '"':
				inQuote = !inQuote
			case !inQuote && isSpace(c):
				if part.Len() > 0 {
					if !yield(part.String()) {
						return
					}
					part.Reset()
				}
			default:
				part.WriteByte(c)
			}
		}
		if part.Len() > 0 {
			yield(part.String())
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
