package model

// Argument is one classified element of a compiler command line.
//
// An empty Name marks a positional argument; an empty Value marks a bare
// switch with no value. The first argument of any classified command line is
// always positional: the invoked program path. Names compare case-sensitively
// as captured; values are opaque strings.
type Argument struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Positional reports whether the argument carries no switch name.
func (a Argument) Positional() bool {
	return a.Name == ""
}
