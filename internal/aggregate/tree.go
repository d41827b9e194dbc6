package aggregate

import "strings"

// nodeKind tags the closed set of build tree node variants.
type nodeKind int

const (
	nodeBuild nodeKind = iota
	nodeProject
	nodeTarget
	nodeTask
	nodeFolder
	nodeLeaf // name/value pair
)

// invocation is one compiler command line captured on a project node.
type invocation struct {
	commandLine string
	coreCompile bool
}

// node is one element of the arena-stored build tree. Parent and children
// are arena indexes, never pointers, so tests can inspect the tree index
// by index.
type node struct {
	kind     nodeKind
	parent   int
	children []int
	name     string            // project path, target/task name, folder label, leaf key
	value    string            // leaf value
	metadata map[string]string // leaf nodes representing build items

	// Project nodes only.
	succeeded   bool
	invocations []invocation
}

// tree is an append-only arena. Nodes are stored in arrival order, which for
// a well-nested event stream is also preorder: visiting the slice front to
// back is a depth-first walk in discovery order.
type tree struct {
	nodes []node
}

// add appends a node under parent (-1 for a root) and returns its index.
func (t *tree) add(parent int, n node) int {
	idx := len(t.nodes)
	n.parent = parent
	t.nodes = append(t.nodes, n)
	if parent >= 0 {
		t.nodes[parent].children = append(t.nodes[parent].children, idx)
	}
	return idx
}

// visit calls fn for every node in discovery order.
func (t *tree) visit(fn func(idx int, n *node)) {
	for i := range t.nodes {
		fn(i, &t.nodes[i])
	}
}

// childFolder returns the index of the named folder child of idx, or -1.
func (t *tree) childFolder(idx int, name string) int {
	for _, c := range t.nodes[idx].children {
		if t.nodes[c].kind == nodeFolder && t.nodes[c].name == name {
			return c
		}
	}
	return -1
}

// leafValue returns the value of the named leaf child of a folder. Keys
// compare case-insensitively and the last write wins, matching property
// semantics. Returns "" when absent.
func (t *tree) leafValue(folder int, key string) string {
	if folder < 0 {
		return ""
	}
	value := ""
	for _, c := range t.nodes[folder].children {
		if t.nodes[c].kind == nodeLeaf && strings.EqualFold(t.nodes[c].name, key) {
			value = t.nodes[c].value
		}
	}
	return value
}

// enclosing walks up from idx (inclusive) to the nearest node of the given
// kind, returning its index or -1.
func (t *tree) enclosing(idx int, kind nodeKind) int {
	for i := idx; i >= 0; i = t.nodes[i].parent {
		if t.nodes[i].kind == kind {
			return i
		}
	}
	return -1
}
