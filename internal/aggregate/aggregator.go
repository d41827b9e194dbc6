// Package aggregate reconstructs per-target-framework build snapshots from
// the build engine's flat event stream. Events arrive in engine order; the
// aggregator builds a transient tree of build/project/target/task nodes and,
// once the stream ends, walks it to group the target project's builds by
// target-framework moniker.
package aggregate

import (
	"strings"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/pathutil"
	"github.com/azyobuzin/buildalyzer/internal/snapshot"
)

// Folder labels under a project node.
const (
	propertiesFolder = "Properties"
	itemsFolder      = "Items"
)

// Defaults for the collaborator-supplied compile phase names.
const (
	DefaultCompilerTask      = "Csc"
	DefaultCoreCompileTarget = "CoreCompile"
)

// Observer receives every raw event before it is consumed for tree
// construction, including when construction is disabled.
type Observer func(model.Event)

// Options configures one aggregation pass. Zero values mean: default
// compile phase names, tree construction enabled, no observers.
type Options struct {
	// CompilerTask names the engine task whose messages carry compiler
	// command lines. The name comes from the collaborator layer and is
	// compared case-insensitively.
	CompilerTask string

	// CoreCompileTarget names the target whose compiler invocation is
	// authoritative when a project invokes the compiler more than once.
	CoreCompileTarget string

	// SkipTreeConstruction disables tree building entirely. Observers still
	// see every event; Results then returns nothing.
	SkipTreeConstruction bool

	Observers []Observer
}

// Aggregator consumes one build event stream. Not safe for concurrent use;
// the engine delivers events sequentially and each aggregation run owns a
// fresh instance.
type Aggregator struct {
	projectPath string // normalized target project path
	opts        Options
	tree        tree
	current     int // innermost open node, -1 outside any build
}

// New creates an aggregator that extracts builds of the given project from
// the stream. Other projects appearing in the stream (transitive build
// dependencies) are tracked in the tree but excluded from results.
func New(projectPath string, opts Options) *Aggregator {
	if opts.CompilerTask == "" {
		opts.CompilerTask = DefaultCompilerTask
	}
	if opts.CoreCompileTarget == "" {
		opts.CoreCompileTarget = DefaultCoreCompileTarget
	}
	return &Aggregator{
		projectPath: pathutil.Normalize(projectPath),
		opts:        opts,
		current:     -1,
	}
}

// Handle consumes one event. Observers are notified first, unconditionally;
// then the event updates the tree: started events push a child node,
// finished events pop, payload events attach to the innermost node. The
// engine guarantees start/finish pairing and nesting order, so interleaving
// is trusted, not re-validated.
func (a *Aggregator) Handle(ev model.Event) {
	for _, obs := range a.opts.Observers {
		obs(ev)
	}
	if a.opts.SkipTreeConstruction {
		return
	}

	switch ev.Kind {
	case model.BuildStarted:
		a.current = a.tree.add(a.current, node{kind: nodeBuild, name: "Build"})
	case model.BuildFinished:
		a.pop()
	case model.ProjectStarted:
		a.current = a.tree.add(a.current, node{kind: nodeProject, name: ev.ProjectPath})
		a.attachBags(a.current, ev)
	case model.ProjectFinished:
		if p := a.tree.enclosing(a.current, nodeProject); p >= 0 {
			a.tree.nodes[p].succeeded = ev.Succeeded
		}
		a.pop()
	case model.TargetStarted:
		a.current = a.tree.add(a.current, node{kind: nodeTarget, name: ev.Name})
	case model.TargetFinished, model.TaskFinished:
		a.pop()
	case model.TaskStarted:
		a.current = a.tree.add(a.current, node{kind: nodeTask, name: ev.Name})
	case model.Message:
		a.handleMessage(ev)
	case model.Warning, model.Error, model.Custom, model.Status:
		if a.current >= 0 {
			if ev.Text != "" {
				a.tree.add(a.current, node{kind: nodeLeaf, name: string(ev.Kind), value: ev.Text})
			}
			a.attachBags(a.current, ev)
		}
	}
}

// Results walks the tree and returns one snapshot per distinct
// target-framework moniker of the target project, in discovery order.
// Project nodes without a resolvable moniker (typically the outer,
// not-yet-evaluated wrapper build of a multi-targeted project) contribute
// nothing. On a partial stream (cancelled or crashed build) this yields
// partial or empty results, never an error.
func (a *Aggregator) Results() []*snapshot.Snapshot {
	var order []string
	byMoniker := make(map[string]*snapshot.Snapshot)

	a.tree.visit(func(idx int, n *node) {
		if n.kind != nodeProject || pathutil.Normalize(n.name) != a.projectPath {
			return
		}
		props := a.tree.childFolder(idx, propertiesFolder)
		moniker := a.tree.leafValue(props, "TargetFrameworkMoniker")
		if moniker == "" {
			return
		}

		snap, ok := byMoniker[moniker]
		if !ok {
			snap = snapshot.New(n.name, moniker)
			byMoniker[moniker] = snap
			order = append(order, moniker)
		}
		a.merge(idx, snap)
	})

	out := make([]*snapshot.Snapshot, len(order))
	for i, m := range order {
		out[i] = byMoniker[m]
	}
	return out
}

// merge copies one project node's captured state into its snapshot. The same
// project path can appear repeatedly in the tree from transitive nested
// builds; repeats of a moniker merge into the same snapshot.
func (a *Aggregator) merge(idx int, snap *snapshot.Snapshot) {
	n := &a.tree.nodes[idx]

	if pf := a.tree.childFolder(idx, propertiesFolder); pf >= 0 {
		var props []model.Property
		for _, c := range a.tree.nodes[pf].children {
			leaf := &a.tree.nodes[c]
			if leaf.kind == nodeLeaf {
				props = append(props, model.Property{Name: leaf.name, Value: leaf.value})
			}
		}
		snap.RecordProperties(props)
	}

	if itf := a.tree.childFolder(idx, itemsFolder); itf >= 0 {
		for _, tc := range a.tree.nodes[itf].children {
			typeFolder := &a.tree.nodes[tc]
			if typeFolder.kind != nodeFolder {
				continue
			}
			var items []model.Item
			for _, c := range typeFolder.children {
				leaf := &a.tree.nodes[c]
				if leaf.kind == nodeLeaf {
					items = append(items, model.Item{Spec: leaf.name, Metadata: leaf.metadata})
				}
			}
			snap.RecordItems(typeFolder.name, items)
		}
	}

	for _, inv := range n.invocations {
		snap.RecordCompilerInvocation(inv.commandLine, inv.coreCompile)
	}
	snap.SetSucceeded(n.succeeded)
}

// handleMessage captures compiler command lines and attaches other message
// text to the innermost node. A message emitted by the configured compiler
// task is recorded on the nearest enclosing project node, flagged
// authoritative when the enclosing target is the core compile phase.
func (a *Aggregator) handleMessage(ev model.Event) {
	if a.current < 0 || ev.Text == "" {
		return
	}
	cur := &a.tree.nodes[a.current]
	if cur.kind == nodeTask && strings.EqualFold(cur.name, a.opts.CompilerTask) {
		if p := a.tree.enclosing(a.current, nodeProject); p >= 0 {
			core := false
			if tgt := a.tree.enclosing(a.current, nodeTarget); tgt >= 0 {
				core = strings.EqualFold(a.tree.nodes[tgt].name, a.opts.CoreCompileTarget)
			}
			a.tree.nodes[p].invocations = append(a.tree.nodes[p].invocations, invocation{
				commandLine: ev.Text,
				coreCompile: core,
			})
			return
		}
	}
	a.tree.add(a.current, node{kind: nodeLeaf, name: string(ev.Kind), value: ev.Text})
}

// attachBags stores an event's property and item bags as folder children of
// the given node: Properties holds name/value leaves, Items holds one folder
// per item type with one leaf per item. An item bag seen again for a type
// replaces that type's leaves; the engine reports full groups, not deltas.
func (a *Aggregator) attachBags(idx int, ev model.Event) {
	if len(ev.Properties) > 0 {
		pf := a.ensureFolder(idx, propertiesFolder)
		for _, p := range ev.Properties {
			a.tree.add(pf, node{kind: nodeLeaf, name: p.Name, value: p.Value})
		}
	}
	if len(ev.Items) > 0 {
		itf := a.ensureFolder(idx, itemsFolder)
		for typ, items := range ev.Items {
			tf := a.tree.childFolder(itf, typ)
			if tf >= 0 {
				a.tree.nodes[tf].children = nil
			} else {
				tf = a.tree.add(itf, node{kind: nodeFolder, name: typ})
			}
			for _, item := range items {
				a.tree.add(tf, node{kind: nodeLeaf, name: item.Spec, metadata: item.Metadata})
			}
		}
	}
}

func (a *Aggregator) ensureFolder(idx int, name string) int {
	if f := a.tree.childFolder(idx, name); f >= 0 {
		return f
	}
	return a.tree.add(idx, node{kind: nodeFolder, name: name})
}

func (a *Aggregator) pop() {
	if a.current >= 0 {
		a.current = a.tree.nodes[a.current].parent
	}
}
