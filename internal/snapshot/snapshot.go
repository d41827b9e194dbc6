// Package snapshot accumulates the build facts of one target-framework
// build of one project: properties, item groups, and the classified compiler
// command line, plus the derived views consumers actually query.
package snapshot

import (
	"path/filepath"
	"strings"

	"github.com/azyobuzin/buildalyzer/internal/cmdline"
	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/pathutil"
)

// Item types with special derived views.
const (
	projectReferenceItem = "ProjectReference"
	packageReferenceItem = "PackageReference"
)

// compilerBinaries are executable base names (extension stripped, lowercase)
// that never count as source files even when they appear as positional
// command-line values.
var compilerBinaries = map[string]bool{
	"csc": true,
	"vbc": true,
	"fsc": true,
}

// Snapshot is the mutable per-build accumulator. The aggregator writes into
// it while walking the build tree; once the walk completes the snapshot is
// read-only from the consumer's perspective. Derived views are computed on
// demand and never return nil slices or maps.
type Snapshot struct {
	projectPath string // normalized absolute path
	projectDir  string
	moniker     string // TargetFrameworkMoniker grouping key
	succeeded   bool

	properties map[string]model.Property // key: lowercased name
	items      map[string][]model.Item
	args       []model.Argument
	recorded   bool // a compiler invocation has been stored
}

// New creates an empty snapshot for the given project path and
// target-framework moniker. The path is normalized once here; all relative
// resolution in derived views uses its directory.
func New(projectPath, moniker string) *Snapshot {
	p := pathutil.Normalize(projectPath)
	return &Snapshot{
		projectPath: p,
		projectDir:  filepath.Dir(p),
		moniker:     moniker,
		properties:  make(map[string]model.Property),
		items:       make(map[string][]model.Item),
	}
}

// ProjectPath returns the normalized absolute path of the project file.
func (s *Snapshot) ProjectPath() string { return s.projectPath }

// Moniker returns the target-framework moniker this snapshot was grouped by.
func (s *Snapshot) Moniker() string { return s.moniker }

// Succeeded reports the engine-supplied success flag for this build.
func (s *Snapshot) Succeeded() bool { return s.succeeded }

// SetSucceeded records the engine-supplied success flag.
func (s *Snapshot) SetSucceeded(ok bool) { s.succeeded = ok }

// RecordProperties inserts or overwrites properties. Names compare
// case-insensitively; the last write for a name wins.
func (s *Snapshot) RecordProperties(props []model.Property) {
	for _, p := range props {
		s.properties[strings.ToLower(p.Name)] = p
	}
}

// RecordItems replaces the item list for the given type. The engine reports
// the full group per event, not incremental deltas, so replacement is the
// correct merge.
func (s *Snapshot) RecordItems(itemType string, items []model.Item) {
	s.items[itemType] = append([]model.Item(nil), items...)
}

// RecordCompilerInvocation parses and stores a captured compiler command
// line. The first invocation wins unless a later one is flagged as the
// authoritative core-compile phase; once an authoritative invocation is
// stored, later non-authoritative ones are ignored. Blank command lines are
// ignored outright.
func (s *Snapshot) RecordCompilerInvocation(commandLine string, coreCompile bool) {
	if strings.TrimSpace(commandLine) == "" {
		return
	}
	if s.recorded && !coreCompile {
		return
	}
	s.args = cmdline.Parse(commandLine)
	s.recorded = true
}

// Property returns the value for a name (case-insensitive), or "".
func (s *Snapshot) Property(name string) string {
	return s.properties[strings.ToLower(name)].Value
}

// Properties returns a copy of the property map keyed by the reported names.
func (s *Snapshot) Properties() map[string]string {
	out := make(map[string]string, len(s.properties))
	for _, p := range s.properties {
		out[p.Name] = p.Value
	}
	return out
}

// Items returns a copy of the item map.
func (s *Snapshot) Items() map[string][]model.Item {
	out := make(map[string][]model.Item, len(s.items))
	for typ, list := range s.items {
		out[typ] = append([]model.Item(nil), list...)
	}
	return out
}

// Arguments returns the classified compiler arguments, empty when no
// invocation was captured.
func (s *Snapshot) Arguments() []model.Argument {
	return append([]model.Argument(nil), s.args...)
}

// TargetFramework derives the short framework moniker: the TargetFramework
// property when present, otherwise the (TargetFrameworkIdentifier,
// TargetFrameworkVersion) property pair, otherwise the full moniker this
// snapshot was grouped by. Returns "" when none resolves.
func (s *Snapshot) TargetFramework() string {
	if tf := s.Property("TargetFramework"); tf != "" {
		return tf
	}
	if tf := Moniker(s.Property("TargetFrameworkIdentifier"), s.Property("TargetFrameworkVersion")); tf != "" {
		return tf
	}
	id, version, ok := strings.Cut(s.moniker, ",Version=")
	if !ok {
		return ""
	}
	return Moniker(id, version)
}

// SourceFiles returns the compilation units of the captured invocation:
// positional arguments excluding the program entry and anything naming a
// known compiler binary, resolved absolute against the project directory.
func (s *Snapshot) SourceFiles() []string {
	files := []string{}
	if len(s.args) == 0 {
		return files
	}
	for _, a := range s.args[1:] {
		if !a.Positional() || isCompilerBinary(a.Value) {
			continue
		}
		files = append(files, pathutil.Resolve(s.projectDir, a.Value))
	}
	return files
}

// References returns the values of /reference: switches, unresolved.
func (s *Snapshot) References() []string {
	refs := []string{}
	for _, a := range s.args {
		if a.Name == "reference" {
			refs = append(refs, a.Value)
		}
	}
	return refs
}

// ProjectReferences returns ProjectReference item specs resolved absolute
// against the project directory.
func (s *Snapshot) ProjectReferences() []string {
	refs := []string{}
	for _, item := range s.items[projectReferenceItem] {
		refs = append(refs, pathutil.Resolve(s.projectDir, item.Spec))
	}
	return refs
}

// PackageReferences returns PackageReference items keyed by package id,
// deduplicated with first occurrence winning. The engine reports the group
// once per build context, so repeats of the same id must collapse.
func (s *Snapshot) PackageReferences() map[string]map[string]string {
	refs := map[string]map[string]string{}
	for _, item := range s.items[packageReferenceItem] {
		if _, seen := refs[item.Spec]; seen {
			continue
		}
		md := make(map[string]string, len(item.Metadata))
		for k, v := range item.Metadata {
			md[k] = v
		}
		refs[item.Spec] = md
	}
	return refs
}

// Result flattens the snapshot into its serializable view.
func (s *Snapshot) Result() model.BuildResult {
	return model.BuildResult{
		ProjectPath:       s.projectPath,
		ProjectGUID:       s.ProjectGUID().String(),
		TargetFramework:   s.TargetFramework(),
		Succeeded:         s.succeeded,
		Properties:        s.Properties(),
		Items:             s.Items(),
		Arguments:         s.Arguments(),
		SourceFiles:       s.SourceFiles(),
		References:        s.References(),
		ProjectReferences: s.ProjectReferences(),
		PackageReferences: s.PackageReferences(),
	}
}

func isCompilerBinary(value string) bool {
	base := strings.ToLower(filepath.Base(value))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return compilerBinaries[base]
}
