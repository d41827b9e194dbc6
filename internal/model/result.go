package model

// BuildResult is the serializable view of one finalized target-framework
// build. Output sinks write this type, not the internal accumulator.
type BuildResult struct {
	ProjectPath       string                       `json:"project_path"`
	ProjectGUID       string                       `json:"project_guid"`
	TargetFramework   string                       `json:"target_framework,omitempty"`
	Succeeded         bool                         `json:"succeeded"`
	Properties        map[string]string            `json:"properties,omitempty"`
	Items             map[string][]Item            `json:"items,omitempty"`
	Arguments         []Argument                   `json:"arguments,omitempty"`
	SourceFiles       []string                     `json:"source_files"`
	References        []string                     `json:"references"`
	ProjectReferences []string                     `json:"project_references"`
	PackageReferences map[string]map[string]string `json:"package_references"`
}
