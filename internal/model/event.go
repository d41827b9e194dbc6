package model

import "time"

// EventKind discriminates build lifecycle events. The set is closed: the
// build engine emits exactly these kinds.
type EventKind string

const (
	BuildStarted    EventKind = "BuildStarted"
	BuildFinished   EventKind = "BuildFinished"
	ProjectStarted  EventKind = "ProjectStarted"
	ProjectFinished EventKind = "ProjectFinished"
	TargetStarted   EventKind = "TargetStarted"
	TargetFinished  EventKind = "TargetFinished"
	TaskStarted     EventKind = "TaskStarted"
	TaskFinished    EventKind = "TaskFinished"
	Message         EventKind = "Message"
	Warning         EventKind = "Warning"
	Error           EventKind = "Error"
	Custom          EventKind = "Custom"
	Status          EventKind = "Status"
)

// Event is one build-engine lifecycle event. A single flat record with a
// Kind discriminator rather than an interface hierarchy, so recorded event
// logs decode line by line and synthetic streams can be written as literals
// in tests.
//
// Field usage by kind:
//   - ProjectStarted: ProjectPath, Properties, Items
//   - ProjectFinished: ProjectPath, Succeeded
//   - TargetStarted/TaskStarted: Name
//   - Message/Warning/Error: Text (for Message, possibly a compiler command line)
type Event struct {
	Kind        EventKind         `json:"kind"`
	Timestamp   time.Time         `json:"timestamp,omitzero"`
	ProjectPath string            `json:"project_path,omitempty"`
	Name        string            `json:"name,omitempty"`
	Text        string            `json:"text,omitempty"`
	Properties  []Property        `json:"properties,omitempty"`
	Items       map[string][]Item `json:"items,omitempty"`
	Succeeded   bool              `json:"succeeded,omitempty"`
}

// Property is a single name/value pair reported by the build engine.
// Names compare case-insensitively; the last reported value for a name wins.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Item is one entry of a build item group (a reference, a source file, a
// package dependency). Metadata names compare case-insensitively.
type Item struct {
	Spec     string            `json:"spec"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
