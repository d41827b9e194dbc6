package buildalyzer

import (
	"time"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

// EventKind discriminates build lifecycle events.
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

// Event is one build-engine lifecycle event fed into an Analyzer.
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
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Item is one entry of a build item group.
type Item struct {
	Spec     string            `json:"spec"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Argument is one classified compiler command-line argument. A switch has a
// Name; a positional argument has only a Value.
type Argument struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Build is the analysis result for one target framework of a project.
// This is the stable public type.
type Build struct {
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

// eventToModel converts the public Event to the internal model type.
func eventToModel(e Event) model.Event {
	ev := model.Event{
		Kind:        model.EventKind(e.Kind),
		Timestamp:   e.Timestamp,
		ProjectPath: e.ProjectPath,
		Name:        e.Name,
		Text:        e.Text,
		Succeeded:   e.Succeeded,
	}
	if len(e.Properties) > 0 {
		ev.Properties = make([]model.Property, len(e.Properties))
		for i, p := range e.Properties {
			ev.Properties[i] = model.Property{Name: p.Name, Value: p.Value}
		}
	}
	if len(e.Items) > 0 {
		ev.Items = make(map[string][]model.Item, len(e.Items))
		for group, items := range e.Items {
			converted := make([]model.Item, len(items))
			for i, it := range items {
				converted[i] = model.Item{Spec: it.Spec, Metadata: it.Metadata}
			}
			ev.Items[group] = converted
		}
	}
	return ev
}

// eventFromModel converts an internal event to the public Event type.
func eventFromModel(ev model.Event) Event {
	e := Event{
		Kind:        EventKind(ev.Kind),
		Timestamp:   ev.Timestamp,
		ProjectPath: ev.ProjectPath,
		Name:        ev.Name,
		Text:        ev.Text,
		Succeeded:   ev.Succeeded,
	}
	if len(ev.Properties) > 0 {
		e.Properties = make([]Property, len(ev.Properties))
		for i, p := range ev.Properties {
			e.Properties[i] = Property{Name: p.Name, Value: p.Value}
		}
	}
	if len(ev.Items) > 0 {
		e.Items = make(map[string][]Item, len(ev.Items))
		for group, items := range ev.Items {
			converted := make([]Item, len(items))
			for i, it := range items {
				converted[i] = Item{Spec: it.Spec, Metadata: it.Metadata}
			}
			e.Items[group] = converted
		}
	}
	return e
}

// buildFromResult converts the internal BuildResult to the public Build type.
func buildFromResult(r model.BuildResult) Build {
	b := Build{
		ProjectPath:       r.ProjectPath,
		ProjectGUID:       r.ProjectGUID,
		TargetFramework:   r.TargetFramework,
		Succeeded:         r.Succeeded,
		Properties:        r.Properties,
		SourceFiles:       r.SourceFiles,
		References:        r.References,
		ProjectReferences: r.ProjectReferences,
		PackageReferences: r.PackageReferences,
	}
	if len(r.Items) > 0 {
		b.Items = make(map[string][]Item, len(r.Items))
		for group, items := range r.Items {
			converted := make([]Item, len(items))
			for i, it := range items {
				converted[i] = Item{Spec: it.Spec, Metadata: it.Metadata}
			}
			b.Items[group] = converted
		}
	}
	if len(r.Arguments) > 0 {
		b.Arguments = make([]Argument, len(r.Arguments))
		for i, a := range r.Arguments {
			b.Arguments[i] = Argument{Name: a.Name, Value: a.Value}
		}
	}
	return b
}
