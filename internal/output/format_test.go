package output

import (
	"encoding/json"
	"testing"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

func baseResult() model.BuildResult {
	return model.BuildResult{
		ProjectPath:     "/src/App/App.csproj",
		ProjectGUID:     "2a5b0e9f-5bfb-5b4f-8a2e-9b6b1f6d4a11",
		TargetFramework: "net6.0",
		Succeeded:       true,
		Properties:      map[string]string{"Configuration": "Debug"},
		Items: map[string][]model.Item{
			"Compile": {{Spec: "Program.cs"}},
		},
		Arguments:         []model.Argument{{Value: "csc.exe"}, {Value: "Program.cs"}},
		SourceFiles:       []string{"/src/App/Program.cs"},
		References:        []string{"Foo.dll"},
		ProjectReferences: []string{},
		PackageReferences: map[string]map[string]string{},
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input string
		want  Verbosity
	}{
		{"minimal", Minimal},
		{"standard", Standard},
		{"full", Full},
		{"", Standard},
		{"bogus", Standard},
	}
	for _, tt := range tests {
		if got := ParseVerbosity(tt.input); got != tt.want {
			t.Errorf("ParseVerbosity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatResultMinimal(t *testing.T) {
	r := FormatResult(baseResult(), Minimal)

	if r.Properties != nil || r.Items != nil || r.Arguments != nil {
		t.Fatal("Minimal should strip properties, items and arguments")
	}
	if len(r.SourceFiles) != 1 || len(r.References) != 1 {
		t.Fatal("derived views must survive Minimal")
	}
	if r.ProjectGUID == "" || r.TargetFramework != "net6.0" {
		t.Fatal("identity fields must survive Minimal")
	}
}

func TestFormatResultStandard(t *testing.T) {
	r := FormatResult(baseResult(), Standard)

	if r.Properties == nil {
		t.Fatal("Standard should keep properties")
	}
	if r.Items != nil || r.Arguments != nil {
		t.Fatal("Standard should strip raw items and arguments")
	}
}

func TestFormatResultFull(t *testing.T) {
	r := FormatResult(baseResult(), Full)

	if r.Properties == nil || r.Items == nil || r.Arguments == nil {
		t.Fatal("Full should keep everything")
	}
}

func TestJSONTagNames(t *testing.T) {
	data, err := json.Marshal(baseResult())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	expected := []string{
		"project_path", "project_guid", "target_framework", "succeeded",
		"properties", "items", "arguments", "source_files", "references",
		"project_references", "package_references",
	}
	for _, key := range expected {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected snake_case key %q in JSON", key)
		}
	}
}
