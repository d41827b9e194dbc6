package cmdline

import (
	"reflect"
	"testing"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Fatalf("expected nil for empty command line, got %v", got)
	}
}

func TestParseFirstPartIsProgram(t *testing.T) {
	// The first part is positional even when it looks like a switch.
	args := Parse("/usr/bin/csc /optimize")
	if len(args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(args))
	}
	if !args[0].Positional() || args[0].Value != "/usr/bin/csc" {
		t.Fatalf("expected positional program argument, got %+v", args[0])
	}
	if args[1].Name != "optimize" || args[1].Value != "" {
		t.Fatalf("expected bare switch 'optimize', got %+v", args[1])
	}
}

func TestParseSwitches(t *testing.T) {
	tests := []struct {
		part string
		want model.Argument
	}{
		{"/reference:Foo.dll", model.Argument{Name: "reference", Value: "Foo.dll"}},
		{"/optimize", model.Argument{Name: "optimize"}},
		{"a.cs", model.Argument{Value: "a.cs"}},
		{"/out:bin/Debug/app.dll", model.Argument{Name: "out", Value: "bin/Debug/app.dll"}},
		// Value containing further colons splits only at the first one.
		{"/define:A:B", model.Argument{Name: "define", Value: "A:B"}},
		// Trailing colon: the whole remainder is the switch name.
		{"/warn:", model.Argument{Name: "warn:"}},
		// Colon immediately after the slash is not a separator.
		{"/:x", model.Argument{Name: ":x"}},
	}

	for _, tt := range tests {
		args := Parse("csc.exe " + tt.part)
		if len(args) != 2 {
			t.Fatalf("Parse(csc.exe %s): expected 2 arguments, got %d", tt.part, len(args))
		}
		if args[1] != tt.want {
			t.Fatalf("Parse(csc.exe %s) = %+v, want %+v", tt.part, args[1], tt.want)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	const line = `csc.exe /noconfig /reference:"C:\libs\Foo Bar.dll" /optimize Program.cs`
	a := Parse(line)
	b := Parse(line)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("classification not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestParseQuotedValues(t *testing.T) {
	args := Parse(`csc.exe "/reference:C:\My Libs\Foo.dll" "Pro gram.cs"`)
	want := []model.Argument{
		{Value: "csc.exe"},
		{Name: "reference", Value: `C:\My Libs\Foo.dll`},
		{Value: "Pro gram.cs"},
	}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %+v, want %+v", args, want)
	}
}

func TestParseOrderPreserved(t *testing.T) {
	args := Parse("csc.exe b.cs a.cs /optimize c.cs")
	var positional []string
	for _, a := range args[1:] {
		if a.Positional() {
			positional = append(positional, a.Value)
		}
	}
	want := []string{"b.cs", "a.cs", "c.cs"}
	if !reflect.DeepEqual(positional, want) {
		t.Fatalf("positional order %v, want %v", positional, want)
	}
}
