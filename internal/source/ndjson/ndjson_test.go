package ndjson

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/source"
)

const sampleLog = `{"kind":"BuildStarted"}
{"kind":"ProjectStarted","project_path":"App.csproj","properties":[{"name":"TargetFrameworkMoniker","value":".NETCoreApp,Version=v6.0"}]}

this line is not JSON
{"kind":"ProjectFinished","project_path":"App.csproj","succeeded":true}
{"kind":"BuildFinished"}
`

func TestReadAll(t *testing.T) {
	events, err := ReadAll(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	// Blank and malformed lines are skipped, order preserved.
	want := []model.EventKind{
		model.BuildStarted, model.ProjectStarted, model.ProjectFinished, model.BuildFinished,
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Fatalf("event %d: got %s, want %s", i, events[i].Kind, k)
		}
	}
	if got := events[1].Properties[0].Value; got != ".NETCoreApp,Version=v6.0" {
		t.Fatalf("property payload not decoded: %q", got)
	}
}

func TestStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.events.ndjson")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}

	s := &Source{}
	ch, err := s.Stream(context.Background(), source.Config{Path: path})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var kinds []model.EventKind
	for ev := range ch {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) != 4 || kinds[0] != model.BuildStarted || kinds[3] != model.BuildFinished {
		t.Fatalf("unexpected event kinds: %v", kinds)
	}
}

func TestStreamMissingFile(t *testing.T) {
	s := &Source{}
	if _, err := s.Stream(context.Background(), source.Config{Path: "does/not/exist.ndjson"}); err == nil {
		t.Fatal("expected error for missing log file")
	}
}

func TestStreamCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.ndjson")
	lines := strings.Repeat(`{"kind":"Message","text":"x"}`+"\n", 1000)
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Source{}
	ch, err := s.Stream(ctx, source.Config{Path: path})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	<-ch
	cancel()
	// The channel must terminate rather than block forever.
	for range ch {
	}
}

func TestRegistered(t *testing.T) {
	ctor, err := source.Get("ndjson")
	if err != nil {
		t.Fatalf("expected ndjson provider registered: %v", err)
	}
	if ctor() == nil {
		t.Fatal("constructor returned nil")
	}
}
