package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

// mockOutput records calls for test assertions.
type mockOutput struct {
	results []model.BuildResult
	closed  bool
	err     error // if set, Write and Close return this error
}

func (m *mockOutput) Write(_ context.Context, result model.BuildResult) error {
	m.results = append(m.results, result)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return m.err
}

func testResult(tfm string) model.BuildResult {
	return model.BuildResult{
		ProjectPath:     "/src/App/App.csproj",
		TargetFramework: tfm,
		Succeeded:       true,
	}
}

func TestFanOutDeliversToAll(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	c := &mockOutput{}
	m := New(a, b, c)

	if err := m.Write(context.Background(), testResult("net6.0")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, out := range []*mockOutput{a, b, c} {
		if len(out.results) != 1 {
			t.Errorf("output %d: got %d results, want 1", i, len(out.results))
		}
		if out.results[0].TargetFramework != "net6.0" {
			t.Errorf("output %d: got framework %q, want net6.0", i, out.results[0].TargetFramework)
		}
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	failing := &mockOutput{err: errors.New("disk full")}
	healthy := &mockOutput{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), testResult("net48"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Healthy output still received the result despite earlier failure.
	if len(healthy.results) != 1 {
		t.Fatalf("healthy output got %d results, want 1", len(healthy.results))
	}
	if len(failing.results) != 1 {
		t.Fatalf("failing output got %d results, want 1", len(failing.results))
	}
}

func TestCloseCallsAllOutputs(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	m := New(a, b)

	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.closed || !b.closed {
		t.Errorf("Close not called on all outputs: a=%v b=%v", a.closed, b.closed)
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	a := &mockOutput{err: errors.New("err-a")}
	b := &mockOutput{err: errors.New("err-b")}
	m := New(a, b)

	if err := m.Close(); err == nil {
		t.Fatal("expected error, got nil")
	}
	if !a.closed || !b.closed {
		t.Error("Close should be called on all outputs even when errors occur")
	}
}
