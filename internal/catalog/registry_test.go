package catalog

import (
	"reflect"
	"sort"
	"testing"

	"github.com/casttools/cast/pkg/refactor"
)

type fakeEnumerator struct {
	defs []refactor.OperationDefinition
}

func (f *fakeEnumerator) Operations() []refactor.OperationDefinition {
	return f.defs
}

func TestBuildFailsFast(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("expected error for nil engine")
	}
	if _, err := Build(&fakeEnumerator{}); err == nil {
		t.Error("expected error for empty operation table")
	}
	dup := &fakeEnumerator{defs: []refactor.OperationDefinition{
		{ID: "RenameCommand"},
		{ID: "Rename"},
	}}
	if _, err := Build(dup); err == nil {
		t.Error("expected error for colliding tool names")
	}
}

func TestBuildDerivesDescriptors(t *testing.T) {
	eng := &fakeEnumerator{defs: []refactor.OperationDefinition{
		{ID: "RenameCommand"},
		{ID: "ExtractMethodCommand"},
		{ID: "FrobnicateWidgetCommand"},
	}}
	reg, err := Build(eng)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}

	d, ok := reg.Resolve("extract-method")
	if !ok {
		t.Fatal("Resolve(extract-method) not found")
	}
	if d.OperationID != "ExtractMethodCommand" {
		t.Errorf("OperationID = %q", d.OperationID)
	}
	if d.Description == "" {
		t.Error("empty description")
	}

	// Unlisted operation gets a generated description naming the tool.
	frob, ok := reg.Resolve("frobnicate-widget")
	if !ok {
		t.Fatal("Resolve(frobnicate-widget) not found")
	}
	if want := "Frobnicate Widget: apply the frobnicate-widget refactoring to the target file."; frob.Description != want {
		t.Errorf("fallback description = %q, want %q", frob.Description, want)
	}

	if _, ok := reg.Resolve("no-such-tool"); ok {
		t.Error("Resolve(no-such-tool) should not be found")
	}
}

func TestAllIsStable(t *testing.T) {
	reg, err := Build(&fakeEnumerator{defs: []refactor.OperationDefinition{
		{ID: "SafeDeleteCommand"},
		{ID: "RenameCommand"},
		{ID: "AddImportCommand"},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	first := reg.All()
	second := reg.All()
	if !reflect.DeepEqual(first, second) {
		t.Error("All() returned different results across calls")
	}

	names := make([]string, len(first))
	for i, d := range first {
		names[i] = d.ToolName
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("All() not sorted by tool name: %v", names)
	}

	// Mutating a returned slice must not affect the registry.
	first[0].ToolName = "clobbered"
	if reg.All()[0].ToolName == "clobbered" {
		t.Error("All() exposes internal state")
	}
}

func TestFullCatalogRoundTrip(t *testing.T) {
	reg, err := Build(&fakeEnumerator{defs: refactorOperations()})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, d := range reg.All() {
		got, ok := ParseWireName(WireName(d.ToolName))
		if !ok || got != d.ToolName {
			t.Errorf("wire round trip for %q = (%q, %v)", d.ToolName, got, ok)
		}
		if tool := ToolNameForID(d.OperationID); tool != d.ToolName {
			t.Errorf("ToolNameForID(%q) = %q, want %q", d.OperationID, tool, d.ToolName)
		}
	}
}

// refactorOperations enumerates the real engine catalog without needing a
// parser or logger.
func refactorOperations() []refactor.OperationDefinition {
	return (&refactor.DefaultEngine{}).Operations()
}
