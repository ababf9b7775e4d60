package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/casttools/cast/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	p := NewParser()
	sf, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if sf.File.Name.Name != "main" {
		t.Errorf("package name = %q, want main", sf.File.Name.Name)
	}
	if sf.TokenFile() == nil {
		t.Error("TokenFile returned nil")
	}
	if p.Cache().Len() != 1 {
		t.Errorf("cache len = %d, want 1", p.Cache().Len())
	}
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()
	p := NewParser()

	if _, err := p.ParseFile(filepath.Join(dir, "missing.go")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := p.ParseFile(dir); err == nil {
		t.Error("expected error for directory")
	}

	bad := writeFile(t, dir, "bad.go", "package main\nfunc {")
	_, err := p.ParseFile(bad)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var ee *types.EngineError
	if !errors.As(err, &ee) || ee.Kind != types.ParseError {
		t.Errorf("expected ParseError kind, got %v", err)
	}
}

func TestParseFileReturnsFreshAST(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	p := NewParser()
	first, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	// Mutate the first AST; a second parse must not observe it.
	first.File.Name.Name = "mutated"

	second, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if second.File.Name.Name != "main" {
		t.Errorf("second parse saw mutated AST: %q", second.File.Name.Name)
	}
}

func TestCacheInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n")

	p := NewParser()
	if _, err := p.ParseFile(path); err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	p.Cache().Invalidate(path)
	if p.Cache().Len() != 0 {
		t.Errorf("cache len = %d after invalidate, want 0", p.Cache().Len())
	}
}
