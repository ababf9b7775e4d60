package refactor

import (
	"strings"
	"testing"

	"github.com/casttools/cast/pkg/types"
)

func TestAddImport(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, "package main\n\nfunc main() {}\n")

	mustInvoke(t, e, OpAddImport, path, map[string]any{"import_path": "os"})
	got := readFile(t, path)
	if !strings.Contains(got, `"os"`) {
		t.Errorf("import not added:\n%s", got)
	}

	res := mustInvoke(t, e, OpAddImport, path, map[string]any{"import_path": "os"})
	if res.Changed {
		t.Error("duplicate add reported a change")
	}
}

func TestAddImportWithAlias(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, "package main\n\nfunc main() {}\n")

	mustInvoke(t, e, OpAddImport, path, map[string]any{
		"import_path": "github.com/mark3labs/mcp-go/mcp",
		"alias":       "mcpgo",
	})
	if got := readFile(t, path); !strings.Contains(got, `mcpgo "github.com/mark3labs/mcp-go/mcp"`) {
		t.Errorf("aliased import not added:\n%s", got)
	}
}

func TestRemoveImport(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, "package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nfunc main() {\n\tfmt.Println(os.Args)\n}\n")

	mustInvoke(t, e, OpRemoveImport, path, map[string]any{"import_path": "os"})
	if got := readFile(t, path); strings.Contains(got, `"os"`) {
		t.Errorf("import not removed:\n%s", got)
	}

	_, err := invoke(t, e, OpRemoveImport, path, map[string]any{"import_path": "net/http"})
	ee, ok := err.(*types.EngineError)
	if !ok || ee.Kind != types.SymbolNotFound {
		t.Errorf("err = %v, want SymbolNotFound", err)
	}
}

func TestOrganizeImports(t *testing.T) {
	e := newTestEngine()
	fixture := `package main

import "os"
import (
	"golang.org/x/text/language"
	"fmt"
	"os"
)

func main() {
	fmt.Println(os.Args, language.English)
}
`
	path := writeFixture(t, fixture)
	res := mustInvoke(t, e, OpOrganizeImports, path, nil)
	if !res.Changed {
		t.Fatal("expected a change")
	}

	got := readFile(t, path)
	if strings.Count(got, `"os"`) != 1 {
		t.Errorf("duplicate import survives:\n%s", got)
	}
	fmtIdx := strings.Index(got, `"fmt"`)
	osIdx := strings.Index(got, `"os"`)
	extIdx := strings.Index(got, `"golang.org/x/text/language"`)
	if fmtIdx < 0 || osIdx < 0 || extIdx < 0 {
		t.Fatalf("missing imports:\n%s", got)
	}
	if !(fmtIdx < osIdx && osIdx < extIdx) {
		t.Errorf("imports not grouped stdlib-first and sorted:\n%s", got)
	}
}

func TestOrganizeImportsNoImports(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, "package main\n\nfunc main() {}\n")
	res := mustInvoke(t, e, OpOrganizeImports, path, nil)
	if res.Changed {
		t.Error("no-import file reported a change")
	}
}

func TestIsStdlibImport(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"fmt", true},
		{"net/http", true},
		{"go/ast", true},
		{"github.com/fsnotify/fsnotify", false},
		{"golang.org/x/tools/go/ast/astutil", false},
	}
	for _, tt := range tests {
		if got := isStdlibImport(tt.path); got != tt.want {
			t.Errorf("isStdlibImport(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
