package refactor

import (
	"strings"
	"testing"

	"github.com/casttools/cast/pkg/types"
)

func TestSafeDeleteFunction(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, `package main

// helper is kept around from an earlier revision.
func helper() int {
	return 1
}

func main() {}
`)
	res := mustInvoke(t, e, OpSafeDelete, path, map[string]any{"symbol_name": "helper"})
	if !res.Changed {
		t.Fatal("expected a change")
	}

	got := readFile(t, path)
	if strings.Contains(got, "helper") {
		t.Errorf("declaration or doc comment survives:\n%s", got)
	}
	if !strings.Contains(got, "func main() {}") {
		t.Errorf("unrelated code damaged:\n%s", got)
	}
}

func TestSafeDeleteVar(t *testing.T) {
	e := newTestEngine()
	path := writeFixture(t, "package main\n\nvar debug = false\n\nfunc main() {}\n")
	mustInvoke(t, e, OpSafeDelete, path, map[string]any{"symbol_name": "debug"})
	if got := readFile(t, path); strings.Contains(got, "debug") {
		t.Errorf("var survives:\n%s", got)
	}
}

func TestSafeDeleteErrors(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name    string
		fixture string
		symbol  string
		kind    types.ErrorKind
		substr  string
	}{
		{
			name:    "missing argument",
			fixture: "package main\n\nfunc main() {}\n",
			symbol:  "",
			kind:    types.InvalidOperation,
			substr:  "symbol_name is required",
		},
		{
			name:    "not found",
			fixture: "package main\n\nfunc main() {}\n",
			symbol:  "ghost",
			kind:    types.SymbolNotFound,
			substr:  "not found",
		},
		{
			name:    "still referenced",
			fixture: "package main\n\nfunc helper() int { return 1 }\n\nfunc main() { _ = helper() }\n",
			symbol:  "helper",
			kind:    types.InvalidOperation,
			substr:  "referenced",
		},
		{
			name:    "grouped declaration",
			fixture: "package main\n\nvar (\n\ta = 1\n\tb = 2\n)\n\nfunc main() { _ = b }\n",
			symbol:  "a",
			kind:    types.Unsupported,
			substr:  "group",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.fixture)
			args := map[string]any{}
			if tt.symbol != "" {
				args["symbol_name"] = tt.symbol
			}
			_, err := invoke(t, e, OpSafeDelete, path, args)
			ee, ok := err.(*types.EngineError)
			if !ok || ee.Kind != tt.kind {
				t.Fatalf("err = %v, want kind %d", err, tt.kind)
			}
			if !strings.Contains(ee.Message, tt.substr) {
				t.Errorf("message %q does not mention %q", ee.Message, tt.substr)
			}
		})
	}
}
