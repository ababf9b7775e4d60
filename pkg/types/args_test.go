package types

import (
	"encoding/json"
	"testing"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{
		"name":  "rename",
		"count": 3.0,
	}

	tests := []struct {
		name string
		key  string
		def  string
		want string
	}{
		{"present", "name", "x", "rename"},
		{"absent", "missing", "fallback", "fallback"},
		{"wrong kind", "count", "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("StringArg(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]any{
		"dry_run": true,
		"name":    "rename",
	}

	tests := []struct {
		name string
		key  string
		def  bool
		want bool
	}{
		{"present", "dry_run", false, true},
		{"absent uses default", "missing", true, true},
		{"wrong kind uses default", "name", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoolArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("BoolArg(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]any{
		"json number": float64(42),
		"int":         7,
		"int64":       int64(9),
		"number type": json.Number("13"),
		"bad number":  json.Number("nope"),
		"string":      "42",
	}

	tests := []struct {
		name string
		key  string
		def  int
		want int
	}{
		{"float64 from json", "json number", 0, 42},
		{"int", "int", 0, 7},
		{"int64", "int64", 0, 9},
		{"json.Number", "number type", 0, 13},
		{"unparseable json.Number", "bad number", 5, 5},
		{"string is not coerced", "string", 1, 1},
		{"absent", "missing", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("IntArg(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestEngineError(t *testing.T) {
	err := &EngineError{Kind: SymbolNotFound, Message: "symbol Foo not found", File: "main.go", Line: 3, Column: 2}
	if got, want := err.Error(), "main.go:3:2: symbol Foo not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := NewEngineError(ParseError, "bad %s", "token")
	if got, want := bare.Error(), "bad token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRequestTarget(t *testing.T) {
	r := &Request{FilePath: "in.go"}
	if r.Target() != "in.go" {
		t.Errorf("Target() = %q, want in.go", r.Target())
	}
	r.OutputPath = "out.go"
	if r.Target() != "out.go" {
		t.Errorf("Target() = %q, want out.go", r.Target())
	}
}
