package catalog

import "github.com/mark3labs/mcp-go/mcp"

// paramSpec describes one operation-specific parameter.
type paramSpec struct {
	name     string
	typ      string
	desc     string
	required bool
}

// extensions lists the parameters each tool takes beyond the common set.
// Tools absent from this table accept only the common parameters.
// organize-imports is deliberately absent.
var extensions = map[string][]paramSpec{
	"rename": {
		{name: "old_name", typ: "string", desc: "current name of the symbol", required: true},
		{name: "new_name", typ: "string", desc: "new name for the symbol", required: true},
	},
	"extract-method": {
		{name: "method_name", typ: "string", desc: "name for the extracted function or method", required: true},
		{name: "end_line", typ: "integer", desc: "1-based last line of the selection", required: true},
	},
	"extract-variable": {
		{name: "variable_name", typ: "string", desc: "name for the extracted variable", required: true},
	},
	"extract-constant": {
		{name: "constant_name", typ: "string", desc: "name for the extracted constant", required: true},
	},
	"extract-interface": {
		{name: "type_name", typ: "string", desc: "type whose method set forms the interface", required: true},
		{name: "interface_name", typ: "string", desc: "name for the new interface", required: true},
	},
	"inline-variable": {
		{name: "variable_name", typ: "string", desc: "variable to inline", required: true},
	},
	"add-import": {
		{name: "import_path", typ: "string", desc: "import path to add", required: true},
		{name: "alias", typ: "string", desc: "optional import alias"},
	},
	"remove-import": {
		{name: "import_path", typ: "string", desc: "import path to remove", required: true},
	},
	"add-context-parameter": {
		{name: "function_name", typ: "string", desc: "function to receive a ctx context.Context parameter", required: true},
	},
	"change-signature": {
		{name: "function_name", typ: "string", desc: "function whose parameters are reordered", required: true},
		{name: "parameter_order", typ: "string", desc: "comma-separated parameter names in their new order", required: true},
	},
	"safe-delete": {
		{name: "symbol_name", typ: "string", desc: "top-level symbol to delete", required: true},
	},
}

// GenerateSchema produces the input schema for toolName: the five common
// parameters plus the tool's extension parameters. Equal inputs yield
// structurally equal schemas.
func GenerateSchema(toolName string) mcp.ToolInputSchema {
	properties := map[string]any{
		"file_path": map[string]any{
			"type":        "string",
			"description": "path to the target source file",
		},
		"line_number": map[string]any{
			"type":        "integer",
			"description": "1-based line number",
			"default":     1,
			"minimum":     1,
		},
		"column_number": map[string]any{
			"type":        "integer",
			"description": "0-based column number",
			"default":     0,
			"minimum":     0,
		},
		"output_path": map[string]any{
			"type":        "string",
			"description": "destination file; the input file is overwritten when omitted",
		},
		"dry_run": map[string]any{
			"type":        "boolean",
			"description": "report the would-be change without writing anything",
			"default":     false,
		},
	}
	required := []string{"file_path"}

	for _, p := range extensions[toolName] {
		prop := map[string]any{
			"type":        p.typ,
			"description": p.desc,
		}
		properties[p.name] = prop
		if p.required {
			required = append(required, p.name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
