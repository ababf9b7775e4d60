package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// descriptions maps tool names to the human-readable text shown to clients.
// Tools without an entry get a generated fallback.
var descriptions = map[string]string{
	"rename":                "Rename every occurrence of a symbol in the file. Requires old_name and new_name.",
	"extract-method":        "Extract the statements between line_number and end_line into a new function or method named method_name, replacing them with a call.",
	"extract-variable":      "Extract the expression at line_number/column_number into a new local variable named variable_name.",
	"extract-constant":      "Extract the literal at line_number/column_number into a file-level constant named constant_name.",
	"extract-interface":     "Declare an interface named interface_name from the method set of type_name.",
	"inline-variable":       "Replace every use of variable_name with its initializer and remove the declaration.",
	"add-import":            "Add import_path (optionally aliased) to the file's imports.",
	"remove-import":         "Remove import_path from the file's imports.",
	"organize-imports":      "Merge, deduplicate, and sort the file's imports, grouping standard-library packages first.",
	"add-context-parameter": "Prepend a ctx context.Context parameter to function_name and update call sites in the file.",
	"change-signature":      "Reorder the parameters of function_name to parameter_order and update call sites in the file.",
	"safe-delete":           "Delete the top-level declaration of symbol_name if nothing in the file references it.",
}

var titleCaser = cases.Title(language.English)

// Description returns the registered description for toolName, or a
// generated one naming the operation.
func Description(toolName string) string {
	if d, ok := descriptions[toolName]; ok {
		return d
	}
	title := titleCaser.String(strings.ReplaceAll(toolName, "-", " "))
	return fmt.Sprintf("%s: apply the %s refactoring to the target file.", title, toolName)
}
