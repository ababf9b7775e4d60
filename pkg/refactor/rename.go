package refactor

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opRename renames every identifier old_name to new_name within the file.
// Import paths are string literals and are never touched.
func opRename(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	oldName := types.StringArg(req.Args, "old_name", "")
	newName := types.StringArg(req.Args, "new_name", "")
	if oldName == "" || newName == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "old_name and new_name are required")
	}
	if !token.IsIdentifier(newName) {
		return "", nil, types.NewEngineError(types.InvalidOperation, "%q is not a valid identifier", newName)
	}
	if oldName == newName {
		return fmt.Sprintf("rename %q", oldName), sf.Content, nil
	}

	count := 0
	ast.Inspect(sf.File, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == oldName {
			id.Name = newName
			count++
		}
		return true
	})
	if count == 0 {
		return "", nil, types.NewEngineError(types.SymbolNotFound, "symbol %q not found in %s", oldName, sf.Path)
	}

	out, err := renderFile(sf)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("renamed %q to %q (%d occurrences)", oldName, newName, count), out, nil
}
