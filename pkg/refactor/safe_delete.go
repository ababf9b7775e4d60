package refactor

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opSafeDelete removes the top-level declaration of symbol_name, refusing
// when the symbol is still referenced anywhere else in the file.
func opSafeDelete(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	name := types.StringArg(req.Args, "symbol_name", "")
	if name == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "symbol_name is required")
	}

	decl, err := findTopLevelDecl(sf.File, name)
	if err != nil {
		return "", nil, err
	}

	refs := countReferences(sf.File, name, decl)
	if refs > 0 {
		return "", nil, types.NewEngineError(types.InvalidOperation,
			"symbol %q is referenced %d time(s) and cannot be safely deleted", name, refs)
	}

	start := decl.Pos()
	if doc := declDoc(decl); doc != nil {
		start = doc.Pos()
	}
	edits := []edit{{
		start: lineStartOffset(sf, lineOf(sf, start)),
		end:   lineEndOffset(sf, lineOf(sf, decl.End())),
	}}

	out, err := gofmt(applyEdits(sf.Content, edits))
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("deleted unreferenced symbol %q", name), out, nil
}

// findTopLevelDecl locates the function, type, var, or const declaration of
// name. Grouped specs are rejected: deleting one member of a group would
// need spec-level surgery that rarely preserves intent.
func findTopLevelDecl(file *ast.File, name string) (ast.Decl, error) {
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if decl.Name.Name == name {
				return decl, nil
			}
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.Name == name {
						if len(decl.Specs) > 1 {
							return nil, types.NewEngineError(types.Unsupported,
								"symbol %q is declared in a group; split the declaration first", name)
						}
						return decl, nil
					}
				case *ast.ValueSpec:
					for _, id := range s.Names {
						if id.Name == name {
							if len(decl.Specs) > 1 || len(s.Names) > 1 {
								return nil, types.NewEngineError(types.Unsupported,
									"symbol %q is declared in a group; split the declaration first", name)
							}
							return decl, nil
						}
					}
				}
			}
		}
	}
	return nil, types.NewEngineError(types.SymbolNotFound, "symbol %q not found at top level", name)
}

// countReferences counts identifiers named name outside the declaration's
// own source range.
func countReferences(file *ast.File, name string, decl ast.Decl) int {
	insp := inspector.New([]*ast.File{file})
	refs := 0
	insp.Preorder([]ast.Node{(*ast.Ident)(nil)}, func(n ast.Node) {
		id := n.(*ast.Ident)
		if id.Name != name {
			return
		}
		if id.Pos() >= decl.Pos() && id.End() <= decl.End() {
			return
		}
		refs++
	})
	return refs
}

// declDoc returns the declaration's doc comment, if any.
func declDoc(decl ast.Decl) *ast.CommentGroup {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return d.Doc
	case *ast.GenDecl:
		return d.Doc
	}
	return nil
}
