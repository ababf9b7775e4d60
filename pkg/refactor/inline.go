package refactor

import (
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opInlineVariable replaces every use of variable_name inside its function
// with the variable's initializer and removes the declaration. The variable
// must be declared with a single name and initializer and never reassigned.
func opInlineVariable(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	name := types.StringArg(req.Args, "variable_name", "")
	if name == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "variable_name is required")
	}

	fn, def, value := findVariableDefinition(sf.File, name)
	if fn == nil {
		return "", nil, types.NewEngineError(types.SymbolNotFound, "variable %q not found in %s", name, sf.Path)
	}
	if value == nil {
		return "", nil, types.NewEngineError(types.Unsupported, "variable %q has no single initializer", name)
	}
	if reassigned(fn.Body, name, def.End()) {
		return "", nil, types.NewEngineError(types.Unsupported, "variable %q is reassigned and cannot be inlined", name)
	}

	replacement := nodeText(sf, value)
	if needsParens(value) {
		replacement = "(" + replacement + ")"
	}

	defLine := lineOf(sf, def.End())
	var edits []edit
	uses := 0
	var unsupported error
	astutil.Apply(fn.Body, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if !ok || id.Name != name || id.Pos() <= def.End() {
			return true
		}
		if c.Name() == "Sel" {
			return true
		}
		if u, ok := c.Parent().(*ast.UnaryExpr); ok && u.Op == token.AND {
			unsupported = types.NewEngineError(types.Unsupported, "variable %q has its address taken", name)
			return false
		}
		if lineOf(sf, id.Pos()) == defLine {
			unsupported = types.NewEngineError(types.Unsupported, "variable %q is used on its declaration line", name)
			return false
		}
		edits = append(edits, edit{start: offsetOf(sf, id.Pos()), end: offsetOf(sf, id.End()), text: replacement})
		uses++
		return true
	}, nil)
	if unsupported != nil {
		return "", nil, unsupported
	}
	if uses == 0 {
		return "", nil, types.NewEngineError(types.Unsupported, "variable %q has no uses after its declaration", name)
	}

	edits = append(edits, edit{
		start: lineStartOffset(sf, lineOf(sf, def.Pos())),
		end:   lineEndOffset(sf, lineOf(sf, def.End())),
	})

	out, err := gofmt(applyEdits(sf.Content, edits))
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("inlined %q into %d use(s)", name, uses), out, nil
}

// findVariableDefinition locates the function and statement defining name
// with a single initializer. Returns a nil value expr when the declaration
// form is not inlinable.
func findVariableDefinition(file *ast.File, name string) (*ast.FuncDecl, ast.Stmt, ast.Expr) {
	for _, d := range file.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		var defStmt ast.Stmt
		var value ast.Expr
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			if defStmt != nil {
				return false
			}
			switch s := n.(type) {
			case *ast.AssignStmt:
				if s.Tok == token.DEFINE && len(s.Lhs) == 1 {
					if id, ok := s.Lhs[0].(*ast.Ident); ok && id.Name == name {
						defStmt = s
						if len(s.Rhs) == 1 {
							value = s.Rhs[0]
						}
						return false
					}
				}
			case *ast.DeclStmt:
				gd, ok := s.Decl.(*ast.GenDecl)
				if !ok || gd.Tok != token.VAR {
					return true
				}
				for _, spec := range gd.Specs {
					vs := spec.(*ast.ValueSpec)
					if len(vs.Names) == 1 && vs.Names[0].Name == name {
						defStmt = s
						if len(vs.Values) == 1 {
							value = vs.Values[0]
						}
						return false
					}
				}
			}
			return true
		})
		if defStmt != nil {
			return fn, defStmt, value
		}
	}
	return nil, nil, nil
}

// reassigned reports whether name appears as an assignment target or is
// incremented/decremented after pos.
func reassigned(body *ast.BlockStmt, name string, pos token.Pos) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.AssignStmt:
			if s.Pos() <= pos {
				return true
			}
			for _, lhs := range s.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && id.Name == name {
					found = true
				}
			}
		case *ast.IncDecStmt:
			if s.Pos() <= pos {
				return true
			}
			if id, ok := s.X.(*ast.Ident); ok && id.Name == name {
				found = true
			}
		}
		return !found
	})
	return found
}

// needsParens reports whether expr must be parenthesized when substituted
// into an arbitrary expression context.
func needsParens(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.BinaryExpr, *ast.FuncLit:
		return true
	}
	return false
}
