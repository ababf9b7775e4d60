package refactor

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opExtractVariable introduces variable_name for the expression at
// line_number/column_number and replaces that occurrence with it.
func opExtractVariable(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	name, err := requiredIdentifier(req.Args, "variable_name")
	if err != nil {
		return "", nil, err
	}

	pos, err := posAt(sf, req.Line, req.Column)
	if err != nil {
		return "", nil, err
	}
	path, _ := astutil.PathEnclosingInterval(sf.File, pos, pos)

	expr := innermostExpr(path)
	if expr == nil {
		return "", nil, types.NewEngineError(types.SymbolNotFound,
			"no expression found at %d:%d", req.Line, req.Column)
	}
	stmt := insertionStmt(path)
	if stmt == nil || expr.Pos() < stmt.Pos() {
		return "", nil, types.NewEngineError(types.Unsupported,
			"expression at %d:%d has no enclosing statement", req.Line, req.Column)
	}

	stmtLineStart := lineStartOffset(sf, lineOf(sf, stmt.Pos()))
	indent := indentOf(sf.Content, stmtLineStart)
	decl := fmt.Sprintf("%s%s := %s\n", indent, name, nodeText(sf, expr))

	out, err := gofmt(applyEdits(sf.Content, []edit{
		{start: offsetOf(sf, expr.Pos()), end: offsetOf(sf, expr.End()), text: name},
		{start: stmtLineStart, end: stmtLineStart, text: decl},
	}))
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("extracted expression into variable %q", name), out, nil
}

// opExtractConstant introduces a file-level constant_name for the literal at
// line_number/column_number.
func opExtractConstant(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	name, err := requiredIdentifier(req.Args, "constant_name")
	if err != nil {
		return "", nil, err
	}

	pos, err := posAt(sf, req.Line, req.Column)
	if err != nil {
		return "", nil, err
	}
	path, _ := astutil.PathEnclosingInterval(sf.File, pos, pos)

	var lit *ast.BasicLit
	for _, n := range path {
		if bl, ok := n.(*ast.BasicLit); ok {
			lit = bl
			break
		}
	}
	if lit == nil {
		return "", nil, types.NewEngineError(types.SymbolNotFound,
			"no literal found at %d:%d", req.Line, req.Column)
	}

	topDecl := enclosingTopLevelDecl(path)
	if topDecl == nil {
		return "", nil, types.NewEngineError(types.Unsupported,
			"literal at %d:%d is not inside a top-level declaration", req.Line, req.Column)
	}

	declStart := lineStartOffset(sf, lineOf(sf, topDecl.Pos()))
	constDecl := fmt.Sprintf("const %s = %s\n\n", name, lit.Value)

	out, err := gofmt(applyEdits(sf.Content, []edit{
		{start: offsetOf(sf, lit.Pos()), end: offsetOf(sf, lit.End()), text: name},
		{start: declStart, end: declStart, text: constDecl},
	}))
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("extracted %s into constant %q", lit.Value, name), out, nil
}

// opExtractInterface declares interface_name containing the signatures of
// every method of type_name found in the file.
func opExtractInterface(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	ifaceName, err := requiredIdentifier(req.Args, "interface_name")
	if err != nil {
		return "", nil, err
	}
	typeName := types.StringArg(req.Args, "type_name", "")
	if typeName == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "type_name is required")
	}

	var lines []string
	for _, d := range sf.File.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
			continue
		}
		if receiverTypeName(fn.Recv.List[0].Type) != typeName {
			continue
		}
		sig := string(sf.Content[offsetOf(sf, fn.Type.Params.Pos()):offsetOf(sf, fn.Type.End())])
		lines = append(lines, "\t"+fn.Name.Name+sig)
	}
	if len(lines) == 0 {
		return "", nil, types.NewEngineError(types.SymbolNotFound,
			"type %q has no methods in %s", typeName, sf.Path)
	}

	iface := fmt.Sprintf("\ntype %s interface {\n%s\n}\n", ifaceName, strings.Join(lines, "\n"))
	out, err := gofmt(append(append([]byte(nil), sf.Content...), iface...))
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("extracted interface %q with %d method(s) from %q", ifaceName, len(lines), typeName), out, nil
}

// requiredIdentifier fetches a mandatory identifier-valued argument.
func requiredIdentifier(args map[string]any, key string) (string, error) {
	v := types.StringArg(args, key, "")
	if v == "" {
		return "", types.NewEngineError(types.InvalidOperation, "%s is required", key)
	}
	if !token.IsIdentifier(v) {
		return "", types.NewEngineError(types.InvalidOperation, "%q is not a valid identifier", v)
	}
	return v, nil
}

// innermostExpr returns the first expression on the enclosing path,
// preferring a non-identifier so that pointing at a name inside a larger
// expression extracts the expression, not the name.
func innermostExpr(path []ast.Node) ast.Expr {
	var ident ast.Expr
	for _, n := range path {
		expr, ok := n.(ast.Expr)
		if !ok {
			continue
		}
		if _, isIdent := expr.(*ast.Ident); isIdent {
			if ident == nil {
				ident = expr
			}
			continue
		}
		return expr
	}
	return ident
}

// insertionStmt returns the innermost statement that is a direct child of a
// block, i.e. a point where a new line can be inserted before.
func insertionStmt(path []ast.Node) ast.Stmt {
	for i := 0; i+1 < len(path); i++ {
		stmt, ok := path[i].(ast.Stmt)
		if !ok {
			continue
		}
		switch path[i+1].(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause:
			return stmt
		}
	}
	return nil
}

// enclosingTopLevelDecl returns the path element directly below the file.
func enclosingTopLevelDecl(path []ast.Node) ast.Decl {
	for i := 0; i+1 < len(path); i++ {
		if _, ok := path[i+1].(*ast.File); ok {
			if decl, ok := path[i].(ast.Decl); ok {
				return decl
			}
		}
	}
	return nil
}

// receiverTypeName unwraps a receiver type expression to its base name.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}
