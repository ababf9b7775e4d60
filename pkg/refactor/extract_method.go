package refactor

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/token"
	gotypes "go/types"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opExtractMethod moves the statements spanning line_number through end_line
// into a new function (or method, when the enclosing function has a
// receiver) named method_name, replacing them with a call. Parameters are
// the local variables the selection reads but does not declare.
func opExtractMethod(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	name, err := requiredIdentifier(req.Args, "method_name")
	if err != nil {
		return "", nil, err
	}
	startLine := req.Line
	endLine := types.IntArg(req.Args, "end_line", 0)
	if endLine < startLine {
		return "", nil, types.NewEngineError(types.InvalidOperation,
			"end_line (%d) must be at or after line_number (%d)", endLine, startLine)
	}
	tf := sf.TokenFile()
	if startLine < 1 || endLine > tf.LineCount() {
		return "", nil, types.NewEngineError(types.InvalidOperation,
			"selection %d-%d is out of range (file has %d lines)", startLine, endLine, tf.LineCount())
	}

	startOff := lineStartOffset(sf, startLine)
	endOff := lineEndOffset(sf, endLine)
	path, _ := astutil.PathEnclosingInterval(sf.File, tf.Pos(startOff), tf.Pos(endOff))

	var fn *ast.FuncDecl
	var block *ast.BlockStmt
	for _, n := range path {
		switch v := n.(type) {
		case *ast.BlockStmt:
			if block == nil {
				block = v
			}
		case *ast.FuncDecl:
			fn = v
		}
	}
	if fn == nil || block == nil {
		return "", nil, types.NewEngineError(types.Unsupported,
			"lines %d-%d are not inside a function body", startLine, endLine)
	}

	selected, after := selectStatements(sf, block, startLine, endLine)
	if len(selected) == 0 {
		return "", nil, types.NewEngineError(types.SymbolNotFound,
			"no whole statements on lines %d-%d", startLine, endLine)
	}
	if err := checkExtractable(selected); err != nil {
		return "", nil, err
	}

	declared := declaredNames(selected)
	if leak := usedIn(after, declared); leak != "" {
		return "", nil, types.NewEngineError(types.Unsupported,
			"selection declares %q which is used after it", leak)
	}
	// A free variable assigned inside the selection would be passed by
	// value, silently dropping the write.
	modified := assignedNames(selected, declared)
	if leak := usedIn(after, modified); leak != "" {
		return "", nil, types.NewEngineError(types.Unsupported,
			"selection modifies %q which is used after it", leak)
	}

	recvName, recvText, err := receiverInfo(sf, fn)
	if err != nil {
		return "", nil, err
	}

	params := freeVariables(sf, fn, selected, declared, recvName)

	var paramDecls, args []string
	for _, p := range params {
		paramDecls = append(paramDecls, p.name+" "+p.typ)
		args = append(args, p.name)
	}

	callee := name
	if recvName != "" {
		callee = recvName + "." + name
	}
	indent := indentOf(sf.Content, lineStartOffset(sf, lineOf(sf, selected[0].Pos())))
	call := fmt.Sprintf("%s%s(%s)\n", indent, callee, strings.Join(args, ", "))

	regionStart := lineStartOffset(sf, lineOf(sf, selected[0].Pos()))
	regionEnd := lineEndOffset(sf, lineOf(sf, selected[len(selected)-1].End()))
	region := string(sf.Content[regionStart:regionEnd])

	newFunc := fmt.Sprintf("\nfunc %s%s(%s) {\n%s}\n", recvText, name, strings.Join(paramDecls, ", "), region)

	out, err := gofmt(applyEdits(sf.Content, []edit{
		{start: regionStart, end: regionEnd, text: call},
		{start: len(sf.Content), end: len(sf.Content), text: newFunc},
	}))
	if err != nil {
		return "", nil, err
	}

	kind := "function"
	if recvName != "" {
		kind = "method"
	}
	return fmt.Sprintf("extracted lines %d-%d into %s %q (%d parameters)",
		startLine, endLine, kind, name, len(params)), out, nil
}

// selectStatements partitions block.List into the statements wholly inside
// the line range and the statements after it.
func selectStatements(sf *analysis.SourceFile, block *ast.BlockStmt, startLine, endLine int) (selected, after []ast.Stmt) {
	for _, stmt := range block.List {
		first := lineOf(sf, stmt.Pos())
		last := lineOf(sf, stmt.End())
		switch {
		case first >= startLine && last <= endLine:
			selected = append(selected, stmt)
		case first > endLine:
			after = append(after, stmt)
		}
	}
	return selected, after
}

// checkExtractable rejects selections whose control flow cannot move into
// another function unchanged.
func checkExtractable(stmts []ast.Stmt) error {
	var bad string
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.ReturnStmt:
				bad = "a return statement"
			case *ast.BranchStmt:
				bad = "a break, continue, or goto"
			case *ast.DeferStmt:
				bad = "a defer statement"
			case *ast.FuncLit:
				return false // control flow inside a literal stays local
			}
			return bad == ""
		})
		if bad != "" {
			return types.NewEngineError(types.Unsupported, "selection contains %s", bad)
		}
	}
	return nil
}

// declaredNames collects names the selection introduces at its own level.
func declaredNames(stmts []ast.Stmt) map[string]bool {
	declared := make(map[string]bool)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			if s.Tok == token.DEFINE {
				for _, lhs := range s.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						declared[id.Name] = true
					}
				}
			}
		case *ast.DeclStmt:
			if gd, ok := s.Decl.(*ast.GenDecl); ok {
				for _, spec := range gd.Specs {
					if vs, ok := spec.(*ast.ValueSpec); ok {
						for _, id := range vs.Names {
							declared[id.Name] = true
						}
					}
				}
			}
		}
	}
	return declared
}

// assignedNames collects variables the selection assigns to (anywhere, at
// any depth) without having declared them itself.
func assignedNames(stmts []ast.Stmt, declared map[string]bool) map[string]bool {
	assigned := make(map[string]bool)
	record := func(expr ast.Expr) {
		if id, ok := expr.(*ast.Ident); ok && !declared[id.Name] && id.Name != "_" {
			assigned[id.Name] = true
		}
	}
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch s := n.(type) {
			case *ast.AssignStmt:
				if s.Tok != token.DEFINE {
					for _, lhs := range s.Lhs {
						record(lhs)
					}
				}
			case *ast.IncDecStmt:
				record(s.X)
			}
			return true
		})
	}
	return assigned
}

// usedIn returns the first of names referenced in stmts, or "".
func usedIn(stmts []ast.Stmt, names map[string]bool) string {
	found := ""
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok && names[id.Name] {
				found = id.Name
			}
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// receiverInfo extracts the receiver name and source text of fn's receiver,
// if any. The extracted method reuses both verbatim.
func receiverInfo(sf *analysis.SourceFile, fn *ast.FuncDecl) (name, text string, err error) {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return "", "", nil
	}
	field := fn.Recv.List[0]
	if len(field.Names) == 0 || field.Names[0].Name == "_" {
		return "", "", types.NewEngineError(types.Unsupported,
			"enclosing method has an unnamed receiver")
	}
	return field.Names[0].Name, nodeText(sf, fn.Recv) + " ", nil
}

type parameter struct {
	name, typ string
}

// freeVariables determines, in first-use order, the local variables the
// selection reads without declaring. Types come from a best-effort
// single-file type check; anything unresolvable (package names, top-level
// declarations, builtins) is simply not a parameter, and a resolvable local
// whose type cannot be printed degrades to any.
func freeVariables(sf *analysis.SourceFile, fn *ast.FuncDecl, stmts []ast.Stmt, declared map[string]bool, recvName string) []parameter {
	info := &gotypes.Info{
		Defs: make(map[*ast.Ident]gotypes.Object),
		Uses: make(map[*ast.Ident]gotypes.Object),
	}
	conf := gotypes.Config{
		Error:    func(error) {}, // best effort; imports may be unresolvable
		Importer: importer.Default(),
	}
	pkg, _ := conf.Check(sf.File.Name.Name, sf.Fset, []*ast.File{sf.File}, info)

	qualifier := func(p *gotypes.Package) string { return p.Name() }
	if pkg != nil {
		qualifier = gotypes.RelativeTo(pkg)
	}

	var params []parameter
	seen := make(map[string]bool)
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			id, ok := n.(*ast.Ident)
			if !ok || seen[id.Name] || declared[id.Name] || id.Name == recvName || id.Name == "_" {
				return true
			}
			obj := info.Uses[id]
			v, ok := obj.(*gotypes.Var)
			if !ok || v.IsField() {
				return true
			}
			// Only variables declared inside the enclosing function but
			// before the selection need to be passed in.
			if v.Pos() < fn.Pos() || v.Pos() >= stmts[0].Pos() {
				return true
			}
			typ := "any"
			if t := v.Type(); t != nil && !strings.Contains(t.String(), "invalid type") {
				typ = gotypes.TypeString(t, qualifier)
			}
			seen[id.Name] = true
			params = append(params, parameter{name: id.Name, typ: typ})
			return true
		})
	}
	return params
}
