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

// opChangeSignature reorders the parameters of function_name according to
// parameter_order (comma-separated names) and reorders arguments at every
// call site in the file.
func opChangeSignature(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	fnName := types.StringArg(req.Args, "function_name", "")
	orderArg := types.StringArg(req.Args, "parameter_order", "")
	if fnName == "" || orderArg == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "function_name and parameter_order are required")
	}
	var order []string
	for _, p := range strings.Split(orderArg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			order = append(order, p)
		}
	}

	fn := findFunction(sf.File, fnName)
	if fn == nil {
		return "", nil, types.NewEngineError(types.SymbolNotFound, "function %q not found in %s", fnName, sf.Path)
	}

	names, typesByName, err := flattenParams(fn)
	if err != nil {
		return "", nil, err
	}
	perm, err := permutationOf(names, order)
	if err != nil {
		return "", nil, err
	}

	newFields := make([]*ast.Field, 0, len(order))
	for _, name := range order {
		newFields = append(newFields, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(name)},
			Type:  typesByName[name],
		})
	}
	fn.Type.Params.List = newFields

	updated := reorderCallSites(sf.File, fn, fnName, perm)

	out, err := renderFile(sf)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("reordered parameters of %q (%d call sites updated)", fnName, updated), out, nil
}

// opAddContextParameter prepends a ctx context.Context parameter to
// function_name, adds the context import, and prepends ctx at call sites
// within the file.
func opAddContextParameter(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	fnName := types.StringArg(req.Args, "function_name", "")
	if fnName == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "function_name is required")
	}

	fn := findFunction(sf.File, fnName)
	if fn == nil {
		return "", nil, types.NewEngineError(types.SymbolNotFound, "function %q not found in %s", fnName, sf.Path)
	}
	if params := fn.Type.Params.List; len(params) > 0 && nodeText(sf, params[0].Type) == "context.Context" {
		return fmt.Sprintf("%q already takes a context.Context", fnName), sf.Content, nil
	}

	ctxField := &ast.Field{
		Names: []*ast.Ident{ast.NewIdent("ctx")},
		Type:  &ast.SelectorExpr{X: ast.NewIdent("context"), Sel: ast.NewIdent("Context")},
	}
	fn.Type.Params.List = append([]*ast.Field{ctxField}, fn.Type.Params.List...)
	astutil.AddImport(sf.Fset, sf.File, "context")

	updated := 0
	ast.Inspect(sf.File, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !callTargets(call, fn, fnName) {
			return true
		}
		call.Args = append([]ast.Expr{ast.NewIdent("ctx")}, call.Args...)
		updated++
		return true
	})

	out, err := renderFile(sf)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("added context parameter to %q (%d call sites updated)", fnName, updated), out, nil
}

// findFunction returns the first function or method declaration named name.
func findFunction(file *ast.File, name string) *ast.FuncDecl {
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name.Name == name {
			return fn
		}
	}
	return nil
}

// flattenParams expands grouped parameters into one (name, type) pair each.
func flattenParams(fn *ast.FuncDecl) ([]string, map[string]ast.Expr, error) {
	var names []string
	typesByName := make(map[string]ast.Expr)
	for _, field := range fn.Type.Params.List {
		if len(field.Names) == 0 {
			return nil, nil, types.NewEngineError(types.Unsupported, "function %q has unnamed parameters", fn.Name.Name)
		}
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			return nil, nil, types.NewEngineError(types.Unsupported, "function %q is variadic", fn.Name.Name)
		}
		for _, id := range field.Names {
			names = append(names, id.Name)
			typesByName[id.Name] = field.Type
		}
	}
	return names, typesByName, nil
}

// permutationOf maps each new position to the old index of that parameter.
func permutationOf(old, order []string) ([]int, error) {
	if len(order) != len(old) {
		return nil, types.NewEngineError(types.InvalidOperation,
			"parameter_order names %d parameters, function has %d", len(order), len(old))
	}
	oldIndex := make(map[string]int, len(old))
	for i, n := range old {
		oldIndex[n] = i
	}
	perm := make([]int, len(order))
	seen := make(map[string]bool, len(order))
	for i, n := range order {
		idx, ok := oldIndex[n]
		if !ok {
			return nil, types.NewEngineError(types.InvalidOperation, "unknown parameter %q in parameter_order", n)
		}
		if seen[n] {
			return nil, types.NewEngineError(types.InvalidOperation, "parameter %q listed twice in parameter_order", n)
		}
		seen[n] = true
		perm[i] = idx
	}
	return perm, nil
}

// reorderCallSites permutes arguments of in-file calls to fn. Calls with a
// different arity (or trailing ellipsis) are left alone.
func reorderCallSites(file *ast.File, fn *ast.FuncDecl, fnName string, perm []int) int {
	updated := 0
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !callTargets(call, fn, fnName) {
			return true
		}
		if len(call.Args) != len(perm) || call.Ellipsis != token.NoPos {
			return true
		}
		oldArgs := append([]ast.Expr(nil), call.Args...)
		for i, oldIdx := range perm {
			call.Args[i] = oldArgs[oldIdx]
		}
		updated++
		return true
	})
	return updated
}

// callTargets reports whether call plausibly invokes the declaration:
// a bare identifier for functions, a selector for methods.
func callTargets(call *ast.CallExpr, fn *ast.FuncDecl, fnName string) bool {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fn.Recv == nil && fun.Name == fnName
	case *ast.SelectorExpr:
		return fn.Recv != nil && fun.Sel.Name == fnName
	}
	return false
}
