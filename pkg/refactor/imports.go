package refactor

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// opAddImport adds import_path (optionally aliased) to the file.
func opAddImport(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	path := types.StringArg(req.Args, "import_path", "")
	if path == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "import_path is required")
	}
	alias := types.StringArg(req.Args, "alias", "")

	if !astutil.AddNamedImport(sf.Fset, sf.File, alias, path) {
		return fmt.Sprintf("import %q already present", path), sf.Content, nil
	}
	out, err := renderFile(sf)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("added import %q", path), out, nil
}

// opRemoveImport removes import_path from the file.
func opRemoveImport(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	path := types.StringArg(req.Args, "import_path", "")
	if path == "" {
		return "", nil, types.NewEngineError(types.InvalidOperation, "import_path is required")
	}

	if !astutil.DeleteImport(sf.Fset, sf.File, path) {
		return "", nil, types.NewEngineError(types.SymbolNotFound, "import %q not found in %s", path, sf.Path)
	}
	out, err := renderFile(sf)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("removed import %q", path), out, nil
}

// opOrganizeImports merges all import declarations into one block with
// standard-library imports grouped before everything else, deduplicated and
// sorted within each group.
func opOrganizeImports(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error) {
	var decls []*ast.GenDecl
	for _, d := range sf.File.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			decls = append(decls, gd)
		}
	}
	if len(decls) == 0 {
		return "no imports to organize", sf.Content, nil
	}

	type imp struct {
		alias, path string
	}
	seen := make(map[imp]bool)
	var stdlib, external []imp
	for _, gd := range decls {
		for _, spec := range gd.Specs {
			is := spec.(*ast.ImportSpec)
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				continue
			}
			entry := imp{path: path}
			if is.Name != nil {
				entry.alias = is.Name.Name
			}
			if seen[entry] {
				continue
			}
			seen[entry] = true
			if isStdlibImport(path) {
				stdlib = append(stdlib, entry)
			} else {
				external = append(external, entry)
			}
		}
	}
	byPath := func(imps []imp) func(i, j int) bool {
		return func(i, j int) bool { return imps[i].path < imps[j].path }
	}
	sort.Slice(stdlib, byPath(stdlib))
	sort.Slice(external, byPath(external))

	var b strings.Builder
	b.WriteString("import (\n")
	writeGroup := func(imps []imp) {
		for _, im := range imps {
			if im.alias != "" {
				fmt.Fprintf(&b, "\t%s %q\n", im.alias, im.path)
			} else {
				fmt.Fprintf(&b, "\t%q\n", im.path)
			}
		}
	}
	writeGroup(stdlib)
	if len(stdlib) > 0 && len(external) > 0 {
		b.WriteString("\n")
	}
	writeGroup(external)
	b.WriteString(")\n")

	// Splice the new block over the region spanned by the existing import
	// declarations. Imports always precede other declarations, so the
	// region is contiguous.
	first, last := decls[0], decls[len(decls)-1]
	start := lineStartOffset(sf, lineOf(sf, first.Pos()))
	end := lineEndOffset(sf, lineOf(sf, last.End()))

	out := applyEdits(sf.Content, []edit{{start: start, end: end, text: b.String()}})
	formatted, err := gofmt(out)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("organized %d imports", len(seen)), formatted, nil
}

// isStdlibImport reports whether path names a standard-library package:
// no dot in the first path segment.
func isStdlibImport(path string) bool {
	first := path
	if i := strings.Index(path, "/"); i >= 0 {
		first = path[:i]
	}
	return !strings.Contains(first, ".")
}
