package analysis

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"

	"github.com/casttools/cast/pkg/types"
)

// SourceFile is one parsed Go file plus everything needed to rewrite it.
type SourceFile struct {
	Path    string
	Content []byte
	Fset    *token.FileSet
	File    *ast.File
	Mode    fs.FileMode
}

// TokenFile returns the token.File backing this source, for line/column
// position arithmetic.
func (s *SourceFile) TokenFile() *token.File {
	return s.Fset.File(s.File.Pos())
}

// Parser reads and parses single Go files, caching raw content keyed by
// modification time and size. ASTs are parsed fresh on every call because
// operations rewrite them in place; only the disk read is amortized.
type Parser struct {
	cache *Cache
}

// NewParser creates a Parser with an empty cache.
func NewParser() *Parser {
	return &Parser{cache: NewCache()}
}

// Cache exposes the parser's content cache, for wiring invalidation.
func (p *Parser) Cache() *Cache {
	return p.cache
}

// ParseFile loads path and parses it with comments. The returned AST is
// owned by the caller and safe to mutate.
func (p *Parser) ParseFile(path string) (*SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &types.EngineError{Kind: types.FileSystemError, Message: "stat " + path, Cause: err}
	}
	if info.IsDir() {
		return nil, types.NewEngineError(types.FileSystemError, "%s is a directory", path)
	}

	content, ok := p.cache.Get(path, info)
	if !ok {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, &types.EngineError{Kind: types.FileSystemError, Message: "read " + path, Cause: err}
		}
		p.cache.Put(path, info, content)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return nil, &types.EngineError{Kind: types.ParseError, Message: "parse " + path, Cause: err}
	}

	return &SourceFile{
		Path:    path,
		Content: content,
		Fset:    fset,
		File:    file,
		Mode:    info.Mode().Perm(),
	}, nil
}
