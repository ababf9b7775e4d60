// Package refactor implements the catalog of single-file refactoring
// operations behind the MCP tool surface. Every operation parses the target
// file, produces a complete replacement for its content, and hands the
// result to shared plumbing that honors dry-run and output-path semantics.
package refactor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// Operation identifiers. The trailing Command suffix is stripped when the
// catalog derives public tool names.
const (
	OpRename              = "RenameCommand"
	OpExtractMethod       = "ExtractMethodCommand"
	OpExtractVariable     = "ExtractVariableCommand"
	OpExtractConstant     = "ExtractConstantCommand"
	OpExtractInterface    = "ExtractInterfaceCommand"
	OpInlineVariable      = "InlineVariableCommand"
	OpAddImport           = "AddImportCommand"
	OpRemoveImport        = "RemoveImportCommand"
	OpOrganizeImports     = "OrganizeImportsCommand"
	OpAddContextParameter = "AddContextParameterCommand"
	OpChangeSignature     = "ChangeSignatureCommand"
	OpSafeDelete          = "SafeDeleteCommand"
)

// OperationDefinition identifies one invocable operation.
type OperationDefinition struct {
	ID string
}

// Engine is the interface the dispatch layer invokes operations through.
type Engine interface {
	Operations() []OperationDefinition
	Invoke(ctx context.Context, id string, req *types.Request) (*types.Result, error)
}

// applyFunc performs one operation against a parsed file. It returns a
// one-line summary and the complete new file content. Returning the original
// content unchanged signals a no-op.
type applyFunc func(e *DefaultEngine, sf *analysis.SourceFile, req *types.Request) (string, []byte, error)

var operations = map[string]applyFunc{
	OpRename:              opRename,
	OpExtractMethod:       opExtractMethod,
	OpExtractVariable:     opExtractVariable,
	OpExtractConstant:     opExtractConstant,
	OpExtractInterface:    opExtractInterface,
	OpInlineVariable:      opInlineVariable,
	OpAddImport:           opAddImport,
	OpRemoveImport:        opRemoveImport,
	OpOrganizeImports:     opOrganizeImports,
	OpAddContextParameter: opAddContextParameter,
	OpChangeSignature:     opChangeSignature,
	OpSafeDelete:          opSafeDelete,
}

// operationOrder fixes the enumeration order of Operations.
var operationOrder = []string{
	OpRename,
	OpExtractMethod,
	OpExtractVariable,
	OpExtractConstant,
	OpExtractInterface,
	OpInlineVariable,
	OpAddImport,
	OpRemoveImport,
	OpOrganizeImports,
	OpAddContextParameter,
	OpChangeSignature,
	OpSafeDelete,
}

// DefaultEngine implements Engine over the operation table above.
type DefaultEngine struct {
	parser *analysis.Parser
	logger *slog.Logger
	track  func(path string)
}

// NewEngine creates an engine using the given parser and logger.
func NewEngine(parser *analysis.Parser, logger *slog.Logger) *DefaultEngine {
	return &DefaultEngine{parser: parser, logger: logger}
}

// SetTracker installs a hook called with every parsed file path, used to
// register files with the cache-invalidation watcher.
func (e *DefaultEngine) SetTracker(track func(path string)) {
	e.track = track
}

// Operations enumerates the full operation catalog in a fixed order.
func (e *DefaultEngine) Operations() []OperationDefinition {
	defs := make([]OperationDefinition, 0, len(operationOrder))
	for _, id := range operationOrder {
		defs = append(defs, OperationDefinition{ID: id})
	}
	return defs
}

// Invoke runs one operation against req.FilePath. Expected failures come
// back as *types.EngineError; ctx cancellation aborts before any write.
func (e *DefaultEngine) Invoke(ctx context.Context, id string, req *types.Request) (*types.Result, error) {
	apply, ok := operations[id]
	if !ok {
		return nil, types.NewEngineError(types.InvalidOperation, "unknown operation %q", id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sf, err := e.parser.ParseFile(req.FilePath)
	if err != nil {
		return nil, err
	}
	if e.track != nil {
		e.track(req.FilePath)
	}

	summary, modified, err := apply(e, sf, req)
	if err != nil {
		return nil, err
	}
	return e.finish(ctx, req, sf, summary, modified)
}

// finish applies the dry-run and output-path contracts: a dry run reports
// the would-be change and writes nothing; otherwise the new content is
// written to the target with the source file's permissions.
func (e *DefaultEngine) finish(ctx context.Context, req *types.Request, sf *analysis.SourceFile, summary string, modified []byte) (*types.Result, error) {
	if bytes.Equal(modified, sf.Content) {
		return &types.Result{Message: summary + ": no changes needed"}, nil
	}

	if req.DryRun {
		return &types.Result{
			Message: "dry run: " + summary,
			Report:  changeReport(req.Target(), sf.Content, modified),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := req.Target()
	if err := os.WriteFile(target, modified, sf.Mode); err != nil {
		return nil, &types.EngineError{Kind: types.FileSystemError, Message: fmt.Sprintf("write %s", target), Cause: err}
	}
	if target == req.FilePath {
		e.parser.Cache().Invalidate(target)
	}
	e.logger.Info("operation applied", "file", req.FilePath, "target", target, "summary", summary)

	return &types.Result{Message: summary, OutputPath: target, Changed: true}, nil
}
