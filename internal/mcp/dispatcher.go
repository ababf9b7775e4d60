package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/casttools/cast/pkg/refactor"
	"github.com/casttools/cast/pkg/types"
)

// Dispatcher is the single choke point between the protocol surface and the
// engine. It validates the target file, binds the common arguments, and
// converts every engine failure, including a panic, into an error result.
// It never lets anything propagate past its boundary.
type Dispatcher struct {
	engine refactor.Engine
	logger *slog.Logger
}

func NewDispatcher(engine refactor.Engine, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{engine: engine, logger: logger.With("component", "dispatcher")}
}

// Invoke runs operation id against the argument bag. The returned text is
// either the success summary or the failure message; isError distinguishes
// them. Invoke never panics.
func (d *Dispatcher) Invoke(ctx context.Context, id string, args map[string]any) (text string, isError bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("operation panicked", "operation", id, "panic", r)
			text = fmt.Sprintf("internal error in operation %s", id)
			isError = true
		}
	}()

	filePath := strings.TrimSpace(types.StringArg(args, "file_path", ""))
	if filePath == "" {
		return "file_path is required", true
	}
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		return fmt.Sprintf("file not found: %s", filePath), true
	}

	req := &types.Request{
		FilePath:   filePath,
		Line:       types.IntArg(args, "line_number", 1),
		Column:     types.IntArg(args, "column_number", 0),
		OutputPath: types.StringArg(args, "output_path", ""),
		DryRun:     types.BoolArg(args, "dry_run", false),
		Args:       args,
	}

	res, err := d.engine.Invoke(ctx, id, req)
	if err != nil {
		d.logger.Error("operation failed", "operation", id, "file", filePath, "err", err)
		return err.Error(), true
	}

	parts := []string{res.Message}
	if res.Report != "" {
		parts = append(parts, res.Report)
	}
	if res.OutputPath != "" {
		parts = append(parts, "wrote "+res.OutputPath)
	}
	return strings.Join(parts, "\n\n"), false
}
