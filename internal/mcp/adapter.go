// Package mcp adapts the capability registry and dispatcher to the MCP tool
// surface: one registered tool per capability for the list verb, and a
// single call path that resolves wire names back through the registry.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/casttools/cast/internal/catalog"
)

// Adapter owns the two protocol operations. It holds no mutable state:
// the registry is immutable and the dispatcher is stateless per request,
// so concurrent calls need no coordination here.
type Adapter struct {
	registry   *catalog.Registry
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewAdapter(registry *catalog.Registry, dispatcher *Dispatcher, logger *slog.Logger) *Adapter {
	return &Adapter{registry: registry, dispatcher: dispatcher, logger: logger.With("component", "adapter")}
}

// Tools renders one mcp.Tool per registered capability, in registry order.
func (a *Adapter) Tools() []mcp.Tool {
	descriptors := a.registry.All()
	tools := make([]mcp.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, mcp.Tool{
			Name:        catalog.WireName(d.ToolName),
			Description: d.Description,
			InputSchema: d.Schema,
		})
	}
	return tools
}

// Register adds every capability to the server. All handlers funnel into
// HandleCall.
func (a *Adapter) Register(s *server.MCPServer) {
	for _, tool := range a.Tools() {
		wireName := tool.Name
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return a.HandleCall(ctx, wireName, request.GetArguments()), nil
		})
	}
	a.logger.Info("capabilities registered", "count", a.registry.Len())
}

// HandleCall implements the call verb. It always returns a result: an
// unknown name, a failed invocation, or even a panic below this boundary
// becomes an IsError result, never an error or a crash.
func (a *Adapter) HandleCall(ctx context.Context, wireName string, args map[string]any) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("call handler panicked", "tool", wireName, "panic", r)
			result = mcp.NewToolResultError(fmt.Sprintf("internal error handling %s", wireName))
		}
	}()

	toolName, ok := catalog.ParseWireName(wireName)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool %q: name lacks the %q prefix", wireName, catalog.WirePrefix))
	}
	descriptor, ok := a.registry.Resolve(toolName)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool %q", wireName))
	}

	text, isError := a.dispatcher.Invoke(ctx, descriptor.OperationID, args)
	if isError {
		return mcp.NewToolResultError(text)
	}
	return mcp.NewToolResultText(text)
}
