package catalog

import (
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/casttools/cast/pkg/refactor"
)

// Descriptor is one registered capability: the public tool name, the engine
// operation it maps to, and the wire-facing metadata.
type Descriptor struct {
	ToolName    string
	OperationID string
	Description string
	Schema      mcp.ToolInputSchema
}

// Enumerator yields the operation catalog; satisfied by refactor.Engine.
type Enumerator interface {
	Operations() []refactor.OperationDefinition
}

// Registry is the immutable capability catalog, built once at startup.
// Reads are safe from any goroutine.
type Registry struct {
	byName  map[string]Descriptor
	ordered []Descriptor
}

// Build enumerates the engine's operations and derives one descriptor per
// operation. It fails, and the caller must treat that as fatal, when the
// engine cannot be enumerated or the derived tool names collide.
func Build(engine Enumerator) (*Registry, error) {
	if engine == nil {
		return nil, fmt.Errorf("catalog: nil engine")
	}
	defs := engine.Operations()
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog: engine reports no operations")
	}

	r := &Registry{byName: make(map[string]Descriptor, len(defs))}
	for _, def := range defs {
		toolName := ToolNameForID(def.ID)
		if toolName == "" {
			return nil, fmt.Errorf("catalog: operation %q yields an empty tool name", def.ID)
		}
		if prev, ok := r.byName[toolName]; ok {
			return nil, fmt.Errorf("catalog: operations %q and %q both map to tool %q", prev.OperationID, def.ID, toolName)
		}
		r.byName[toolName] = Descriptor{
			ToolName:    toolName,
			OperationID: def.ID,
			Description: Description(toolName),
			Schema:      GenerateSchema(toolName),
		}
	}

	r.ordered = make([]Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		r.ordered = append(r.ordered, d)
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].ToolName < r.ordered[j].ToolName })
	return r, nil
}

// All returns every descriptor in tool-name order. The order is identical
// across calls for the life of the registry.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Resolve looks up a descriptor by tool name.
func (r *Registry) Resolve(toolName string) (Descriptor, bool) {
	d, ok := r.byName[toolName]
	return d, ok
}

// Len reports the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.ordered)
}
