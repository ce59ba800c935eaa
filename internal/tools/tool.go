package tools

import (
	"context"
	"strings"
)

// Tool defines the interface for all agent capabilities.
type Tool interface {
	Name() string
	// Description is shown to the model in the tool catalog. It should say
	// what the tool does and what shape its input takes.
	Description() string
	Execute(ctx context.Context, input string) (string, error)
}

// Registry manages the set of available tools. Registration order is kept so
// that the catalog and the lookup scan are deterministic.
type Registry struct {
	tools []Tool
	index map[string]int
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{index: make(map[string]int)}
	r.Store(tools...)
	return r
}

// Register adds t. A tool with the same name replaces the earlier one in place.
func (r *Registry) Register(t Tool) {
	if i, ok := r.index[t.Name()]; ok {
		r.tools[i] = t
		return
	}
	r.index[t.Name()] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Store registers every tool in order.
func (r *Registry) Store(tools ...Tool) {
	for _, t := range tools {
		r.Register(t)
	}
}

func (r *Registry) Get(name string) Tool {
	if i, ok := r.index[name]; ok {
		return r.tools[i]
	}
	return nil
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

func (r *Registry) Len() int {
	return len(r.tools)
}

// Describe renders the catalog injected into the system prompt, one
// "name: description" line per tool.
func (r *Registry) Describe() string {
	lines := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		lines = append(lines, t.Name()+": "+t.Description())
	}
	return strings.Join(lines, "\n")
}
