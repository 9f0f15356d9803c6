// Package tools provides the registry of functions the assistant may invoke.
// Tool names arrive from untrusted LLM output; dispatch is a map lookup over
// names registered at startup, never reflection.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cloudwego/eino/components/tool"

	"github.com/dealerdesk/dealerdesk/pkg/models"
)

// Built-in tool names.
const (
	FetchCars           = "fetch_cars"
	FindCarReviewVideos = "find_car_review_videos"
)

// InventorySearcher answers filtered inventory queries.
type InventorySearcher interface {
	SearchCars(filter models.CarFilter) ([]models.CarInventory, error)
}

// VideoSearcher finds car review videos.
type VideoSearcher interface {
	Search(ctx context.Context, carMake, carModel string, year int) models.VideoSearchResult
}

// ToolContext carries the collaborators tool executors need.
type ToolContext struct {
	Inventory InventorySearcher
	Videos    VideoSearcher
}

// ToolDefinition describes a registered tool.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolFactory is a function that creates a tool instance.
type ToolFactory func(tc *ToolContext) tool.InvokableTool

// Registry manages the built-in tools.
type Registry struct {
	definitions map[string]ToolDefinition
	factories   map[string]ToolFactory
	mu          sync.RWMutex
}

var globalRegistry = &Registry{
	definitions: make(map[string]ToolDefinition),
	factories:   make(map[string]ToolFactory),
}

// Register registers a tool with its definition and factory.
func Register(def ToolDefinition, factory ToolFactory) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	globalRegistry.definitions[def.Name] = def
	globalRegistry.factories[def.Name] = factory
}

// GetTool returns an invokable tool by name.
func GetTool(name string, tc *ToolContext) (tool.InvokableTool, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	factory, exists := globalRegistry.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return factory(tc), nil
}

// GetAllTools returns all registered tools with the given context, sorted by
// name for a stable schema order.
func GetAllTools(tc *ToolContext) []tool.InvokableTool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	names := make([]string, 0, len(globalRegistry.factories))
	for name := range globalRegistry.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]tool.InvokableTool, 0, len(names))
	for _, name := range names {
		result = append(result, globalRegistry.factories[name](tc))
	}
	return result
}

// ListToolDefinitions returns all registered definitions sorted by name.
func ListToolDefinitions() []ToolDefinition {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	result := make([]ToolDefinition, 0, len(globalRegistry.definitions))
	for _, def := range globalRegistry.definitions {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// IsRegistered checks if a tool name is registered.
func IsRegistered(name string) bool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	_, exists := globalRegistry.definitions[name]
	return exists
}
