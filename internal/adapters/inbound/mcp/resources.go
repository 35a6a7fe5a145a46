package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/standardrb/standardgo/internal/domain"
)

// registerResources registers the project resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	// 1. standard://config - effective .standard.yml
	s.AddResource(
		mcplib.NewResource(
			"standard://config",
			"Standard Settings",
			mcplib.WithResourceDescription("Effective .standard.yml settings for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleConfigResource,
	)

	// 2. standard://todo - files excused while migrating
	s.AddResource(
		mcplib.NewResource(
			"standard://todo",
			"Standard Todo",
			mcplib.WithResourceDescription("Files and cops excused by .standard_todo.yml while the project migrates"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleTodoResource,
	)
}

func (h *handlers) handleConfigResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	settings, err := h.svc.Settings.Load(h.projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return jsonContents("standard://config", settings)
}

func (h *handlers) handleTodoResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	todo, err := h.svc.Todos.Load(h.projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading todo file: %w", err)
	}
	if todo == nil {
		todo = &domain.Todo{Entries: []domain.TodoEntry{}}
	}
	return jsonContents("standard://todo", todo)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
